package table

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/calebcase/oops"

	"github.com/calebcase/bcdlut/fixed"
)

// ReadMemh parses a $readmemh stream of BCD words. Blank lines and //
// comments are skipped. Address directives (@addr) are not supported.
func ReadMemh(r io.Reader, digits uint8) (entries []fixed.BCD, err error) {
	sc := bufio.NewScanner(r)

	line := 0
	for sc.Scan() {
		line++

		text := sc.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}

		for _, field := range strings.Fields(text) {
			if strings.HasPrefix(field, "@") {
				return nil, Error.New("line %d: address directives unsupported: %q", line, field)
			}

			w, err := strconv.ParseUint(field, 16, 64)
			if err != nil {
				return nil, Error.New("line %d: %v", line, err)
			}

			b, err := fixed.ParseWord(w, digits)
			if err != nil {
				return nil, err
			}

			entries = append(entries, b)
		}
	}

	err = sc.Err()
	if err != nil {
		return nil, oops.Trace(err)
	}

	return entries, nil
}
