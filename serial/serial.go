// Package serial opens the UART that carries telemetry.
package serial

import (
	"slices"

	"github.com/calebcase/oops"
	"github.com/pkg/term"
	"github.com/zeebo/errs"
)

var Error = errs.Class("serial")

// Speeds lists the supported baud rates.
var Speeds = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// Open opens device in raw mode at baud. A baud of 0 leaves the line speed
// unchanged.
func Open(device string, baud int) (t *term.Term, err error) {
	if baud != 0 && !slices.Contains(Speeds, baud) {
		return nil, Error.New("unsupported speed %d", baud)
	}

	t, err = term.Open(device, term.RawMode)
	if err != nil {
		return nil, oops.Trace(err)
	}

	if baud == 0 {
		return t, nil
	}

	err = t.SetSpeed(baud)
	if err != nil {
		t.Close()

		return nil, oops.Trace(err)
	}

	return t, nil
}
