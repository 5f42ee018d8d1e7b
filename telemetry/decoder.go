package telemetry

import (
	"bytes"

	"github.com/calebcase/bcdlut/fixed"
)

// Options configure a Decoder. Zero fields take the DefaultOptions value.
type Options struct {
	// Marker precedes the mode tag.
	Marker string

	// MaxLine bounds the bytes held for one line. Longer lines are
	// discarded up to the next terminator.
	MaxLine int
}

var DefaultOptions = Options{
	Marker:  "CORDIC:",
	MaxLine: 4096,
}

// Decoder extracts frames from a byte stream. Bytes of an unterminated line
// are held until a later Feed completes it. A Decoder must not be fed from
// more than one goroutine.
type Decoder struct {
	marker  []byte
	maxLine int

	line    []byte
	discard bool
}

func NewDecoder(opts Options) *Decoder {
	if opts.Marker == "" {
		opts.Marker = DefaultOptions.Marker
	}

	if opts.MaxLine <= 0 {
		opts.MaxLine = DefaultOptions.MaxLine
	}

	return &Decoder{
		marker:  []byte(opts.Marker),
		maxLine: opts.MaxLine,
	}
}

// Feed consumes p and returns the frames of every line it completed. Lines
// that are not telemetry are skipped.
func (d *Decoder) Feed(p []byte) (frames []Frame) {
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			d.hold(p)

			break
		}

		d.hold(p[:i])

		f, ok := d.end()
		if ok {
			frames = append(frames, f)
		}

		p = p[i+1:]
	}

	return frames
}

// Pending returns the number of bytes held for the current line.
func (d *Decoder) Pending() int {
	return len(d.line)
}

// Flush treats the held bytes as a complete line. It is used when the stream
// ends without a final terminator.
func (d *Decoder) Flush() (f Frame, ok bool) {
	if len(d.line) == 0 && !d.discard {
		return Frame{}, false
	}

	return d.end()
}

func (d *Decoder) hold(p []byte) {
	if d.discard {
		return
	}

	if len(d.line)+len(p) > d.maxLine {
		d.line = d.line[:0]
		d.discard = true

		return
	}

	d.line = append(d.line, p...)
}

func (d *Decoder) end() (f Frame, ok bool) {
	defer func() {
		d.line = d.line[:0]
		d.discard = false
	}()

	if d.discard {
		return Frame{}, false
	}

	line := bytes.TrimSuffix(d.line, []byte{'\r'})

	return Match(line, d.marker)
}

// Match recognises a frame in one line. Every occurrence of marker is tried
// in order and the first that parses wins. Text before the marker and after
// the last field is ignored.
func Match(line, marker []byte) (f Frame, ok bool) {
	for off := 0; ; off++ {
		i := bytes.Index(line[off:], marker)
		if i < 0 {
			return Frame{}, false
		}

		off += i

		f, ok = parse(line[off+len(marker):])
		if ok {
			f.Raw = string(line)

			return f, true
		}
	}
}

func parse(p []byte) (f Frame, ok bool) {
	if len(p) == 0 || p[0] < 'A' || p[0] > 'Z' {
		return Frame{}, false
	}

	f.Tag = p[0]
	f.Mode = ModeFromTag(p[0])
	p = p[1:]

	if len(p) > 0 && !isSpace(p[0]) {
		return Frame{}, false
	}

	if f.Mode == Unknown {
		return f, true
	}

	p, f.R1, ok = field(p, "R1:")
	if !ok {
		return Frame{}, false
	}

	_, r2, ok := field(p, "R2:")
	if ok {
		f.R2 = r2
	} else if f.Mode.Outputs() == 2 {
		return Frame{}, false
	}

	return f, true
}

// field parses whitespace, label, sign and eight hex digits. The field must
// end at whitespace or the end of the line.
func field(p []byte, label string) (rest []byte, v *fixed.SignMagnitude, ok bool) {
	n := 0
	for n < len(p) && isSpace(p[n]) {
		n++
	}

	if n == 0 {
		return p, nil, false
	}

	p = p[n:]

	if !bytes.HasPrefix(p, []byte(label)) {
		return p, nil, false
	}

	p = p[len(label):]

	const width = 9
	if len(p) < width || (len(p) > width && !isSpace(p[width])) {
		return p, nil, false
	}

	v = &fixed.SignMagnitude{}

	err := v.UnmarshalText(p[:width])
	if err != nil {
		return p, nil, false
	}

	return p[width:], v, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
