package telemetry

import (
	"github.com/calebcase/bcdlut/fixed"
)

// Frac is the number of fractional bits in a result field.
const Frac = 16

// Frame is one recognised telemetry line.
type Frame struct {
	Mode Mode

	// Tag is the mode letter as received.
	Tag byte

	// R1 and R2 are nil when the line did not carry them. Unknown modes
	// never carry results.
	R1 *fixed.SignMagnitude
	R2 *fixed.SignMagnitude

	// Raw is the received line without its terminator.
	Raw string
}

// Result1 returns the first result scaled to a float.
func (f Frame) Result1() (v float64, ok bool) {
	if f.R1 == nil {
		return 0, false
	}

	return f.R1.Float(Frac), true
}

// Result2 returns the second result scaled to a float.
func (f Frame) Result2() (v float64, ok bool) {
	if f.R2 == nil {
		return 0, false
	}

	return f.R2.Float(Frac), true
}
