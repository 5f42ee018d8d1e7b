package fixed

import (
	"math"

	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("fixed")

// ErrOutOfRange is returned when a value cannot be represented in the
// requested width.
var ErrOutOfRange = errs.Class("out of range")

// Format is a signed fixed-point layout.
type Format struct {
	// Width is the total number of bits including the sign bit.
	Width uint8

	// Frac is the number of fractional bits.
	Frac uint8
}

// Q16_16 is the 32 bit format with 16 fractional bits.
var Q16_16 = Format{Width: 32, Frac: 16}

// Scale returns 2^Frac.
func (f Format) Scale() float64 {
	return math.Ldexp(1, int(f.Frac))
}

// Validate checks that the format describes at most 32 bits and that the
// fraction fits inside it.
func (f Format) Validate() error {
	switch {
	case f.Width == 0 || f.Width > 32:
		return Error.New("invalid width: %d", f.Width)
	case f.Frac > f.Width:
		return Error.New("invalid fraction: width=%d frac=%d", f.Width, f.Frac)
	}

	return nil
}

// Decode interprets raw as a two's complement number with frac fractional
// bits.
func Decode(raw int32, frac uint8) float64 {
	return math.Ldexp(float64(raw), -int(frac))
}

// SignExtend treats the low width bits of raw as a two's complement number.
func SignExtend(raw uint32, width uint8) int32 {
	if width == 0 || width >= 32 {
		return int32(raw)
	}

	shift := 32 - width

	return int32(raw<<shift) >> shift
}

// Decode sign extends raw from the format width and scales it.
func (f Format) Decode(raw uint32) float64 {
	return Decode(SignExtend(raw, f.Width), f.Frac)
}

// Encode returns the raw bits of the representable value nearest to v. The
// result is masked to the format width.
func (f Format) Encode(v float64) (raw uint32, err error) {
	err = f.Validate()
	if err != nil {
		return 0, err
	}

	scaled := math.Round(math.Ldexp(v, int(f.Frac)))
	hi := math.Ldexp(1, int(f.Width)-1)

	if math.IsNaN(scaled) || scaled < -hi || scaled > hi-1 {
		return 0, ErrOutOfRange.New(
			"%g does not fit width=%d frac=%d",
			v,
			f.Width,
			f.Frac,
		)
	}

	mask := uint64(1)<<f.Width - 1

	return uint32(uint64(int64(scaled)) & mask), nil
}
