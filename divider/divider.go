// Package divider replaces division by a constant with a multiply and a
// shift:
//
//  x / divisor ≈ (x * multiplier) >> shift
//
// where multiplier = round(2^shift / divisor). Hardware without a divider
// uses this to turn a raw measurement into a table address. The error of the
// substitution is computed, never assumed: Derive evaluates the realised
// worst case over the whole domain before returning a constant pair.
//
// Error is measured against the integer quotient. For a true quotient q >= 1
// the relative error is |approx - q| / q. A nonzero approximation of a zero
// quotient has unbounded error.
package divider

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("divider")

// ErrToleranceUnattainable is returned when no multiply-shift pair meets the
// requested error bound at the requested multiplier width.
var ErrToleranceUnattainable = errs.Class("tolerance unattainable")

// DefaultTolerance is the relative error bound used when none is configured.
const DefaultTolerance = 0.005

// MaxBitWidth is the widest supported multiplier.
const MaxBitWidth = 32

// ExhaustiveLimit is the largest domain Verify checks value by value.
const ExhaustiveLimit = 1_000_000

// Divisor is a multiply-shift approximation of division by Divisor over
// [0, DomainMax].
type Divisor struct {
	Divisor    uint32
	Multiplier uint64
	Shift      uint8
	DomainMax  uint32

	// MaxRelativeError is the realised worst case over the domain.
	MaxRelativeError float64
}

// Apply computes (x * Multiplier) >> Shift.
func (d Divisor) Apply(x uint32) uint64 {
	return (uint64(x) * d.Multiplier) >> d.Shift
}

// Error returns the relative error of Apply(x) against x / Divisor.
func (d Divisor) Error(x uint32) float64 {
	want := uint64(x / d.Divisor)
	got := d.Apply(x)

	if got == want {
		return 0
	}

	if want == 0 {
		return math.Inf(1)
	}

	diff := got - want
	if got < want {
		diff = want - got
	}

	return float64(diff) / float64(want)
}

// ProductBits returns the width of the largest product x * Multiplier over
// the domain, at least 1. Hardware must carry the product at this width or
// the shifted result differs from Apply.
func (d Divisor) ProductBits() int {
	return max(bits.Len64(uint64(d.DomainMax)*d.Multiplier), 1)
}

// Exact reports whether Apply equals integer division everywhere in the
// domain.
func (d Divisor) Exact() bool {
	return d.MaxRelativeError == 0
}

// String returns the formula, e.g. "(x * 536871) >> 29".
func (d Divisor) String() string {
	if d.Multiplier == 1 {
		return fmt.Sprintf("x >> %d", d.Shift)
	}

	return fmt.Sprintf("(x * %d) >> %d", d.Multiplier, d.Shift)
}

// Evaluate returns the worst relative error of (x*m)>>s against x/divisor
// over [0, domainMax].
//
// The approximation is monotone in x and the true quotient is constant on
// each block [q*divisor, q*divisor+divisor-1], so the worst case within a
// block is at one of its two ends. Only those are evaluated.
func Evaluate(divisor uint32, m uint64, s uint8, domainMax uint32) float64 {
	d := Divisor{
		Divisor:    divisor,
		Multiplier: m,
		Shift:      s,
	}

	worst := 0.0
	for lo := uint64(0); lo <= uint64(domainMax); lo += uint64(divisor) {
		hi := lo + uint64(divisor) - 1
		if hi > uint64(domainMax) {
			hi = uint64(domainMax)
		}

		worst = math.Max(worst, d.Error(uint32(lo)))
		worst = math.Max(worst, d.Error(uint32(hi)))

		if math.IsInf(worst, 1) {
			break
		}
	}

	return worst
}

// PowerOfTwo returns the shift-only divisor for a power of two.
func PowerOfTwo(divisor, domainMax uint32) (d Divisor, ok bool) {
	if divisor == 0 || divisor&(divisor-1) != 0 {
		return d, false
	}

	return Divisor{
		Divisor:    divisor,
		Multiplier: 1,
		Shift:      uint8(bits.TrailingZeros32(divisor)),
		DomainMax:  domainMax,
	}, true
}

// Derive chooses the largest shift whose rounded multiplier fits in bitWidth
// bits and whose realised error over [0, domainMax] is at most tolerance.
// Shifts are scanned from high to low and the first passing one is
// returned.
func Derive(divisor, domainMax uint32, bitWidth uint8, tolerance float64) (d Divisor, err error) {
	switch {
	case divisor == 0:
		return d, Error.New("invalid divisor: 0")
	case bitWidth == 0 || bitWidth > MaxBitWidth:
		return d, Error.New("invalid bit width: %d", bitWidth)
	case math.IsNaN(tolerance) || tolerance < 0:
		return d, Error.New("invalid tolerance: %g", tolerance)
	}

	limit := uint64(1) << bitWidth

	top := int(bitWidth) + bits.Len32(divisor)
	if top > 63 {
		top = 63
	}

	best := math.Inf(1)
	bestShift := -1

	for s := top; s >= 0; s-- {
		m := (uint64(1)<<s + uint64(divisor)/2) / uint64(divisor)
		if m == 0 || m >= limit {
			continue
		}

		e := Evaluate(divisor, m, uint8(s), domainMax)
		if e < best {
			best = e
			bestShift = s
		}

		if e <= tolerance {
			return Divisor{
				Divisor:          divisor,
				Multiplier:       m,
				Shift:            uint8(s),
				DomainMax:        domainMax,
				MaxRelativeError: e,
			}, nil
		}
	}

	return d, ErrToleranceUnattainable.New(
		"divisor=%d domain=[0, %d] bits=%d tolerance=%g: best error %g at shift %d",
		divisor,
		domainMax,
		bitWidth,
		tolerance,
		best,
		bestShift,
	)
}

// Verify checks the recorded error bound. Domains up to ExhaustiveLimit are
// checked value by value; larger ones by block endpoints.
func Verify(d Divisor) error {
	if d.Divisor == 0 {
		return Error.New("invalid divisor: 0")
	}

	if d.DomainMax > ExhaustiveLimit {
		e := Evaluate(d.Divisor, d.Multiplier, d.Shift, d.DomainMax)
		if e > d.MaxRelativeError {
			return Error.New(
				"%s / %d: error %g exceeds bound %g",
				d,
				d.Divisor,
				e,
				d.MaxRelativeError,
			)
		}

		return nil
	}

	for x := uint64(0); x <= uint64(d.DomainMax); x++ {
		e := d.Error(uint32(x))
		if e > d.MaxRelativeError {
			return Error.New(
				"%s / %d at x=%d: got %d want %d (error %g exceeds bound %g)",
				d,
				d.Divisor,
				x,
				d.Apply(uint32(x)),
				uint32(x)/d.Divisor,
				e,
				d.MaxRelativeError,
			)
		}
	}

	return nil
}
