package telemetry

import (
	"math"
)

// DefaultTolerance is the largest accepted deviation of an identity from its
// expected value.
const DefaultTolerance = 0.01

// Validation is the outcome of checking a frame against the identity its
// mode satisfies. It never rejects a frame.
type Validation struct {
	// Defined is false for modes without an identity.
	Defined bool

	Identity  string
	Metric    float64
	Expected  float64
	Deviation float64

	// Flagged is set when Deviation exceeds the tolerance.
	Flagged bool

	// Note is an informational remark for modes without an identity.
	Note string
}

// Check computes the validation metric for f.
func Check(f Frame, tolerance float64) (v Validation) {
	r1, ok1 := f.Result1()
	r2, ok2 := f.Result2()

	switch f.Mode {
	case SinCos:
		if !ok1 || !ok2 {
			return v
		}

		v.Identity = "sin²+cos²"
		v.Metric = r1*r1 + r2*r2
	case SinhCosh:
		if !ok1 || !ok2 {
			return v
		}

		v.Identity = "cosh²-sinh²"
		v.Metric = r2*r2 - r1*r1
	case Exp:
		if ok1 && r1 > 0 {
			v.Note = "ln(e^x) should equal the input x"
		}

		return v
	case Ln:
		if ok1 {
			v.Note = "e^(ln(x)) should equal the input x"
		}

		return v
	default:
		return v
	}

	v.Defined = true
	v.Expected = 1
	v.Deviation = math.Abs(v.Metric - v.Expected)
	v.Flagged = v.Deviation > tolerance

	return v
}
