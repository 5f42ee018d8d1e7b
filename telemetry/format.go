package telemetry

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/calebcase/oops"
)

var (
	rule = strings.Repeat("=", 60)
	sep  = strings.Repeat("-", 60)
)

// labels name the results of each mode.
var labels = map[Mode][2]string{
	SinCos:   {"sin(θ)", "cos(θ)"},
	SinhCosh: {"sinh(x)", "cosh(x)"},
	Exp:      {"e^x", ""},
	Ln:       {"ln(x)", ""},
	Arctanh:  {"arctanh(x)", ""},
}

// Format writes a console block describing f and its validation.
func Format(w io.Writer, f Frame, v Validation) (err error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%s\n", rule)

	if f.Mode == Unknown {
		fmt.Fprintf(&b, "CORDIC mode: Unknown (tag %q)\n", f.Tag)
	} else {
		fmt.Fprintf(&b, "CORDIC mode: %s (mode %d)\n", f.Mode, int(f.Mode))
	}

	fmt.Fprintf(&b, "%s\n", sep)

	switch f.Mode {
	case Disabled:
		fmt.Fprintf(&b, "CORDIC is disabled\n")
	case Unknown:
		fmt.Fprintf(&b, "results not interpreted\n")
	default:
		names := labels[f.Mode]

		if r1, ok := f.Result1(); ok {
			fmt.Fprintf(&b, "%s = %+.6f\n", names[0], r1)
		}

		if r2, ok := f.Result2(); ok && names[1] != "" {
			fmt.Fprintf(&b, "%s = %+.6f\n", names[1], r2)
		}
	}

	if v.Defined {
		status := "ok"
		if v.Flagged {
			status = "FLAGGED"
		}

		fmt.Fprintf(&b, "check: %s = %.6f (expect %.1f, deviation %.6f) %s\n",
			v.Identity, v.Metric, v.Expected, v.Deviation, status)
	}

	if v.Note != "" {
		fmt.Fprintf(&b, "note: %s\n", v.Note)
	}

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "raw: %s\n", f.Raw)

	_, err = w.Write(b.Bytes())
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}
