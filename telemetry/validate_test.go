package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebcase/bcdlut/telemetry"
)

func decode(t *testing.T, line string) telemetry.Frame {
	t.Helper()

	frames := telemetry.NewDecoder(telemetry.DefaultOptions).Feed([]byte(line + "\n"))
	require.Len(t, frames, 1)

	return frames[0]
}

func TestCheck(t *testing.T) {
	type TC struct {
		name    string
		line    string
		defined bool
		metric  float64
		flagged bool
		note    bool
	}

	tcs := []TC{
		{
			// 0xB505 is not cos(asin(0.5)); the identity must flag it.
			name:    "sin cos off",
			line:    "CORDIC:S R1:+00008000 R2:+0000B505",
			defined: true,
			metric:  0.7500011,
			flagged: true,
		},
		{
			name:    "sin cos",
			line:    "CORDIC:S R1:+0000999A R2:+0000CCCD",
			defined: true,
			metric:  1.0000122,
		},
		{
			name:    "sin cos negative",
			line:    "CORDIC:S R1:-0000999A R2:-0000CCCD",
			defined: true,
			metric:  1.0000122,
		},
		{
			name:    "sinh cosh",
			line:    "CORDIC:H R1:+00008567 R2:+000120AC",
			defined: true,
			metric:  0.9999888,
		},
		{
			name:    "sinh cosh swapped",
			line:    "CORDIC:H R1:+000120AC R2:+00008567",
			defined: true,
			metric:  -0.9999888,
			flagged: true,
		},
		{
			name: "disabled",
			line: "CORDIC:D R1:+00000000 R2:+00000000",
		},
		{
			name: "exp",
			line: "CORDIC:E R1:+0002B7E1",
			note: true,
		},
		{
			name: "exp non positive",
			line: "CORDIC:E R1:-00000001",
		},
		{
			name: "ln",
			line: "CORDIC:L R1:+00000000",
			note: true,
		},
		{
			name: "arctanh",
			line: "CORDIC:A R1:+00008C9F",
		},
		{
			name: "unknown",
			line: "CORDIC:Z R1:+00010000",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			v := telemetry.Check(decode(t, tc.line), telemetry.DefaultTolerance)

			require.Equal(t, tc.defined, v.Defined)
			require.Equal(t, tc.flagged, v.Flagged)
			require.Equal(t, tc.note, v.Note != "")

			if tc.defined {
				require.InDelta(t, tc.metric, v.Metric, 1e-6)
				require.Equal(t, 1.0, v.Expected)
			}
		})
	}
}

func TestCheckTolerance(t *testing.T) {
	f := decode(t, "CORDIC:S R1:+00008000 R2:+0000B505")

	require.True(t, telemetry.Check(f, 0.2).Flagged)
	require.False(t, telemetry.Check(f, 0.3).Flagged)
}
