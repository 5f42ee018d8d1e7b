package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const capture = "boot ok\r\n" +
	"CORDIC:S R1:+00008000 R2:+0000B505\r\n" +
	"adc=1234\r\n" +
	"CORDIC:H R1:+00008567 R2:+000120AC\r\n" +
	"CORDIC:D R1:+00000000 R2:+00000000\r\n"

func TestRunStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-p", "-"}, strings.NewReader(capture), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	require.Equal(t, 3, strings.Count(out, "raw: "))
	require.Contains(t, out, "CORDIC mode: Sin/Cos (mode 1)\n")
	require.Contains(t, out, "FLAGGED\n")
	require.Contains(t, out, "CORDIC mode: Sinh/Cosh (mode 2)\n")
	require.Contains(t, out, "CORDIC is disabled\n")
	require.NotContains(t, out, "adc=")

	log := stderr.String()
	require.Contains(t, log, "identity out of tolerance")
	require.Contains(t, log, "frames=3")
	require.Contains(t, log, "flagged=1")
}

func TestRunOptions(t *testing.T) {
	t.Run("flagged only", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-p", "-", "--flagged"}, strings.NewReader(capture), &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Equal(t, 1, strings.Count(stdout.String(), "raw: "))
	})

	t.Run("tolerance", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-p", "-", "--tolerance", "0.3"}, strings.NewReader(capture), &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.NotContains(t, stdout.String(), "FLAGGED")
		require.Contains(t, stderr.String(), "flagged=0")
	})

	t.Run("timestamp", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-p", "-", "-T", "%Y"}, strings.NewReader(capture), &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Regexp(t, `(?m)^\[\d{4}\]$`, stdout.String())
	})

	t.Run("marker", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		in := strings.ReplaceAll(capture, "CORDIC:", "RES:")

		code := run([]string{"-p", "-", "--marker", "RES:"}, strings.NewReader(in), &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Equal(t, 3, strings.Count(stdout.String(), "raw: RES:"))
	})

	t.Run("debug dump", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-p", "-", "--log-level", "debug"}, strings.NewReader(capture), &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Contains(t, stderr.String(), "Magnitude")
	})
}

func TestRunErrors(t *testing.T) {
	type TC struct {
		name string
		args []string
		code int
		msg  string
	}

	tcs := []TC{
		{"no port", nil, 2, "missing --port"},
		{"bad speed", []string{"-p", "/dev/null", "-s", "1234"}, 1, "unsupported speed"},
		{"bad level", []string{"-p", "-", "--log-level", "loud"}, 2, "invalid log level"},
		{"bad flag", []string{"--bogus"}, 2, "bogus"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(tc.args, strings.NewReader(""), &stdout, &stderr)
			require.Equal(t, tc.code, code)
			require.Contains(t, stderr.String(), tc.msg)
		})
	}
}
