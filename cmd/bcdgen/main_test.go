package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebcase/bcdlut/table"
)

const tables = "../../testdata/tables.yaml"

func TestRun(t *testing.T) {
	t.Run("verilog", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-c", tables}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())

		out := stdout.String()
		require.Contains(t, out, "reg [23:0] frequency_hz_rom [0:255];")
		require.Contains(t, out, "reg [15:0] amplitude_mv_rom [0:511];")
		require.Contains(t, out, "reg [15:0] duty_permille_rom [0:1023];")
		require.Contains(t, stderr.String(), "generated")
		require.Contains(t, stderr.String(), "display=X.XXX max=5.000")
		require.Contains(t, stderr.String(), "display=XXX.X max=100.0")
		require.Contains(t, out, "// display XXXXXX\n")
	})

	t.Run("memh", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "amp.mem")

		var stdout, stderr bytes.Buffer

		code := run([]string{"-c", tables, "-u", "amplitude_mv", "-f", "memh", "-o", path}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Empty(t, stdout.String())

		fh, err := os.Open(path)
		require.NoError(t, err)
		defer fh.Close()

		entries, err := table.ReadMemh(fh, 4)
		require.NoError(t, err)
		require.Len(t, entries, 512)
		require.Equal(t, "3140", entries[314].String())
	})

	t.Run("bin", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-c", tables, "-u", "duty_permille", "-f", "bin", "-n", "duty"}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Equal(t, 2*1024, stdout.Len())
	})

	t.Run("debug", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-c", tables, "-u", "frequency_hz", "--log-level", "debug"}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		require.Contains(t, stderr.String(), "(x * 536871) >> 29")
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
		{"no config", nil, 2, "missing --config"},
		{"bad flag", []string{"--bogus"}, 2, "bogus"},
		{"bad format", []string{"-c", tables, "-f", "hex"}, 2, "unknown format"},
		{"bad level", []string{"-c", tables, "--log-level", "loud"}, 2, "invalid log level"},
		{"several tables", []string{"-c", tables, "-f", "memh"}, 2, "--unit"},
		{"name needs one table", []string{"-c", tables, "-n", "x"}, 2, "--unit"},
		{"unknown unit", []string{"-c", tables, "-u", "ohms"}, 1, "unit not declared"},
		{"missing file", []string{"-c", "absent.yaml"}, 1, "loading configuration"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(tc.args, &stdout, &stderr)
			require.Equal(t, tc.code, code)
			require.True(t, strings.Contains(stderr.String(), tc.msg), stderr.String())
		})
	}

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		require.Equal(t, 0, run([]string{"--help"}, &stdout, &stderr))
		require.Contains(t, stderr.String(), "--format")
	})
}
