package serial_test

import (
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/bcdlut/serial"
	"github.com/calebcase/bcdlut/telemetry"
)

func TestOpenUnsupportedSpeed(t *testing.T) {
	_, err := serial.Open("/dev/null", 1234)
	require.True(t, serial.Error.Has(err), err)
}

func TestOpenMissing(t *testing.T) {
	_, err := serial.Open("/dev/does-not-exist", 115200)
	require.Error(t, err)
}

func TestLoopback(t *testing.T) {
	ptmx, pts, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer pts.Close()

	port, err := serial.Open(pts.Name(), 115200)
	require.NoError(t, err)
	defer port.Close()

	_, err = ptmx.Write([]byte("boot\nCORDIC:S R1:+00008000 R2:+0000B505\n"))
	require.NoError(t, err)

	r := telemetry.NewReader(port, telemetry.DefaultOptions)
	require.True(t, r.Next(), r.Err())
	require.Equal(t, telemetry.SinCos, r.Frame().Mode)
	require.Equal(t, "CORDIC:S R1:+00008000 R2:+0000B505", r.Frame().Raw)
}
