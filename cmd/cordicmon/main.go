// Command cordicmon decodes CORDIC results sent over a UART and prints each
// frame with its identity check.
//
//	cordicmon -p /dev/ttyUSB0
//	cordicmon -p - < capture.log
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/calebcase/bcdlut/serial"
	"github.com/calebcase/bcdlut/telemetry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "cordicmon"})

	flags := pflag.NewFlagSet("cordicmon", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		port            = flags.StringP("port", "p", "", "Serial port, e.g. /dev/ttyUSB0, or - for stdin.")
		speed           = flags.IntP("speed", "s", 115200, "Serial port speed. 0 leaves it unchanged.")
		timestampFormat = flags.StringP("timestamp-format", "T", "", "Precede frames with 'strftime' format time stamp.")
		tolerance       = flags.Float64("tolerance", telemetry.DefaultTolerance, "Largest accepted identity deviation.")
		marker          = flags.String("marker", telemetry.DefaultOptions.Marker, "Text preceding the mode tag.")
		flaggedOnly     = flags.Bool("flagged", false, "Only print frames that fail their identity check.")
		logLevel        = flags.String("log-level", "info", "Log level: debug, info, warn or error.")
		help            = flags.Bool("help", false, "Display help text.")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "cordicmon - Monitor CORDIC results from a UART.\n")
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Lines that do not carry a result are ignored. Results that fail\n")
		fmt.Fprintf(stderr, "their identity check are flagged, never dropped.\n")
		fmt.Fprintf(stderr, "\n")
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if err != nil {
		return 2
	}

	if *help {
		flags.Usage()

		return 0
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Error("invalid log level", "level", *logLevel)

		return 2
	}

	logger.SetLevel(level)

	var stamp *strftime.Strftime
	if *timestampFormat != "" {
		stamp, err = strftime.New(*timestampFormat)
		if err != nil {
			logger.Error("invalid timestamp format", "format", *timestampFormat, "err", err)

			return 2
		}
	}

	var in io.Reader

	switch *port {
	case "":
		logger.Error("missing --port")
		flags.Usage()

		return 2
	case "-":
		in = stdin
	default:
		t, err := serial.Open(*port, *speed)
		if err != nil {
			logger.Error("opening serial port", "port", *port, "speed", *speed, "err", err)

			return 1
		}
		defer t.Close()

		logger.Info("connected", "port", *port, "speed", *speed)

		in = t
	}

	w := bufio.NewWriter(stdout)
	r := telemetry.NewReader(in, telemetry.Options{Marker: *marker})

	var frames, flagged int

	for r.Next() {
		f := r.Frame()
		v := telemetry.Check(f, *tolerance)

		frames++
		if v.Flagged {
			flagged++

			logger.Warn("identity out of tolerance",
				"mode", f.Mode,
				"identity", v.Identity,
				"metric", v.Metric,
				"deviation", v.Deviation,
			)
		}

		if level <= log.DebugLevel {
			logger.Debug("frame", "dump", spew.Sdump(f))
		}

		if *flaggedOnly && !v.Flagged {
			continue
		}

		if stamp != nil {
			fmt.Fprintf(w, "[%s]\n", stamp.FormatString(time.Now()))
		}

		err = telemetry.Format(w, f, v)
		if err != nil {
			logger.Error("writing output", "err", err)

			return 1
		}

		err = w.Flush()
		if err != nil {
			logger.Error("writing output", "err", err)

			return 1
		}
	}

	err = r.Err()
	if err != nil {
		logger.Error("reading telemetry", "err", err)

		return 1
	}

	logger.Info("stream ended", "frames", frames, "flagged", flagged)

	return 0
}
