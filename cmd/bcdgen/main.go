// Command bcdgen generates BCD lookup table ROMs from a YAML table
// configuration.
//
//	bcdgen -c tables.yaml -f verilog -o tables.v
//	bcdgen -c tables.yaml -u amplitude_mv -f memh -o amplitude.mem
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/calebcase/bcdlut"
	"github.com/calebcase/bcdlut/config"
	"github.com/calebcase/bcdlut/table"
)

var encoders = map[string]func(w io.Writer, ident string) table.Encoder{
	"verilog": table.NewVerilogEncoder,
	"memh": func(w io.Writer, _ string) table.Encoder {
		return table.NewMemhEncoder(w)
	},
	"bin": func(w io.Writer, _ string) table.Encoder {
		return table.NewBinaryEncoder(w)
	},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "bcdgen"})

	flags := pflag.NewFlagSet("bcdgen", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configPath = flags.StringP("config", "c", "", "Table configuration (YAML).")
		outputPath = flags.StringP("output", "o", "-", "Output file, - for stdout.")
		format     = flags.StringP("format", "f", "verilog", "Output format: verilog, memh or bin.")
		unit       = flags.StringP("unit", "u", "", "Only emit the table for this unit. Required for memh and bin when several tables are declared.")
		name       = flags.StringP("name", "n", "", "Verilog identifier prefix. Defaults to the unit.")
		logLevel   = flags.String("log-level", "info", "Log level: debug, info, warn or error.")
		help       = flags.Bool("help", false, "Display help text.")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "bcdgen - Generate BCD lookup table ROMs.\n")
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Every value of each table's range is checked against the hardware\n")
		fmt.Fprintf(stderr, "address arithmetic before anything is written.\n")
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

	newEncoder, ok := encoders[*format]
	if !ok {
		logger.Error("unknown format", "format", *format)

		return 2
	}

	if *configPath == "" {
		logger.Error("missing --config")
		flags.Usage()

		return 2
	}

	f, err := config.LoadFile(*configPath)
	if err != nil {
		logger.Error("loading configuration", "path", *configPath, "err", err)

		return 1
	}

	decls := f.Tables
	if *unit != "" {
		c, ok := f.Find(*unit)
		if !ok {
			logger.Error("unit not declared", "unit", *unit)

			return 1
		}

		decls = []config.Table{*c}
	}

	if *format != "verilog" && len(decls) > 1 {
		logger.Error("format holds a single table, select one with --unit", "format", *format, "tables", len(decls))

		return 2
	}

	if *name != "" && len(decls) > 1 {
		logger.Error("--name needs a single table, select one with --unit")

		return 2
	}

	var out io.Writer = stdout
	if *outputPath != "-" {
		fh, err := os.Create(*outputPath)
		if err != nil {
			logger.Error("creating output", "path", *outputPath, "err", err)

			return 1
		}
		defer fh.Close()

		out = fh
	}

	w := bufio.NewWriter(out)

	for i := range decls {
		c := &decls[i]

		t, err := bcdlut.Build(c)
		if err != nil {
			logger.Error("generating table", "unit", *c.Unit, "err", err)

			return 1
		}

		top, err := t.Display(t.Domain.Range.Max)
		if err != nil {
			logger.Error("generating table", "unit", t.Domain.Unit, "err", err)

			return 1
		}

		logger.Info("generated",
			"unit", t.Domain.Unit,
			"display", t.Pattern(),
			"max", top,
			"segments", len(t.Domain.Segments),
			"entries", t.Used,
			"capacity", t.Capacity,
			"bits", t.Bits(),
		)

		for si, div := range t.Mapper.Divisors {
			logger.Debug("divisor",
				"unit", t.Domain.Unit,
				"segment", si,
				"step", div.Divisor,
				"formula", div.String(),
				"max_error", div.MaxRelativeError,
			)
		}

		ident := t.Domain.Unit
		if *name != "" {
			ident = *name
		}

		err = newEncoder(w, ident).Encode(t)
		if err != nil {
			logger.Error("writing table", "unit", t.Domain.Unit, "err", err)

			return 1
		}
	}

	err = w.Flush()
	if err != nil {
		logger.Error("writing output", "err", err)

		return 1
	}

	return 0
}
