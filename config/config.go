// Package config reads table definitions from YAML.
//
// Every key except decimal_places is required so that generated tables do
// not depend on defaults that may change between releases. Unknown keys are
// rejected.
//
//	tables:
//	  - unit: frequency_hz
//	    range: {min: 0, max: 500000}
//	    breakpoints:
//	      - {boundary: 0, step: 100}
//	      - {boundary: 10000, step: 1000}
//	      - {boundary: 110000, step: 10000}
//	    digits: 6
//	    capacity: 256
//	    sentinel: 0
//	    tolerance: 0.005
//	    multiplier_bits: 20
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/calebcase/bcdlut/fixed"
	"github.com/calebcase/bcdlut/partition"
	"github.com/calebcase/bcdlut/table"
)

var ErrConfig = errs.Class("config")

type File struct {
	Tables []Table `yaml:"tables"`
}

type Range struct {
	Min *int64 `yaml:"min"`
	Max *int64 `yaml:"max"`
}

type Breakpoint struct {
	Boundary *int64 `yaml:"boundary"`
	Step     *int64 `yaml:"step"`
}

// Table declares one lookup table. Nil fields were absent from the input.
type Table struct {
	Unit           *string      `yaml:"unit"`
	Range          *Range       `yaml:"range"`
	Breakpoints    []Breakpoint `yaml:"breakpoints"`
	Digits         *uint8       `yaml:"digits"`
	Capacity       *int         `yaml:"capacity"`
	Sentinel       *uint64      `yaml:"sentinel"`
	Tolerance      *float64     `yaml:"tolerance"`
	MultiplierBits *uint8       `yaml:"multiplier_bits"`

	// DecimalPlaces positions the implied decimal point for display.
	DecimalPlaces uint8 `yaml:"decimal_places"`
}

// Load decodes and validates a configuration.
func Load(r io.Reader) (f *File, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f = &File{}

	err = dec.Decode(f)
	if errors.Is(err, io.EOF) {
		return nil, ErrConfig.New("empty configuration")
	}
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	err = f.Validate()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// LoadFile loads the configuration at path.
func LoadFile(path string) (f *File, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, oops.Trace(err)
	}
	defer fh.Close()

	return Load(fh)
}

func (f *File) Validate() error {
	if len(f.Tables) == 0 {
		return ErrConfig.New("no tables")
	}

	seen := map[string]bool{}

	for i := range f.Tables {
		t := &f.Tables[i]

		err := t.Validate()
		if err != nil {
			return ErrConfig.New("tables[%d]: %v", i, err)
		}

		if seen[*t.Unit] {
			return ErrConfig.New("tables[%d]: duplicate unit %q", i, *t.Unit)
		}

		seen[*t.Unit] = true
	}

	return nil
}

// Find returns the table for unit.
func (f *File) Find(unit string) (t *Table, ok bool) {
	for i := range f.Tables {
		if *f.Tables[i].Unit == unit {
			return &f.Tables[i], true
		}
	}

	return nil, false
}

// Validate checks that every required key is present. Value constraints are
// enforced by Domain and Options. File.Validate classifies the error.
func (t *Table) Validate() error {
	missing := func(key string) error {
		return fmt.Errorf("missing %s", key)
	}

	switch {
	case t.Unit == nil || *t.Unit == "":
		return missing("unit")
	case t.Range == nil:
		return missing("range")
	case t.Range.Min == nil:
		return missing("range.min")
	case t.Range.Max == nil:
		return missing("range.max")
	case len(t.Breakpoints) == 0:
		return missing("breakpoints")
	case t.Digits == nil:
		return missing("digits")
	case t.Capacity == nil:
		return missing("capacity")
	case t.Sentinel == nil:
		return missing("sentinel")
	case t.Tolerance == nil:
		return missing("tolerance")
	case t.MultiplierBits == nil:
		return missing("multiplier_bits")
	}

	for i, bp := range t.Breakpoints {
		if bp.Boundary == nil {
			return missing(fmt.Sprintf("breakpoints[%d].boundary", i))
		}

		if bp.Step == nil {
			return missing(fmt.Sprintf("breakpoints[%d].step", i))
		}
	}

	if t.DecimalPlaces > *t.Digits {
		return fmt.Errorf("decimal_places %d exceeds digits %d", t.DecimalPlaces, *t.Digits)
	}

	return nil
}

// Domain partitions the table's range.
func (t *Table) Domain() (*partition.Domain, error) {
	bps := make([]partition.Breakpoint, 0, len(t.Breakpoints))
	for _, bp := range t.Breakpoints {
		bps = append(bps, partition.Breakpoint{
			Boundary: *bp.Boundary,
			Step:     *bp.Step,
		})
	}

	return partition.Partition(*t.Unit, partition.Range{
		Min: *t.Range.Min,
		Max: *t.Range.Max,
	}, bps)
}

// Options returns the generation options.
func (t *Table) Options() (opts table.Options, err error) {
	sentinel, err := fixed.EncodeBCD(*t.Sentinel, *t.Digits)
	if err != nil {
		return opts, ErrConfig.New("sentinel: %v", err)
	}

	return table.Options{
		Digits:         *t.Digits,
		Capacity:       *t.Capacity,
		Sentinel:       sentinel,
		Tolerance:      *t.Tolerance,
		MultiplierBits: *t.MultiplierBits,
		Places:         t.DecimalPlaces,
	}, nil
}
