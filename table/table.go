// Package table generates BCD lookup tables for partitioned measurement
// domains and proves, at generation time, that the hardware's approximate
// address arithmetic lands on the right entry for every value in the domain.
//
// A table is a power of two sized array of fixed-width words. Addresses
// [0, Used) hold the BCD encoding of each segment sample in address order;
// addresses [Used, Capacity) hold the sentinel word.
package table

import (
	"fmt"
	"strings"

	"github.com/zeebo/errs"

	"github.com/calebcase/bcdlut/fixed"
	"github.com/calebcase/bcdlut/partition"
)

// Error is the error class for this package.
var Error = errs.Class("table")

var (
	// ErrCapacityExceeded is returned when the domain needs more entries
	// than the table holds.
	ErrCapacityExceeded = errs.Class("capacity exceeded")

	// ErrAddressMappingUnsound is returned when the approximate address of
	// some value differs from its exact address.
	ErrAddressMappingUnsound = errs.Class("address mapping unsound")

	// ErrConfig is returned for malformed generation options.
	ErrConfig = errs.Class("table config")
)

// Options are the generation parameters. None has a default.
type Options struct {
	Digits   uint8
	Capacity int
	Sentinel fixed.BCD

	// Tolerance and MultiplierBits configure the divisor derived for each
	// segment step that is not a power of two.
	Tolerance      float64
	MultiplierBits uint8

	// Places positions the implied decimal point of the display. Zero
	// shows whole numbers.
	Places uint8
}

// Table is a fully materialised lookup table.
type Table struct {
	Domain   *partition.Domain
	Digits   uint8
	Capacity int
	Used     int
	Sentinel fixed.BCD
	Places   uint8
	Entries  []fixed.BCD
	Mapper   *Mapper
}

func (o Options) validate() error {
	switch {
	case o.Digits == 0 || o.Digits > fixed.MaxDigits:
		return ErrConfig.New("invalid digit count: %d", o.Digits)
	case o.Capacity <= 0 || o.Capacity&(o.Capacity-1) != 0:
		return ErrConfig.New("capacity %d is not a power of two", o.Capacity)
	case o.Places > o.Digits:
		return ErrConfig.New("%d decimal places exceed %d digits", o.Places, o.Digits)
	case o.Sentinel.Len() != int(o.Digits):
		return ErrConfig.New(
			"sentinel has %d digits, table has %d",
			o.Sentinel.Len(),
			o.Digits,
		)
	}

	return nil
}

// Generate builds the table for d and runs the address verification. The
// result depends only on its inputs.
func Generate(d *partition.Domain, opts Options) (t *Table, err error) {
	err = opts.validate()
	if err != nil {
		return nil, err
	}

	err = d.Validate()
	if err != nil {
		return nil, err
	}

	used := d.Entries()
	if used > opts.Capacity {
		return nil, ErrCapacityExceeded.New(
			"%s: %d entries, capacity %d",
			d.Unit,
			used,
			opts.Capacity,
		)
	}

	t = &Table{
		Domain:   d,
		Digits:   opts.Digits,
		Capacity: opts.Capacity,
		Used:     used,
		Sentinel: opts.Sentinel,
		Places:   opts.Places,
		Entries:  make([]fixed.BCD, opts.Capacity),
	}

	for si, s := range d.Segments {
		for i := 0; i < s.Entries(); i++ {
			v := s.Value(i)
			if v < 0 {
				return nil, fixed.ErrOutOfRange.New(
					"%s: segment %d: negative value %d",
					d.Unit,
					si,
					v,
				)
			}

			b, err := fixed.EncodeBCD(uint64(v), opts.Digits)
			if err != nil {
				return nil, fmt.Errorf("%s: segment %d: %w", d.Unit, si, err)
			}

			t.Entries[s.Base+i] = b
		}
	}

	for i := used; i < opts.Capacity; i++ {
		t.Entries[i] = opts.Sentinel
	}

	t.Mapper, err = NewMapper(d, opts.MultiplierBits, opts.Tolerance)
	if err != nil {
		return nil, err
	}

	err = t.Verify()
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Verify walks every value of the domain and checks that the mapper's
// address equals the exact address and that the entry found there is the
// direct encoding of the value's sample.
func (t *Table) Verify() error {
	d := t.Domain

	for x := d.Range.Min; x <= d.Range.Max; x++ {
		s, ok := d.Locate(x)
		if !ok {
			return ErrAddressMappingUnsound.New("%s: x=%d in no segment", d.Unit, x)
		}

		want := s.Address(x)

		got, err := t.Mapper.Address(x)
		if err != nil {
			return err
		}

		if got != want {
			i, _ := t.Mapper.Segment(x)

			return ErrAddressMappingUnsound.New(
				"%s: x=%d segment [%d, %d) step %d via %s: computed address %d, expected %d",
				d.Unit,
				x,
				s.Start,
				s.End,
				s.Step,
				t.Mapper.Divisors[i],
				got,
				want,
			)
		}

		sample := uint64(s.Value(s.Index(x)))
		if e := t.Entries[got]; e.Len() != int(t.Digits) || e.Value() != sample {
			return ErrAddressMappingUnsound.New(
				"%s: x=%d address %d holds %s, expected %d",
				d.Unit,
				x,
				got,
				e,
				sample,
			)
		}
	}

	return nil
}

// Lookup returns the entry the hardware reads for x.
func (t *Table) Lookup(x int64) (b fixed.BCD, err error) {
	addr, err := t.Mapper.Address(x)
	if err != nil {
		return b, err
	}

	if addr < 0 || addr >= t.Capacity {
		return b, ErrAddressMappingUnsound.New(
			"%s: x=%d address %d beyond capacity %d",
			t.Domain.Unit,
			x,
			addr,
			t.Capacity,
		)
	}

	return t.Entries[addr], nil
}

// Display returns the text the display shows for x.
func (t *Table) Display(x int64) (string, error) {
	b, err := t.Lookup(x)
	if err != nil {
		return "", err
	}

	return b.Format(t.Places), nil
}

// Pattern returns the display layout with X for each digit, e.g. "X.XXX".
func (t *Table) Pattern() string {
	whole := strings.Repeat("X", int(t.Digits-t.Places))
	if t.Places == 0 {
		return whole
	}

	if whole == "" {
		whole = "0"
	}

	return whole + "." + strings.Repeat("X", int(t.Places))
}

// Words returns the packed words in address order.
func (t *Table) Words() []uint64 {
	words := make([]uint64, len(t.Entries))
	for i, e := range t.Entries {
		words[i] = e.Word()
	}

	return words
}

// WordBits returns the width of one word.
func (t *Table) WordBits() int {
	return 4 * int(t.Digits)
}

// AddressBits returns log2(Capacity), at least 1.
func (t *Table) AddressBits() int {
	n := 1
	for 1<<n < t.Capacity {
		n++
	}

	return n
}

// Bits returns the storage the table occupies.
func (t *Table) Bits() int {
	return t.Capacity * t.WordBits()
}
