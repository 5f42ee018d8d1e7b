// Package partition splits a measurement range into segments of uniform
// sampling step so that a lookup table grows with the precision required in
// each sub-range rather than with the full dynamic range.
//
// A frequency display that needs 100 Hz resolution below 10 kHz, 1 kHz up to
// 110 kHz and 10 kHz above that fits 0-500 kHz in 240 entries:
//
//  | Segment | Start  | End    | Step  | Base | Entries |
//  |---------|--------|--------|-------|------|---------|
//  | 0       | 0      | 10000  | 100   | 0    | 100     |
//  | 1       | 10000  | 110000 | 1000  | 100  | 100     |
//  | 2       | 110000 | 500001 | 10000 | 200  | 40      |
//  |---------|--------|--------|-------|------|---------|
//
// Segments are half-open. The last segment ends one past the range maximum so
// the maximum itself is tabulated.
package partition

import (
	"math"
	"sort"

	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("partition")

// ErrInvalidBreakpoints is returned for malformed partition configuration.
var ErrInvalidBreakpoints = errs.Class("invalid breakpoints")

// MaxEntries bounds the total entry count of a domain.
const MaxEntries = math.MaxInt32

// Range is an inclusive interval of native units.
type Range struct {
	Min int64
	Max int64
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x int64) bool {
	return x >= r.Min && x <= r.Max
}

// Breakpoint declares that sampling with Step starts at Boundary.
type Breakpoint struct {
	Boundary int64
	Step     int64
}

// Segment is a half-open interval [Start, End) sampled every Step units. Base
// is the table address of its first entry.
type Segment struct {
	Start int64
	End   int64
	Step  int64
	Base  int
}

// Entries returns ceil((End-Start)/Step). The segment is never empty.
func (s Segment) Entries() int {
	span := uint64(s.End-s.Start) - 1

	return int(span/uint64(s.Step) + 1)
}

// Contains reports whether x lies within the segment.
func (s Segment) Contains(x int64) bool {
	return x >= s.Start && x < s.End
}

// Index returns the entry offset of x within the segment. x must be
// contained in the segment.
func (s Segment) Index(x int64) int {
	return int((x - s.Start) / s.Step)
}

// Address returns the exact table address of x.
func (s Segment) Address(x int64) int {
	return s.Base + s.Index(x)
}

// Value returns the native value tabulated at entry i. When Step does not
// divide the segment evenly the last entry covers a shorter interval.
func (s Segment) Value(i int) int64 {
	return s.Start + int64(i)*s.Step
}

// Span returns the largest offset x-Start within the segment.
func (s Segment) Span() int64 {
	return s.End - 1 - s.Start
}

// Domain is a partitioned measurement range.
type Domain struct {
	Unit     string
	Range    Range
	Segments []Segment
}

// Partition walks the breakpoints in order and emits one segment per
// interval, assigning each segment a base address equal to the number of
// entries emitted before it.
func Partition(unit string, r Range, bps []Breakpoint) (d *Domain, err error) {
	switch {
	case len(bps) == 0:
		return nil, ErrInvalidBreakpoints.New("%s: no breakpoints", unit)
	case r.Min > r.Max:
		return nil, ErrInvalidBreakpoints.New(
			"%s: inverted range [%d, %d]",
			unit,
			r.Min,
			r.Max,
		)
	case r.Max == math.MaxInt64:
		return nil, ErrInvalidBreakpoints.New("%s: range max too large", unit)
	case bps[0].Boundary != r.Min:
		return nil, ErrInvalidBreakpoints.New(
			"%s: first boundary %d is not the range minimum %d",
			unit,
			bps[0].Boundary,
			r.Min,
		)
	}

	d = &Domain{
		Unit:     unit,
		Range:    r,
		Segments: make([]Segment, 0, len(bps)),
	}

	base := 0
	for i, bp := range bps {
		if bp.Step <= 0 {
			return nil, ErrInvalidBreakpoints.New(
				"%s: breakpoint %d: step=%d",
				unit,
				i,
				bp.Step,
			)
		}

		if bp.Boundary > r.Max {
			return nil, ErrInvalidBreakpoints.New(
				"%s: breakpoint %d: boundary %d beyond range max %d",
				unit,
				i,
				bp.Boundary,
				r.Max,
			)
		}

		end := r.Max + 1
		if i+1 < len(bps) {
			end = bps[i+1].Boundary
			if end <= bp.Boundary {
				return nil, ErrInvalidBreakpoints.New(
					"%s: boundaries not strictly increasing at %d: %d <= %d",
					unit,
					i+1,
					end,
					bp.Boundary,
				)
			}
		}

		s := Segment{
			Start: bp.Boundary,
			End:   end,
			Step:  bp.Step,
			Base:  base,
		}

		if int64(base)+int64(s.Entries()) > MaxEntries {
			return nil, ErrInvalidBreakpoints.New(
				"%s: more than %d entries",
				unit,
				MaxEntries,
			)
		}

		d.Segments = append(d.Segments, s)
		base += s.Entries()
	}

	return d, nil
}

// Entries returns the total number of table entries.
func (d *Domain) Entries() int {
	if len(d.Segments) == 0 {
		return 0
	}

	last := d.Segments[len(d.Segments)-1]

	return last.Base + last.Entries()
}

// Locate returns the segment containing x.
func (d *Domain) Locate(x int64) (s Segment, ok bool) {
	if !d.Range.Contains(x) {
		return s, false
	}

	i := sort.Search(len(d.Segments), func(i int) bool {
		return d.Segments[i].End > x
	})
	if i == len(d.Segments) {
		return s, false
	}

	return d.Segments[i], d.Segments[i].Contains(x)
}

// Address returns the exact table address of x.
func (d *Domain) Address(x int64) (int, error) {
	s, ok := d.Locate(x)
	if !ok {
		return 0, Error.New(
			"%s: %d outside [%d, %d]",
			d.Unit,
			x,
			d.Range.Min,
			d.Range.Max,
		)
	}

	return s.Address(x), nil
}

// Quantize returns the tabulated value whose entry covers x.
func (d *Domain) Quantize(x int64) (int64, error) {
	s, ok := d.Locate(x)
	if !ok {
		return 0, Error.New(
			"%s: %d outside [%d, %d]",
			d.Unit,
			x,
			d.Range.Min,
			d.Range.Max,
		)
	}

	return s.Value(s.Index(x)), nil
}

// Validate checks the partition invariants: segments cover the range with no
// gaps or overlaps and base addresses are the running entry totals.
func (d *Domain) Validate() error {
	if len(d.Segments) == 0 {
		return ErrInvalidBreakpoints.New("%s: no segments", d.Unit)
	}

	next := d.Range.Min
	base := 0
	for i, s := range d.Segments {
		switch {
		case s.Step <= 0:
			return ErrInvalidBreakpoints.New("%s: segment %d: step=%d", d.Unit, i, s.Step)
		case s.Start != next:
			return ErrInvalidBreakpoints.New(
				"%s: segment %d: starts at %d, expected %d",
				d.Unit,
				i,
				s.Start,
				next,
			)
		case s.End <= s.Start:
			return ErrInvalidBreakpoints.New("%s: segment %d: empty", d.Unit, i)
		case s.Base != base:
			return ErrInvalidBreakpoints.New(
				"%s: segment %d: base %d, expected %d",
				d.Unit,
				i,
				s.Base,
				base,
			)
		}

		next = s.End
		base += s.Entries()
	}

	if next != d.Range.Max+1 {
		return ErrInvalidBreakpoints.New(
			"%s: segments end at %d, range max is %d",
			d.Unit,
			next-1,
			d.Range.Max,
		)
	}

	return nil
}
