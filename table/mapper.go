package table

import (
	"math"

	"github.com/calebcase/bcdlut/divider"
	"github.com/calebcase/bcdlut/partition"
)

// Mapper computes table addresses the way the consuming hardware does:
// boundary comparisons select a segment and a multiply-shift replaces the
// division by the segment step.
type Mapper struct {
	Domain *partition.Domain

	// Divisors holds one divisor per segment. Power of two steps use a
	// plain shift.
	Divisors []divider.Divisor
}

// NewMapper derives a divisor for every segment of d.
func NewMapper(d *partition.Domain, bits uint8, tolerance float64) (m *Mapper, err error) {
	m = &Mapper{
		Domain:   d,
		Divisors: make([]divider.Divisor, 0, len(d.Segments)),
	}

	for i, s := range d.Segments {
		if s.Step > math.MaxUint32 || s.Span() > math.MaxUint32 {
			return nil, ErrConfig.New(
				"%s: segment %d: step %d or span %d exceeds 32 bits",
				d.Unit,
				i,
				s.Step,
				s.Span(),
			)
		}

		step, span := uint32(s.Step), uint32(s.Span())

		div, ok := divider.PowerOfTwo(step, span)
		if !ok {
			div, err = divider.Derive(step, span, bits, tolerance)
			if err != nil {
				return nil, err
			}
		}

		m.Divisors = append(m.Divisors, div)
	}

	return m, nil
}

// Segment selects the segment for x by comparing against boundaries from
// the top down, as a priority multiplexer would.
func (m *Mapper) Segment(x int64) (i int, ok bool) {
	if !m.Domain.Range.Contains(x) {
		return 0, false
	}

	for i = len(m.Domain.Segments) - 1; i >= 0; i-- {
		if x >= m.Domain.Segments[i].Start {
			return i, true
		}
	}

	return 0, false
}

// Address returns base + approx((x - start) / step) for the segment
// containing x.
func (m *Mapper) Address(x int64) (int, error) {
	i, ok := m.Segment(x)
	if !ok {
		return 0, Error.New(
			"%s: %d outside [%d, %d]",
			m.Domain.Unit,
			x,
			m.Domain.Range.Min,
			m.Domain.Range.Max,
		)
	}

	s := m.Domain.Segments[i]
	q := m.Divisors[i].Apply(uint32(x - s.Start))

	return s.Base + int(q), nil
}
