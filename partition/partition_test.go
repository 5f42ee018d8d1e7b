package partition_test

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/calebcase/bcdlut/partition"
)

var frequency = []partition.Breakpoint{
	{Boundary: 0, Step: 100},
	{Boundary: 10000, Step: 1000},
	{Boundary: 110000, Step: 10000},
}

func TestPartition(t *testing.T) {
	t.Run("frequency", func(t *testing.T) {
		d, err := partition.Partition("frequency_hz", partition.Range{Min: 0, Max: 500000}, frequency)
		require.NoError(t, err)
		require.NoError(t, d.Validate())

		require.Equal(t, []partition.Segment{
			{Start: 0, End: 10000, Step: 100, Base: 0},
			{Start: 10000, End: 110000, Step: 1000, Base: 100},
			{Start: 110000, End: 500001, Step: 10000, Base: 200},
		}, d.Segments, spew.Sdump(d))
		require.Equal(t, 240, d.Entries())

		for i := 1; i < len(d.Segments); i++ {
			prev, cur := d.Segments[i-1], d.Segments[i]
			require.Greater(t, cur.Base, prev.Base)
			require.Equal(t, prev.End, cur.Start)
		}
	})

	t.Run("uneven step", func(t *testing.T) {
		d, err := partition.Partition("x", partition.Range{Min: 0, Max: 9}, []partition.Breakpoint{
			{Boundary: 0, Step: 4},
		})
		require.NoError(t, err)
		require.Equal(t, 3, d.Entries())
		require.Equal(t, int64(8), d.Segments[0].Value(2))

		q, err := d.Quantize(9)
		require.NoError(t, err)
		require.Equal(t, int64(8), q)
	})

	t.Run("huge step", func(t *testing.T) {
		d, err := partition.Partition("x", partition.Range{Min: 0, Max: 10}, []partition.Breakpoint{
			{Boundary: 0, Step: 1},
			{Boundary: 5, Step: math.MaxInt64},
		})
		require.NoError(t, err)
		require.NoError(t, d.Validate())

		require.Equal(t, 1, d.Segments[1].Entries())
		require.Equal(t, 5, d.Segments[1].Base)
		require.Equal(t, 6, d.Entries())

		a, err := d.Address(10)
		require.NoError(t, err)
		require.Equal(t, 5, a)
	})

	t.Run("full int64 span", func(t *testing.T) {
		s := partition.Segment{Start: math.MinInt64, End: math.MaxInt64, Step: math.MaxInt64}
		require.Equal(t, 3, s.Entries())
	})

	t.Run("invalid", func(t *testing.T) {
		type TC struct {
			name string
			r    partition.Range
			bps  []partition.Breakpoint
		}

		tcs := []TC{
			{
				name: "empty",
				r:    partition.Range{Min: 0, Max: 10},
			},
			{
				name: "inverted",
				r:    partition.Range{Min: 10, Max: 0},
				bps:  []partition.Breakpoint{{Boundary: 10, Step: 1}},
			},
			{
				name: "first not min",
				r:    partition.Range{Min: 0, Max: 10},
				bps:  []partition.Breakpoint{{Boundary: 1, Step: 1}},
			},
			{
				name: "not increasing",
				r:    partition.Range{Min: 0, Max: 10},
				bps: []partition.Breakpoint{
					{Boundary: 0, Step: 1},
					{Boundary: 5, Step: 1},
					{Boundary: 5, Step: 2},
				},
			},
			{
				name: "zero step",
				r:    partition.Range{Min: 0, Max: 10},
				bps:  []partition.Breakpoint{{Boundary: 0, Step: 0}},
			},
			{
				name: "beyond max",
				r:    partition.Range{Min: 0, Max: 10},
				bps: []partition.Breakpoint{
					{Boundary: 0, Step: 1},
					{Boundary: 11, Step: 1},
				},
			},
		}

		for _, tc := range tcs {
			t.Run(tc.name, func(t *testing.T) {
				_, err := partition.Partition("x", tc.r, tc.bps)
				require.True(t, partition.ErrInvalidBreakpoints.Has(err), err)
			})
		}
	})
}

func TestLocate(t *testing.T) {
	d, err := partition.Partition("frequency_hz", partition.Range{Min: 0, Max: 500000}, frequency)
	require.NoError(t, err)

	type TC struct {
		x       int64
		address int
		value   int64
		err     bool
	}

	tcs := []TC{
		{x: 0, address: 0, value: 0},
		{x: 99, address: 0, value: 0},
		{x: 9999, address: 99, value: 9900},
		{x: 10000, address: 100, value: 10000},
		{x: 109999, address: 199, value: 109000},
		{x: 110000, address: 200, value: 110000},
		{x: 500000, address: 239, value: 500000},
		{x: -1, err: true},
		{x: 500001, err: true},
	}

	for _, tc := range tcs {
		address, err := d.Address(tc.x)
		if tc.err {
			require.Error(t, err)
			continue
		}

		require.NoError(t, err)
		require.Equal(t, tc.address, address, tc.x)

		value, err := d.Quantize(tc.x)
		require.NoError(t, err)
		require.Equal(t, tc.value, value, tc.x)
	}
}

func TestPartitionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Int64Range(-1000, 1000).Draw(t, "lo")
		hi := lo + rapid.Int64Range(0, 5000).Draw(t, "span")

		count := rapid.IntRange(1, 6).Draw(t, "count")
		bps := []partition.Breakpoint{{
			Boundary: lo,
			Step:     rapid.Int64Range(1, 50).Draw(t, "step0"),
		}}
		for i := 1; i < count; i++ {
			prev := bps[len(bps)-1].Boundary
			if prev >= hi {
				break
			}

			bps = append(bps, partition.Breakpoint{
				Boundary: rapid.Int64Range(prev+1, hi).Draw(t, "boundary"),
				Step:     rapid.Int64Range(1, 50).Draw(t, "step"),
			})
		}

		d, err := partition.Partition("x", partition.Range{Min: lo, Max: hi}, bps)
		require.NoError(t, err)
		require.NoError(t, d.Validate())

		for i := 1; i < len(d.Segments); i++ {
			require.Greater(t, d.Segments[i].Base, d.Segments[i-1].Base)
		}

		x := rapid.Int64Range(lo, hi).Draw(t, "x")
		s, ok := d.Locate(x)
		require.True(t, ok)
		require.True(t, s.Contains(x))

		address, err := d.Address(x)
		require.NoError(t, err)
		require.GreaterOrEqual(t, address, 0)
		require.Less(t, address, d.Entries())

		q, err := d.Quantize(x)
		require.NoError(t, err)
		require.LessOrEqual(t, q, x)
		require.Less(t, x-q, s.Step)
	})
}
