package table

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/calebcase/oops"

	"github.com/calebcase/bcdlut/partition"
)

// Encoder writes a table in one output format.
type Encoder interface {
	Encode(t *Table) (err error)
}

// NewVerilogEncoder returns an encoder that writes the address computation
// and a ROM initialisation block for use in a Verilog module. The ROM is
// named <name>_rom, its address <name>_addr and its input <name>_in.
func NewVerilogEncoder(w io.Writer, name string) Encoder {
	return &verilogEncoder{
		w:    w,
		name: name,
	}
}

// NewMemhEncoder returns an encoder that writes one hex word per line, as
// read by $readmemh.
func NewMemhEncoder(w io.Writer) Encoder {
	return &memhEncoder{
		w: w,
	}
}

// NewBinaryEncoder returns an encoder that writes each word big-endian in
// the fewest whole bytes that hold it.
func NewBinaryEncoder(w io.Writer) Encoder {
	return &binaryEncoder{
		w: w,
	}
}

type verilogEncoder struct {
	w    io.Writer
	name string
}

func (e *verilogEncoder) Encode(t *Table) (err error) {
	bw := bufio.NewWriter(e.w)

	d := t.Domain
	wordBits := t.WordBits()
	addrBits := t.AddressBits()

	fmt.Fprintf(bw, "// %s BCD ROM (%d entries x %d bits, %d used)\n", d.Unit, t.Capacity, wordBits, t.Used)
	fmt.Fprintf(bw, "// display %s\n", t.Pattern())
	for _, s := range d.Segments {
		fmt.Fprintf(
			bw,
			"//   %d-%d: [%d, %d) step %d\n",
			s.Base,
			s.Base+s.Entries()-1,
			s.Start,
			s.End,
			s.Step,
		)
	}
	fmt.Fprintf(bw, "\n")

	e.address(bw, t, addrBits)

	rom := e.name + "_rom"
	width := len(fmt.Sprint(t.Capacity - 1))

	fmt.Fprintf(bw, "reg [%d:0] %s [0:%d];\n", wordBits-1, rom, t.Capacity-1)
	fmt.Fprintf(bw, "initial begin\n")

	for i := 0; i < t.Capacity; i += 4 {
		var parts []string
		for j := i; j < i+4 && j < t.Capacity; j++ {
			parts = append(parts, fmt.Sprintf(
				"%s[%*d] = %d'h%0*x;",
				rom,
				width,
				j,
				wordBits,
				int(t.Digits),
				t.Entries[j].Word(),
			))
		}

		fmt.Fprintf(bw, "    %s\n", strings.Join(parts, " "))
	}

	fmt.Fprintf(bw, "end\n")

	err = bw.Flush()
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}

// address writes one offset and one quotient wire per segment, then the
// segment multiplexer. Every literal and intermediate is sized: the product
// wire is as wide as the largest product over the segment, so the shifted
// result equals the Mapper's quotient that Verify checked.
func (e *verilogEncoder) address(w io.Writer, t *Table, addrBits int) {
	in := e.name + "_in"
	addr := e.name + "_addr"
	segs := t.Domain.Segments
	inBits := max(bits.Len64(uint64(t.Domain.Range.Max)), 1)

	start := func(s partition.Segment) string {
		return fmt.Sprintf("%d'd%d", inBits, s.Start)
	}

	for i, div := range t.Mapper.Divisors {
		s := segs[i]
		off := fmt.Sprintf("%s_off%d", e.name, i)
		q := fmt.Sprintf("%s_q%d", e.name, i)

		offBits := max(bits.Len64(uint64(s.Span())), 1)
		prodBits := max(div.ProductBits(), offBits)

		fmt.Fprintf(
			w,
			"// segment %d: offset / %d = %s (max relative error %g)\n",
			i,
			div.Divisor,
			strings.Replace(div.String(), "x", "offset", 1),
			div.MaxRelativeError,
		)

		if s.Start == 0 {
			fmt.Fprintf(w, "wire [%d:0] %s = %s;\n", offBits-1, off, in)
		} else {
			fmt.Fprintf(w, "wire [%d:0] %s = %s - %s;\n", offBits-1, off, in, start(s))
		}

		operand := off
		if prodBits > offBits {
			operand = fmt.Sprintf("{%d'd0, %s}", prodBits-offBits, off)
		}

		if div.Multiplier == 1 {
			fmt.Fprintf(w, "wire [%d:0] %s = %s >> %d;\n", prodBits-1, q, operand, div.Shift)
		} else {
			fmt.Fprintf(
				w,
				"wire [%d:0] %s = (%s * %d'd%d) >> %d;\n",
				prodBits-1,
				q,
				operand,
				prodBits,
				div.Multiplier,
				div.Shift,
			)
		}
	}

	fmt.Fprintf(w, "wire [%d:0] %s;\n", addrBits-1, addr)
	fmt.Fprintf(w, "assign %s =", addr)
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		arm := fmt.Sprintf("%d'd%d + %s_q%d", addrBits, s.Base, e.name, i)

		switch {
		case i == 0:
			fmt.Fprintf(w, "\n    %s;\n\n", arm)
		default:
			fmt.Fprintf(w, "\n    (%s >= %s) ? %s :", in, start(s), arm)
		}
	}
}

type memhEncoder struct {
	w io.Writer
}

func (e *memhEncoder) Encode(t *Table) (err error) {
	bw := bufio.NewWriter(e.w)

	for _, entry := range t.Entries {
		fmt.Fprintf(bw, "%0*x\n", int(t.Digits), entry.Word())
	}

	err = bw.Flush()
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}

type binaryEncoder struct {
	w io.Writer
}

func (e *binaryEncoder) Encode(t *Table) (err error) {
	size := (t.WordBits() + 7) / 8
	buf := make([]byte, 0, size*len(t.Entries))

	for _, entry := range t.Entries {
		w := entry.Word()
		for i := size - 1; i >= 0; i-- {
			buf = append(buf, byte(w>>(8*uint(i))))
		}
	}

	_, err = e.w.Write(buf)
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}
