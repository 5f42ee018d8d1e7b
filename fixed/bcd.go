package fixed

import (
	"slices"
	"strings"
)

// MaxDigits is the widest BCD value that packs into a uint64 word.
const MaxDigits = 16

// BCD is a fixed width binary coded decimal number.
type BCD struct {
	// Digits holds values 0-9, most significant first.
	Digits []uint8
}

// EncodeBCD converts value into exactly digits decimal digits. It fails with
// ErrOutOfRange when value needs more digits than requested; the value is
// never truncated.
func EncodeBCD(value uint64, digits uint8) (b BCD, err error) {
	if digits == 0 || digits > MaxDigits {
		return b, Error.New("invalid digit count: %d", digits)
	}

	b.Digits = make([]uint8, digits)

	// Least significant digit first, written from the back so the stored
	// order is most significant first.
	v := value
	for i := int(digits) - 1; i >= 0; i-- {
		b.Digits[i] = uint8(v % 10)
		v /= 10
	}

	if v != 0 {
		return BCD{}, ErrOutOfRange.New(
			"%d needs more than %d digits",
			value,
			digits,
		)
	}

	return b, nil
}

// MustEncodeBCD is like EncodeBCD but panics on error.
func MustEncodeBCD(value uint64, digits uint8) BCD {
	b, err := EncodeBCD(value, digits)
	if err != nil {
		panic(err)
	}

	return b
}

// ParseWord unpacks a word of digits nibbles. Nibbles above 9 are rejected.
func ParseWord(word uint64, digits uint8) (b BCD, err error) {
	if digits == 0 || digits > MaxDigits {
		return b, Error.New("invalid digit count: %d", digits)
	}

	if digits < MaxDigits && word>>(4*uint(digits)) != 0 {
		return b, ErrOutOfRange.New(
			"word %#x wider than %d digits",
			word,
			digits,
		)
	}

	b.Digits = make([]uint8, digits)
	for i := int(digits) - 1; i >= 0; i-- {
		n := uint8(word & 0xF)
		if n > 9 {
			return BCD{}, Error.New("invalid nibble %#x in word %#x", n, word)
		}

		b.Digits[i] = n
		word >>= 4
	}

	return b, nil
}

// Len returns the digit count.
func (b BCD) Len() int {
	return len(b.Digits)
}

// Value decodes the digits back into an integer.
func (b BCD) Value() (v uint64) {
	for _, d := range b.Digits {
		v = v*10 + uint64(d)
	}

	return v
}

// Word packs the digits into nibbles with the most significant digit in the
// highest nibble.
func (b BCD) Word() (w uint64) {
	for _, d := range b.Digits {
		w = w<<4 | uint64(d)
	}

	return w
}

// Bits returns the encoded width.
func (b BCD) Bits() int {
	return 4 * len(b.Digits)
}

// Equal reports whether both values have the same width and digits.
func (b BCD) Equal(o BCD) bool {
	return slices.Equal(b.Digits, o.Digits)
}

// String returns the digits with leading zeros.
func (b BCD) String() string {
	var sb strings.Builder

	sb.Grow(len(b.Digits))
	for _, d := range b.Digits {
		sb.WriteByte('0' + d)
	}

	return sb.String()
}

// Format renders the digits with an implied decimal point places digits from
// the right, the way the display shows them (e.g. 3145 with 3 places is
// "3.145").
func (b BCD) Format(places uint8) string {
	s := b.String()
	if places == 0 {
		return s
	}

	p := int(places)
	if p >= len(s) {
		return "0." + strings.Repeat("0", p-len(s)) + s
	}

	return s[:len(s)-p] + "." + s[len(s)-p:]
}
