package fixed

import (
	"fmt"
	"math"
	"strconv"
)

// SignMagnitude is a signed number carried as a sign flag and an unsigned
// magnitude.
type SignMagnitude struct {
	Negative  bool
	Magnitude uint32
}

// Int joins sign and magnitude.
func (s SignMagnitude) Int() int64 {
	if s.Negative {
		return -int64(s.Magnitude)
	}

	return int64(s.Magnitude)
}

// Float scales the value by 2^-frac.
func (s SignMagnitude) Float(frac uint8) float64 {
	return math.Ldexp(float64(s.Int()), -int(frac))
}

// Fixed returns the value as a 32 bit two's complement number.
func (s SignMagnitude) Fixed() (int32, error) {
	v := s.Int()
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrOutOfRange.New("%d does not fit 32 bits", v)
	}

	return int32(v), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SignMagnitude) MarshalText() (text []byte, err error) {
	sign := byte('+')
	if s.Negative {
		sign = '-'
	}

	return []byte(fmt.Sprintf("%c%08X", sign, s.Magnitude)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be a sign
// character followed by exactly eight hex digits.
func (s *SignMagnitude) UnmarshalText(text []byte) (err error) {
	if len(text) != 9 {
		return Error.New("invalid sign magnitude %q: length=%d", text, len(text))
	}

	var negative bool

	switch text[0] {
	case '+':
	case '-':
		negative = true
	default:
		return Error.New("invalid sign magnitude %q: sign=%q", text, text[0])
	}

	m, err := strconv.ParseUint(string(text[1:]), 16, 32)
	if err != nil {
		return Error.Wrap(err)
	}

	s.Negative = negative
	s.Magnitude = uint32(m)

	return nil
}
