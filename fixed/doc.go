// Package fixed converts between binary fixed-point numbers and decimal digit
// sequences.
//
// Fixed Point
//
// A fixed-point number is an integer interpreted with an implied binary
// point:
//
//  number = raw / 2^frac
//
// The Format type describes the split. Width is the total number of bits
// (sign included) and Frac is the number of bits to the right of the binary
// point. Raw values narrower than 32 bits are sign extended from bit Width-1
// before scaling. For example, the Q16.16 format used by the CORDIC telemetry:
//
//  | 31 | 30 ... 16 | 15 ... 0 |
//  |----|-----------|----------|
//  | s  | integer   | fraction |
//  |----|-----------|----------|
//
//  0x00008000 = 32768 / 65536 = 0.5
//  0xFFFF8000 = -32768 / 65536 = -0.5
//
// BCD
//
// A BCD value stores one decimal digit per nibble. Digits are extracted
// least significant first (repeated mod 10 / div 10) and stored most
// significant first, so that the packed word reads like the decimal number
// when printed in hex:
//
//  3145 (4 digits) = 0x3145
//
//  | 15 .. 12 | 11 .. 8 | 7 .. 4 | 3 .. 0 |
//  |----------|---------|--------|--------|
//  |    3     |    1    |   4    |   5    |
//  |----------|---------|--------|--------|
//
// Encoding never truncates. A value that needs more digits than requested is
// an ErrOutOfRange error and clamping is the caller's responsibility.
//
// Sign Magnitude
//
// Telemetry fields carry an explicit sign character followed by eight hex
// digits of magnitude (e.g. "-00008000"). The hex digits are never
// reinterpreted as two's complement; SignMagnitude keeps the two parts apart
// and Int joins them.
package fixed
