// Package telemetry decodes CORDIC result lines from a byte stream.
//
// Line Grammar
//
// A frame is recognised anywhere in a line. Other log text may surround it
// and lines without a frame are skipped.
//
//  line   := any* marker tag ws+ field1 (ws+ field2)? any*
//  marker := "CORDIC:"
//  tag    := D | S | H | E | L | A   (any other capital: Unknown, no results)
//  field1 := "R1:" sign hex{8}
//  field2 := "R2:" sign hex{8}       (required for S and H)
//  sign   := "+" | "-"
//
// Lines end at "\n" and a trailing "\r" is trimmed.
//
// Results
//
// Each field is a sign character and an eight hex digit magnitude with 16
// fractional bits:
//
//  +00008000 =  32768 / 65536 =  0.5
//  -00008000 = -32768 / 65536 = -0.5
//
// Validation
//
//  | Mode      | R1         | R2      | Identity        |
//  |-----------|------------|---------|-----------------|
//  | Disabled  |            |         |                 |
//  | SinCos    | sin        | cos     | sin²+cos² = 1   |
//  | SinhCosh  | sinh       | cosh    | cosh²-sinh² = 1 |
//  | Exp       | e^x        |         |                 |
//  | Ln        | ln(x)      |         |                 |
//  | Arctanh   | arctanh(x) |         |                 |
//  |-----------|------------|---------|-----------------|
//
// A frame outside tolerance is flagged, never dropped.
package telemetry
