package gcode

import (
	"strconv"
	"strings"
)

// A Word is a single letter/number pair within a block, e.g. `G0` or
// `X1.5`.
type Word struct {
	W   byte
	Arg float64
}

// IsAxis reports whether the word addresses a linear axis.
func (w Word) IsAxis() bool {
	return w.W == 'X' || w.W == 'Y' || w.W == 'Z'
}

// IsValid reports whether the letter is in the gcode alphabet.
func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

// trimFloat formats to at most 3 decimal places, dropping trailing
// zeros so output stays compact on the wire.
func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	return string(w.W) + trimFloat(w.Arg)
}
