// Package fixed implements Q16.16 fixed-point arithmetic for the tilt
// transform's precomputed coefficients.
package fixed

// Q16 is a signed Q16.16 fixed-point number: 16 integer bits, 16
// fractional bits, stored in an int32.
type Q16 int32

// One is the Q16 representation of 1.
const One Q16 = 1 << shift

const shift = 16

// FromInt converts an integer to Q16. Values outside ±32767 wrap.
func FromInt(i int32) Q16 { return Q16(i << shift) }

// FromFloat converts a float to the nearest representable Q16.
func FromFloat(f float64) Q16 {
	if f < 0 {
		return Q16(f*float64(One) - 0.5)
	}
	return Q16(f*float64(One) + 0.5)
}

// Float converts q to a float64.
func (q Q16) Float() float64 { return float64(q) / float64(One) }

// Mul multiplies two Q16 values with a 64-bit intermediate.
func (q Q16) Mul(b Q16) Q16 { return Q16(int64(q) * int64(b) >> shift) }

// Round converts q to the nearest integer, ties away from zero.
func (q Q16) Round() int32 {
	if q < 0 {
		return -int32((-q + One/2) >> shift)
	}
	return int32((q + One/2) >> shift)
}

// Trunc converts q to an integer, discarding the fraction.
func (q Q16) Trunc() int32 {
	if q < 0 {
		return -int32(-q >> shift)
	}
	return int32(q >> shift)
}
