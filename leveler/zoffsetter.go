// Package leveler applies a bed correction to a streamed gcode program.
package leveler

// A ZOffsetter reports the Z offset of the bed surface at x,y, or
// false if the position is outside the calibrated region.
type ZOffsetter interface {
	OffsetZ(x, y float64) (bool, float64)
}

type dummyOffsetter struct{}

func (dummyOffsetter) OffsetZ(x, y float64) (bool, float64) {
	return false, 0
}
