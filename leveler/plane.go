package leveler

import (
	"errors"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/level"
)

// Plane is a ZOffsetter backed by a three-point plane correction.
//
// Probe positions and offsets are in mm; the correction itself runs in
// step space through the given scale. Unlike a Mesh it covers the
// whole bed, extrapolating beyond the probed triangle.
type Plane struct {
	c     level.Corrector
	scale coord.Scale
}

// NewPlane calibrates c from three probed points and wraps it as a
// ZOffsetter.
func NewPlane(c level.Corrector, scale coord.Scale, points []coord.Point) (*Plane, error) {
	if len(points) != 3 {
		return nil, errors.New("plane leveling requires exactly 3 points")
	}

	if !c.Init(scale.Steps(points[0]), scale.Steps(points[1]), scale.Steps(points[2])) {
		return nil, errors.New("plane leveling failed: " + c.Status().String())
	}
	return &Plane{c: c, scale: scale}, nil
}

// Status reports the corrector's calibration state.
func (p *Plane) Status() level.Status { return p.c.Status() }

func (p *Plane) OffsetZ(x, y float64) (bool, float64) {
	sp := p.scale.Steps(coord.Point{X: x, Y: y})

	// the rotational strategy's forward transform runs nominal-to-bed,
	// so the bed height at a nominal x,y comes from the inverse
	if inv, ok := p.c.(level.InverseCorrector); ok {
		sp = inv.Inverse(sp)
	} else {
		sp = p.c.Transform(sp)
	}
	return true, p.scale.MMZ(sp.Z)
}
