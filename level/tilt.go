package level

import (
	"math"

	"github.com/mastercactapus/alevel/fixed"
)

// Tilt derives the full rotational correction from three probe points.
//
// Where Skew shears Z only, Tilt rotates coordinate space so a plane
// parallel to Z=0 maps exactly onto the probed plane: rotate about Y by
// -Ay, then about X by Ax, with
//
//	Ax = atan2(Ny, Nz)
//	Ay = atan2(Nx, Nz)
//
// for the upward plane normal N. The sines and cosines of both angles
// and their pairwise products are computed once per calibration and
// stored fixed-point, so the per-point transforms are pure
// multiply-accumulate chains.
type Tilt struct {
	cosX, cosY fixed.Q16
	sinX, sinY fixed.Q16

	cosXcosY fixed.Q16
	cosXsinY fixed.Q16
	sinXsinY fixed.Q16
	sinXcosY fixed.Q16

	ready bool
}

// NewTilt returns a Tilt with the identity rotation.
func NewTilt() *Tilt {
	t := &Tilt{}
	t.setAngles(0, 0)
	return t
}

func (t *Tilt) setAngles(ax, ay float64) {
	t.cosX = fixed.FromFloat(math.Cos(ax))
	t.cosY = fixed.FromFloat(math.Cos(ay))
	t.sinX = fixed.FromFloat(math.Sin(ax))
	t.sinY = fixed.FromFloat(math.Sin(ay))
	t.cosXcosY = t.cosX.Mul(t.cosY)
	t.cosXsinY = t.cosX.Mul(t.sinY)
	t.sinXsinY = t.sinX.Mul(t.sinY)
	t.sinXcosY = t.sinX.Mul(t.cosY)
}

// Init computes the rotation coefficients from three probe points.
// It fails if the points do not define a plane with a Z-facing normal.
func (t *Tilt) Init(p1, p2, p3 Point) bool {
	n := Cross(p2.Sub(p1), p3.Sub(p1))
	if n.Z == 0 {
		return false
	}
	if n.Z < 0 {
		n.X, n.Y, n.Z = -n.X, -n.Y, -n.Z
	}

	nz := float64(n.Z)
	t.setAngles(math.Atan2(float64(n.Y), nz), math.Atan2(float64(n.X), nz))

	t.ready = true
	return true
}

// Ready reports whether Init has succeeded at least once.
func (t *Tilt) Ready() bool { return t.ready }

// Tilt rotates p from a plane parallel to Z=0 into the probed plane.
// The input is not mutated.
func (t *Tilt) Tilt(p Point) Point {
	px := fixed.FromInt(p.X)
	py := fixed.FromInt(p.Y)
	pz := fixed.FromInt(p.Z)

	return Point{
		X: (px.Mul(t.cosY) - pz.Mul(t.sinY)).Round(),
		Y: (py.Mul(t.cosX) - px.Mul(t.sinXsinY) - pz.Mul(t.sinXcosY)).Round(),
		Z: (px.Mul(t.cosXsinY) + py.Mul(t.sinX) + pz.Mul(t.cosXcosY)).Round(),
	}
}

// Inverse applies the reverse rotation: about X by -Ax, then about Y
// by Ay. Round trip with Tilt is exact up to fixed-point rounding.
func (t *Tilt) Inverse(p Point) Point {
	px := fixed.FromInt(p.X)
	py := fixed.FromInt(p.Y)
	pz := fixed.FromInt(p.Z)

	return Point{
		X: (px.Mul(t.cosY) - py.Mul(t.sinXsinY) + pz.Mul(t.cosXsinY)).Round(),
		Y: (py.Mul(t.cosX) + pz.Mul(t.sinX)).Round(),
		Z: (pz.Mul(t.cosXcosY) - px.Mul(t.sinY) - py.Mul(t.sinXcosY)).Round(),
	}
}
