package coord

import (
	"math"
)

const (
	// Epsilon is the max error when checking containment.
	Epsilon   = 0.001
	epsilonSq = Epsilon * Epsilon
)

// Triangle is a face of a probed surface mesh.
type Triangle struct{ A, B, C Point }

// ContainsXY returns true if the 2D projection of the triangle
// has the point x,y.
func (t Triangle) ContainsXY(x, y float64) bool {
	if !t.inBoundingBox(x, y) {
		return false
	}
	if t.naiveContains(x, y) {
		return true
	}

	// close enough to an edge counts; avoids gaps between
	// neighboring faces from float error
	if segmentDistSq(t.A.X, t.A.Y, t.B.X, t.B.Y, x, y) <= epsilonSq {
		return true
	}
	if segmentDistSq(t.B.X, t.B.Y, t.C.X, t.C.Y, x, y) <= epsilonSq {
		return true
	}
	if segmentDistSq(t.C.X, t.C.Y, t.A.X, t.A.Y, x, y) <= epsilonSq {
		return true
	}

	return false
}

// Z will give the Z-coordinate on the plane defined by the triangle
// where it intersects x,y.
func (t Triangle) Z(x, y float64) float64 {
	ac := t.C.Sub(t.A)
	ab := t.B.Sub(t.A)

	cp := ac.Cross(ab)
	a, b, c := cp.X, cp.Y, cp.Z

	d := cp.Dot(t.C)

	return (d - a*x - b*y) / c
}

// adapted from https://totologic.blogspot.com/2014/01/accurate-point-in-triangle-test.html

func side(x1, y1, x2, y2, x, y float64) float64 {
	return (y2-y1)*(x-x1) + (-x2+x1)*(y-y1)
}

func (t Triangle) naiveContains(x, y float64) bool {
	return side(t.A.X, t.A.Y, t.B.X, t.B.Y, x, y) >= 0 &&
		side(t.B.X, t.B.Y, t.C.X, t.C.Y, x, y) >= 0 &&
		side(t.C.X, t.C.Y, t.A.X, t.A.Y, x, y) >= 0
}

func (t Triangle) inBoundingBox(x, y float64) bool {
	xMin := math.Min(t.A.X, math.Min(t.B.X, t.C.X)) - Epsilon
	xMax := math.Max(t.A.X, math.Max(t.B.X, t.C.X)) + Epsilon
	yMin := math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y)) - Epsilon
	yMax := math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y)) + Epsilon

	return x >= xMin && x <= xMax && y >= yMin && y <= yMax
}

func segmentDistSq(x1, y1, x2, y2, x, y float64) float64 {
	segLenSq := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)
	dot := ((x-x1)*(x2-x1) + (y-y1)*(y2-y1)) / segLenSq
	if dot < 0 {
		return (x-x1)*(x-x1) + (y-y1)*(y-y1)
	}
	if dot <= 1 {
		lenSq := (x1-x)*(x1-x) + (y1-y)*(y1-y)
		return lenSq - dot*dot*segLenSq
	}

	return (x-x2)*(x-x2) + (y-y2)*(y-y2)
}
