package level

// Point is a position (or displacement) in motor-step units.
type Point struct{ X, Y, Z int32 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// crossScale keeps the stored normal in the magnitude range the plane
// constant and skew division were tuned for. It quantizes the normal;
// sign and zero detection are unaffected.
const crossScale = 512

// Cross computes the scaled cross product of two displacement vectors.
//
// Products are taken in 64-bit, then each component is divided by 512
// before narrowing. The result is the (quantized) normal of the plane
// the two vectors span.
func Cross(v1, v2 Point) Point {
	return Point{
		X: int32((int64(v1.Y)*int64(v2.Z) - int64(v1.Z)*int64(v2.Y)) / crossScale),
		Y: int32((int64(v1.Z)*int64(v2.X) - int64(v1.X)*int64(v2.Z)) / crossScale),
		Z: int32((int64(v1.X)*int64(v2.Y) - int64(v1.Y)*int64(v2.X)) / crossScale),
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
