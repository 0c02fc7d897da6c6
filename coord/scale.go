package coord

import (
	"math"

	"github.com/mastercactapus/alevel/level"
)

// Scale converts machine coordinates to the motor-step space the
// leveling core works in. Values are steps per mm, per axis.
type Scale struct{ X, Y, Z float64 }

// Steps converts p to step units, rounding to the nearest step.
func (s Scale) Steps(p Point) level.Point {
	return level.Point{
		X: int32(math.Round(p.X * s.X)),
		Y: int32(math.Round(p.Y * s.Y)),
		Z: int32(math.Round(p.Z * s.Z)),
	}
}

// MM converts a step-space point back to machine coordinates.
func (s Scale) MM(p level.Point) Point {
	return Point{
		X: float64(p.X) / s.X,
		Y: float64(p.Y) / s.Y,
		Z: float64(p.Z) / s.Z,
	}
}

// StepsX converts an X-axis distance in mm to steps.
func (s Scale) StepsX(mm float64) int32 { return int32(math.Round(mm * s.X)) }

// StepsZ converts a Z-axis distance in mm to steps.
func (s Scale) StepsZ(mm float64) int32 { return int32(math.Round(mm * s.Z)) }

// MMZ converts a Z-axis step count to mm.
func (s Scale) MMZ(steps int32) float64 { return float64(steps) / s.Z }
