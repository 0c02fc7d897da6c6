package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testCal struct {
	comp   [3]int32
	offset [2]int32
}

func (c testCal) ProbeCalibration() ([3]int32, [2]int32) { return c.comp, c.offset }

var (
	probe1 = Point{X: 0, Y: 0, Z: 0}
	probe2 = Point{X: 1000, Y: 0, Z: 50}
	probe3 = Point{X: 0, Y: 1000, Z: 30}
)

func TestSkew_Init(t *testing.T) {
	s := NewSkew(nil)

	assert.True(t, s.Init(100, 0, probe1, probe2, probe3))
	assert.True(t, s.Active())
	assert.Equal(t, Status(50), s.Status())

	// interpolated plane height between the two probed slopes
	z := s.Skew(Point{X: 500, Y: 500})
	assert.True(t, z >= 30 && z <= 50, "got %d", z)
}

func TestSkew_ReproducesProbes(t *testing.T) {
	s := NewSkew(nil)
	assert.True(t, s.Init(100, 0, probe1, probe2, probe3))

	// the fitted plane passes through all three probe points,
	// up to integer-division truncation
	assert.InDelta(t, probe1.Z, s.Skew(probe1), 1)
	assert.InDelta(t, probe2.Z, s.Skew(probe2), 1)
	assert.InDelta(t, probe3.Z, s.Skew(probe3), 1)
}

func TestSkew_BadLevel(t *testing.T) {
	s := NewSkew(nil)

	assert.False(t, s.Init(49, 0, probe1, probe2, probe3))
	assert.False(t, s.Active())
	assert.Equal(t, BadLevel, s.Status())

	// raising the tolerance past the spread flips the result
	assert.True(t, s.Init(50, 0, probe1, probe2, probe3))
	assert.Equal(t, Status(50), s.Status())
}

func TestSkew_Colinear(t *testing.T) {
	s := NewSkew(nil)

	// identical points
	assert.False(t, s.Init(100, 0, Point{}, Point{}, Point{}))
	assert.Equal(t, Colinear, s.Status())
	assert.False(t, s.Active())

	// identical X,Y with varying Z
	assert.False(t, s.Init(100, 0, Point{}, Point{Z: 10}, Point{Z: 20}))
	assert.Equal(t, Colinear, s.Status())
}

func TestSkew_VerticalPlane(t *testing.T) {
	s := NewSkew(nil)

	// all probes on the Y=0 line: the fit is a vertical plane,
	// rejected as bad-level rather than colinear
	assert.False(t, s.Init(100, 0,
		Point{X: 0, Y: 0, Z: 0},
		Point{X: 1000, Y: 0, Z: 10},
		Point{X: 2000, Y: 0, Z: 5},
	))
	assert.Equal(t, BadLevel, s.Status())
}

func TestSkew_Deinit(t *testing.T) {
	s := NewSkew(nil)
	assert.True(t, s.Init(100, 0, probe1, probe2, probe3))

	s.Deinit()
	assert.False(t, s.Active())
	assert.Equal(t, NotActive, s.Status())

	// idempotent, and identical to the initial state
	once := *s
	s.Deinit()
	assert.Equal(t, once, *s)
	assert.Equal(t, *NewSkew(nil), *s)
}

func TestSkew_Update(t *testing.T) {
	s := NewSkew(nil)
	assert.True(t, s.Init(100, 0, probe1, probe2, probe3))

	before := s.Skew(Point{X: 500, Y: 500})

	// translate the origin; the same physical location must get the
	// same correction
	s.Update(Point{X: 100, Y: 0, Z: 0})
	assert.Equal(t, before, s.Skew(Point{X: 600, Y: 500}))
}

func TestSkew_ProbeComp(t *testing.T) {
	s := NewSkew(testCal{comp: [3]int32{0, 20, 0}})
	assert.True(t, s.Init(100, 0, probe1, probe2, probe3))

	// probe 2's Z reads 50 but its compensation adds 20
	assert.InDelta(t, 70, s.Skew(probe2), 1)
}

func TestSkew_ProbeOffset(t *testing.T) {
	s := NewSkew(testCal{offset: [2]int32{100, 0}})
	assert.True(t, s.Init(100, 0, probe1, probe2, probe3))

	// reference point shifts +100 in X, so the plane constant moves
	// by the slope over that distance
	assert.InDelta(t, -5, s.Skew(Point{}), 1)
}

func TestSkew_ZOffset(t *testing.T) {
	s := NewSkew(nil)
	assert.True(t, s.Init(100, 10, probe1, probe2, probe3))

	// probe tip is 10 steps below the tool tip
	assert.Equal(t, int32(-10), s.Skew(Point{}))
}

func TestFixedOffset(t *testing.T) {
	cal := FixedOffset{
		Calibration: testCal{offset: [2]int32{999, 999}},
		OffsetMM:    27,
		MMToSteps:   func(mm float64) int32 { return int32(mm * 100) },
	}

	_, offset := cal.ProbeCalibration()
	assert.Equal(t, [2]int32{-2700, 0}, offset)
}
