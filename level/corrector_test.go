package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	var c Corrector = Identity{}
	assert.True(t, c.Init(probe1, probe2, probe3))

	p := Point{X: 1, Y: 2, Z: 3}
	assert.Equal(t, p, c.Transform(p))
	assert.Equal(t, NotActive, c.Status())
}

func TestSkewCorrector(t *testing.T) {
	c := NewSkewCorrector(nil, 100, 0)

	// identity until calibrated
	p := Point{X: 500, Y: 500, Z: 0}
	assert.Equal(t, p, c.Transform(p))

	assert.True(t, c.Init(probe1, probe2, probe3))
	assert.Equal(t, Status(50), c.Status())

	tp := c.Transform(p)
	assert.Equal(t, p.X, tp.X)
	assert.Equal(t, p.Y, tp.Y)
	assert.True(t, tp.Z >= 30 && tp.Z <= 50, "got %d", tp.Z)
}

func TestSkewCorrector_BadLevel(t *testing.T) {
	c := NewSkewCorrector(nil, 10, 0)

	assert.False(t, c.Init(probe1, probe2, probe3))
	assert.Equal(t, BadLevel, c.Status())

	p := Point{X: 500, Y: 500, Z: 7}
	assert.Equal(t, p, c.Transform(p))
}

func TestTiltCorrector(t *testing.T) {
	c := NewTiltCorrector(100)
	assert.Equal(t, NotActive, c.Status())

	p := Point{X: 500, Y: 500, Z: 0}
	assert.Equal(t, p, c.Transform(p))

	assert.True(t, c.Init(probe1, probe2, probe3))
	assert.Equal(t, Status(50), c.Status())

	rt := c.Inverse(c.Transform(p))
	assert.InDelta(t, p.X, rt.X, 1)
	assert.InDelta(t, p.Y, rt.Y, 1)
	assert.InDelta(t, p.Z, rt.Z, 1)
}

func TestTiltCorrector_Reject(t *testing.T) {
	c := NewTiltCorrector(10)
	assert.False(t, c.Init(probe1, probe2, probe3))
	assert.Equal(t, BadLevel, c.Status())

	c = NewTiltCorrector(100)
	assert.False(t, c.Init(Point{}, Point{Z: 5}, Point{Z: 9}))
	assert.Equal(t, Colinear, c.Status())
}
