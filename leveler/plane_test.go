package leveler

import (
	"testing"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/level"
	"github.com/stretchr/testify/assert"
)

var planeScale = coord.Scale{X: 80, Y: 80, Z: 400}

var planeProbes = []coord.Point{
	{X: 0, Y: 0, Z: 0},
	{X: 100, Y: 0, Z: 0.5},
	{X: 0, Y: 100, Z: 0.3},
}

func TestNewPlane(t *testing.T) {
	p, err := NewPlane(level.NewSkewCorrector(nil, 400, 0), planeScale, planeProbes)
	assert.NoError(t, err)
	assert.True(t, p.Status().Active())

	ok, z := p.OffsetZ(50, 50)
	assert.True(t, ok)
	assert.InDelta(t, 0.4, z, 0.01)

	// planes extrapolate past the probed triangle
	ok, z = p.OffsetZ(200, 0)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, z, 0.01)
}

func TestNewPlane_Tilt(t *testing.T) {
	p, err := NewPlane(level.NewTiltCorrector(400), planeScale, planeProbes)
	assert.NoError(t, err)

	ok, z := p.OffsetZ(50, 50)
	assert.True(t, ok)
	assert.InDelta(t, 0.4, z, 0.02)
}

func TestNewPlane_Errors(t *testing.T) {
	_, err := NewPlane(level.NewSkewCorrector(nil, 400, 0), planeScale, planeProbes[:2])
	assert.Error(t, err)

	// probes too far out of level
	_, err = NewPlane(level.NewSkewCorrector(nil, 100, 0), planeScale, planeProbes)
	assert.Error(t, err)

	// colinear probes span no plane
	_, err = NewPlane(level.NewTiltCorrector(400), planeScale, []coord.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0.1},
		{X: 0, Y: 0, Z: 0.2},
	})
	assert.Error(t, err)
}
