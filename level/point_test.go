package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCross(t *testing.T) {
	v1 := Point{X: 1000, Y: 0, Z: 50}
	v2 := Point{X: 0, Y: 1000, Z: 30}

	// raw product (-50000, -30000, 1000000), scaled down by 512
	assert.Equal(t, Point{X: -97, Y: -58, Z: 1953}, Cross(v1, v2))
}

func TestCross_Zero(t *testing.T) {
	// parallel vectors span no plane
	v := Point{X: 3, Y: 5, Z: 7}
	assert.Equal(t, Point{}, Cross(v, v))
	assert.Equal(t, Point{}, Cross(v, Point{}))
}

func TestCross_Overflow(t *testing.T) {
	// products of full-travel step counts must not wrap
	v1 := Point{X: 200000, Y: 0, Z: 100}
	v2 := Point{X: 0, Y: 200000, Z: 100}

	n := Cross(v1, v2)
	assert.True(t, n.Z > 0)
	assert.Equal(t, int32(200000*200000/512), n.Z)
}
