package coord

import (
	"testing"

	"github.com/mastercactapus/alevel/level"
	"github.com/stretchr/testify/assert"
)

func TestScale_Steps(t *testing.T) {
	s := Scale{X: 80, Y: 80, Z: 400}

	p := s.Steps(Point{X: 10, Y: -2.5, Z: 0.1})
	assert.Equal(t, level.Point{X: 800, Y: -200, Z: 40}, p)

	assert.Equal(t, Point{X: 10, Y: -2.5, Z: 0.1}, s.MM(p))
}

func TestScale_Z(t *testing.T) {
	s := Scale{X: 80, Y: 80, Z: 400}

	assert.Equal(t, int32(200), s.StepsZ(0.5))
	assert.Equal(t, 0.5, s.MMZ(200))
	assert.Equal(t, int32(2160), s.StepsX(27))
}
