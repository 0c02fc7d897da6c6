package grbl

import (
	"testing"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/machine"
	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	stat, err := parseStatus(machine.State{}, "<Idle|MPos:10.000,-5.500,2.000|WCO:1.000,2.000,0.000>")
	assert.NoError(t, err)
	assert.Equal(t, "Idle", stat.Status)
	assert.Equal(t, coord.Point{X: 10, Y: -5.5, Z: 2}, stat.MPos)
	assert.Equal(t, coord.Point{X: 1, Y: 2}, stat.WCO)

	// WCO is only reported intermittently; it carries over
	stat, err = parseStatus(*stat, "<Run|MPos:11.000,-5.500,2.000|FS:500,0>")
	assert.NoError(t, err)
	assert.Equal(t, "Run", stat.Status)
	assert.Equal(t, coord.Point{X: 11, Y: -5.5, Z: 2}, stat.MPos)
	assert.Equal(t, coord.Point{X: 1, Y: 2}, stat.WCO)
}

func TestParseProbe(t *testing.T) {
	prb, err := parseProbe("[PRB:1.000,2.000,-3.250:1]")
	assert.NoError(t, err)
	assert.True(t, prb.Valid)
	assert.Equal(t, coord.Point{X: 1, Y: 2, Z: -3.25}, prb.Point)

	prb, err = parseProbe("[PRB:0.000,0.000,0.000:0]")
	assert.NoError(t, err)
	assert.False(t, prb.Valid)

	_, err = parseProbe("[GC:G0 G54]")
	assert.Error(t, err)
}
