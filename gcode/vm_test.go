package gcode

import (
	"testing"

	"github.com/mastercactapus/alevel/coord"
	"github.com/stretchr/testify/assert"
)

func TestVM_Run(t *testing.T) {
	vm := NewVM()
	vm.SetMPos(coord.Point{X: 10, Y: 10, Z: 5})
	vm.SetWCO(coord.Point{X: 10, Y: 10})

	assert.Equal(t, coord.Point{Z: 5}, vm.WPos())

	// absolute moves are in work coordinates
	err := vm.Run(MustParse("G90 G0 X5 Y5")[0])
	assert.NoError(t, err)
	assert.Equal(t, coord.Point{X: 15, Y: 15, Z: 5}, vm.MPos())

	err = vm.Run(MustParse("G91 G0 Z-2")[0])
	assert.NoError(t, err)
	assert.Equal(t, coord.Point{X: 15, Y: 15, Z: 3}, vm.MPos())

	// G53 addresses the machine frame even in relative mode
	err = vm.Run(MustParse("G53 G0 Z1")[0])
	assert.NoError(t, err)
	assert.Equal(t, coord.Point{X: 15, Y: 15, Z: 1}, vm.MPos())
	assert.True(t, vm.RelativeMotion())
}

func TestVM_Run_Inches(t *testing.T) {
	vm := NewVM()

	err := vm.Run(MustParse("G20 G90 G0 X1")[0])
	assert.NoError(t, err)
	assert.Equal(t, coord.Point{X: 25.4}, vm.MPos())
}

func TestVM_Run_Unsupported(t *testing.T) {
	vm := NewVM()

	err := vm.Run(MustParse("G2 X1 Y1 I0.5 J0.5")[0])
	assert.Error(t, err)
}
