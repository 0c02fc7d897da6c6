package eeprom

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEEPROM_ProbeCalibration(t *testing.T) {
	e := New()

	comp, offset := e.ProbeCalibration()
	assert.Equal(t, [3]int32{}, comp)
	assert.Equal(t, [2]int32{}, offset)

	e.SetProbeCalibration([3]int32{10, -20, 30}, [2]int32{-2700, 150})

	comp, offset = e.ProbeCalibration()
	assert.Equal(t, [3]int32{10, -20, 30}, comp)
	assert.Equal(t, [2]int32{-2700, 150}, offset)
}

func TestEEPROM_SaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")

	e, err := Open(path)
	assert.NoError(t, err)

	e.SetProbeCalibration([3]int32{1, 2, 3}, [2]int32{4, 5})
	assert.NoError(t, e.Save())

	e2, err := Open(path)
	assert.NoError(t, err)

	comp, offset := e2.ProbeCalibration()
	assert.Equal(t, [3]int32{1, 2, 3}, comp)
	assert.Equal(t, [2]int32{4, 5}, offset)
}

func TestEEPROM_NoBackingFile(t *testing.T) {
	assert.Error(t, New().Save())
}
