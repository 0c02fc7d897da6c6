// Package eeprom holds the persisted calibration image.
//
// Layout mirrors the firmware settings area: fixed-size blocks of
// little-endian int32s at known offsets. On hardware an interrupt
// handler may write the image, so multi-word reads happen inside a
// critical section; on a host build the section is a no-op.
package eeprom

import (
	"encoding/binary"
	"errors"
	"os"
)

// Size is the size of the settings image in bytes.
const Size = 4096

// Block offsets, in bytes.
const (
	// probeCompOffset is block A: one int32 of Z compensation per
	// probe point, in steps.
	probeCompOffset = 0x0010
	// probeOffsetOffset is block B: the XY offset between probe tip
	// and tool position, two int32s in steps.
	probeOffsetOffset = 0x001c
)

// EEPROM is a settings image, optionally backed by a file.
type EEPROM struct {
	path string
	data [Size]byte
}

// New returns an empty, unbacked image.
func New() *EEPROM { return &EEPROM{} }

// Open loads the image from path. A missing file yields a zeroed
// image that Save will create.
func Open(path string) (*EEPROM, error) {
	e := &EEPROM{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return e, nil
	}
	if err != nil {
		return nil, err
	}
	copy(e.data[:], data)
	return e, nil
}

// Save writes the image back to the file it was opened from.
func (e *EEPROM) Save() error {
	if e.path == "" {
		return errors.New("eeprom: no backing file")
	}
	return os.WriteFile(e.path, e.data[:], 0644)
}

func (e *EEPROM) readBlock(off int, dst []int32) {
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(e.data[off+4*i:]))
	}
}

func (e *EEPROM) writeBlock(off int, src []int32) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(e.data[off+4*i:], uint32(v))
	}
}

// ProbeCalibration reads both probe calibration blocks in one critical
// section. It implements level.Calibration.
func (e *EEPROM) ProbeCalibration() (comp [3]int32, offset [2]int32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	e.readBlock(probeCompOffset, comp[:])
	e.readBlock(probeOffsetOffset, offset[:])
	return comp, offset
}

// SetProbeCalibration stores both probe calibration blocks. Save must
// be called to persist a file-backed image.
func (e *EEPROM) SetProbeCalibration(comp [3]int32, offset [2]int32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	e.writeBlock(probeCompOffset, comp[:])
	e.writeBlock(probeOffsetOffset, offset[:])
}
