package level

// Calibration supplies the persisted probe calibration blocks.
type Calibration interface {
	// ProbeCalibration returns the per-probe-point Z compensation and
	// the XY offset between the probe tip and the tool reference
	// position. Implementations must read both blocks atomically with
	// respect to whatever may write the underlying storage.
	ProbeCalibration() (comp [3]int32, offset [2]int32)
}

// ZeroCalibration is a Calibration with no compensation and no offset.
type ZeroCalibration struct{}

func (ZeroCalibration) ProbeCalibration() ([3]int32, [2]int32) {
	return [3]int32{}, [2]int32{}
}

// FixedOffset decorates a Calibration for hardware where the probe
// offset is fixed by the tool-head geometry rather than stored: the X
// offset comes from a physical distance run through the machine's
// mm-to-steps conversion, and Y is zero.
type FixedOffset struct {
	Calibration

	// OffsetMM is the probe-to-tool distance along X, in mm.
	OffsetMM float64
	// MMToSteps converts a distance on the X axis to steps.
	MMToSteps func(mm float64) int32
}

func (f FixedOffset) ProbeCalibration() ([3]int32, [2]int32) {
	comp, _ := f.Calibration.ProbeCalibration()
	return comp, [2]int32{-f.MMToSteps(f.OffsetMM), 0}
}
