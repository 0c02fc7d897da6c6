package level

import "strconv"

// Status reports the outcome of the last (attempted) calibration.
//
// Non-negative values mean the correction is in use, and give the
// maximum Z difference between the probe points in steps. The
// negative sentinels mean no correction is active.
type Status int32

const (
	// NotActive means no successful calibration has happened.
	NotActive Status = -1
	// BadLevel means the probe points were too far out of level.
	BadLevel Status = -2
	// Colinear means the probe points failed to define a plane.
	Colinear Status = -3
)

func (s Status) Active() bool { return s >= 0 }

func (s Status) String() string {
	switch s {
	case NotActive:
		return "not-active"
	case BadLevel:
		return "bad-level"
	case Colinear:
		return "colinear"
	}
	return strconv.FormatInt(int64(s), 10) + " steps"
}

// Check measures the probe points' Z spread without committing anything.
//
// It reports whether the maximum difference in Z between the first point
// and each of the others is within maxZ, along with the measured value.
// It deliberately checks only the gross Z spread; a plane fit can still
// fail on colinear points after Check passes.
func Check(maxZ int32, p1, p2, p3 Point) (bool, int32) {
	zDelta := abs32(p2.Z - p1.Z)
	if z := abs32(p3.Z - p1.Z); z > zDelta {
		zDelta = z
	}
	return zDelta <= maxZ, zDelta
}
