package level

// Skew derives a linear Z correction from three probe points.
//
// The probed points define a plane x*Nx + y*Ny + z*Nz + d = 0; Skew maps
// a Z in a plane parallel to Z=0 onto the corresponding Z on that plane.
// Two multiplies and two adds per point, at the cost of a very slight
// skew: for a plate out of level by 0.5mm across a 200mm baseline the
// worst case is 0.25mm out of perpendicular per 100mm of height.
type Skew struct {
	cal Calibration

	// plane normal and constant
	n [3]int64
	d int64

	// reference point, kept to recompute d when the coordinate
	// space is translated
	ref [3]int64

	status Status
	active bool
}

// NewSkew returns a disabled Skew reading probe calibration from cal.
func NewSkew(cal Calibration) *Skew {
	if cal == nil {
		cal = ZeroCalibration{}
	}
	s := &Skew{cal: cal}
	s.Deinit()
	return s
}

// Init computes the correction plane from three probe points.
//
// zOffset is the distance between the probe tip and the tool tip, in
// steps. On failure the skew is left disabled and Status reports why.
func (s *Skew) Init(maxZ, zOffset int32, p1, p2, p3 Point) bool {
	s.Deinit()

	ok, zDelta := Check(maxZ, p1, p2, p3)
	s.status = Status(zDelta)
	if !ok {
		s.status = BadLevel
		return false
	}

	comp, offset := s.cal.ProbeCalibration()

	v1 := p2.Sub(p1)
	v2 := p3.Sub(p1)

	// fold the per-point Z compensation into the displacements:
	// (p2.Z + comp[1]) - (p1.Z + comp[0]), same for p3
	v1.Z += comp[1] - comp[0]
	v2.Z += comp[2] - comp[0]

	n := Cross(v1, v2)
	if n.Z == 0 {
		// Should not be reachable after the deviation check above:
		// the points are colinear, or the plane is vertical.
		if n.X == 0 && n.Y == 0 {
			s.status = Colinear
		} else {
			s.status = BadLevel
		}
		return false
	}
	if n.Z < 0 {
		n.X, n.Y, n.Z = -n.X, -n.Y, -n.Z
	}
	s.n = [3]int64{int64(n.X), int64(n.Y), int64(n.Z)}

	// The reference point is p1 moved by the probe-to-tool offsets.
	// zOffset only matters here; Update works on relative displacement.
	s.ref = [3]int64{
		int64(p1.X) + int64(offset[0]),
		int64(p1.Y) + int64(offset[1]),
		int64(p1.Z) - int64(zOffset),
	}
	s.constant()

	s.active = true
	return true
}

// constant solves for d using the saved reference point.
func (s *Skew) constant() {
	s.d = -(s.ref[0]*s.n[0] + s.ref[1]*s.n[1] + s.ref[2]*s.n[2])
}

// Skew returns the Z the point would have on the correction plane at
// its X,Y. Only valid while Active; division truncates toward zero.
func (s *Skew) Skew(p Point) int32 {
	return int32(-(s.d + int64(p.X)*s.n[0] + int64(p.Y)*s.n[1]) / s.n[2])
}

// Update translates the reference point and recomputes the plane
// constant. Used when the coordinate origin moves without re-probing;
// callers must not call it while inactive.
func (s *Skew) Update(delta Point) {
	s.ref[0] += int64(delta.X)
	s.ref[1] += int64(delta.Y)
	s.ref[2] += int64(delta.Z)

	s.constant()
}

// Deinit resets to the identity plane and disables the correction.
// It is idempotent.
func (s *Skew) Deinit() {
	s.n = [3]int64{0, 0, 1}
	s.d = 0
	s.ref = [3]int64{}
	s.status = NotActive
	s.active = false
}

func (s *Skew) Status() Status { return s.status }
func (s *Skew) Active() bool   { return s.active }
