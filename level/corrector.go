package level

// A Corrector is one bed-correction strategy. Exactly one is in effect
// at a time; which one is a configuration decision.
type Corrector interface {
	// Init calibrates from three probe points, reporting success.
	Init(p1, p2, p3 Point) bool

	// Transform maps a point in a plane parallel to Z=0 onto the
	// probed plane. Identity until Init succeeds.
	Transform(p Point) Point

	Status() Status
}

// An InverseCorrector can also map probed-plane points back.
type InverseCorrector interface {
	Corrector
	Inverse(p Point) Point
}

// Identity is the no-correction strategy.
type Identity struct{}

func (Identity) Init(p1, p2, p3 Point) bool { return true }
func (Identity) Transform(p Point) Point    { return p }
func (Identity) Inverse(p Point) Point      { return p }
func (Identity) Status() Status             { return NotActive }

type skewCorrector struct {
	s *Skew

	maxZ    int32
	zOffset int32
}

// NewSkewCorrector wraps a Skew as a Corrector. maxZ is the allowed Z
// spread across probe points; zOffset the probe-to-tool distance.
func NewSkewCorrector(cal Calibration, maxZ, zOffset int32) Corrector {
	return &skewCorrector{s: NewSkew(cal), maxZ: maxZ, zOffset: zOffset}
}

func (c *skewCorrector) Init(p1, p2, p3 Point) bool {
	return c.s.Init(c.maxZ, c.zOffset, p1, p2, p3)
}

func (c *skewCorrector) Transform(p Point) Point {
	if !c.s.Active() {
		return p
	}
	p.Z = c.s.Skew(p)
	return p
}

func (c *skewCorrector) Status() Status { return c.s.Status() }

type tiltCorrector struct {
	t *Tilt

	maxZ   int32
	status Status
}

// NewTiltCorrector wraps a Tilt as an InverseCorrector, adding the
// same pre-flight deviation check the skew strategy performs.
func NewTiltCorrector(maxZ int32) InverseCorrector {
	return &tiltCorrector{t: NewTilt(), maxZ: maxZ, status: NotActive}
}

func (c *tiltCorrector) Init(p1, p2, p3 Point) bool {
	ok, zDelta := Check(c.maxZ, p1, p2, p3)
	if !ok {
		c.status = BadLevel
		return false
	}
	if !c.t.Init(p1, p2, p3) {
		c.status = Colinear
		return false
	}
	c.status = Status(zDelta)
	return true
}

func (c *tiltCorrector) Transform(p Point) Point {
	if !c.t.Ready() {
		return p
	}
	return c.t.Tilt(p)
}

func (c *tiltCorrector) Inverse(p Point) Point {
	if !c.t.Ready() {
		return p
	}
	return c.t.Inverse(p)
}

func (c *tiltCorrector) Status() Status { return c.status }
