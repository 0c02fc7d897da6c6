package machine

import (
	"errors"
	"math"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/gcode"
)

// ProbeGridOptions configure a grid-pattern z-probe operation.
type ProbeGridOptions struct {
	ProbeOptions

	DistanceX, DistanceY float64

	// Granularity is the max distance between neighboring probe
	// points.
	Granularity float64
}

// ProbeZGrid probes the bed in a grid pattern, starting with a quick
// corner scan to pick a safe travel height for the full pass.
func (m *Machine) ProbeZGrid(opt ProbeGridOptions) ([]ProbeResult, error) {
	stat := m.CurrentState()
	if stat.Status != "Idle" {
		return nil, errors.New("machine not idle")
	}

	m.ResetProbes()
	err := m.runBlocks(opt.generateGridQuick(stat.MPos))
	if err != nil {
		return nil, err
	}

	startProbes := m.Probes()
	if len(startProbes) == 0 {
		return nil, errors.New("no probe data returned")
	}

	maxZ := startProbes[0].Z
	for _, p := range startProbes[1:] {
		maxZ = math.Max(maxZ, p.Z)
	}
	maxZ += 0.2

	err = m.runBlocks(opt.generateGridSequence(stat.MPos, maxZ))
	if err != nil {
		return nil, err
	}

	return m.Probes(), nil
}

// probeAt moves to an XY offset from mPos and probes, lifting back to
// lift after contact.
func (opt ProbeGridOptions) probeAt(mPos coord.Point, x, y, lift float64) []gcode.Block {
	b := []gcode.Block{machineRapidXY(mPos.X+x, mPos.Y+y)}
	return append(b, opt.probeCommand(false, lift)...)
}

// generateGridQuick generates a preliminary scan of the corners and
// center, from the current height.
func (opt ProbeGridOptions) generateGridQuick(mPos coord.Point) []gcode.Block {
	b := opt.probeCommand(opt.ZeroZAxis, mPos.Z)

	b = append(b, opt.probeAt(mPos, 0, opt.DistanceY, mPos.Z)...)
	b = append(b, opt.probeAt(mPos, opt.DistanceX/2, opt.DistanceY/2, mPos.Z)...)
	b = append(b, opt.probeAt(mPos, opt.DistanceX, 0, mPos.Z)...)
	b = append(b, opt.probeAt(mPos, opt.DistanceX, opt.DistanceY, mPos.Z)...)

	return append(b, machineRapidXY(mPos.X, mPos.Y))
}

// generateGridSequence generates the full scan in a serpentine
// pattern, with no two points farther than granularity apart. The
// scan runs at zHeight and returns to mPos after.
func (opt ProbeGridOptions) generateGridSequence(mPos coord.Point, zHeight float64) []gcode.Block {
	opt.MaxTravel -= mPos.Z - zHeight

	xyDist := math.Sqrt(opt.Granularity * opt.Granularity / 2)

	xCount := int(math.Ceil(opt.DistanceX / xyDist))
	yCount := int(math.Ceil(opt.DistanceY / xyDist))

	b := []gcode.Block{machineRapidZ(zHeight)}

	for y := 0; y <= yCount; y++ {
		for x := 0; x <= xCount; x++ {
			xVal := opt.DistanceX / float64(xCount) * float64(x)
			if y%2 != 0 {
				xVal = opt.DistanceX - xVal
			}
			yVal := opt.DistanceY / float64(yCount) * float64(y)

			b = append(b, opt.probeAt(mPos, xVal, yVal, zHeight)...)
		}
	}

	return append(b,
		machineRapidZ(mPos.Z),
		machineRapidXY(mPos.X, mPos.Y),
	)
}
