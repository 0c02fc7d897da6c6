package machine

import (
	"errors"
	"io"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/gcode"
	"github.com/mastercactapus/alevel/level"
	"github.com/mastercactapus/alevel/leveler"
)

// ThreePointOptions configure the probing sequence for plane leveling.
type ThreePointOptions struct {
	ProbeOptions

	// Points are XY offsets of the three probe positions from the
	// current machine position. The first is the reference point.
	Points [3]coord.Point
}

// ProbeThreePoint probes the bed at the three configured positions.
func (m *Machine) ProbeThreePoint(opt ThreePointOptions) ([]ProbeResult, error) {
	stat := m.CurrentState()
	if stat.Status != "Idle" {
		return nil, errors.New("machine not idle")
	}

	m.ResetProbes()
	err := m.runBlocks(opt.generate(stat.MPos))
	if err != nil {
		return nil, err
	}

	probes := m.Probes()
	if len(probes) != 3 {
		return nil, errors.New("expected 3 probe results")
	}
	for _, p := range probes {
		if !p.Valid {
			return nil, errors.New("probe did not trigger")
		}
	}

	return probes, nil
}

func (opt ThreePointOptions) generate(mPos coord.Point) []gcode.Block {
	var b []gcode.Block
	for _, p := range opt.Points {
		b = append(b, machineRapidXY(mPos.X+p.X, mPos.Y+p.Y))
		b = append(b, opt.probeCommand(false, mPos.Z)...)
	}

	return append(b, machineRapidXY(mPos.X, mPos.Y))
}

// ReadFromPlane streams a gcode program with a plane correction,
// calibrating the corrector from the probed points first.
func (m *Machine) ReadFromPlane(r io.Reader, granularity float64, c level.Corrector, scale coord.Scale, points []coord.Point) (int64, error) {
	stat := m.CurrentState()
	if stat.Status != "Idle" {
		return 0, errors.New("machine not idle")
	}

	plane, err := leveler.NewPlane(c, scale, points)
	if err != nil {
		return 0, err
	}

	return m.readLeveled(r, granularity, plane, stat)
}

// ReadFromMesh streams a gcode program with a triangulated-mesh
// correction, for beds that a single plane fits poorly.
func (m *Machine) ReadFromMesh(r io.Reader, granularity float64, points []coord.Point) (int64, error) {
	stat := m.CurrentState()
	if stat.Status != "Idle" {
		return 0, errors.New("machine not idle")
	}

	mesh, err := leveler.NewMesh(points)
	if err != nil {
		return 0, err
	}

	return m.readLeveled(r, granularity, mesh, stat)
}

func (m *Machine) readLeveled(r io.Reader, granularity float64, z leveler.ZOffsetter, stat State) (int64, error) {
	cfg := leveler.Config{
		ZOffsetter: z,

		MPos: stat.MPos,
		WCO:  stat.WCO,

		Granularity: granularity,
		Reader:      gcode.NewParser(r),
	}

	return m.ReadFrom(gcode.NewBuffer(leveler.New(cfg)))
}
