package machine

import (
	"errors"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/gcode"
)

// ProbeResult is one probe contact point in machine coordinates.
type ProbeResult struct {
	coord.Point
	Valid bool
}

// ProbeOptions configure a straight z-probe operation.
type ProbeOptions struct {
	ZeroZAxis bool

	// Offset is the Z value to set when ZeroZAxis is set.
	Offset float64

	FeedRate  float64
	MaxTravel float64

	// Wait executes a feed hold before probing so the operator can
	// attach the probe.
	Wait bool
}

// ProbeZ performs a straight z-probe from the current location,
// returning to it after.
func (m *Machine) ProbeZ(opt ProbeOptions) (*ProbeResult, error) {
	if opt.Wait {
		err := m.hold("Attach Z-Probe to spindle.")
		if err != nil {
			return nil, err
		}
	}
	stat := m.CurrentState()
	if stat.Status != "Idle" && stat.Status != "Hold:0" {
		return nil, errors.New("machine not idle")
	}

	m.Adapter.ResetProbes()
	err := m.runBlocks(opt.generate(stat.MPos))
	if err != nil {
		return nil, err
	}
	p := m.Adapter.Probes()
	if len(p) == 0 {
		return nil, errors.New("no probe data returned")
	}

	return &p[0], nil
}

// probeCommand generates a single downward probe, optionally zeroing
// the Z axis at the contact point, then lifting back to lift.
func (opt ProbeOptions) probeCommand(zero bool, lift float64) []gcode.Block {
	b := []gcode.Block{
		{
			{W: 'G', Arg: 91},
			{W: 'G', Arg: 38.2},
			{W: 'Z', Arg: opt.MaxTravel},
			{W: 'F', Arg: opt.FeedRate},
		},
	}
	if zero {
		b = append(b, gcode.Block{
			{W: 'G', Arg: 92},
			{W: 'Z', Arg: opt.Offset},
		})
	}

	return append(b, machineRapidZ(lift))
}

func (opt ProbeOptions) generate(mPos coord.Point) []gcode.Block {
	return opt.probeCommand(opt.ZeroZAxis, mPos.Z)
}
