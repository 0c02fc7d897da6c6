package machine

import (
	"errors"
	"log"

	"github.com/mastercactapus/alevel/coord"
)

// ToolChangeOptions configure a tool change operation.
type ToolChangeOptions struct {
	// ChangePos is where the spindle parks for the swap.
	ChangePos coord.Point

	// ProbePos is where tool length is measured.
	ProbePos coord.Point

	FeedRate     float64
	MaxTravel    float64
	TravelHeight float64

	// LastToolPos skips the initial measurement of the current tool
	// when already known.
	LastToolPos *coord.Point
}

// ToolChange swaps tools, measuring the old and new tool lengths so
// the Z offset carries over.
func (m *Machine) ToolChange(opt ToolChangeOptions) error {
	stat := m.CurrentState()
	if stat.Status != "Idle" {
		return errors.New("machine not idle")
	}

	if opt.LastToolPos == nil {
		p, err := m.toolProbe(opt, false, 0)
		if err != nil {
			return err
		}
		opt.LastToolPos = &p.Point
		err = m.hold("Probe complete, remove Z-Probe.")
		if err != nil {
			return err
		}
	}

	err := m.runBlocks(generateGoTo(opt.TravelHeight, opt.ChangePos))
	if err != nil {
		return err
	}

	err = m.hold("Perform tool change.")
	if err != nil {
		return err
	}

	// zero to the old tool's work Z so the new tool inherits the
	// offset at contact
	lastToolWPos := opt.LastToolPos.Sub(stat.WCO)
	p, err := m.toolProbe(opt, true, lastToolWPos.Z)
	if err != nil {
		return err
	}

	diff := opt.LastToolPos.Z - p.Z
	stat.MPos.Z -= diff
	log.Println("Adjusting Z-offset by:", diff)

	err = m.hold("Probe complete, remove Z-Probe.")
	if err != nil {
		return err
	}

	return m.runBlocks(generateGoTo(opt.TravelHeight, stat.MPos))
}

func (m *Machine) toolProbe(opt ToolChangeOptions, zero bool, offset float64) (*ProbeResult, error) {
	err := m.runBlocks(generateGoTo(opt.TravelHeight, opt.ProbePos))
	if err != nil {
		return nil, err
	}

	p, err := m.ProbeZ(ProbeOptions{
		Wait:      true,
		MaxTravel: opt.MaxTravel,
		FeedRate:  opt.FeedRate,
		ZeroZAxis: zero,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	if !p.Valid {
		return nil, errors.New("tool probe failed")
	}
	return p, nil
}
