package machine

import (
	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/gcode"
)

// Machine wraps an Adapter with higher-level operations: probing,
// leveling, and tool changes.
type Machine struct {
	Adapter

	holdMessage chan string
}

// State is a snapshot of controller state.
type State struct {
	Status string
	MPos   coord.Point
	WCO    coord.Point
}

func NewMachine(a Adapter) *Machine {
	return &Machine{
		Adapter:     a,
		holdMessage: make(chan string),
	}
}

// HoldMessage returns operator prompts. Each prompt is followed by a
// "-" message when the hold completes. The channel must be drained or
// operations that hold will block.
func (m *Machine) HoldMessage() chan string {
	return m.holdMessage
}

func (m *Machine) runBlocks(b []gcode.Block) error {
	_, err := m.Adapter.ReadFrom(gcode.NewBuffer(&gcode.BlocksReader{Blocks: b}))
	return err
}

// hold pauses the machine (M0) after announcing message to the
// operator.
func (m *Machine) hold(message string) error {
	m.holdMessage <- message
	_, err := m.Adapter.Write([]byte("M0\n"))
	m.holdMessage <- "-"
	return err
}

// machineRapidXY is a rapid to an XY position in machine coordinates.
func machineRapidXY(x, y float64) gcode.Block {
	return gcode.Block{
		{W: 'G', Arg: 53},
		{W: 'G', Arg: 0},
		{W: 'X', Arg: x},
		{W: 'Y', Arg: y},
	}
}

// machineRapidZ is a rapid to a Z height in machine coordinates.
func machineRapidZ(z float64) gcode.Block {
	return gcode.Block{
		{W: 'G', Arg: 53},
		{W: 'G', Arg: 0},
		{W: 'Z', Arg: z},
	}
}

// generateGoTo moves to pos by lifting to travelZ first.
func generateGoTo(travelZ float64, pos coord.Point) []gcode.Block {
	return []gcode.Block{
		machineRapidZ(travelZ),
		machineRapidXY(pos.X, pos.Y),
		machineRapidZ(pos.Z),
	}
}
