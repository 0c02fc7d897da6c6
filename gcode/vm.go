package gcode

import (
	"errors"

	"github.com/mastercactapus/alevel/coord"
)

const mmPerInch = 25.4

// VM tracks machine position and modal state while interpreting a
// stream of blocks. It understands the subset of gcode the streaming
// pipeline needs to follow tool position: linear moves, distance and
// unit modes, and machine-coordinate moves.
type VM struct {
	pos coord.Point
	wco coord.Point

	modal [256]float64
}

// NewVM returns a VM with grbl's power-on modal defaults.
func NewVM() *VM {
	vm := &VM{}

	vm.modal[ModalGroupMotion] = 0
	vm.modal[ModalGroupCoordinateSystem] = 54
	vm.modal[ModalGroupPlaneSelection] = 17
	vm.modal[ModalGroupDistanceMode] = 90
	vm.modal[ModalGroupArcDistanceMode] = 91.1
	vm.modal[ModalGroupFeedRateMode] = 94
	vm.modal[ModalGroupUnits] = 21
	vm.modal[ModalGroupCutterCompensationMode] = 40
	vm.modal[ModalGroupToolLength] = 49
	vm.modal[ModalGroupStopping] = 0
	vm.modal[ModalGroupSpindle] = 5
	vm.modal[ModalGroupCoolant] = 9

	return vm
}

func (vm VM) Inches() bool         { return vm.modal[ModalGroupUnits] == 20 }
func (vm VM) RelativeMotion() bool { return vm.modal[ModalGroupDistanceMode] == 91 }

// MPos is the current position in machine coordinates.
func (vm VM) MPos() coord.Point { return vm.pos }

// WPos is the current position in work coordinates.
func (vm VM) WPos() coord.Point { return vm.pos.Sub(vm.wco) }

// WCO is the work coordinate offset, so MPos = WPos + WCO.
func (vm VM) WCO() coord.Point { return vm.wco }

func (vm *VM) SetMPos(p coord.Point) { vm.pos = p }
func (vm *VM) SetWCO(p coord.Point)  { vm.wco = p }

func supported(g Word) bool {
	if g.IsAxis() || g.W == 'F' {
		return true
	}

	switch g.W {
	case 'G':
		switch g.Arg {
		case 0, 1, 20, 21, 53, 90, 91, 94:
			return true
		}
	case 'M':
		switch g.Arg {
		case 3, 5:
			return true
		}
	}

	return false
}

// axisTarget overlays the axis words of b onto p, scaling by mul.
func axisTarget(p coord.Point, b Block, mul float64) coord.Point {
	for _, g := range b {
		switch g.W {
		case 'X':
			p.X = g.Arg * mul
		case 'Y':
			p.Y = g.Arg * mul
		case 'Z':
			p.Z = g.Arg * mul
		}
	}

	return p
}

// Run applies one block to the VM state.
func (vm *VM) Run(b Block) error {
	err := b.Validate()
	if err != nil {
		return err
	}

	var machineCoords bool
	for _, g := range b {
		if !supported(g) {
			return errors.New("unsupported code: " + g.String())
		}
		if g.W == 'G' && g.Arg == 53 {
			machineCoords = true
		}
		mg := g.ModalGroup()
		if mg != ModalGroupNone && mg != ModalGroupNonModal {
			vm.modal[mg] = g.Arg
		}
	}

	args := b.Args()
	if len(args) == 0 {
		return nil
	}

	mul := 1.0
	if vm.Inches() {
		mul = mmPerInch
	}

	switch {
	case machineCoords:
		// G53 moves are always mm, machine frame
		vm.pos = axisTarget(vm.pos, args, 1)
	case vm.RelativeMotion():
		vm.pos = vm.pos.Add(axisTarget(coord.Point{}, args, mul))
	default:
		vm.pos = axisTarget(vm.WPos(), args, mul).Add(vm.wco)
	}

	return nil
}
