//go:build tinygo

package eeprom

import "runtime/interrupt"

type interruptState = interrupt.State

// disableInterrupts disables interrupts and returns the previous state.
func disableInterrupts() interruptState { return interrupt.Disable() }

func restoreInterrupts(state interruptState) { interrupt.Restore(state) }
