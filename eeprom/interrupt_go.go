//go:build !tinygo

package eeprom

// interruptState is a placeholder for interrupt state on regular Go.
type interruptState uintptr

// disableInterrupts is a no-op on regular Go; nothing preempts a read.
func disableInterrupts() interruptState { return 0 }

func restoreInterrupts(state interruptState) {}
