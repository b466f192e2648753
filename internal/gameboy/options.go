package gameboy

import (
	"io"

	"github.com/thelolagemann/sm83/internal/trace"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction at trace level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithEntryPoint sets the address execution starts at.
func WithEntryPoint(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.CPU.PC = pc
	}
}

// WithPostBootState sets the registers to the values upon
// completion of the boot ROM, leaving the emulator to start
// at 0x100.
func WithPostBootState() Opt {
	return func(gb *GameBoy) {
		gb.CPU.ResetPostBoot()
	}
}

// WithState restores a state produced by SaveState once the
// GameBoy has been set up.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// SaveStateTo writes the final state to w on Close.
func SaveStateTo(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.saveTo = w
	}
}

// WithTrace publishes every executed instruction to hub.
func WithTrace(hub *trace.Hub) Opt {
	return func(gb *GameBoy) {
		gb.hub = hub
	}
}

// WithStepLimit stops Run after n steps, 0 runs until the
// context is done.
func WithStepLimit(n uint64) Opt {
	return func(gb *GameBoy) {
		gb.stepLimit = n
	}
}
