// Package gameboy wires the memory map and the CPU together,
// loads a ROM image and drives the fetch-execute loop.
package gameboy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/trace"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU

	// Cartridge is nil for images too short to hold a header.
	Cartridge *cartridge.Cartridge

	log.Logger

	fingerprint uint64
	hub         *trace.Hub
	debug       bool
	stepLimit   uint64
	state       []byte
	saveTo      io.Writer
}

// New returns a new GameBoy with rom loaded and PC at the
// cartridge entry point.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	memBus := mmu.NewMMU()
	if err := memBus.LoadROM(rom); err != nil {
		return nil, err
	}

	g := &GameBoy{
		CPU:         cpu.NewCPU(memBus),
		MMU:         memBus,
		Logger:      log.NewNullLogger(),
		fingerprint: types.Fingerprint(rom),
	}
	g.CPU.PC = types.EntryPoint

	for _, opt := range opts {
		opt(g)
	}

	if cart, err := cartridge.NewCartridge(rom); err == nil {
		g.Cartridge = cart
		g.Infof("cartridge: %s", cart)
		if !cart.ValidChecksum() {
			g.Infof("cartridge: header checksum mismatch (0x%02X)", cart.HeaderChecksum)
		}
	} else {
		g.Debugf("cartridge: %v", err)
	}

	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			return nil, err
		}
		g.state = nil
	}

	return g, nil
}

// Run executes instructions until ctx is done, the step limit
// is reached or the CPU fails. It returns the number of steps
// executed.
func (g *GameBoy) Run(ctx context.Context) (uint64, error) {
	g.Debugf("running from 0x%04X (%s)", g.CPU.PC, g.CPU.Snapshot())

	n, err := g.CPU.Run(ctx, g.stepLimit, g.observe)

	var cpuErr *cpu.Error
	if errors.As(err, &cpuErr) {
		g.Errorf("%v after %d steps", cpuErr, n)
	} else if err == nil {
		g.Infof("stopped after %d steps at 0x%04X", n, g.CPU.PC)
	}

	return n, err
}

func (g *GameBoy) observe(t cpu.Trace) {
	if g.debug {
		g.Tracef("%04X  %02X  %-16s %s", t.PC, t.Opcode, t.Name, t.Registers)
	}
	if g.hub != nil {
		if err := g.hub.Publish(trace.NewEvent(t)); err != nil {
			g.Debugf("trace: %v", err)
		}
	}
}

// SaveState returns the encoded state of the CPU and memory.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	g.CPU.Save(s)
	g.MMU.Save(s)

	return s.Encode(g.fingerprint)
}

// LoadState restores a state produced by SaveState for the
// same ROM image.
func (g *GameBoy) LoadState(b []byte) error {
	s, err := types.DecodeState(b, g.fingerprint)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	// reject the state before touching the CPU or memory
	want := types.NewState()
	g.CPU.Save(want)
	g.MMU.Save(want)
	if s.Len() != want.Len() {
		return fmt.Errorf("loading state: %w: %d bytes, want %d", types.ErrInvalidState, s.Len(), want.Len())
	}

	g.CPU.Load(s)
	g.MMU.Load(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	g.Debugf("loaded state, resuming at 0x%04X", g.CPU.PC)

	return nil
}

// Close stops the trace hub and writes the final state, if
// either was configured.
func (g *GameBoy) Close() error {
	var result error

	if g.hub != nil {
		if err := g.hub.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing trace hub: %w", err))
		}
	}

	if g.saveTo != nil {
		b, err := g.SaveState()
		if err == nil {
			_, err = g.saveTo.Write(b)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("saving state: %w", err))
		}
	}

	return result
}
