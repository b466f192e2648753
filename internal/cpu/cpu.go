// Package cpu implements the instruction set of the SM83, the
// 8-bit CPU of the Game Boy: its register file, the opcode
// dispatch table and the fetch-execute loop.
package cpu

import (
	"context"
	"errors"

	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
)

// Mode is the execution state of the CPU.
type Mode uint8

const (
	// ModeNormal fetches and executes one instruction per step.
	ModeNormal Mode = iota
	// ModeHalt idles until an interrupt is pending.
	ModeHalt
	// ModeHaltBug executes the next instruction without
	// consuming its opcode byte.
	ModeHaltBug
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHalt:
		return "halt"
	case ModeHaltBug:
		return "halt bug"
	}
	return "unknown"
}

// CPU represents the SM83 CPU. It is responsible for executing
// instructions against the memory map it was created with.
type CPU struct {
	// Registers contains the 8-bit registers, the 16-bit register
	// pairs, SP and PC.
	Registers

	// IME is the interrupt master enable flag.
	IME bool

	mmu  *mmu.MMU
	mode Mode

	// steps left until EI takes effect
	imeDelay uint8

	// the instruction currently executing
	currentPC     uint16
	currentOpcode uint8
}

// NewCPU creates a new CPU instance bound to the given MMU.
func NewCPU(mmu *mmu.MMU) *CPU {
	c := &CPU{
		mmu: mmu,
	}
	c.initPairs()

	return c
}

// Mode returns the current execution state.
func (c *CPU) Mode() Mode {
	return c.mode
}

// Trace is the observable outcome of a single step.
type Trace struct {
	// PC is the address the opcode was fetched from.
	PC uint16
	// Opcode is the executed opcode. It is meaningless when the
	// step idled in ModeHalt.
	Opcode uint8
	// Name is the mnemonic of the executed instruction, empty
	// when the step idled in ModeHalt.
	Name string
	// Registers holds the register file after the step.
	Registers Snapshot
	// Mode is the execution state after the step.
	Mode Mode
	// Interrupt is true if an interrupt was serviced.
	Interrupt bool
}

// Step executes one instruction, or idles for one step while
// halted. Errors are returned as *Error.
func (c *CPU) Step() (Trace, error) {
	if c.mode == ModeHalt {
		t := Trace{PC: c.PC, Mode: c.mode}
		if c.hasInterrupts() {
			c.mode = ModeNormal
			t.Interrupt = c.handleInterrupts()
		}
		t.Registers = c.Snapshot()
		t.Mode = c.mode
		return t, nil
	}

	c.currentPC = c.PC
	c.currentOpcode = c.fetchOpcode()
	instruction := &InstructionSet[c.currentOpcode]

	if c.mode == ModeHaltBug {
		// the opcode byte is read again as the first operand
		c.PC--
		c.mode = ModeNormal
	}

	if instruction.fn != nil {
		instruction.fn(c)
	}
	if instruction.err != nil {
		return Trace{}, c.newError(instruction.err)
	}

	if c.imeDelay > 0 {
		c.imeDelay--
		if c.imeDelay == 0 {
			c.IME = true
		}
	}

	t := Trace{
		PC:        c.currentPC,
		Opcode:    c.currentOpcode,
		Name:      instruction.name,
		Interrupt: c.handleInterrupts(),
	}
	t.Registers = c.Snapshot()
	t.Mode = c.mode
	return t, nil
}

// Run steps the CPU until ctx is done, limit steps have been
// executed (0 means no limit) or a step fails. observe, if not
// nil, is called after every successful step. Run returns the
// number of steps executed.
func (c *CPU) Run(ctx context.Context, limit uint64, observe func(Trace)) (n uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !errors.Is(e, ErrAddressDecode) {
				panic(r)
			}
			err = c.newError(ErrAddressDecode)
		}
	}()

	for limit == 0 || n < limit {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		t, err := c.Step()
		if err != nil {
			return n, err
		}
		n++

		if observe != nil {
			observe(t)
		}
	}

	return n, nil
}

func (c *CPU) newError(kind error) *Error {
	return &Error{
		Kind:      kind,
		Opcode:    c.currentOpcode,
		PC:        c.currentPC,
		Registers: c.Snapshot(),
	}
}

// hasInterrupts returns true if any enabled interrupt is requested.
func (c *CPU) hasInterrupts() bool {
	return interrupts.Pending(c.mmu) != 0
}

// handleInterrupts services the highest priority pending
// interrupt if IME is set: the request is acknowledged, IME
// is cleared, PC is pushed and execution continues at the
// interrupt vector.
func (c *CPU) handleInterrupts() bool {
	if !c.IME {
		return false
	}
	bit, ok := interrupts.Next(c.mmu)
	if !ok {
		return false
	}

	interrupts.Acknowledge(c.mmu, bit)
	c.IME = false
	c.mode = ModeNormal
	c.mmu.Push16(&c.SP, c.PC)
	c.PC = interrupts.Vector(bit)

	return true
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.imeDelay = s.Read8()
	c.mode = Mode(s.Read8())
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write8(c.imeDelay)
	s.Write8(uint8(c.mode))
}
