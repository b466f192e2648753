package cpu

import "fmt"

// Register represents a single 8-bit register.
type Register = uint8

// Half selects one byte of a RegisterPair.
type Half uint8

const (
	// High selects the upper byte of a RegisterPair (B of BC).
	High Half = iota
	// Low selects the lower byte of a RegisterPair (C of BC).
	Low
)

// RegisterPair represents a pair of Registers which is used to
// hold a 16-bit value. The CPU has 4 register pairs: AF, BC, DE
// and HL. Each byte of a pair remains independently addressable.
type RegisterPair struct {
	High *Register
	Low  *Register

	// mask of the bits that can be stored, AF cannot hold
	// anything in the lower nibble of F
	mask uint16
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	value &= r.mask
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Byte returns the Register holding the given half of the pair.
func (r *RegisterPair) Byte(h Half) *Register {
	if h == High {
		return r.High
	}
	return r.Low
}

// Registers contains the register file of the CPU: the 8-bit
// registers, the 16-bit register pairs viewing them, the stack
// pointer and the program counter.
//
// F holds the flags in bits 7-4. The flag accessors and AF both
// read and write F, so the two views can never disagree.
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next opcode to fetch.
	PC uint16
}

// initPairs binds the register pairs to their 8-bit halves.
// Registers must not be copied afterwards.
func (r *Registers) initPairs() {
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, mask: 0xFFF0}
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, mask: 0xFFFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, mask: 0xFFFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, mask: 0xFFFF}
}

// AdvancePC moves the program counter past n consumed bytes.
func (r *Registers) AdvancePC(n uint16) {
	r.PC += n
}

// ResetPostBoot sets the registers to the values the DMG boot
// ROM leaves behind when it hands over to the cartridge.
func (r *Registers) ResetPostBoot() {
	r.AF.SetUint16(0x01B0)
	r.BC.SetUint16(0x0013)
	r.DE.SetUint16(0x00D8)
	r.HL.SetUint16(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
}

// Snapshot returns a copy of the register file.
func (r *Registers) Snapshot() Snapshot {
	return Snapshot{
		A: r.A, F: r.F, B: r.B, C: r.C, D: r.D, E: r.E, H: r.H, L: r.L,
		SP: r.SP, PC: r.PC,
	}
}

// Snapshot is a plain copy of the register file, safe to keep
// after the CPU has moved on.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

func (s Snapshot) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC)
}
