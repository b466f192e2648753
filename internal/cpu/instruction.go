package cpu

import "fmt"

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name   string     // name of the instruction
	length uint8      // encoded length in bytes, including the opcode
	fn     func(*CPU) // fn called when executing the instruction
	err    error      // err returned once fn (if any) has executed
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Length returns the number of bytes the instruction is
// encoded with, including the opcode.
func (i Instruction) Length() uint8 {
	return i.length
}

// Defined returns false for opcodes reserved by the processor.
func (i Instruction) Defined() bool {
	return i.err != ErrUndefinedOpcode
}

// InstructionSet holds the 256 unprefixed instructions,
// indexed by opcode.
var InstructionSet [256]Instruction

// undefinedOpcodes are reserved and hang the real processor.
var undefinedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// define adds a sequential instruction to the InstructionSet.
// fn fetches its own immediate operands, after which the
// opcode byte itself is consumed.
func define(opcode uint8, name string, length uint8, fn func(*CPU)) {
	defineRaw(opcode, Instruction{
		name:   name,
		length: length,
		fn: func(c *CPU) {
			fn(c)
			c.AdvancePC(1)
		},
	})
}

// defineBranch adds an instruction that is responsible for
// moving PC itself, either past its own encoding or to a
// new target.
func defineBranch(opcode uint8, name string, length uint8, fn func(*CPU)) {
	defineRaw(opcode, Instruction{name: name, length: length, fn: fn})
}

func defineRaw(opcode uint8, instruction Instruction) {
	if InstructionSet[opcode].name != "" {
		panic(fmt.Errorf("%w: opcode 0x%02X defined as both %q and %q",
			ErrInvalidOperand, opcode, InstructionSet[opcode].name, instruction.name))
	}
	InstructionSet[opcode] = instruction
}

// fetchOpcode reads the opcode at PC without advancing it.
func (c *CPU) fetchOpcode() uint8 {
	return c.mmu.Read(c.PC)
}

// fetchImmediate8 reads the operand at PC+1 and advances PC
// past it.
func (c *CPU) fetchImmediate8() uint8 {
	value := c.mmu.Read(c.PC + 1)
	c.AdvancePC(1)
	return value
}

// fetchImmediate16 reads the little-endian operand at PC+1 and
// PC+2 and advances PC past it.
func (c *CPU) fetchImmediate16() uint16 {
	value := c.mmu.Read16(c.PC + 1)
	c.AdvancePC(2)
	return value
}

// reg8 selects an 8-bit operand by its 3-bit encoding. The
// encoding alone decides whether the operand lives in a
// register or in memory at (HL).
type reg8 uint8

const (
	regB reg8 = iota
	regC
	regD
	regE
	regH
	regL
	regHLIndirect
	regA
)

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (r reg8) String() string {
	return reg8Names[r&7]
}

// register returns the Register encoded by r, by selecting
// the pair and half it lives in.
func (c *CPU) register(r reg8) *Register {
	switch r {
	case regB:
		return c.BC.Byte(High)
	case regC:
		return c.BC.Byte(Low)
	case regD:
		return c.DE.Byte(High)
	case regE:
		return c.DE.Byte(Low)
	case regH:
		return c.HL.Byte(High)
	case regL:
		return c.HL.Byte(Low)
	case regA:
		return c.AF.Byte(High)
	}
	panic(fmt.Errorf("%w: %s is not a register", ErrInvalidOperand, r))
}

// read8 returns the value of the operand encoded by r.
func (c *CPU) read8(r reg8) uint8 {
	if r == regHLIndirect {
		return c.mmu.Read(c.HL.Uint16())
	}
	return *c.register(r)
}

// write8 stores value in the operand encoded by r.
func (c *CPU) write8(r reg8, value uint8) {
	if r == regHLIndirect {
		c.mmu.Write(c.HL.Uint16(), value)
		return
	}
	*c.register(r) = value
}

// reg16 selects a 16-bit operand. Opcodes encode either
// BC, DE, HL, SP or (for PUSH/POP) BC, DE, HL, AF.
type reg16 uint8

const (
	pairBC reg16 = iota
	pairDE
	pairHL
	pairSP
	pairAF
)

var reg16Names = [5]string{"BC", "DE", "HL", "SP", "AF"}

func (r reg16) String() string {
	return reg16Names[r]
}

// pair returns the RegisterPair for r, SP has none.
func (c *CPU) pair(r reg16) *RegisterPair {
	switch r {
	case pairBC:
		return c.BC
	case pairDE:
		return c.DE
	case pairHL:
		return c.HL
	case pairAF:
		return c.AF
	}
	panic(fmt.Errorf("%w: %s is not a register pair", ErrInvalidOperand, r))
}

func (c *CPU) read16(r reg16) uint16 {
	if r == pairSP {
		return c.SP
	}
	return c.pair(r).Uint16()
}

func (c *CPU) write16(r reg16, value uint16) {
	if r == pairSP {
		c.SP = value
		return
	}
	c.pair(r).SetUint16(value)
}

// condition is a 2-bit branch condition.
type condition uint8

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

func (cc condition) String() string {
	return conditionNames[cc&3]
}

// test returns true if the condition holds for the current flags.
func (c *CPU) test(cc condition) bool {
	switch cc {
	case condNZ:
		return !c.isFlagSet(FlagZero)
	case condZ:
		return c.isFlagSet(FlagZero)
	case condNC:
		return !c.isFlagSet(FlagCarry)
	case condC:
		return c.isFlagSet(FlagCarry)
	}
	panic(fmt.Errorf("%w: condition %d", ErrInvalidOperand, cc))
}
