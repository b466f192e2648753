package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// add adds n (and the carry flag, if useCarry) to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, useCarry bool) {
	var carry uint8
	if useCarry {
		carry = c.carryBit()
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	half := c.A&types.LowNibble + n&types.LowNibble + carry

	c.setFlags(uint8(sum) == 0, false, half > types.LowNibble, sum > 0xFF)
	c.A = uint8(sum)
}

// subtract subtracts n (and the carry flag, if useCarry) from the
// A Register and returns the result, leaving A untouched.
//
//	SUB n
//	SBC A, n
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subtract(n uint8, useCarry bool) uint8 {
	var borrow uint8
	if useCarry {
		borrow = c.carryBit()
	}
	diff := int16(c.A) - int16(n) - int16(borrow)
	half := int16(c.A&types.LowNibble) - int16(n&types.LowNibble) - int16(borrow)

	result := uint8(diff)
	c.setFlags(result == 0, true, half < 0, diff < 0)
	return result
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 1
	c.setFlags(incremented == 0, false, n&types.LowNibble == types.LowNibble, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 1
	c.setFlags(decremented == 0, true, n&types.LowNibble == 0, c.isFlagSet(FlagCarry))
	return decremented
}

// incrementIndirect increments the byte at (HL) in place.
func (c *CPU) incrementIndirect() {
	before, after := c.mmu.AddInPlace(c.HL.Uint16(), 1)
	c.setFlags(after == 0, false, before&types.LowNibble == types.LowNibble, c.isFlagSet(FlagCarry))
}

// decrementIndirect decrements the byte at (HL) in place.
func (c *CPU) decrementIndirect() {
	before, after := c.mmu.AddInPlace(c.HL.Uint16(), 0xFF)
	c.setFlags(after == 0, true, before&types.LowNibble == 0, c.isFlagSet(FlagCarry))
}

// addHL adds n to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, hl&types.LowTwelve+n&types.LowTwelve > types.LowTwelve, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed offset e. The flags are
// computed from the unsigned addition of the low byte of SP and e.
//
//	ADD SP, e8
//	LD HL, SP+e8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	sp := c.SP
	c.setFlags(false, false,
		sp&types.LowNibble+uint16(e&types.LowNibble) > types.LowNibble,
		sp&0xFF+uint16(e) > 0xFF)
	return uint16(int32(sp) + int32(int8(e)))
}

// decimalAdjust adjusts the A Register to hold the binary coded
// decimal result of the previous addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	var adjust uint8
	if !c.isFlagSet(FlagSubtract) {
		if carry || c.A > 0x99 {
			adjust |= 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&types.LowNibble > 0x09 {
			adjust |= 0x06
		}
		c.A += adjust
	} else {
		if carry {
			adjust |= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			adjust |= 0x06
		}
		c.A -= adjust
	}
	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}

// aluOps are the 8 operations encoded by bits 3-5 of
// 0x80 - 0xBF and of the immediate forms 0xC6 - 0xFE.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.A = c.subtract(n, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.A = c.subtract(n, true) }},
	{"AND", func(c *CPU, n uint8) { c.and(n) }},
	{"XOR", func(c *CPU, n uint8) { c.xor(n) }},
	{"OR", func(c *CPU, n uint8) { c.or(n) }},
	{"CP", func(c *CPU, n uint8) { c.subtract(n, false) }},
}

func init() {
	for i, op := range aluOps {
		op := op

		// 0x80 - 0xBF - op A, r
		for r := regB; r <= regA; r++ {
			r := r
			define(0x80|uint8(i)<<3|uint8(r), fmt.Sprintf("%s %s", op.name, r), 1, func(c *CPU) {
				op.fn(c, c.read8(r))
			})
		}

		// 0xC6 - 0xFE - op A, d8
		define(0xC6|uint8(i)<<3, op.name+" d8", 2, func(c *CPU) {
			op.fn(c, c.fetchImmediate8())
		})
	}

	// 0x04 - 0x3D - INC r, DEC r
	for r := regB; r <= regA; r++ {
		r := r
		if r == regHLIndirect {
			define(0x34, "INC (HL)", 1, (*CPU).incrementIndirect)
			define(0x35, "DEC (HL)", 1, (*CPU).decrementIndirect)
			continue
		}
		define(0x04|uint8(r)<<3, "INC "+r.String(), 1, func(c *CPU) {
			*c.register(r) = c.increment(*c.register(r))
		})
		define(0x05|uint8(r)<<3, "DEC "+r.String(), 1, func(c *CPU) {
			*c.register(r) = c.decrement(*c.register(r))
		})
	}

	// 0x03 - 0x3B - INC rr, DEC rr, ADD HL, rr
	for rr := pairBC; rr <= pairSP; rr++ {
		rr := rr
		define(0x03|uint8(rr)<<4, "INC "+rr.String(), 1, func(c *CPU) {
			c.write16(rr, c.read16(rr)+1)
		})
		define(0x0B|uint8(rr)<<4, "DEC "+rr.String(), 1, func(c *CPU) {
			c.write16(rr, c.read16(rr)-1)
		})
		define(0x09|uint8(rr)<<4, "ADD HL, "+rr.String(), 1, func(c *CPU) {
			c.addHL(c.read16(rr))
		})
	}

	define(0xE8, "ADD SP, e8", 2, func(c *CPU) {
		c.SP = c.addSPSigned(c.fetchImmediate8())
	})
	define(0x27, "DAA", 1, (*CPU).decimalAdjust)
	define(0x2F, "CPL", 1, func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	define(0x37, "SCF", 1, func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	define(0x3F, "CCF", 1, func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
}
