package cpu

import "github.com/thelolagemann/sm83/internal/types"

// The accumulator rotates always reset the zero flag, unlike
// their prefixed counterparts.

// rotateLeftCarryAccumulator rotates A left by 1 bit. Bit 7 is
// copied to both the carry flag and bit 0.
//
//	RLCA
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarryAccumulator() {
	carry := c.A & types.Bit7
	c.A = c.A<<1 | carry>>7
	c.setFlags(false, false, false, carry == types.Bit7)
}

// rotateRightCarryAccumulator rotates A right by 1 bit. Bit 0
// is copied to both the carry flag and bit 7.
//
//	RRCA
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarryAccumulator() {
	carry := c.A & types.Bit0
	c.A = c.A>>1 | carry<<7
	c.setFlags(false, false, false, carry == types.Bit0)
}

// rotateLeftAccumulatorThroughCarry rotates A left by 1 bit
// through the carry flag.
//
//	RLA
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftAccumulatorThroughCarry() {
	out := c.A & types.Bit7
	c.A = c.A<<1 | c.carryBit()
	c.setFlags(false, false, false, out == types.Bit7)
}

// rotateRightAccumulatorThroughCarry rotates A right by 1 bit
// through the carry flag.
//
//	RRA
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightAccumulatorThroughCarry() {
	out := c.A & types.Bit0
	c.A = c.A>>1 | c.carryBit()<<7
	c.setFlags(false, false, false, out == types.Bit0)
}

func init() {
	define(0x07, "RLCA", 1, (*CPU).rotateLeftCarryAccumulator)
	define(0x0F, "RRCA", 1, (*CPU).rotateRightCarryAccumulator)
	define(0x17, "RLA", 1, (*CPU).rotateLeftAccumulatorThroughCarry)
	define(0x1F, "RRA", 1, (*CPU).rotateRightAccumulatorThroughCarry)
}
