package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// Flag is the bit index of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flag returns true if the given flag is set in F.
func (r *Registers) Flag(flag Flag) bool {
	return bits.Test(r.F, flag)
}

// SetFlag sets or clears the given flag in F, leaving the
// other flags untouched.
func (r *Registers) SetFlag(flag Flag, value bool) {
	r.F = bits.Assign(r.F, flag, value)
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = bits.Reset(c.F, flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = bits.Set(c.F, flag)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.Flag(flag)
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	f = bits.Assign(f, FlagZero, zero)
	f = bits.Assign(f, FlagSubtract, subtract)
	f = bits.Assign(f, FlagHalfCarry, halfCarry)
	f = bits.Assign(f, FlagCarry, carry)
	c.F = f
}

// carryBit returns the carry flag as 0 or 1.
func (c *CPU) carryBit() uint8 {
	return bits.Val(c.F, FlagCarry)
}
