package cpu

import "fmt"

// Every branch consumes its full encoding before deciding
// whether to branch, so a branch that is not taken leaves PC
// at the next instruction, and a call pushes the address of
// the instruction following it.

// jumpRelative reads a signed 8-bit displacement and, if
// condition holds, jumps relative to the next instruction.
//
//	JR e
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.fetchImmediate8())
	c.AdvancePC(1)
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
	}
}

// jumpAbsolute reads a 16-bit address and, if condition holds,
// jumps to it.
//
//	JP nn
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.fetchImmediate16()
	c.AdvancePC(1)
	if condition {
		c.PC = address
	}
}

// call reads a 16-bit address and, if condition holds, pushes
// the address of the next instruction onto the stack and jumps
// to it.
//
//	CALL nn
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) call(condition bool) {
	address := c.fetchImmediate16()
	c.AdvancePC(1)
	if condition {
		c.mmu.Push16(&c.SP, c.PC)
		c.PC = address
	}
}

// ret pops the return address off the stack into PC if
// condition holds.
//
//	RET
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) ret(condition bool) {
	c.AdvancePC(1)
	if condition {
		c.PC = c.mmu.Pop16(&c.SP)
	}
}

// restart pushes the address of the next instruction onto the
// stack and jumps to the fixed vector.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) restart(vector uint16) {
	c.AdvancePC(1)
	c.mmu.Push16(&c.SP, c.PC)
	c.PC = vector
}

func init() {
	defineBranch(0x18, "JR e8", 2, func(c *CPU) { c.jumpRelative(true) })
	defineBranch(0xC3, "JP a16", 3, func(c *CPU) { c.jumpAbsolute(true) })
	defineBranch(0xCD, "CALL a16", 3, func(c *CPU) { c.call(true) })
	defineBranch(0xC9, "RET", 1, func(c *CPU) { c.ret(true) })
	defineBranch(0xD9, "RETI", 1, func(c *CPU) {
		c.ret(true)
		c.IME = true
	})
	defineBranch(0xE9, "JP HL", 1, func(c *CPU) { c.PC = c.HL.Uint16() })

	for cc := condNZ; cc <= condC; cc++ {
		cc := cc
		defineBranch(0x20|uint8(cc)<<3, fmt.Sprintf("JR %s, e8", cc), 2, func(c *CPU) {
			c.jumpRelative(c.test(cc))
		})
		defineBranch(0xC2|uint8(cc)<<3, fmt.Sprintf("JP %s, a16", cc), 3, func(c *CPU) {
			c.jumpAbsolute(c.test(cc))
		})
		defineBranch(0xC4|uint8(cc)<<3, fmt.Sprintf("CALL %s, a16", cc), 3, func(c *CPU) {
			c.call(c.test(cc))
		})
		defineBranch(0xC0|uint8(cc)<<3, fmt.Sprintf("RET %s", cc), 1, func(c *CPU) {
			c.ret(c.test(cc))
		})
	}

	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) * 8
		defineBranch(0xC7|n<<3, fmt.Sprintf("RST %02XH", vector), 1, func(c *CPU) {
			c.restart(vector)
		})
	}
}
