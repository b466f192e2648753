package cpu

import "fmt"

// loadIndirectHL loads between A and (HL), then moves HL by
// delta, as used by LD (HL+), A and friends.
//
//	LD (HL+), A
//	LD (HL-), A
//	LD A, (HL+)
//	LD A, (HL-)
func (c *CPU) loadIndirectHL(toMemory bool, delta uint16) {
	address := c.HL.Uint16()
	if toMemory {
		c.mmu.Write(address, c.A)
	} else {
		c.A = c.mmu.Read(address)
	}
	c.HL.SetUint16(address + delta)
}

// push pushes the value of the given operand onto the stack.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
func (c *CPU) push(rr reg16) {
	c.mmu.Push16(&c.SP, c.read16(rr))
}

// pop pops the top of the stack into the given operand. Popping
// into AF discards the lower nibble of F.
//
//	POP nn
//	nn = AF, BC, DE, HL
//
// Flags affected (POP AF only):
//
//	Z, N, H, C - Loaded from the stack.
func (c *CPU) pop(rr reg16) {
	c.write16(rr, c.mmu.Pop16(&c.SP))
}

func init() {
	// 0x40 - 0x7F - LD r, r (0x76 is HALT)
	for dst := regB; dst <= regA; dst++ {
		for src := regB; src <= regA; src++ {
			if dst == regHLIndirect && src == regHLIndirect {
				continue
			}
			dst, src := dst, src
			define(0x40|uint8(dst)<<3|uint8(src), fmt.Sprintf("LD %s, %s", dst, src), 1, func(c *CPU) {
				c.write8(dst, c.read8(src))
			})
		}

		// 0x06 - 0x3E - LD r, d8
		dst := dst
		define(0x06|uint8(dst)<<3, fmt.Sprintf("LD %s, d8", dst), 2, func(c *CPU) {
			c.write8(dst, c.fetchImmediate8())
		})
	}

	// 0x01 - 0x31 - LD rr, d16
	for rr := pairBC; rr <= pairSP; rr++ {
		rr := rr
		define(0x01|uint8(rr)<<4, fmt.Sprintf("LD %s, d16", rr), 3, func(c *CPU) {
			c.write16(rr, c.fetchImmediate16())
		})
	}

	// 0xC1 - 0xF5 - POP rr, PUSH rr
	for i, rr := range []reg16{pairBC, pairDE, pairHL, pairAF} {
		rr := rr
		define(0xC1|uint8(i)<<4, "POP "+rr.String(), 1, func(c *CPU) { c.pop(rr) })
		define(0xC5|uint8(i)<<4, "PUSH "+rr.String(), 1, func(c *CPU) { c.push(rr) })
	}

	define(0x02, "LD (BC), A", 1, func(c *CPU) { c.mmu.Write(c.BC.Uint16(), c.A) })
	define(0x12, "LD (DE), A", 1, func(c *CPU) { c.mmu.Write(c.DE.Uint16(), c.A) })
	define(0x22, "LD (HL+), A", 1, func(c *CPU) { c.loadIndirectHL(true, 1) })
	define(0x32, "LD (HL-), A", 1, func(c *CPU) { c.loadIndirectHL(true, 0xFFFF) })
	define(0x0A, "LD A, (BC)", 1, func(c *CPU) { c.A = c.mmu.Read(c.BC.Uint16()) })
	define(0x1A, "LD A, (DE)", 1, func(c *CPU) { c.A = c.mmu.Read(c.DE.Uint16()) })
	define(0x2A, "LD A, (HL+)", 1, func(c *CPU) { c.loadIndirectHL(false, 1) })
	define(0x3A, "LD A, (HL-)", 1, func(c *CPU) { c.loadIndirectHL(false, 0xFFFF) })

	define(0x08, "LD (a16), SP", 3, func(c *CPU) {
		c.mmu.Write16(c.fetchImmediate16(), c.SP)
	})

	define(0xE0, "LDH (a8), A", 2, func(c *CPU) {
		c.mmu.Write(0xFF00+uint16(c.fetchImmediate8()), c.A)
	})
	define(0xF0, "LDH A, (a8)", 2, func(c *CPU) {
		c.A = c.mmu.Read(0xFF00 + uint16(c.fetchImmediate8()))
	})
	define(0xE2, "LD (C), A", 1, func(c *CPU) { c.mmu.Write(0xFF00+uint16(c.C), c.A) })
	define(0xF2, "LD A, (C)", 1, func(c *CPU) { c.A = c.mmu.Read(0xFF00 + uint16(c.C)) })
	define(0xEA, "LD (a16), A", 3, func(c *CPU) {
		c.mmu.Write(c.fetchImmediate16(), c.A)
	})
	define(0xFA, "LD A, (a16)", 3, func(c *CPU) {
		c.A = c.mmu.Read(c.fetchImmediate16())
	})

	define(0xF8, "LD HL, SP+e8", 2, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.fetchImmediate8()))
	})
	define(0xF9, "LD SP, HL", 1, func(c *CPU) { c.SP = c.HL.Uint16() })
}
