package cpu

import "testing"

func TestInstruction_Load(t *testing.T) {
	// 0x40 - 0x7F - every register to register load
	for dst := regB; dst <= regA; dst++ {
		for src := regB; src <= regA; src++ {
			if dst == regHLIndirect && src == regHLIndirect {
				continue
			}
			dst, src := dst, src
			opcode := 0x40 | uint8(dst)<<3 | uint8(src)
			testInstruction(t, "LD "+dst.String()+", "+src.String(), opcode, func(t *testing.T, c *CPU) {
				c.HL.SetUint16(0xC100)
				c.write8(src, 0xC1)
				execute(t, c, opcode)
				if v := c.read8(dst); v != 0xC1 {
					t.Errorf("expected %s to be 0xC1, got 0x%02X", dst, v)
				}
			})
		}
	}

	testInstruction(t, "LD (HL), d8", 0x36, func(t *testing.T, c *CPU) {
		for i := 0; i < 0xFF; i++ {
			c.PC = programStart
			c.HL.SetUint16(0xC100)
			execute(t, c, 0x36, uint8(i))
			if v := c.mmu.Read(0xC100); v != uint8(i) {
				t.Errorf("expected 0x%02X at 0xC100, got 0x%02X", i, v)
			}
		}
	})
	testInstruction(t, "LD SP, d16", 0x31, func(t *testing.T, c *CPU) {
		execute(t, c, 0x31, 0x34, 0x12)
		if c.SP != 0x1234 {
			t.Errorf("expected SP to be 0x1234, got 0x%04X", c.SP)
		}
	})
	testInstruction(t, "LD (BC), A", 0x02, func(t *testing.T, c *CPU) {
		c.A = 0x42
		c.BC.SetUint16(0xC234)
		execute(t, c, 0x02)
		if v := c.mmu.Read(0xC234); v != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", v)
		}
	})
	testInstruction(t, "LD A, (DE)", 0x1A, func(t *testing.T, c *CPU) {
		c.DE.SetUint16(0xC234)
		c.mmu.Write(0xC234, 0x42)
		execute(t, c, 0x1A)
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
	})
	testInstruction(t, "LD (HL+), A", 0x22, func(t *testing.T, c *CPU) {
		c.A = 0x42
		c.HL.SetUint16(0xC234)
		execute(t, c, 0x22)
		if v := c.mmu.Read(0xC234); v != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", v)
		}
		if c.HL.Uint16() != 0xC235 {
			t.Errorf("expected HL to be 0xC235, got 0x%04X", c.HL.Uint16())
		}
	})
	testInstruction(t, "LD A, (HL-)", 0x3A, func(t *testing.T, c *CPU) {
		c.HL.SetUint16(0xC234)
		c.mmu.Write(0xC234, 0x42)
		execute(t, c, 0x3A)
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
		if c.HL.Uint16() != 0xC233 {
			t.Errorf("expected HL to be 0xC233, got 0x%04X", c.HL.Uint16())
		}
	})
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, c *CPU) {
		c.SP = 0xBEEF
		execute(t, c, 0x08, 0x00, 0xC2)
		if c.mmu.Read(0xC200) != 0xEF || c.mmu.Read(0xC201) != 0xBE {
			t.Errorf("expected 0xEF 0xBE at 0xC200, got 0x%02X 0x%02X", c.mmu.Read(0xC200), c.mmu.Read(0xC201))
		}
	})
	testInstruction(t, "LDH (a8), A", 0xE0, func(t *testing.T, c *CPU) {
		c.A = 0x42
		execute(t, c, 0xE0, 0x80)
		if v := c.mmu.Read(0xFF80); v != 0x42 {
			t.Errorf("expected 0x42 at 0xFF80, got 0x%02X", v)
		}
	})
	testInstruction(t, "LD A, (C)", 0xF2, func(t *testing.T, c *CPU) {
		c.C = 0x81
		c.mmu.Write(0xFF81, 0x42)
		execute(t, c, 0xF2)
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
	})
	testInstruction(t, "LD A, (a16)", 0xFA, func(t *testing.T, c *CPU) {
		c.mmu.Write(0xC234, 0x42)
		execute(t, c, 0xFA, 0x34, 0xC2)
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
	})
	testInstruction(t, "LD SP, HL", 0xF9, func(t *testing.T, c *CPU) {
		c.HL.SetUint16(0xDFF0)
		execute(t, c, 0xF9)
		if c.SP != 0xDFF0 {
			t.Errorf("expected SP to be 0xDFF0, got 0x%04X", c.SP)
		}
	})
}

func TestInstruction_Stack(t *testing.T) {
	testInstruction(t, "PUSH BC", 0xC5, func(t *testing.T, c *CPU) {
		c.BC.SetUint16(0x1234)
		execute(t, c, 0xC5)
		if c.SP != 0xFFFC {
			t.Errorf("expected SP to be 0xFFFC, got 0x%04X", c.SP)
		}
		if c.mmu.Read(0xFFFD) != 0x12 || c.mmu.Read(0xFFFC) != 0x34 {
			t.Errorf("expected 0x12 at 0xFFFD and 0x34 at 0xFFFC")
		}
	})
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, c *CPU) {
		c.mmu.Push16(&c.SP, 0x12FF)
		execute(t, c, 0xF1)
		if c.A != 0x12 || c.F != 0xF0 {
			t.Errorf("expected A=0x12 F=0xF0, got A=0x%02X F=0x%02X", c.A, c.F)
		}
		if c.SP != 0xFFFE {
			t.Errorf("expected SP to be 0xFFFE, got 0x%04X", c.SP)
		}
	})
}

func TestScenario_PushPop(t *testing.T) {
	// PUSH BC; POP DE
	c := newTestCPU(0xC5, 0xD1)
	c.BC.SetUint16(0x1234)

	for i := 0; i < 2; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.DE.Uint16() != 0x1234 {
		t.Errorf("expected DE to be 0x1234, got 0x%04X", c.DE.Uint16())
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP to be 0xFFFE, got 0x%04X", c.SP)
	}
}
