package cpu

import (
	"context"
	"errors"
	"testing"

	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
)

// programStart is where test programs are placed, ROM cannot be
// written to after it has been loaded.
const programStart = 0xC000

// newTestCPU returns a CPU with the given program loaded at
// programStart, PC pointing at it and the stack at the top of
// HRAM.
func newTestCPU(program ...uint8) *CPU {
	c := NewCPU(mmu.NewMMU())
	c.PC = programStart
	c.SP = 0xFFFE
	for i, b := range program {
		c.mmu.Write(programStart+uint16(i), b)
	}
	return c
}

// testInstruction runs fn as a subtest against a fresh CPU, after
// checking that opcode decodes to the expected instruction.
func testInstruction(t *testing.T, name string, opcode uint8, fn func(t *testing.T, c *CPU)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if InstructionSet[opcode].Name() != name {
			t.Fatalf("expected opcode 0x%02X to be %q, got %q", opcode, name, InstructionSet[opcode].Name())
		}
		fn(t, newTestCPU())
	})
}

// execute places the opcode and its operands at PC and steps once.
func execute(t *testing.T, c *CPU, opcode uint8, operands ...uint8) Trace {
	t.Helper()
	c.mmu.Write(c.PC, opcode)
	for i, b := range operands {
		c.mmu.Write(c.PC+1+uint16(i), b)
	}
	trace, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected error executing 0x%02X: %v", opcode, err)
	}
	return trace
}

func TestCPU_Step(t *testing.T) {
	c := newTestCPU(0x3E, 0x42, 0x00)

	trace, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if trace.PC != programStart || trace.Opcode != 0x3E || trace.Name != "LD A, d8" {
		t.Errorf("unexpected trace %+v", trace)
	}
	if trace.Registers.A != 0x42 || trace.Registers.PC != programStart+2 {
		t.Errorf("expected A=0x42 PC=0x%04X, got %s", programStart+2, trace.Registers)
	}
	if trace.Mode != ModeNormal {
		t.Errorf("expected mode %s, got %s", ModeNormal, trace.Mode)
	}
}

func TestCPU_Errors(t *testing.T) {
	t.Run("undefined opcodes", func(t *testing.T) {
		for _, opcode := range undefinedOpcodes {
			c := newTestCPU(opcode)
			c.A = 0x12

			_, err := c.Step()
			if !errors.Is(err, ErrUndefinedOpcode) {
				t.Fatalf("0x%02X: expected %v, got %v", opcode, ErrUndefinedOpcode, err)
			}
			var cpuErr *Error
			if !errors.As(err, &cpuErr) {
				t.Fatalf("0x%02X: expected *Error, got %T", opcode, err)
			}
			if cpuErr.Opcode != opcode || cpuErr.PC != programStart || cpuErr.Registers.A != 0x12 {
				t.Errorf("0x%02X: error did not capture the failing state: %v", opcode, cpuErr)
			}
			if c.PC != programStart {
				t.Errorf("0x%02X: expected PC to stay at 0x%04X, got 0x%04X", opcode, programStart, c.PC)
			}
		}
	})
	t.Run("prefix", func(t *testing.T) {
		c := newTestCPU(0xCB, 0x37)
		if _, err := c.Step(); !errors.Is(err, ErrUnimplemented) {
			t.Fatalf("expected %v, got %v", ErrUnimplemented, err)
		}
		if c.PC != programStart {
			t.Errorf("expected PC to stay at 0x%04X, got 0x%04X", programStart, c.PC)
		}
	})
	t.Run("stop", func(t *testing.T) {
		c := newTestCPU(0x10, 0x00)
		if _, err := c.Step(); !errors.Is(err, ErrUnimplemented) {
			t.Fatalf("expected %v, got %v", ErrUnimplemented, err)
		}
		if c.PC != programStart+2 {
			t.Errorf("expected PC 0x%04X, got 0x%04X", programStart+2, c.PC)
		}
	})
}

func TestCPU_Run(t *testing.T) {
	t.Run("limit", func(t *testing.T) {
		// JR -2, loops forever
		c := newTestCPU(0x18, 0xFE)
		var observed int
		n, err := c.Run(context.Background(), 10, func(trace Trace) {
			observed++
			if trace.Registers.PC != programStart {
				t.Errorf("expected PC 0x%04X, got 0x%04X", programStart, trace.Registers.PC)
			}
		})
		if err != nil {
			t.Fatal(err)
		}
		if n != 10 || observed != 10 {
			t.Errorf("expected 10 steps, ran %d and observed %d", n, observed)
		}
	})
	t.Run("stops on error", func(t *testing.T) {
		c := newTestCPU(0x00, 0x00, 0xD3)
		n, err := c.Run(context.Background(), 0, nil)
		if !errors.Is(err, ErrUndefinedOpcode) {
			t.Fatalf("expected %v, got %v", ErrUndefinedOpcode, err)
		}
		if n != 2 {
			t.Errorf("expected 2 steps, got %d", n)
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		c := newTestCPU(0x18, 0xFE)
		ctx, cancel := context.WithCancel(context.Background())
		n, err := c.Run(ctx, 0, func(trace Trace) {
			cancel()
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected %v, got %v", context.Canceled, err)
		}
		if n != 1 {
			t.Errorf("expected 1 step, got %d", n)
		}
	})
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("serviced after instruction", func(t *testing.T) {
		c := newTestCPU(0x00)
		c.IME = true
		c.mmu.Write(types.IE, types.Bit2|types.Bit0)
		c.mmu.Write(types.IF, types.Bit2)

		trace, _ := c.Step()
		if !trace.Interrupt {
			t.Fatal("expected interrupt to be serviced")
		}
		if c.PC != 0x0050 {
			t.Errorf("expected PC 0x0050, got 0x%04X", c.PC)
		}
		if c.IME {
			t.Error("expected IME to be cleared")
		}
		if c.mmu.Read(types.IF)&types.Bit2 != 0 {
			t.Error("expected request to be acknowledged")
		}
		if c.SP != 0xFFFC || c.mmu.Read16(0xFFFC) != programStart+1 {
			t.Errorf("expected 0x%04X on the stack, got 0x%04X", programStart+1, c.mmu.Read16(0xFFFC))
		}
	})
	t.Run("priority", func(t *testing.T) {
		c := newTestCPU(0x00)
		c.IME = true
		c.mmu.Write(types.IE, 0x1F)
		c.mmu.Write(types.IF, types.Bit4|types.Bit1)

		c.Step()
		if c.PC != 0x0048 {
			t.Errorf("expected PC 0x0048, got 0x%04X", c.PC)
		}
		if c.mmu.Read(types.IF)&types.InterruptMask != types.Bit4 {
			t.Errorf("expected only bit 4 left requested, got 0x%02X", c.mmu.Read(types.IF))
		}
	})
	t.Run("masked", func(t *testing.T) {
		c := newTestCPU(0x00)
		c.IME = true
		c.mmu.Write(types.IE, types.Bit0)
		c.mmu.Write(types.IF, types.Bit1)

		c.Step()
		if c.PC != programStart+1 {
			t.Errorf("expected PC 0x%04X, got 0x%04X", programStart+1, c.PC)
		}
	})
	t.Run("ime disabled", func(t *testing.T) {
		c := newTestCPU(0x00)
		c.mmu.Write(types.IE, types.Bit0)
		c.mmu.Write(types.IF, types.Bit0)

		c.Step()
		if c.PC != programStart+1 {
			t.Errorf("expected PC 0x%04X, got 0x%04X", programStart+1, c.PC)
		}
	})
}

func TestCPU_State(t *testing.T) {
	c := newTestCPU()
	c.ResetPostBoot()
	c.IME = true
	c.imeDelay = 1
	c.mode = ModeHalt

	s := types.NewState()
	c.Save(s)

	restored := NewCPU(mmu.NewMMU())
	restored.Load(types.StateFromBytes(s.Bytes()))

	if restored.Snapshot() != c.Snapshot() {
		t.Errorf("expected %s, got %s", c.Snapshot(), restored.Snapshot())
	}
	if !restored.IME || restored.imeDelay != 1 || restored.Mode() != ModeHalt {
		t.Errorf("expected IME, delay and mode to be restored")
	}
	if restored.AF.Uint16() != 0x01B0 {
		t.Errorf("expected pairs to view the restored registers, got AF=0x%04X", restored.AF.Uint16())
	}
}
