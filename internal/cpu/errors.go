package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/mmu"
)

var (
	// ErrUndefinedOpcode is returned when the fetched opcode is
	// reserved on this processor.
	ErrUndefinedOpcode = errors.New("undefined opcode")
	// ErrAddressDecode is returned when an address failed to
	// resolve to a region of the memory map.
	ErrAddressDecode = mmu.ErrAddressDecode
	// ErrInvalidOperand is raised when an operand selector cannot
	// be resolved from an opcode's encoding.
	ErrInvalidOperand = errors.New("invalid operand combination")
	// ErrUnimplemented is returned by opcodes whose behaviour
	// depends on hardware this core does not emulate.
	ErrUnimplemented = errors.New("unimplemented feature")
)

// Error describes a failed step, together with the state of
// the CPU at the time of the failure.
type Error struct {
	// Kind is one of ErrUndefinedOpcode, ErrAddressDecode,
	// ErrInvalidOperand or ErrUnimplemented.
	Kind      error
	Opcode    uint8
	PC        uint16
	Registers Snapshot
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: opcode 0x%02X at 0x%04X (%s)", e.Kind, e.Opcode, e.PC, e.Registers)
}

func (e *Error) Unwrap() error {
	return e.Kind
}
