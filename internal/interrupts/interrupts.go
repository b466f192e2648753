// Package interrupts provides access to the interrupt flag (IF)
// and interrupt enable (IE) registers of the memory map.
package interrupts

import (
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/bits"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4).
	JoypadFlag = types.Bit4
)

// Request requests the given interrupts, by setting the
// corresponding bits in IF.
func Request(m *mmu.MMU, flags uint8) {
	m.Write(types.IF, m.Read(types.IF)|flags&types.InterruptMask)
}

// Enable sets the given bits in IE.
func Enable(m *mmu.MMU, flags uint8) {
	m.Write(types.IE, m.Read(types.IE)|flags&types.InterruptMask)
}

// Pending returns the interrupts that are both requested and
// enabled.
func Pending(m *mmu.MMU) uint8 {
	return m.Read(types.IE) & m.Read(types.IF) & types.InterruptMask
}

// Next returns the bit of the highest priority pending
// interrupt. Lower bits take priority.
func Next(m *mmu.MMU) (uint8, bool) {
	return bits.Lowest(Pending(m))
}

// Acknowledge clears the request for the interrupt with the
// given bit.
func Acknowledge(m *mmu.MMU, bit uint8) {
	m.Write(types.IF, bits.Reset(m.Read(types.IF), bit))
}

// Vector returns the address the CPU jumps to when servicing
// the interrupt with the given bit (0-4).
func Vector(bit uint8) uint16 {
	return 0x0040 + uint16(bit)*8
}
