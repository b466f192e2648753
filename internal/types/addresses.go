package types

// Address bounds of the memory map. Every region is described
// by an inclusive start and end address, and together they
// cover 0x0000 - 0xFFFF without gaps or overlaps.
const (
	// ROM0Start is the start of the fixed ROM bank, which always
	// holds the first 16kB of the cartridge image.
	ROM0Start uint16 = 0x0000
	ROM0End   uint16 = 0x3FFF
	// ROMXStart is the start of the switchable ROM bank. Without
	// a mapper it holds the second 16kB of the cartridge image.
	ROMXStart uint16 = 0x4000
	ROMXEnd   uint16 = 0x7FFF
	// VRAMStart is the start of video RAM (8kB).
	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9FFF
	// ERAMStart is the start of external (cartridge) RAM (8kB).
	ERAMStart uint16 = 0xA000
	ERAMEnd   uint16 = 0xBFFF
	// WRAM0Start is the start of the fixed work RAM bank (4kB).
	WRAM0Start uint16 = 0xC000
	WRAM0End   uint16 = 0xCFFF
	// WRAMXStart is the start of the second work RAM bank (4kB).
	WRAMXStart uint16 = 0xD000
	WRAMXEnd   uint16 = 0xDFFF
	// EchoStart is the start of echo RAM, a mirror of 0xC000 - 0xDDFF.
	EchoStart uint16 = 0xE000
	EchoEnd   uint16 = 0xFDFF
	// OAMStart is the start of the sprite attribute table (160B).
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F
	// UnusableStart is the start of the unusable gap (96B).
	UnusableStart uint16 = 0xFEA0
	UnusableEnd   uint16 = 0xFEFF
	// IOStart is the start of the I/O port registers (128B).
	IOStart uint16 = 0xFF00
	IOEnd   uint16 = 0xFF7F
	// HRAMStart is the start of high RAM (127B).
	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE
)

// HardwareAddress represents the address of a hardware
// register mapped into the I/O region or 0xFFFF.
type HardwareAddress = uint16

const (
	// IF is the address of the interrupt flag register. Bits
	// 0-4 request the VBlank, LCD, Timer, Serial and Joypad
	// interrupts respectively.
	IF HardwareAddress = 0xFF0F
	// IE is the address of the interrupt enable register, which
	// uses the same bit layout as IF.
	IE HardwareAddress = 0xFFFF
)

// InterruptMask selects the five interrupt bits of IF and IE.
const InterruptMask = 0x1F

// EntryPoint is the address execution begins at once the
// boot ROM has handed control to the cartridge.
const EntryPoint uint16 = 0x0100
