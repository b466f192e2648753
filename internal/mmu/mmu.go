// Package mmu provides the memory map of the CPU. It decodes
// every 16-bit address to exactly one backing region and
// offset, and implements the stack on top of the same decoding.
package mmu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// ErrAddressDecode is wrapped by the panic raised when an
// address does not resolve to a region. The address space is
// fully mapped on construction, so this indicates a bug in
// the region table.
var ErrAddressDecode = errors.New("address decode failure")

// region is a contiguous block of the address space backed
// by a byte slice.
type region struct {
	name     string
	start    uint16
	data     []byte
	readOnly bool
}

// MMU is the memory map. It owns all addressable storage of
// the 64kB address space:
//
//	0x0000 - 0x3FFF - ROM bank 0 (16kB)
//	0x4000 - 0x7FFF - ROM bank 1 (16kB)
//	0x8000 - 0x9FFF - Video RAM (8kB)
//	0xA000 - 0xBFFF - External RAM (8kB)
//	0xC000 - 0xCFFF - Work RAM bank 0 (4kB)
//	0xD000 - 0xDFFF - Work RAM bank 1 (4kB)
//	0xE000 - 0xFDFF - Echo RAM, mirrors 0xC000 - 0xDDFF
//	0xFE00 - 0xFE9F - Sprite attribute table (160B)
//	0xFEA0 - 0xFEFF - Unusable (96B)
//	0xFF00 - 0xFF7F - I/O registers (128B)
//	0xFF80 - 0xFFFE - High RAM (127B)
//	0xFFFF          - Interrupt enable register
type MMU struct {
	// 64kB address space
	raw [65536]*region

	rom0 [0x4000]byte
	romX [0x4000]byte
	vram [0x2000]byte
	eram [0x2000]byte
	wram [0x2000]byte
	oam  [0xA0]byte
	gap  [0x60]byte
	io   [0x80]byte
	hram [0x7F]byte
	ie   [1]byte

	// the full cartridge image, of which the first two
	// banks are mapped
	rom []byte
}

// NewMMU returns a new MMU with every region zeroed.
func NewMMU() *MMU {
	m := &MMU{}
	m.init()
	return m
}

func (m *MMU) init() {
	regions := []*region{
		{name: "rom0", start: types.ROM0Start, data: m.rom0[:], readOnly: true},
		{name: "romX", start: types.ROMXStart, data: m.romX[:], readOnly: true},
		{name: "vram", start: types.VRAMStart, data: m.vram[:]},
		{name: "eram", start: types.ERAMStart, data: m.eram[:]},
		{name: "wram0", start: types.WRAM0Start, data: m.wram[:0x1000]},
		{name: "wramX", start: types.WRAMXStart, data: m.wram[0x1000:]},
		{name: "echo", start: types.EchoStart, data: m.wram[:int(types.EchoEnd-types.EchoStart)+1]},
		{name: "oam", start: types.OAMStart, data: m.oam[:]},
		{name: "unusable", start: types.UnusableStart, data: m.gap[:]},
		{name: "io", start: types.IOStart, data: m.io[:]},
		{name: "hram", start: types.HRAMStart, data: m.hram[:]},
		{name: "ie", start: types.IE, data: m.ie[:]},
	}

	for _, r := range regions {
		for i := range r.data {
			m.raw[int(r.start)+i] = r
		}
	}
}

// decode resolves address to its backing region and the
// offset within that region.
func (m *MMU) decode(address uint16) (*region, uint16) {
	r := m.raw[address]
	if r == nil {
		panic(fmt.Errorf("%w: 0x%04X", ErrAddressDecode, address))
	}
	return r, address - r.start
}

// Region returns the name of the region address decodes to.
func (m *MMU) Region(address uint16) string {
	r, _ := m.decode(address)
	return r.name
}

// Read returns the byte currently backing address.
func (m *MMU) Read(address uint16) uint8 {
	r, offset := m.decode(address)
	return r.data[offset]
}

// Write stores value at address. Writes to either ROM bank
// are ignored, as there is no mapper to receive them.
func (m *MMU) Write(address uint16, value uint8) {
	r, offset := m.decode(address)
	if r.readOnly {
		return
	}
	r.data[offset] = value
}

// Read16 reads a little-endian word, the low byte at address
// and the high byte at address+1.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian word, the low byte at address
// and the high byte at address+1.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// AddInPlace adds delta to the byte at address, decoding the
// address once, and returns the byte before and after the
// addition. The result is discarded for read-only regions.
func (m *MMU) AddInPlace(address uint16, delta uint8) (before, after uint8) {
	r, offset := m.decode(address)
	before = r.data[offset]
	after = before + delta
	if !r.readOnly {
		r.data[offset] = after
	}
	return before, after
}

// AddInPlace16 adds delta to the little-endian word at address.
// The carry out of the low byte propagates into the high byte.
func (m *MMU) AddInPlace16(address uint16, delta uint16) (before, after uint16) {
	before = m.Read16(address)
	after = before + delta
	m.Write16(address, after)
	return before, after
}

// LoadROM maps the given cartridge image. The first 16kB are
// mapped to bank 0 and the next 16kB to bank 1, zero filling
// any part not covered by the image.
func (m *MMU) LoadROM(image []byte) error {
	switch {
	case len(image) == 0:
		return errors.New("empty ROM image")
	case len(image) > maxROMSize:
		return fmt.Errorf("ROM image too large: %d bytes (max %d)", len(image), maxROMSize)
	}

	m.rom = append([]byte(nil), image...)
	m.rom0 = [0x4000]byte{}
	m.romX = [0x4000]byte{}
	n := copy(m.rom0[:], image)
	if n < len(image) {
		copy(m.romX[:], image[n:])
	}

	return nil
}

// maxROMSize is the largest image a cartridge header can describe (8MB).
const maxROMSize = 0x800000

// ROM returns the loaded cartridge image.
func (m *MMU) ROM() []byte {
	return m.rom
}

// Reset clears every writable region. The mapped ROM banks
// are left untouched.
func (m *MMU) Reset() {
	m.vram = [0x2000]byte{}
	m.eram = [0x2000]byte{}
	m.wram = [0x2000]byte{}
	m.oam = [0xA0]byte{}
	m.gap = [0x60]byte{}
	m.io = [0x80]byte{}
	m.hram = [0x7F]byte{}
	m.ie = [1]byte{}
}

var _ types.Stater = (*MMU)(nil)

// Load restores every writable region from the state.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.vram[:])
	s.ReadData(m.eram[:])
	s.ReadData(m.wram[:])
	s.ReadData(m.oam[:])
	s.ReadData(m.gap[:])
	s.ReadData(m.io[:])
	s.ReadData(m.hram[:])
	m.ie[0] = s.Read8()
}

// Save writes every writable region to the state.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.vram[:])
	s.WriteData(m.eram[:])
	s.WriteData(m.wram[:])
	s.WriteData(m.oam[:])
	s.WriteData(m.gap[:])
	s.WriteData(m.io[:])
	s.WriteData(m.hram[:])
	s.Write8(m.ie[0])
}
