package cartridge

import (
	"fmt"
	"strings"
)

// HeaderStart and HeaderEnd bound the cartridge header.
const (
	HeaderStart = 0x0100
	HeaderEnd   = 0x014F
)

// newLicenseeMarker in the old licensee code selects the new one.
const newLicenseeMarker = 0x33

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the hardware the cartridge declares at 0x0147. Only
// ROM is mapped by this core, every other type still runs
// from its first two banks.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM ONLY",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0144-0x0145 - two character publisher code, only used
	// when OldLicenseeCode is 0x33
	NewLicenseeCode string
	// 0x014B - publisher code of older cartridges
	OldLicenseeCode uint8

	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16

	// checksum computed over 0x0134-0x014C
	computedChecksum uint8
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(header []byte) Header {
	h := Header{}

	// parse the title, padded with zeros
	h.Title = strings.TrimRight(string(header[0x34:0x44]), "\x00")

	h.NewLicenseeCode = strings.TrimRight(string(header[0x44:0x46]), "\x00")
	h.OldLicenseeCode = header[0x4B]

	// parse the cartridge type
	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)

	// parse the RAM size
	h.RAMSize = ramMAP[header[0x49]]

	// parse the header checksum
	h.HeaderChecksum = header[0x4D]
	for _, b := range header[0x34:0x4D] {
		h.computedChecksum = h.computedChecksum - b - 1
	}

	// parse the global checksum (big endian)
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// ValidChecksum returns true if the header checksum at 0x014D
// matches the bytes it covers. The boot ROM refuses to start
// a cartridge that fails this check.
func (h Header) ValidChecksum() bool {
	return h.HeaderChecksum == h.computedChecksum
}

// Licensee returns the publisher code of the cartridge, taken
// from the new licensee code when the old one defers to it.
func (h Header) Licensee() string {
	if h.OldLicenseeCode == newLicenseeMarker {
		return h.NewLicenseeCode
	}
	return fmt.Sprintf("%02X", h.OldLicenseeCode)
}

func (h Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
