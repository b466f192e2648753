// Package cartridge provides a read-only view of a cartridge
// image and its header.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// ErrNoHeader is returned for images too short to hold a header.
var ErrNoHeader = errors.New("image too short for a cartridge header")

// Cartridge represents a basic game cartridge.
type Cartridge struct {
	Header

	rom         []byte
	fingerprint uint64
}

// NewCartridge parses the header of rom (0x0100 - 0x014F).
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) <= HeaderEnd {
		return nil, fmt.Errorf("%w: %d bytes", ErrNoHeader, len(rom))
	}

	return &Cartridge{
		Header:      parseHeader(rom[HeaderStart : HeaderEnd+1]),
		rom:         rom,
		fingerprint: types.Fingerprint(rom),
	}, nil
}

// ROM returns the full cartridge image.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// Fingerprint returns the hash save states are bound to.
func (c *Cartridge) Fingerprint() uint64 {
	return c.fingerprint
}
