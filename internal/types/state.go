package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
)

var (
	// ErrInvalidState is returned when decoding data that is
	// not an encoded state.
	ErrInvalidState = errors.New("invalid state")
	// ErrStateMismatch is returned when a state was saved
	// while running a different ROM image.
	ErrStateMismatch = errors.New("state was saved for a different ROM")
)

const (
	stateMagic   = "SM83"
	stateVersion = 1
	// magic + version + rom fingerprint
	stateHeaderLen = len(stateMagic) + 1 + 8
)

// State represents the emulator state. This is used to
// save and load states between runs.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error  // first read past the end of raw
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// Fingerprint returns the hash used to bind a state to the
// ROM image it was created with.
func Fingerprint(rom []byte) uint64 {
	return xxhash.Sum64(rom)
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// need reports whether n more bytes can be read, recording
// ErrInvalidState otherwise.
func (s *State) need(n int) bool {
	if s.err != nil {
		return false
	}
	if s.Remaining() < n {
		s.err = fmt.Errorf("%w: truncated at offset %d", ErrInvalidState, s.readPosition)
		s.readPosition = len(s.raw)
		return false
	}
	return true
}

func (s *State) Read8() uint8 {
	if !s.need(1) {
		return 0
	}
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	if !s.need(2) {
		return 0
	}
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if !s.need(len(p)) {
		return
	}
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

// Err returns the error recorded by a read past the end of
// the state, if any.
func (s *State) Err() error {
	return s.err
}

// Remaining returns the number of bytes left to read.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

// Len returns the size of the state in bytes.
func (s *State) Len() int {
	return len(s.raw)
}

func (s *State) Bytes() []byte {
	return s.raw
}

// Encode compresses the state with brotli and prefixes it with
// a header binding it to the ROM identified by fingerprint.
func (s *State) Encode(fingerprint uint64) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, stateHeaderLen+len(s.raw)/2))
	buf.WriteString(stateMagic)
	buf.WriteByte(stateVersion)
	if err := binary.Write(buf, binary.LittleEndian, fingerprint); err != nil {
		return nil, err
	}

	w := brotli.NewWriterLevel(buf, brotli.DefaultCompression)
	if _, err := w.Write(s.raw); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeState reverses Encode. The state must have been saved
// for the ROM identified by fingerprint.
func DecodeState(b []byte, fingerprint uint64) (*State, error) {
	if len(b) < stateHeaderLen || string(b[:len(stateMagic)]) != stateMagic {
		return nil, ErrInvalidState
	}
	if v := b[len(stateMagic)]; v != stateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidState, v)
	}
	if binary.LittleEndian.Uint64(b[len(stateMagic)+1:stateHeaderLen]) != fingerprint {
		return nil, ErrStateMismatch
	}

	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b[stateHeaderLen:])))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	return StateFromBytes(raw), nil
}
