package gameboy

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/trace"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// newROM returns a 32kB image with program placed at the entry
// point.
func newROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)
	copy(rom[0x0134:], "SM83TEST")
	return rom
}

func TestNew(t *testing.T) {
	g, err := New(newROM(0x00))
	require.NoError(t, err)

	assert.Equal(t, types.EntryPoint, g.CPU.PC)
	require.NotNil(t, g.Cartridge)
	assert.Equal(t, "SM83TEST", g.Cartridge.Title)

	_, err = New(nil)
	assert.Error(t, err)

	g, err = New([]byte{0x00, 0x00})
	require.NoError(t, err)
	assert.Nil(t, g.Cartridge)
}

func TestOptions(t *testing.T) {
	g, err := New(newROM(), WithPostBootState(), WithEntryPoint(0x0150), WithStepLimit(5))
	require.NoError(t, err)

	assert.Equal(t, uint16(0x0150), g.CPU.PC)
	assert.Equal(t, uint16(0x01B0), g.CPU.AF.Uint16())
	assert.Equal(t, uint16(0xFFFE), g.CPU.SP)

	n, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
	assert.Equal(t, uint16(0x0155), g.CPU.PC)
}

func TestRun(t *testing.T) {
	// LD A, 0xFE; INC A; INC A; <undefined>
	var buf bytes.Buffer
	l, err := log.NewWithWriter(&buf, "trace")
	require.NoError(t, err)

	g, err := New(newROM(0x3E, 0xFE, 0x3C, 0x3C, 0xD3), WithLogger(l), Debug())
	require.NoError(t, err)

	n, err := g.Run(context.Background())
	assert.Equal(t, uint64(3), n)
	assert.ErrorIs(t, err, cpu.ErrUndefinedOpcode)

	var cpuErr *cpu.Error
	require.True(t, errors.As(err, &cpuErr))
	assert.Equal(t, uint16(0x0104), cpuErr.PC)
	assert.Equal(t, uint8(0xD3), cpuErr.Opcode)
	assert.Equal(t, uint8(0x00), cpuErr.Registers.A)

	assert.Contains(t, buf.String(), "INC A")
	assert.Contains(t, buf.String(), "undefined opcode")
}

func TestState(t *testing.T) {
	rom := newROM(0x3E, 0x42, 0xEA, 0x00, 0xC0)
	g, err := New(rom, WithStepLimit(2))
	require.NoError(t, err)
	_, err = g.Run(context.Background())
	require.NoError(t, err)

	var saved bytes.Buffer
	g.saveTo = &saved
	require.NoError(t, g.Close())

	restored, err := New(rom, WithState(saved.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, g.CPU.Snapshot(), restored.CPU.Snapshot())
	assert.Equal(t, uint8(0x42), restored.MMU.Read(0xC000))

	other := newROM(0x00)
	_, err = New(other, WithState(saved.Bytes()))
	assert.ErrorIs(t, err, types.ErrStateMismatch)

	_, err = New(rom, WithState([]byte("garbage")))
	assert.ErrorIs(t, err, types.ErrInvalidState)
}

func TestLoadState_Truncated(t *testing.T) {
	rom := newROM(0x3E, 0x42)
	g, err := New(rom, WithPostBootState())
	require.NoError(t, err)
	g.MMU.Write(0xC000, 0x99)
	before := g.CPU.Snapshot()

	for _, size := range []int{0, 1, 15, 100} {
		s := types.NewState()
		s.WriteData(bytes.Repeat([]byte{0x01}, size))
		b, err := s.Encode(types.Fingerprint(rom))
		require.NoError(t, err)

		assert.NotPanics(t, func() {
			err = g.LoadState(b)
		})
		assert.ErrorIs(t, err, types.ErrInvalidState, "%d byte body", size)
		assert.Equal(t, before, g.CPU.Snapshot(), "%d byte body", size)
		assert.Equal(t, uint8(0x99), g.MMU.Read(0xC000), "%d byte body", size)
	}

	// one byte too many is rejected as well
	full, err := g.SaveState()
	require.NoError(t, err)
	s, err := types.DecodeState(full, types.Fingerprint(rom))
	require.NoError(t, err)
	s.Write8(0x00)
	b, err := s.Encode(types.Fingerprint(rom))
	require.NoError(t, err)
	assert.ErrorIs(t, g.LoadState(b), types.ErrInvalidState)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestClose(t *testing.T) {
	g, err := New(newROM(), SaveStateTo(failingWriter{}))
	require.NoError(t, err)

	err = g.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	g, err = New(newROM())
	require.NoError(t, err)
	assert.NoError(t, g.Close())
}

func TestClose_Trace(t *testing.T) {
	hub := trace.NewHub(nil)
	g, err := New(newROM(), WithTrace(hub))
	require.NoError(t, err)

	require.NoError(t, g.Close())
	assert.ErrorIs(t, hub.Publish(trace.Event{}), trace.ErrClosed)
}
