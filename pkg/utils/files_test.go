package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var image = []byte{0x00, 0xC3, 0x50, 0x01, 0xCE, 0xED, 0x66, 0x66}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		data, err := LoadFile(writeFile(t, "rom.gb", image))
		require.NoError(t, err)
		assert.Equal(t, image, data)
	})
	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(image)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := LoadFile(writeFile(t, "rom.gb.gz", buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, image, data)
	})
	t.Run("xz", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(image)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := LoadFile(writeFile(t, "rom.gb.XZ", buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, image, data)
	})
	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("rom.gb")
		require.NoError(t, err)
		_, err = f.Write(image)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := LoadFile(writeFile(t, "rom.zip", buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, image, data)
	})
	t.Run("empty zip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, zip.NewWriter(&buf).Close())

		_, err := LoadFile(writeFile(t, "rom.zip", buf.Bytes()))
		assert.ErrorIs(t, err, ErrEmptyArchive)
	})
	t.Run("corrupt 7z", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "rom.7z", image))
		assert.Error(t, err)
	})
	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "rom.gz", image))
		assert.Error(t, err)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
