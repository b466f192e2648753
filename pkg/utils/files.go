// Package utils provides helpers for loading ROM images from
// disk.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned for archives without any file.
var ErrEmptyArchive = errors.New("archive contains no files")

// LoadFile loads the given file and performs decompression if necessary.
// The compression is determined by the file extension (.gz, .xz, .zip
// or .7z), archives are expected to hold the image as their first file.
// Anything else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	// read the file into a byte slice
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// try to assert the compression type from the file extension
	var decoder io.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		r, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			break
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, ErrEmptyArchive)
		}

		// open the first file in the zip file
		decoder, err = r.File[0].Open()
	case ".7z":
		var r *sevenzip.Reader
		r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			break
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, ErrEmptyArchive)
		}

		// open the first file in the archive
		decoder, err = r.File[0].Open()
	default:
		// return the data as is
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read the decompressed data into a byte slice
	data, err = io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", filename, err)
	}

	return data, nil
}
