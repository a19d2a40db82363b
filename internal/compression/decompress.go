// Package compression reads and writes compressed colormap documents and
// extracts community pack bundles.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/biocrayon/internal/security"
)

// MaxDecompressedSize bounds how much a single document or bundle member may
// expand to.
const MaxDecompressedSize = 100 * 1024 * 1024

// Format is a single-stream compression format.
type Format int

const (
	None Format = iota
	Gzip
	Xz
	Bzip2
)

// String returns the usual file extension without the dot.
func (f Format) String() string {
	switch f {
	case Gzip:
		return "gz"
	case Xz:
		return "xz"
	case Bzip2:
		return "bz2"
	default:
		return "none"
	}
}

// ErrUnsupported is returned when writing a format that can only be read.
var ErrUnsupported = errors.New("compression format not supported for writing")

var magic = []struct {
	format Format
	prefix []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Bzip2, []byte{'B', 'Z', 'h'}},
}

// FormatFromName returns the format implied by a file name's extension.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return Gzip
	case ".xz":
		return Xz
	case ".bz2":
		return Bzip2
	default:
		return None
	}
}

// Detect returns the format of data, preferring the file name extension and
// falling back to magic bytes.
func Detect(name string, data []byte) Format {
	if f := FormatFromName(name); f != None {
		return f
	}
	for _, m := range magic {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format
		}
	}
	return None
}

// TrimExt removes a compression extension from name, if present.
func TrimExt(name string) string {
	if FormatFromName(name) == None {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// NewReader wraps r so that reads return decompressed bytes, bounded by
// MaxDecompressedSize.
func NewReader(r io.Reader, f Format) (io.Reader, error) {
	var dr io.Reader
	switch f {
	case None:
		dr = r
	case Gzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr = gzr
	case Xz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	case Bzip2:
		dr = bzip2.NewReader(r)
	default:
		return nil, fmt.Errorf("unknown compression format %d", f)
	}
	return security.NewLimitedReader(dr, MaxDecompressedSize), nil
}

// Decompress returns the decompressed contents of data.
func Decompress(data []byte, f Format) ([]byte, error) {
	r, err := NewReader(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s data: %w", f, err)
	}
	return out, nil
}

// Compress encodes data in format f. Bzip2 can only be read.
func Compress(data []byte, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser

	switch f {
	case None:
		return data, nil
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Xz:
		xzw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w = xzw
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish %s stream: %w", f, err)
	}
	return buf.Bytes(), nil
}
