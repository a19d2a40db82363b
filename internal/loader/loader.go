// Package loader reads and writes colormap collection files.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmylchreest/biocrayon/internal/compression"
	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

// ParseDocument decodes a JSON object, keeping key order.
func ParseDocument(data []byte) (*colormap.OrderedMap, error) {
	doc := colormap.NewOrderedMap()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return doc, nil
}

// ReadDocument reads a JSON document from path. Files ending in .gz, .xz or
// .bz2, or starting with the matching magic bytes, are decompressed first.
func ReadDocument(path string) (*colormap.OrderedMap, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified colormap file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if f := compression.Detect(path, data); f != compression.None {
		data, err = compression.Decompress(data, f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadFrom decodes an uncompressed JSON document from r.
func ReadFrom(r io.Reader) (*colormap.OrderedMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return ParseDocument(data)
}

// Load reads path and builds a Collection from it.
func Load(path string, opts ...colormap.Option) (*colormap.Collection, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	c, err := colormap.New(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal renders the collection as indented JSON.
func Marshal(c *colormap.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Document()); err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the collection to path as indented JSON. A .gz or .xz extension
// compresses the output.
func Save(path string, c *colormap.Collection) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}

	data, err = compression.Compress(data, compression.FormatFromName(path))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// #nosec G306 -- colormap files are not sensitive
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
