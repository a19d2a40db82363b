package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/biocrayon/internal/security"
)

var bundleFormats = []struct {
	ext    string
	format Format
}{
	{".tar.gz", Gzip},
	{".tgz", Gzip},
	{".tar.xz", Xz},
	{".txz", Xz},
	{".tar.bz2", Bzip2},
	{".tbz", Bzip2},
	{".tbz2", Bzip2},
	{".tar", None},
}

// IsBundle reports whether name looks like an archive ExtractBundle can read.
func IsBundle(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".zip") {
		return true
	}
	for _, b := range bundleFormats {
		if strings.HasSuffix(lower, b.ext) {
			return true
		}
	}
	return false
}

// ExtractBundle writes the regular files of a tar or zip archive into destDir,
// keeping their relative paths. Only members for which keep returns true are
// written; a nil keep accepts everything. It returns the relative paths written.
func ExtractBundle(data []byte, name, destDir string, keep func(string) bool) ([]string, error) {
	if keep == nil {
		keep = func(string) bool { return true }
	}

	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".zip") {
		return extractZip(data, destDir, keep)
	}
	for _, b := range bundleFormats {
		if strings.HasSuffix(lower, b.ext) {
			r, err := NewReader(bytes.NewReader(data), b.format)
			if err != nil {
				return nil, err
			}
			return extractTar(r, destDir, keep)
		}
	}
	return nil, fmt.Errorf("unrecognised bundle format: %s", name)
}

func extractTar(r io.Reader, destDir string, keep func(string) bool) ([]string, error) {
	tr := tar.NewReader(r)
	var written []string

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		rel := memberPath(header.Name)
		if !keep(rel) {
			continue
		}
		if err := writeMember(destDir, rel, tr); err != nil {
			return written, err
		}
		written = append(written, rel)
	}

	return written, nil
}

func extractZip(data []byte, destDir string, keep func(string) bool) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var written []string
	for _, f := range zr.File {
		if !f.Mode().IsRegular() {
			continue
		}
		rel := memberPath(f.Name)
		if !keep(rel) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return written, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		err = writeMember(destDir, rel, rc)
		rc.Close()
		if err != nil {
			return written, err
		}
		written = append(written, rel)
	}

	return written, nil
}

// memberPath normalises an archive member name. Traversal survives cleaning so
// writeMember can reject it.
func memberPath(name string) string {
	return path.Clean(strings.TrimPrefix(name, "./"))
}

func writeMember(destDir, rel string, r io.Reader) error {
	if err := security.ValidateFilePath(filepath.FromSlash(rel), destDir); err != nil {
		return fmt.Errorf("refusing archive member %q: %w", rel, err)
	}

	destPath := filepath.Join(destDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	out, err := os.Create(destPath) // #nosec G304 - path validated against destDir above
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", rel, err)
	}

	_, copyErr := io.Copy(out, security.NewLimitedReader(r, MaxDecompressedSize))
	closeErr := out.Close()

	if copyErr != nil {
		return fmt.Errorf("failed to extract %s: %w", rel, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", rel, closeErr)
	}
	return nil
}
