package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/biocrayon/internal/compression"
	"github.com/jmylchreest/biocrayon/internal/security"
	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

// ErrPackNotFound is returned when no file exists for a category/name pair.
var ErrPackNotFound = errors.New("community pack not found")

// Pack extensions in lookup order.
var packExts = []string{".json", ".json.xz", ".json.gz", ".json.bz2"}

// stagingPrefix names the directories Import extracts into. List skips them.
const stagingPrefix = ".import-"

// Community reads colormap packs laid out as <Root>/<category>/<name>.json,
// optionally compressed. Community packs must carry metadata.
type Community struct {
	Root   string
	Logger hclog.Logger
}

// Pack identifies one community pack on disk.
type Pack struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

func (c Community) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

// Find returns the file holding category/name.
func (c Community) Find(category, name string) (string, error) {
	if c.Root == "" {
		return "", errors.New("community directory not configured")
	}
	if err := security.ValidateName("category", category); err != nil {
		return "", err
	}
	if err := security.ValidateName("pack name", name); err != nil {
		return "", err
	}

	for _, ext := range packExts {
		p := filepath.Join(c.Root, category, name+ext)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s in %s", ErrPackNotFound, category, name, c.Root)
}

// Load reads category/name and builds a Collection with metadata required.
func (c Community) Load(category, name string, opts ...colormap.Option) (*colormap.Collection, error) {
	p, err := c.Find(category, name)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("loading community pack", "category", category, "name", name, "path", p)

	opts = append(opts, colormap.WithRequireMetadata(true))
	return Load(p, opts...)
}

// List returns every pack under Root, sorted by category then name. A missing
// Root holds no packs.
func (c Community) List() ([]Pack, error) {
	categories, err := os.ReadDir(c.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read community directory: %w", err)
	}

	var packs []Pack
	seen := make(map[string]bool)
	for _, cat := range categories {
		if !cat.IsDir() || strings.HasPrefix(cat.Name(), ".") || security.ValidateName("category", cat.Name()) != nil {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(c.Root, cat.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read category %s: %w", cat.Name(), err)
		}
		for _, e := range entries {
			name, ok := packName(e.Name())
			if e.IsDir() || !ok {
				continue
			}
			key := cat.Name() + "/" + name
			if seen[key] {
				continue
			}
			seen[key] = true
			packs = append(packs, Pack{
				Category: cat.Name(),
				Name:     name,
				Path:     filepath.Join(c.Root, cat.Name(), e.Name()),
			})
		}
	}

	sort.Slice(packs, func(i, j int) bool {
		if packs[i].Category != packs[j].Category {
			return packs[i].Category < packs[j].Category
		}
		return packs[i].Name < packs[j].Name
	})
	return packs, nil
}

// Import installs the packs in a tar or zip bundle under Root. Members that
// are not <category>/<name>.json[.gz|.xz|.bz2] are skipped. The bundle is
// extracted into a staging directory and each pack is validated there; only
// valid packs replace what is installed. Invalid packs are reported in the
// returned error and leave any installed pack of the same name untouched.
func (c Community) Import(bundlePath string) ([]Pack, error) {
	if !compression.IsBundle(bundlePath) {
		return nil, fmt.Errorf("unsupported bundle %s (want .tar.gz, .tar.xz, .tar.bz2, .tar or .zip)", bundlePath)
	}
	data, err := os.ReadFile(bundlePath) // #nosec G304 - user-specified bundle
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create community directory: %w", err)
	}

	staging, err := os.MkdirTemp(c.Root, stagingPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			c.logger().Warn("failed to remove staging directory", "path", staging, "error", rmErr)
		}
	}()

	written, err := compression.ExtractBundle(data, filepath.Base(bundlePath), staging, isPackMember)
	if err != nil {
		return nil, err
	}

	var (
		packs []Pack
		errs  []error
	)
	for _, rel := range written {
		category, file := path.Split(rel)
		category = strings.TrimSuffix(category, "/")
		name, _ := packName(file)
		staged := filepath.Join(staging, filepath.FromSlash(rel))

		if _, err := Load(staged, colormap.WithRequireMetadata(true), colormap.WithLogger(c.logger())); err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", category, name, err))
			continue
		}

		dest, err := c.install(category, name, staged, file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", category, name, err))
			continue
		}
		c.logger().Info("imported community pack", "category", category, "name", name)
		packs = append(packs, Pack{Category: category, Name: name, Path: dest})
	}

	return packs, errors.Join(errs...)
}

// install moves a validated pack into place and removes copies of the same
// pack stored under other extensions, so Find resolves to the new one.
func (c Community) install(category, name, staged, file string) (string, error) {
	dir := filepath.Join(c.Root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}
	dest := filepath.Join(dir, file)
	if err := os.Rename(staged, dest); err != nil {
		return "", fmt.Errorf("failed to install pack: %w", err)
	}
	for _, ext := range packExts {
		other := filepath.Join(dir, name+ext)
		if other == dest {
			continue
		}
		if err := os.Remove(other); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger().Warn("failed to remove superseded pack", "path", other, "error", err)
		}
	}
	return dest, nil
}

func isPackMember(rel string) bool {
	parts := strings.Split(rel, "/")
	if len(parts) != 2 || security.ValidateName("category", parts[0]) != nil {
		return false
	}
	_, ok := packName(parts[1])
	return ok
}

// packName strips a pack extension from a file name.
func packName(file string) (string, bool) {
	base := compression.TrimExt(file)
	name, ok := strings.CutSuffix(base, ".json")
	if !ok || name == "" || security.ValidateName("pack name", name) != nil {
		return "", false
	}
	return name, true
}
