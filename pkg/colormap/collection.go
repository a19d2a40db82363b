package colormap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Collection is a named set of colormaps with optional metadata.
// Reads may run concurrently; fill-missing assignment and edits take the write lock.
type Collection struct {
	mu        sync.RWMutex
	metadata  *Metadata
	names     []string
	colormaps map[string]Colormap
	warnings  ValidationErrors
	logger    hclog.Logger
}

type options struct {
	requireMetadata bool
	logger          hclog.Logger
}

// Option configures a Collection.
type Option func(*options)

// WithRequireMetadata makes metadata name and version mandatory.
func WithRequireMetadata(required bool) Option {
	return func(o *options) {
		o.requireMetadata = required
	}
}

// WithLogger sets the logger used for validation warnings and auto-assignments.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New validates raw and builds a Collection from it. On failure the returned
// error is a ValidationErrors listing every problem.
func New(raw any, opts ...Option) (*Collection, error) {
	o := buildOptions(opts)

	doc, errs := parseDocument(raw, o.requireMetadata)
	if errs.HasErrors() {
		return nil, errs
	}

	c := &Collection{
		metadata:  doc.metadata,
		names:     doc.names,
		colormaps: doc.colormaps,
		warnings:  errs.Warnings(),
		logger:    o.logger,
	}
	for _, w := range c.warnings {
		c.logger.Warn("colormap definition warning", "path", w.Path, "message", w.Message)
	}
	c.logger.Debug("loaded colormap collection", "colormaps", len(c.names), "metadata", c.metadata != nil)

	return c, nil
}

// NewEmpty returns a Collection with no metadata and no colormaps.
func NewEmpty(opts ...Option) *Collection {
	o := buildOptions(opts)
	return &Collection{
		colormaps: make(map[string]Colormap),
		logger:    o.logger,
	}
}

// Len returns the number of colormaps.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}

// ListColormaps returns colormap names in definition order.
func (c *Collection) ListColormaps() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Warnings returns the non-fatal findings from construction.
func (c *Collection) Warnings() ValidationErrors {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(ValidationErrors(nil), c.warnings...)
}

// GetMetadata returns a copy of the metadata. ok is false when none was defined.
func (c *Collection) GetMetadata() (Metadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.metadata == nil {
		return Metadata{}, false
	}
	return c.metadata.clone(), true
}

// GetColormap returns a deep copy of the named colormap.
func (c *Collection) GetColormap(name string) (Colormap, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return cm.clone(), nil
}

// AddColormap validates raw and stores it under name.
// It fails with ErrColormapExists when name is taken.
func (c *Collection) AddColormap(name string, raw any) error {
	cm, err := c.parseNamed(name, raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.colormaps[name]; exists {
		return fmt.Errorf("%w: %q", ErrColormapExists, name)
	}
	c.store(name, cm)
	c.logger.Debug("added colormap", "name", name, "type", cm.Kind())
	return nil
}

// UpdateColormap replaces an existing colormap, keeping its position.
func (c *Collection) UpdateColormap(name string, raw any) error {
	cm, err := c.parseNamed(name, raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.lookup(name); err != nil {
		return err
	}
	c.colormaps[name] = cm
	c.logger.Debug("updated colormap", "name", name, "type", cm.Kind())
	return nil
}

// RemoveColormap deletes the named colormap.
func (c *Collection) RemoveColormap(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.lookup(name); err != nil {
		return err
	}
	delete(c.colormaps, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	c.logger.Debug("removed colormap", "name", name)
	return nil
}

func (c *Collection) parseNamed(name string, raw any) (Colormap, error) {
	if name == "" {
		return nil, errors.New("colormap name must not be empty")
	}
	var errs ValidationErrors
	cm := parseColormap(join("colormaps", name), raw, &errs)
	if errs.HasErrors() {
		return nil, errs
	}
	for _, w := range errs.Warnings() {
		c.logger.Warn("colormap definition warning", "path", w.Path, "message", w.Message)
	}
	return cm, nil
}

// store appends a new colormap. Callers hold the write lock.
func (c *Collection) store(name string, cm Colormap) {
	if c.colormaps == nil {
		c.colormaps = make(map[string]Colormap)
	}
	c.names = append(c.names, name)
	c.colormaps[name] = cm
}

// lookup finds a colormap. Callers hold a lock.
func (c *Collection) lookup(name string) (Colormap, error) {
	cm, ok := c.colormaps[name]
	if !ok {
		return nil, notFound(name)
	}
	return cm, nil
}

// Info summarises a colormap.
type Info struct {
	Name        string    `json:"name"`
	Kind        Kind      `json:"type"`
	Description string    `json:"description,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Range       []float64 `json:"range,omitempty"`
	Colors      int       `json:"n_colors"`
}

// GetColormapInfo describes the named colormap. Continuous maps report the
// declared range, or the position span when none was declared.
func (c *Collection) GetColormapInfo(name string) (Info, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, err := c.lookup(name)
	if err != nil {
		return Info{}, err
	}
	return infoFor(name, cm), nil
}

func infoFor(name string, cm Colormap) Info {
	info := Info{
		Name:        name,
		Kind:        cm.Kind(),
		Description: cm.Description(),
		Colors:      cm.Len(),
	}
	switch m := cm.(type) {
	case *Categorical:
		info.Categories = m.Categories()
	case *Continuous:
		lo, hi, _ := m.Range()
		info.Range = []float64{lo, hi}
	}
	return info
}

// Document serializes the collection back to its raw form. Colours assigned
// by fill-missing lookups are included.
func (c *Collection) Document() *OrderedMap {
	c.mu.RLock()
	defer c.mu.RUnlock()

	root := NewOrderedMap()
	if c.metadata != nil {
		root.Set("metadata", c.metadata.document())
	}
	maps := NewOrderedMap()
	for _, name := range c.names {
		maps.Set(name, c.colormaps[name].document())
	}
	root.Set("colormaps", maps)
	return root
}
