package colormap

import (
	"fmt"
	"strings"
)

// Accessor is a lookup handle bound to one colormap and a Policy.
// It is a value; With* methods return modified copies. Colours assigned through
// any accessor are visible through every other one.
type Accessor struct {
	collection *Collection
	name       string
	policy     Policy
}

// Accessor returns a handle for the named colormap with fill-missing disabled.
func (c *Collection) Accessor(name string) (Accessor, error) {
	c.mu.RLock()
	_, err := c.lookup(name)
	c.mu.RUnlock()
	if err != nil {
		return Accessor{}, err
	}
	return Accessor{collection: c, name: name}, nil
}

func (a Accessor) Name() string   { return a.name }
func (a Accessor) Policy() Policy { return a.policy }

// WithFillMissing returns a copy with fill-missing set. An empty defaultColor
// means DefaultMissingColor.
func (a Accessor) WithFillMissing(enabled bool, defaultColor string) Accessor {
	a.policy = Policy{FillMissing: enabled, DefaultColor: defaultColor}
	return a
}

// WithPolicy returns a copy using p.
func (a Accessor) WithPolicy(p Policy) Accessor {
	a.policy = p
	return a
}

// Color resolves key with RGB interpolation.
func (a Accessor) Color(key any) (string, error) {
	return a.collection.GetColor(a.name, key, a.policy)
}

// ColorLAB resolves key with LAB interpolation.
func (a Accessor) ColorLAB(key any) (string, error) {
	return a.collection.GetColorLAB(a.name, key, a.policy)
}

// Info describes the bound colormap.
func (a Accessor) Info() (Info, error) {
	return a.collection.GetColormapInfo(a.name)
}

func (a Accessor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Accessor(colormap=%q", a.name)
	if a.policy.FillMissing {
		fmt.Fprintf(&b, ", fill_missing=true, default_color=%q", a.policy.Color())
	}
	b.WriteByte(')')
	return b.String()
}
