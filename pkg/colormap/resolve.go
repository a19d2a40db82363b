package colormap

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

// DefaultMissingColor is used for missing values when a Policy sets none.
const DefaultMissingColor = "#CCCCCC"

// Policy controls how lookups treat absent categories and missing values.
type Policy struct {
	// FillMissing assigns colours to unknown categories and maps missing
	// values to DefaultColor instead of failing.
	FillMissing bool
	// DefaultColor is returned for missing values. Empty means DefaultMissingColor.
	DefaultColor string
}

// Color returns the colour used for missing values.
func (p Policy) Color() string {
	if p.DefaultColor == "" {
		return DefaultMissingColor
	}
	return p.DefaultColor
}

// GetColor resolves key against the named colormap, interpolating continuous
// maps in RGB.
func (c *Collection) GetColor(name string, key any, p Policy) (string, error) {
	return c.resolve(name, key, p, false)
}

// GetColorLAB is GetColor with continuous interpolation in CIE LAB.
// Categorical lookups behave identically.
func (c *Collection) GetColorLAB(name string, key any, p Policy) (string, error) {
	return c.resolve(name, key, p, true)
}

func (c *Collection) resolve(name string, key any, p Policy, lab bool) (string, error) {
	c.mu.RLock()
	cm, err := c.lookup(name)
	if err != nil {
		c.mu.RUnlock()
		return "", err
	}

	if cont, ok := cm.(*Continuous); ok {
		defer c.mu.RUnlock()
		return resolveContinuous(name, cont, key, p, lab)
	}

	label, missing := categoryLabel(key)
	var (
		hex   string
		found bool
	)
	if key != nil {
		hex, found = cm.(*Categorical).Color(label)
	}
	c.mu.RUnlock()

	switch {
	case found:
		return hex, nil
	case !p.FillMissing:
		return "", &LookupError{Colormap: name, Key: label}
	case missing:
		return p.Color(), nil
	default:
		return c.assign(name, label)
	}
}

// assign gives label a new colour unless another caller got there first.
func (c *Collection) assign(name, label string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cm, err := c.lookup(name)
	if err != nil {
		return "", err
	}
	cat, ok := cm.(*Categorical)
	if !ok {
		return "", &DomainError{Colormap: name, Value: label, Reason: "colormap is no longer categorical"}
	}
	if hex, ok := cat.Color(label); ok {
		return hex, nil
	}

	hex := NextColor(cat.Colors())
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return "", fmt.Errorf("assigned colour for %q: %w", label, err)
	}
	cat.insert(label, hex, rgb)
	c.logger.Debug("assigned colour to missing category", "colormap", name, "category", label, "color", hex)

	return hex, nil
}

func resolveContinuous(name string, cm *Continuous, key any, p Policy, lab bool) (string, error) {
	v, missing, ok := numericValue(key)
	switch {
	case missing && p.FillMissing:
		return p.Color(), nil
	case missing:
		return "", &DomainError{Colormap: name, Value: key, Reason: "missing value in continuous colormap (enable fill-missing to use a default colour)"}
	case !ok:
		return "", &DomainError{Colormap: name, Value: key, Reason: "value is not numeric"}
	}
	return cm.At(v, lab), nil
}

// isMissing reports whether v is a missing-data sentinel.
func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.EqualFold(t, "nan")
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	default:
		return false
	}
}

// categoryLabel renders key as a category label.
func categoryLabel(key any) (label string, missing bool) {
	missing = isMissing(key)
	switch t := key.(type) {
	case nil:
		return "", true
	case string:
		return t, missing
	case fmt.Stringer:
		return t.String(), missing
	default:
		return fmt.Sprint(key), missing
	}
}

// numericValue coerces key to a float. ok is false for non-numeric keys.
func numericValue(key any) (v float64, missing, ok bool) {
	if isMissing(key) {
		return 0, true, false
	}
	switch t := key.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false, false
		}
		return f, false, true
	case json.Number:
		f, err := t.Float64()
		return f, false, err == nil
	}
	f, ok := toFloat(key)
	return f, false, ok
}
