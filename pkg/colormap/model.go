// Package colormap holds named colormap collections for biological data and
// resolves category labels or numeric values to hex colours.
package colormap

import (
	"sort"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

// Kind is the colormap variant.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindContinuous  Kind = "continuous"
)

// Colormap is implemented by *Categorical and *Continuous only.
type Colormap interface {
	Kind() Kind
	Description() string
	// Len is the number of categories or stops.
	Len() int

	clone() Colormap
	document() *OrderedMap
	rgbColors() []colour.RGB
}

// Categorical maps category labels to colours. Categories keep definition order;
// assigned categories are appended.
type Categorical struct {
	description string
	described   bool // description key present, even if empty
	categories  []string
	colors      map[string]string
	rgb         map[string]colour.RGB
	extra       *OrderedMap
}

func newCategorical(description string) *Categorical {
	return &Categorical{
		description: description,
		colors:      make(map[string]string),
		rgb:         make(map[string]colour.RGB),
	}
}

func (c *Categorical) Kind() Kind          { return KindCategorical }
func (c *Categorical) Description() string { return c.description }
func (c *Categorical) Len() int            { return len(c.categories) }

// Categories returns the category labels in order.
func (c *Categorical) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Color returns the stored colour for category, verbatim.
func (c *Categorical) Color(category string) (string, bool) {
	hex, ok := c.colors[category]
	return hex, ok
}

// Colors returns the stored colours in category order.
func (c *Categorical) Colors() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = c.colors[cat]
	}
	return out
}

// insert adds or replaces a category. hex must already be valid.
func (c *Categorical) insert(category, hex string, rgb colour.RGB) {
	if _, exists := c.colors[category]; !exists {
		c.categories = append(c.categories, category)
	}
	c.colors[category] = hex
	c.rgb[category] = rgb
}

func (c *Categorical) rgbColors() []colour.RGB {
	out := make([]colour.RGB, len(c.categories))
	for i, cat := range c.categories {
		out[i] = c.rgb[cat]
	}
	return out
}

func (c *Categorical) clone() Colormap {
	out := newCategorical(c.description)
	out.described = c.described
	for _, cat := range c.categories {
		out.insert(cat, c.colors[cat], c.rgb[cat])
	}
	out.extra = cloneObject(c.extra)
	return out
}

func (c *Categorical) document() *OrderedMap {
	doc := NewOrderedMap()
	doc.Set("type", string(KindCategorical))
	if c.description != "" || c.described {
		doc.Set("description", c.description)
	}
	colors := NewOrderedMap()
	for _, cat := range c.categories {
		colors.Set(cat, c.colors[cat])
	}
	doc.Set("colors", colors)
	appendExtra(doc, c.extra)
	return doc
}

// Continuous maps numeric values onto a gradient of colour stops.
type Continuous struct {
	description string
	described   bool
	colors      []string
	rgb         []colour.RGB
	positions   []float64
	declared    []float64 // optional [min, max] range hint
	explicit    bool      // positions were given in the definition
	extra       *OrderedMap
}

func (c *Continuous) Kind() Kind          { return KindContinuous }
func (c *Continuous) Description() string { return c.description }
func (c *Continuous) Len() int            { return len(c.colors) }

// Colors returns the colour stops, verbatim.
func (c *Continuous) Colors() []string {
	out := make([]string, len(c.colors))
	copy(out, c.colors)
	return out
}

// Positions returns the stop positions, strictly increasing.
func (c *Continuous) Positions() []float64 {
	out := make([]float64, len(c.positions))
	copy(out, c.positions)
	return out
}

// Domain returns the first and last stop positions.
func (c *Continuous) Domain() (float64, float64) {
	return c.positions[0], c.positions[len(c.positions)-1]
}

// Range returns the declared range hint if present, otherwise the domain.
// declared reports which one was returned.
func (c *Continuous) Range() (lo, hi float64, declared bool) {
	if len(c.declared) == 2 {
		return c.declared[0], c.declared[1], true
	}
	lo, hi = c.Domain()
	return lo, hi, false
}

// At returns the colour for v. Values outside the domain clamp to the end
// stops; values equal to a stop position return that stop verbatim.
func (c *Continuous) At(v float64, lab bool) string {
	n := len(c.positions)
	if v <= c.positions[0] {
		return c.colors[0]
	}
	if v >= c.positions[n-1] {
		return c.colors[n-1]
	}

	i := sort.SearchFloat64s(c.positions, v)
	if c.positions[i] == v {
		return c.colors[i]
	}
	return c.interpolate(i-1, v, lab).Hex()
}

func (c *Continuous) rgbAt(v float64) colour.RGB {
	n := len(c.positions)
	if v <= c.positions[0] {
		return c.rgb[0]
	}
	if v >= c.positions[n-1] {
		return c.rgb[n-1]
	}
	i := sort.SearchFloat64s(c.positions, v)
	if c.positions[i] == v {
		return c.rgb[i]
	}
	return c.interpolate(i-1, v, false)
}

func (c *Continuous) interpolate(lo int, v float64, lab bool) colour.RGB {
	hi := lo + 1
	t := (v - c.positions[lo]) / (c.positions[hi] - c.positions[lo])
	if lab {
		return colour.LerpLab(c.rgb[lo], c.rgb[hi], t)
	}
	return colour.Lerp(c.rgb[lo], c.rgb[hi], t)
}

// ContinuousSamples is how many evenly spaced points are taken from a
// continuous colormap for accessibility analysis.
const ContinuousSamples = 5

// rgbColors samples ContinuousSamples points across the domain.
func (c *Continuous) rgbColors() []colour.RGB {
	lo, hi := c.Domain()
	out := make([]colour.RGB, ContinuousSamples)
	for i := range out {
		v := lo + (hi-lo)*float64(i)/float64(ContinuousSamples-1)
		out[i] = c.rgbAt(v)
	}
	return out
}

func (c *Continuous) clone() Colormap {
	out := &Continuous{
		description: c.description,
		described:   c.described,
		colors:      append([]string(nil), c.colors...),
		rgb:         append([]colour.RGB(nil), c.rgb...),
		positions:   append([]float64(nil), c.positions...),
		declared:    append([]float64(nil), c.declared...),
		explicit:    c.explicit,
		extra:       cloneObject(c.extra),
	}
	return out
}

func (c *Continuous) document() *OrderedMap {
	doc := NewOrderedMap()
	doc.Set("type", string(KindContinuous))
	if c.description != "" || c.described {
		doc.Set("description", c.description)
	}
	doc.Set("colors", append([]string(nil), c.colors...))
	if c.explicit {
		doc.Set("positions", append([]float64(nil), c.positions...))
	}
	if len(c.declared) == 2 {
		doc.Set("range", append([]float64(nil), c.declared...))
	}
	appendExtra(doc, c.extra)
	return doc
}

// Metadata describes a collection.
type Metadata struct {
	Name          string
	Version       string
	Description   string
	Author        string
	DOI           string
	Keywords      []string
	Accessibility *Accessibility

	present map[string]bool // optional string keys given, even if empty
	extra   *OrderedMap
}

// Accessibility carries the author's accessibility claims.
type Accessibility struct {
	ColorblindSafe bool

	declared bool
}

func (m Metadata) clone() Metadata {
	out := m
	if m.Keywords != nil {
		out.Keywords = make([]string, len(m.Keywords))
		copy(out.Keywords, m.Keywords)
	}
	if m.Accessibility != nil {
		a := *m.Accessibility
		out.Accessibility = &a
	}
	if m.present != nil {
		out.present = make(map[string]bool, len(m.present))
		for k, v := range m.present {
			out.present[k] = v
		}
	}
	out.extra = cloneObject(m.extra)
	return out
}

func (m Metadata) document() *OrderedMap {
	doc := NewOrderedMap()
	for _, f := range []struct{ key, value string }{
		{"name", m.Name},
		{"version", m.Version},
		{"description", m.Description},
		{"author", m.Author},
		{"doi", m.DOI},
	} {
		if f.value != "" || m.present[f.key] {
			doc.Set(f.key, f.value)
		}
	}
	if m.Keywords != nil {
		doc.Set("keywords", append([]string(nil), m.Keywords...))
	}
	if m.Accessibility != nil {
		acc := NewOrderedMap()
		if m.Accessibility.ColorblindSafe || m.Accessibility.declared {
			acc.Set("colorblind_safe", m.Accessibility.ColorblindSafe)
		}
		doc.Set("accessibility", acc)
	}
	appendExtra(doc, m.extra)
	return doc
}

func appendExtra(doc, extra *OrderedMap) {
	for _, k := range extra.Keys() {
		v, _ := extra.Get(k)
		doc.Set(k, v)
	}
}

// cloneObject deep-copies nested objects and lists.
func cloneObject(m *OrderedMap) *OrderedMap {
	if m == nil {
		return nil
	}
	out := NewOrderedMap()
	for _, k := range m.keys {
		out.Set(k, cloneValue(m.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *OrderedMap:
		return cloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
