package colormap

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

// Validate checks raw against the collection schema and returns every problem
// found. The result is empty when raw is valid.
func Validate(raw any, requireMetadata bool) ValidationErrors {
	_, errs := parseDocument(raw, requireMetadata)
	return errs
}

// ParseColormap validates a single colormap definition and returns its typed form.
// The colormap is nil when errs contains errors.
func ParseColormap(raw any) (Colormap, ValidationErrors) {
	var errs ValidationErrors
	cm := parseColormap("", raw, &errs)
	return cm, errs
}

type document struct {
	metadata  *Metadata
	names     []string
	colormaps map[string]Colormap
}

func parseDocument(raw any, requireMetadata bool) (*document, ValidationErrors) {
	var errs ValidationErrors

	root, ok := asObject(raw)
	if !ok {
		errs.add("", "document must be an object, got %s", describe(raw))
		return nil, errs
	}

	doc := &document{colormaps: make(map[string]Colormap)}

	rawMaps, present := root.Get("colormaps")
	maps, isObject := asObject(rawMaps)
	switch {
	case !present:
		errs.add("colormaps", "missing required key")
	case !isObject:
		errs.add("colormaps", "must be an object, got %s", describe(rawMaps))
	}

	doc.metadata = parseMetadata(root, requireMetadata, &errs)

	for _, name := range maps.Keys() {
		v, _ := maps.Get(name)
		if cm := parseColormap(join("colormaps", name), v, &errs); cm != nil {
			doc.names = append(doc.names, name)
			doc.colormaps[name] = cm
		}
	}

	return doc, errs
}

func parseMetadata(root *OrderedMap, required bool, errs *ValidationErrors) *Metadata {
	raw, present := root.Get("metadata")
	if !present || raw == nil {
		if required {
			errs.add("metadata", "missing required key")
			errs.add("metadata.name", "required")
			errs.add("metadata.version", "required")
		}
		return nil
	}

	obj, ok := asObject(raw)
	if !ok {
		errs.add("metadata", "must be an object, got %s", describe(raw))
		return nil
	}

	md := &Metadata{}
	for _, f := range []struct {
		key       string
		dst       *string
		mandatory bool
	}{
		{"name", &md.Name, required},
		{"version", &md.Version, required},
		{"description", &md.Description, false},
		{"author", &md.Author, false},
		{"doi", &md.DOI, false},
	} {
		path := "metadata." + f.key
		v, present := obj.Get(f.key)
		if !present {
			if f.mandatory {
				errs.add(path, "required")
			}
			continue
		}
		s, isString := v.(string)
		switch {
		case !isString:
			errs.add(path, "must be a string, got %s", describe(v))
		case f.mandatory && strings.TrimSpace(s) == "":
			errs.add(path, "must not be empty")
		default:
			*f.dst = s
			if md.present == nil {
				md.present = make(map[string]bool)
			}
			md.present[f.key] = true
		}
	}

	if v, present := obj.Get("keywords"); present {
		items, ok := asSlice(v)
		if !ok {
			errs.add("metadata.keywords", "must be a list of strings, got %s", describe(v))
		} else {
			md.Keywords = make([]string, 0, len(items))
			for i, item := range items {
				s, isString := item.(string)
				if !isString {
					errs.add(fmt.Sprintf("metadata.keywords[%d]", i), "must be a string, got %s", describe(item))
					continue
				}
				md.Keywords = append(md.Keywords, s)
			}
		}
	}

	if v, present := obj.Get("accessibility"); present {
		acc, ok := asObject(v)
		if !ok {
			errs.add("metadata.accessibility", "must be an object, got %s", describe(v))
		} else {
			md.Accessibility = &Accessibility{}
			if cb, present := acc.Get("colorblind_safe"); present {
				b, isBool := cb.(bool)
				if !isBool {
					errs.add("metadata.accessibility.colorblind_safe", "must be a boolean, got %s", describe(cb))
				}
				md.Accessibility.ColorblindSafe = b
				md.Accessibility.declared = true
			}
		}
	}

	md.extra = extraKeys(obj, "name", "version", "description", "author", "doi", "keywords", "accessibility")
	return md
}

func parseColormap(path string, raw any, errs *ValidationErrors) Colormap {
	obj, ok := asObject(raw)
	if !ok {
		errs.add(path, "colormap must be an object, got %s", describe(raw))
		return nil
	}

	start := errs.errorCount()

	var description string
	_, described := obj.Get("description")
	if v, present := obj.Get("description"); present {
		s, isString := v.(string)
		if !isString {
			errs.add(join(path, "description"), "must be a string, got %s", describe(v))
		}
		description = s
	}

	var cm Colormap
	typ, present := obj.Get("type")
	kind, _ := typ.(string)
	switch Kind(kind) {
	case KindCategorical:
		cm = parseCategorical(path, description, obj, errs)
	case KindContinuous:
		cm = parseContinuous(path, description, obj, errs)
	default:
		if !present {
			errs.add(join(path, "type"), "missing required key")
		} else {
			errs.add(join(path, "type"), "must be %q or %q, got %v", KindCategorical, KindContinuous, typ)
		}
		return nil
	}

	if errs.errorCount() > start {
		return nil
	}
	switch m := cm.(type) {
	case *Categorical:
		m.described = described
	case *Continuous:
		m.described = described
	}
	return cm
}

func parseCategorical(path, description string, obj *OrderedMap, errs *ValidationErrors) *Categorical {
	colorsPath := join(path, "colors")
	raw, present := obj.Get("colors")
	colors, ok := asObject(raw)
	switch {
	case !present:
		errs.add(colorsPath, "missing required key")
		return nil
	case !ok:
		errs.add(colorsPath, "must be an object mapping category to colour, got %s", describe(raw))
		return nil
	case colors.Len() == 0:
		errs.add(colorsPath, "must define at least one category")
		return nil
	}

	cm := newCategorical(description)
	folder := cases.Fold()
	folded := make(map[string]string, colors.Len())

	for _, category := range colors.Keys() {
		entryPath := join(colorsPath, category)
		v, _ := colors.Get(category)

		key := folder.String(category)
		if prev, dup := folded[key]; dup {
			errs.warn(entryPath, "category %q differs from %q only by case", category, prev)
		} else {
			folded[key] = category
		}

		hex, isString := v.(string)
		if !isString {
			errs.add(entryPath, "must be a hex colour string, got %s", describe(v))
			continue
		}
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			errs.add(entryPath, "%v", err)
			continue
		}
		cm.insert(category, hex, rgb)
	}

	cm.extra = extraKeys(obj, "type", "description", "colors")
	return cm
}

func parseContinuous(path, description string, obj *OrderedMap, errs *ValidationErrors) *Continuous {
	cm := &Continuous{description: description}

	colorsPath := join(path, "colors")
	raw, present := obj.Get("colors")
	items, ok := asSlice(raw)
	switch {
	case !present:
		errs.add(colorsPath, "missing required key")
	case !ok:
		errs.add(colorsPath, "must be a list of hex colours, got %s", describe(raw))
	case len(items) < 2:
		errs.add(colorsPath, "must contain at least 2 colours, got %d", len(items))
	}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", colorsPath, i)
		hex, isString := item.(string)
		if !isString {
			errs.add(itemPath, "must be a hex colour string, got %s", describe(item))
			continue
		}
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			errs.add(itemPath, "%v", err)
			continue
		}
		cm.colors = append(cm.colors, hex)
		cm.rgb = append(cm.rgb, rgb)
	}

	positionsPath := join(path, "positions")
	if v, present := obj.Get("positions"); present {
		cm.explicit = true
		positions, ok := numberList(positionsPath, v, errs)
		switch {
		case !ok:
		case len(positions) != len(items):
			errs.add(positionsPath, "has %d entries but colors has %d", len(positions), len(items))
		default:
			for i := 1; i < len(positions); i++ {
				if !(positions[i] > positions[i-1]) {
					errs.add(fmt.Sprintf("%s[%d]", positionsPath, i),
						"positions must be strictly increasing (%g follows %g)", positions[i], positions[i-1])
				}
			}
			cm.positions = positions
		}
	} else if len(items) >= 2 {
		cm.positions = evenlySpaced(len(items))
	}

	if v, present := obj.Get("range"); present {
		rangePath := join(path, "range")
		bounds, ok := numberList(rangePath, v, errs)
		switch {
		case !ok:
		case len(bounds) != 2:
			errs.add(rangePath, "must contain exactly 2 numbers, got %d", len(bounds))
		case !(bounds[0] < bounds[1]):
			errs.add(rangePath, "min %g must be less than max %g", bounds[0], bounds[1])
		default:
			cm.declared = bounds
		}
	}

	cm.extra = extraKeys(obj, "type", "description", "colors", "positions", "range")
	return cm
}

// numberList reads a list of finite numbers, reporting each bad entry.
func numberList(path string, v any, errs *ValidationErrors) ([]float64, bool) {
	items, ok := asSlice(v)
	if !ok {
		errs.add(path, "must be a list of numbers, got %s", describe(v))
		return nil, false
	}
	out := make([]float64, len(items))
	valid := true
	for i, item := range items {
		f, isNumber := toFloat(item)
		if !isNumber || math.IsNaN(f) || math.IsInf(f, 0) {
			errs.add(fmt.Sprintf("%s[%d]", path, i), "must be a finite number, got %s", describe(item))
			valid = false
			continue
		}
		out[i] = f
	}
	return out, valid
}

func evenlySpaced(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

func extraKeys(obj *OrderedMap, known ...string) *OrderedMap {
	var extra *OrderedMap
	for _, k := range obj.Keys() {
		if contains(known, k) {
			continue
		}
		if extra == nil {
			extra = NewOrderedMap()
		}
		v, _ := obj.Get(k)
		extra.Set(k, cloneValue(v))
	}
	return extra
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("boolean %v", v)
	case *OrderedMap, OrderedMap, map[string]any, map[string]string:
		return "object"
	}
	if _, ok := asSlice(v); ok {
		return "list"
	}
	if f, ok := toFloat(v); ok {
		return fmt.Sprintf("number %g", f)
	}
	return fmt.Sprintf("%T", v)
}
