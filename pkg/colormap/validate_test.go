package colormap

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func errorPaths(errs ValidationErrors) []string {
	var out []string
	for _, e := range errs.Errors() {
		out = append(out, e.Path)
	}
	sort.Strings(out)
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		strict    bool
		wantPaths []string
	}{
		{
			name: "valid lenient without metadata",
			raw: map[string]any{
				"colormaps": map[string]any{
					"c": map[string]any{"type": "categorical", "colors": map[string]any{"a": "#000000"}},
				},
			},
		},
		{
			name:      "not an object",
			raw:       []string{"colormaps"},
			wantPaths: []string{""},
		},
		{
			name:      "missing colormaps",
			raw:       map[string]any{},
			wantPaths: []string{"colormaps"},
		},
		{
			name:      "strict without metadata",
			raw:       map[string]any{"colormaps": map[string]any{}},
			strict:    true,
			wantPaths: []string{"metadata", "metadata.name", "metadata.version"},
		},
		{
			name: "strict empty name",
			raw: map[string]any{
				"metadata":  map[string]any{"name": " ", "version": "1"},
				"colormaps": map[string]any{},
			},
			strict:    true,
			wantPaths: []string{"metadata.name"},
		},
		{
			name: "metadata field types",
			raw: map[string]any{
				"metadata": map[string]any{
					"name":          1,
					"keywords":      []any{"ok", 2},
					"accessibility": map[string]any{"colorblind_safe": "yes"},
				},
				"colormaps": map[string]any{},
			},
			wantPaths: []string{"metadata.accessibility.colorblind_safe", "metadata.keywords[1]", "metadata.name"},
		},
		{
			name: "unknown type",
			raw: map[string]any{
				"colormaps": map[string]any{"x": map[string]any{"type": "diverging"}},
			},
			wantPaths: []string{"colormaps.x.type"},
		},
		{
			name: "colormap not an object",
			raw: map[string]any{
				"colormaps": map[string]any{"x": "categorical"},
			},
			wantPaths: []string{"colormaps.x"},
		},
		{
			name: "categorical problems",
			raw: map[string]any{
				"colormaps": map[string]any{
					"empty": map[string]any{"type": "categorical", "colors": map[string]any{}},
					"bad": map[string]any{
						"type":        "categorical",
						"description": 7,
						"colors":      map[string]any{"a": "#GGGGGG", "b": 12, "c": "#FFF"},
					},
				},
			},
			wantPaths: []string{
				"colormaps.bad.colors.a",
				"colormaps.bad.colors.b",
				"colormaps.bad.colors.c",
				"colormaps.bad.description",
				"colormaps.empty.colors",
			},
		},
		{
			name: "continuous problems",
			raw: map[string]any{
				"colormaps": map[string]any{
					"short": map[string]any{"type": "continuous", "colors": []string{"#000000"}},
					"order": map[string]any{
						"type":      "continuous",
						"colors":    []string{"#000000", "#777777", "#FFFFFF"},
						"positions": []float64{0, 0.6, 0.5},
					},
					"length": map[string]any{
						"type":      "continuous",
						"colors":    []string{"#000000", "#FFFFFF"},
						"positions": []float64{0, 0.5, 1},
					},
					"range": map[string]any{
						"type":   "continuous",
						"colors": []string{"#000000", "#FFFFFF"},
						"range":  []float64{1, 1},
					},
					"notlist": map[string]any{
						"type":      "continuous",
						"colors":    []string{"#000000", "#FFFFFF"},
						"positions": "0,1",
					},
				},
			},
			wantPaths: []string{
				"colormaps.length.positions",
				"colormaps.notlist.positions",
				"colormaps.order.positions[2]",
				"colormaps.range.range",
				"colormaps.short.colors",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.raw, tt.strict)
			want := append([]string(nil), tt.wantPaths...)
			sort.Strings(want)
			if diff := cmp.Diff(want, errorPaths(errs)); diff != "" {
				t.Errorf("error paths mismatch (-want +got):\n%s\nerrors: %v", diff, errs)
			}
			if got := errs.HasErrors(); got != (len(tt.wantPaths) > 0) {
				t.Errorf("HasErrors() = %v", got)
			}
		})
	}
}

func TestValidateCaseVariantWarning(t *testing.T) {
	raw := map[string]any{
		"colormaps": map[string]any{
			"c": map[string]any{
				"type":   "categorical",
				"colors": map[string]any{"Straße": "#000000", "STRASSE": "#FFFFFF", "other": "#777777"},
			},
		},
	}
	errs := Validate(raw, false)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	warnings := errs.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0].Error(), "only by case") {
		t.Errorf("warning = %q", warnings[0].Error())
	}
}

func TestParseColormapDefaults(t *testing.T) {
	cm, errs := ParseColormap(map[string]any{
		"type":   "continuous",
		"colors": []string{"#000000", "#808080", "#FFFFFF", "#FF0000", "#00FF00"},
	})
	if errs.HasErrors() {
		t.Fatalf("ParseColormap errors: %v", errs)
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if diff := cmp.Diff(want, cm.(*Continuous).Positions()); diff != "" {
		t.Errorf("default positions mismatch (-want +got):\n%s", diff)
	}
	if _, present := cm.document().Get("positions"); present {
		t.Error("implicit positions were written back to the document")
	}
}

func TestValidationErrorsMessages(t *testing.T) {
	errs := ValidationErrors{
		{Path: "a", Message: "bad"},
		{Path: "b", Message: "odd", Severity: SeverityWarning},
	}
	if got := errs.Error(); got != "validation failed with 2 problems: a: bad; b: odd (warning)" {
		t.Errorf("Error() = %q", got)
	}
	if got := errs.Errors().Error(); got != "validation failed: a: bad" {
		t.Errorf("Errors().Error() = %q", got)
	}
	if len(errs.Warnings()) != 1 {
		t.Errorf("Warnings() = %v", errs.Warnings())
	}
}
