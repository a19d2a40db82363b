package colormap

import (
	"errors"
	"strings"
	"testing"
)

func TestAccessorPolicy(t *testing.T) {
	c := sampleCollection(t)
	a, err := c.Accessor("cell_types")
	if err != nil {
		t.Fatalf("Accessor: %v", err)
	}

	if _, err := a.Color("Monocyte"); err == nil {
		t.Error("default accessor filled a missing category")
	}

	filled := a.WithFillMissing(true, "#FF9999")
	if a.Policy().FillMissing {
		t.Error("WithFillMissing modified the original accessor")
	}

	got, err := filled.Color(nil)
	if err != nil || got != "#FF9999" {
		t.Errorf("Color(nil) = %s, %v; want #FF9999", got, err)
	}

	assigned, err := filled.Color("Monocyte")
	if err != nil {
		t.Fatalf("Color(Monocyte): %v", err)
	}
	// Assignment is shared through the collection.
	if got, err := a.Color("Monocyte"); err != nil || got != assigned {
		t.Errorf("original accessor Color(Monocyte) = %s, %v; want %s", got, err, assigned)
	}

	lab, err := filled.ColorLAB("Monocyte")
	if err != nil || lab != assigned {
		t.Errorf("ColorLAB(Monocyte) = %s, %v; want %s", lab, err, assigned)
	}
}

func TestAccessorString(t *testing.T) {
	c := sampleCollection(t)
	a, _ := c.Accessor("cell_types")

	if s := a.String(); strings.Contains(s, "fill_missing") {
		t.Errorf("String() = %q, should not mention fill_missing", s)
	}
	if s := a.WithFillMissing(true, "").String(); !strings.Contains(s, "fill_missing=true") || !strings.Contains(s, DefaultMissingColor) {
		t.Errorf("String() = %q, want fill_missing=true and default colour", s)
	}
	if s := a.WithPolicy(Policy{}).String(); s != `Accessor(colormap="cell_types")` {
		t.Errorf("String() = %q", s)
	}
}

func TestAccessorUnknown(t *testing.T) {
	c := sampleCollection(t)
	if _, err := c.Accessor("nope"); !errors.Is(err, ErrColormapNotFound) {
		t.Errorf("Accessor(nope) error = %v, want ErrColormapNotFound", err)
	}
}

func TestAccessorInfo(t *testing.T) {
	c := sampleCollection(t)
	a, _ := c.Accessor("expression")
	info, err := a.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Kind != KindContinuous || a.Name() != "expression" {
		t.Errorf("Info() = %+v, Name() = %s", info, a.Name())
	}
	if got, _ := a.Color(0.5); got != "#FFFFFF" {
		t.Errorf("Color(0.5) = %s, want #FFFFFF", got)
	}
}
