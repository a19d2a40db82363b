package colormap

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func bioCollection(t *testing.T) *Collection {
	t.Helper()

	amino := map[string]any{}
	for i, aa := range "ACDEFGHIKLMNPQRSTVWY-X" {
		amino[string(aa)] = fmt.Sprintf("#%02X%02X%02X", i*11, 255-i*11, (i*37)%256)
	}

	c, err := New(map[string]any{
		"colormaps": map[string]any{
			"good_expression": map[string]any{
				"type":   "continuous",
				"colors": []string{"#0000FF", "#FFFFFF", "#FF0000"},
			},
			"poor_expression": map[string]any{
				"type":   "continuous",
				"colors": []string{"#808080", "#A0A0A0"},
			},
			"expression_0_10": map[string]any{
				"type":      "continuous",
				"colors":    []string{"#000000", "#FFFFFF"},
				"positions": []float64{0, 10},
			},
			"nucleotides": map[string]any{
				"type":   "categorical",
				"colors": map[string]any{"A": "#00CC00", "T": "#CC0000", "G": "#FFB300", "C": "#0000CC"},
			},
			"amino_acids": map[string]any{
				"type":   "categorical",
				"colors": amino,
			},
			"similar_cells": map[string]any{
				"type":   "categorical",
				"colors": map[string]any{"T": "#FF0000", "B": "#FE0101", "NK": "#0000FF"},
			},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestValidateBioRequirements(t *testing.T) {
	c := bioCollection(t)

	tests := []struct {
		colormap string
		bioType  string
		wantOK   bool
		contains string
	}{
		{colormap: "good_expression", bioType: "expression", wantOK: true},
		{colormap: "poor_expression", bioType: "expression", contains: "insufficient contrast"},
		{colormap: "nucleotides", bioType: "expression", contains: "requires a continuous colormap"},
		{colormap: "nucleotides", bioType: "sequence", wantOK: true},
		{colormap: "good_expression", bioType: "sequence", contains: "requires a categorical colormap"},
		{colormap: "amino_acids", bioType: "sequence", contains: "22 categories"},
		{colormap: "nucleotides", bioType: "cell_type", wantOK: true},
		{colormap: "similar_cells", bioType: "cell_type", contains: `"B" and "T"`},
		{colormap: "good_expression", bioType: "cell_type", contains: "requires a categorical colormap"},
		{colormap: "nucleotides", bioType: "proteomics", contains: "unknown bio type"},
	}

	for _, tt := range tests {
		t.Run(tt.colormap+"/"+tt.bioType, func(t *testing.T) {
			problems, err := c.ValidateBioRequirements(tt.colormap, tt.bioType)
			if err != nil {
				t.Fatalf("ValidateBioRequirements: %v", err)
			}
			if tt.wantOK {
				if len(problems) != 0 {
					t.Errorf("problems = %v, want none", problems)
				}
				return
			}
			if len(problems) == 0 {
				t.Fatal("no problems reported")
			}
			if !strings.Contains(strings.Join(problems, "\n"), tt.contains) {
				t.Errorf("problems = %v, want mention of %q", problems, tt.contains)
			}
		})
	}

	if _, err := c.ValidateBioRequirements("nope", "expression"); !errors.Is(err, ErrColormapNotFound) {
		t.Errorf("unknown colormap error = %v, want ErrColormapNotFound", err)
	}
}

func TestValidateExpressionRange(t *testing.T) {
	c := bioCollection(t)

	tests := []struct {
		colormap string
		min, max float64
		problems int
	}{
		{colormap: "good_expression", min: 0, max: 1},
		{colormap: "good_expression", min: 0.005, max: 1.005},
		{colormap: "good_expression", min: -1, max: 2, problems: 2},
		{colormap: "good_expression", min: 0, max: 2, problems: 1},
		{colormap: "expression_0_10", min: 0, max: 10},
		{colormap: "expression_0_10", min: 0, max: 5},
		{colormap: "expression_0_10", min: 0, max: 20, problems: 1},
		{colormap: "nucleotides", min: 0, max: 1, problems: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s[%g,%g]", tt.colormap, tt.min, tt.max), func(t *testing.T) {
			problems, err := c.ValidateExpressionRange(tt.colormap, tt.min, tt.max)
			if err != nil {
				t.Fatalf("ValidateExpressionRange: %v", err)
			}
			if len(problems) != tt.problems {
				t.Errorf("problems = %v, want %d", problems, tt.problems)
			}
		})
	}

	if _, err := c.ValidateExpressionRange("good_expression", 1, 1); err == nil {
		t.Error("min == max accepted")
	}
	if _, err := c.ValidateExpressionRange("nope", 0, 1); !errors.Is(err, ErrColormapNotFound) {
		t.Errorf("unknown colormap error = %v, want ErrColormapNotFound", err)
	}
}
