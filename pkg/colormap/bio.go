package colormap

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

const (
	// ExpressionRangeTolerance is the fraction of the expected span a continuous
	// colormap may fall short by at either end.
	ExpressionRangeTolerance = 0.01

	// MinExpressionContrast is the minimum CIE76 distance between the end stops
	// of an expression colormap.
	MinExpressionContrast = 40.0

	// MaxSequenceCategories covers the amino-acid alphabet plus a gap symbol.
	MaxSequenceCategories = 21

	// LowContrastDistance is the CIE76 distance below which two cell-type
	// colours are reported as too similar.
	LowContrastDistance = 10.0
)

// BioType names a family of biological data with its own colormap requirements.
type BioType string

const (
	BioExpression BioType = "expression"
	BioSequence   BioType = "sequence"
	BioCellType   BioType = "cell_type"
)

// BioTypes lists the supported data types.
var BioTypes = []BioType{BioExpression, BioSequence, BioCellType}

// ValidateExpressionRange checks that the positions of the named continuous
// colormap cover [expectedMin, expectedMax], allowing ExpressionRangeTolerance
// of the expected span at each end. The returned messages are empty when it does.
func (c *Collection) ValidateExpressionRange(name string, expectedMin, expectedMax float64) ([]string, error) {
	if !(expectedMin < expectedMax) {
		return nil, fmt.Errorf("expected min %g must be less than expected max %g", expectedMin, expectedMax)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, err := c.lookup(name)
	if err != nil {
		return nil, err
	}

	cont, ok := cm.(*Continuous)
	if !ok {
		return []string{fmt.Sprintf("colormap %q is %s; expression ranges apply to continuous colormaps", name, cm.Kind())}, nil
	}

	tol := (expectedMax - expectedMin) * ExpressionRangeTolerance
	lo, hi := cont.Domain()

	var problems []string
	if lo > expectedMin+tol {
		problems = append(problems, fmt.Sprintf("colormap starts at %g, above expected minimum %g", lo, expectedMin))
	}
	if hi < expectedMax-tol {
		problems = append(problems, fmt.Sprintf("colormap ends at %g, below expected maximum %g", hi, expectedMax))
	}
	return problems, nil
}

// ValidateBioRequirements checks the named colormap against the rules for
// bioType. The returned messages are empty when every rule passes.
func (c *Collection) ValidateBioRequirements(name, bioType string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, err := c.lookup(name)
	if err != nil {
		return nil, err
	}

	switch BioType(bioType) {
	case BioExpression:
		return checkExpression(name, cm), nil
	case BioSequence:
		return checkSequence(name, cm), nil
	case BioCellType:
		return checkCellType(name, cm), nil
	default:
		names := make([]string, len(BioTypes))
		for i, t := range BioTypes {
			names[i] = string(t)
		}
		return []string{fmt.Sprintf("unknown bio type %q (supported: %s)", bioType, strings.Join(names, ", "))}, nil
	}
}

func checkExpression(name string, cm Colormap) []string {
	cont, ok := cm.(*Continuous)
	if !ok {
		return []string{fmt.Sprintf("expression data requires a continuous colormap; %q is %s", name, cm.Kind())}
	}
	first, last := cont.rgb[0], cont.rgb[len(cont.rgb)-1]
	if d := colour.DeltaE76(first, last); d < MinExpressionContrast {
		return []string{fmt.Sprintf("insufficient contrast between %s and %s: delta E %.1f, need at least %.0f",
			cont.colors[0], cont.colors[len(cont.colors)-1], d, MinExpressionContrast)}
	}
	return nil
}

func checkSequence(name string, cm Colormap) []string {
	cat, ok := cm.(*Categorical)
	if !ok {
		return []string{fmt.Sprintf("sequence data requires a categorical colormap; %q is %s", name, cm.Kind())}
	}
	if n := cat.Len(); n > MaxSequenceCategories {
		return []string{fmt.Sprintf("sequence colormap has %d categories, at most %d allowed", n, MaxSequenceCategories)}
	}
	return nil
}

func checkCellType(name string, cm Colormap) []string {
	cat, ok := cm.(*Categorical)
	if !ok {
		return []string{fmt.Sprintf("cell type data requires a categorical colormap; %q is %s", name, cm.Kind())}
	}

	var problems []string
	for i, a := range cat.categories {
		for _, b := range cat.categories[i+1:] {
			if d := colour.DeltaE76(cat.rgb[a], cat.rgb[b]); d < LowContrastDistance {
				problems = append(problems, fmt.Sprintf("categories %q and %q are too similar (delta E %.1f)", a, b, d))
			}
		}
	}
	return problems
}
