package colormap

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/biocrayon/pkg/colorblind"
	"github.com/jmylchreest/biocrayon/pkg/colour"
)

// ColorblindReport analyses the named colormap under simulated dichromacy.
// Continuous maps are sampled at ContinuousSamples evenly spaced points.
func (c *Collection) ColorblindReport(name string) (colorblind.Report, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, err := c.lookup(name)
	if err != nil {
		return colorblind.Report{}, err
	}
	return colorblind.Analyze(cm.rgbColors()), nil
}

// IsColorblindSafe reports whether every colour pair of the named colormap stays
// at least colorblind.MinimumDistance apart under each simulated deficiency.
func (c *Collection) IsColorblindSafe(name string) (bool, error) {
	report, err := c.ColorblindReport(name)
	if err != nil {
		return false, err
	}
	return report.Safe(), nil
}

// SampleColors returns the colours the safety analysis uses for the named colormap.
func (c *Collection) SampleColors(name string) ([]colour.RGB, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return cm.rgbColors(), nil
}

// CreateColorblindSafeColormap adds a categorical colormap named name with
// categories category_0..category_{n-1} drawn from colorblind.SafePalette.
func (c *Collection) CreateColorblindSafeColormap(name string, n int) error {
	if name == "" {
		return errors.New("colormap name must not be empty")
	}
	if n < 1 {
		return fmt.Errorf("number of categories must be at least 1, got %d", n)
	}
	if n > len(colorblind.SafePalette) {
		return &CapacityError{Requested: n, Available: len(colorblind.SafePalette)}
	}

	cm := newCategorical(fmt.Sprintf("Colorblind-safe categorical colormap with %d categories", n))
	for i, rgb := range colorblind.SafeColors(n) {
		cm.insert(fmt.Sprintf("category_%d", i), colorblind.SafePalette[i], rgb)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.colormaps[name]; exists {
		return fmt.Errorf("%w: %q", ErrColormapExists, name)
	}
	c.store(name, cm)
	c.logger.Debug("created colorblind-safe colormap", "name", name, "categories", n)
	return nil
}
