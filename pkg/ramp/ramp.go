// Package ramp builds colour ramps from colormaps for plotting front ends.
package ramp

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

// DefaultSteps is the number of samples taken from a continuous colormap when
// none is given.
const DefaultSteps = 256

// Source supplies colormaps and colours. *colormap.Collection implements it.
type Source interface {
	GetColormapInfo(name string) (colormap.Info, error)
	GetColormap(name string) (colormap.Colormap, error)
	GetColor(name string, key any, p colormap.Policy) (string, error)
	GetColorLAB(name string, key any, p colormap.Policy) (string, error)
}

// Ramp is an ordered list of colours with a label for each.
type Ramp struct {
	Name   string        `json:"name"`
	Kind   colormap.Kind `json:"type"`
	Labels []string      `json:"labels"`
	Colors []string      `json:"colors"`
}

// Len returns the number of entries.
func (r Ramp) Len() int {
	return len(r.Colors)
}

// Build samples the named colormap. Continuous colormaps yield n evenly spaced
// values across their stop positions; n <= 0 means DefaultSteps. A declared
// range is advisory and does not widen the sampled span. Categorical
// colormaps yield one entry per category and ignore n. lab selects LAB
// interpolation for continuous maps.
func Build(src Source, name string, n int, lab bool) (Ramp, error) {
	info, err := src.GetColormapInfo(name)
	if err != nil {
		return Ramp{}, err
	}

	get := src.GetColor
	if lab {
		get = src.GetColorLAB
	}

	r := Ramp{Name: name, Kind: info.Kind}
	switch info.Kind {
	case colormap.KindCategorical:
		for _, cat := range info.Categories {
			hex, err := get(name, cat, colormap.Policy{})
			if err != nil {
				return Ramp{}, fmt.Errorf("category %q: %w", cat, err)
			}
			r.Labels = append(r.Labels, cat)
			r.Colors = append(r.Colors, hex)
		}

	case colormap.KindContinuous:
		cm, err := src.GetColormap(name)
		if err != nil {
			return Ramp{}, err
		}
		cont, ok := cm.(*colormap.Continuous)
		if !ok {
			return Ramp{}, fmt.Errorf("colormap %q is not continuous", name)
		}
		if n <= 0 {
			n = DefaultSteps
		}
		if n == 1 {
			n = 2
		}
		lo, hi := cont.Domain()
		for i := 0; i < n; i++ {
			v := lo + (hi-lo)*float64(i)/float64(n-1)
			hex, err := get(name, v, colormap.Policy{})
			if err != nil {
				return Ramp{}, fmt.Errorf("value %g: %w", v, err)
			}
			r.Labels = append(r.Labels, strconv.FormatFloat(v, 'g', 6, 64))
			r.Colors = append(r.Colors, hex)
		}

	default:
		return Ramp{}, errors.New("unsupported colormap type: " + string(info.Kind))
	}

	return r, nil
}
