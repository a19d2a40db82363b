// Package colorblind simulates dichromatic vision and checks whether a set of
// colours stays pairwise distinguishable under it.
package colorblind

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

// Deficiency identifies a form of dichromatic colour vision.
type Deficiency int

const (
	// Protanopia is the absence of long-wavelength (red) cones.
	Protanopia Deficiency = iota
	// Deuteranopia is the absence of medium-wavelength (green) cones.
	Deuteranopia
	// Tritanopia is the absence of short-wavelength (blue) cones.
	Tritanopia
)

// Deficiencies lists every simulated deficiency in evaluation order.
var Deficiencies = []Deficiency{Protanopia, Deuteranopia, Tritanopia}

// String returns the lower-case name of the deficiency.
func (d Deficiency) String() string {
	switch d {
	case Protanopia:
		return "protanopia"
	case Deuteranopia:
		return "deuteranopia"
	case Tritanopia:
		return "tritanopia"
	default:
		return "unknown"
	}
}

// MinimumDistance is the smallest CIE76 distance two simulated colours may have
// before they are considered indistinguishable.
const MinimumDistance = 30.0

type matrix [3][3]float64

// Machado, Oliveira & Fernandes (2009), severity 1.0, applied to linear sRGB.
var simulations = map[Deficiency]matrix{
	Protanopia: {
		{0.152286, 1.052583, -0.204868},
		{0.114503, 0.786281, 0.099216},
		{-0.003882, -0.048116, 1.051998},
	},
	Deuteranopia: {
		{0.367322, 0.860646, -0.227968},
		{0.280085, 0.672501, 0.047413},
		{-0.011820, 0.042940, 0.968881},
	},
	Tritanopia: {
		{1.255528, -0.076749, -0.178779},
		{-0.078411, 0.930809, 0.147602},
		{0.004733, 0.691367, 0.303900},
	},
}

// Simulate returns how c appears to a viewer with deficiency d.
func Simulate(c colour.RGB, d Deficiency) colour.RGB {
	m, ok := simulations[d]
	if !ok {
		return c
	}

	r, g, b := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.LinearRgb()

	sr := clamp01(m[0][0]*r + m[0][1]*g + m[0][2]*b)
	sg := clamp01(m[1][0]*r + m[1][1]*g + m[1][2]*b)
	sb := clamp01(m[2][0]*r + m[2][1]*g + m[2][2]*b)

	out := colorful.LinearRgb(sr, sg, sb).Clamped()
	rr, gg, bb := out.RGB255()
	return colour.RGB{R: rr, G: gg, B: bb}
}

// Pair is the closest pair of colours found under one simulation.
type Pair struct {
	Deficiency Deficiency
	First      int
	Second     int
	Distance   float64
}

// Safe reports whether the pair is at least MinimumDistance apart.
func (p Pair) Safe() bool {
	return p.Distance >= MinimumDistance
}

// Report holds the closest pair per deficiency. Sets of fewer than two colours
// have no pairs and are trivially safe.
type Report struct {
	Closest []Pair
}

// Safe reports whether every deficiency keeps all pairs distinguishable.
func (r Report) Safe() bool {
	for _, p := range r.Closest {
		if !p.Safe() {
			return false
		}
	}
	return true
}

// Worst returns the closest pair across all deficiencies.
func (r Report) Worst() (Pair, bool) {
	if len(r.Closest) == 0 {
		return Pair{}, false
	}
	worst := r.Closest[0]
	for _, p := range r.Closest[1:] {
		if p.Distance < worst.Distance {
			worst = p
		}
	}
	return worst, true
}

// Analyze simulates every colour under each deficiency and records the closest pair.
func Analyze(colors []colour.RGB) Report {
	if len(colors) < 2 {
		return Report{}
	}

	report := Report{Closest: make([]Pair, 0, len(Deficiencies))}
	for _, d := range Deficiencies {
		labs := make([]colour.Lab, len(colors))
		for i, c := range colors {
			labs[i] = colour.RGBToLab(Simulate(c, d))
		}

		closest := Pair{Deficiency: d, Distance: math.Inf(1)}
		for i := 0; i < len(labs); i++ {
			for j := i + 1; j < len(labs); j++ {
				if dist := colour.DeltaE76Lab(labs[i], labs[j]); dist < closest.Distance {
					closest.First, closest.Second, closest.Distance = i, j, dist
				}
			}
		}
		report.Closest = append(report.Closest, closest)
	}

	return report
}

// IsSafe reports whether colors remain pairwise distinguishable under every
// simulated deficiency.
func IsSafe(colors []colour.RGB) bool {
	return Analyze(colors).Safe()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
