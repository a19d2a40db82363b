package colormap

import (
	"math"

	"github.com/jmylchreest/biocrayon/pkg/colour"
)

const (
	candidateHues       = 12
	candidateSaturation = 0.7
)

// Lightness tiers in preference order.
var candidateLightness = []float64{0.5, 0.35, 0.7}

// candidates is the fixed pool NextColor draws from: evenly spaced hues at
// each lightness tier.
var candidates = buildCandidates()

func buildCandidates() []colour.RGB {
	out := make([]colour.RGB, 0, candidateHues*len(candidateLightness))
	for _, l := range candidateLightness {
		for i := 0; i < candidateHues; i++ {
			h := float64(i) * 360 / candidateHues
			out = append(out, colour.HSLToRGB(h, candidateSaturation, l))
		}
	}
	return out
}

// NextColor picks a colour for a new category. It returns the candidate not
// already in existing whose nearest existing colour is farthest away in RGB.
// Invalid entries in existing are ignored.
func NextColor(existing []string) string {
	used := make(map[colour.RGB]bool, len(existing))
	taken := make([]colour.RGB, 0, len(existing))
	for _, hex := range existing {
		rgb, err := colour.ParseHex(hex)
		if err != nil || used[rgb] {
			continue
		}
		used[rgb] = true
		taken = append(taken, rgb)
	}

	best, bestDist := -1, -1.0
	for i, cand := range candidates {
		if used[cand] {
			continue
		}
		d := math.Inf(1)
		for _, t := range taken {
			d = math.Min(d, colour.DistanceRGB(cand, t))
		}
		if d > bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return candidates[best].Hex()
	}

	// Pool exhausted: walk the 24-bit cube with an odd stride, which visits every value.
	const stride = 0x9E3779
	for i, v := 0, 0; i < 1<<24; i, v = i+1, (v+stride)&0xFFFFFF {
		rgb := colour.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		if !used[rgb] {
			return rgb.Hex()
		}
	}
	return DefaultMissingColor
}
