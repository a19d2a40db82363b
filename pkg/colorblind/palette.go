package colorblind

import "github.com/jmylchreest/biocrayon/pkg/colour"

// SafePalette holds colours that stay at least 34.9 CIE76 units apart under all
// three simulated deficiencies. Any prefix of it is therefore safe as well.
var SafePalette = []string{
	"#000044", // navy
	"#88FF00", // lime
	"#BB3300", // rust
	"#FFAAEE", // pink
	"#6600FF", // violet
	"#EEFFAA", // cream
	"#330000", // dark brown
	"#AA22AA", // purple
	"#776666", // taupe
}

// SafeColors returns the first n colours of SafePalette as RGB values.
// It returns nil when n is out of range.
func SafeColors(n int) []colour.RGB {
	if n < 0 || n > len(SafePalette) {
		return nil
	}
	out := make([]colour.RGB, n)
	for i := 0; i < n; i++ {
		// SafePalette entries are compile-time constants.
		out[i], _ = colour.ParseHex(SafePalette[i])
	}
	return out
}
