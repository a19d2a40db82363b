package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WhiteD65 is the reference white used for every XYZ and LAB conversion (Y = 1).
var WhiteD65 = XYZ{X: 0.95047, Y: 1.00000, Z: 1.08883}

// XYZ is a CIE 1931 tristimulus value relative to D65, with Y in [0,1].
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIE L*a*b* color relative to D65. L is in [0,100].
type Lab struct {
	L, A, B float64
}

func (w XYZ) wref() [3]float64 {
	return [3]float64{w.X, w.Y, w.Z}
}

// go-colorful scales L*a*b* by 1/100.
const labScale = 100.0

func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// RGBToXYZ converts sRGB to XYZ via the linearised sRGB transfer function.
func RGBToXYZ(rgb RGB) XYZ {
	r, g, b := rgb.colorful().LinearRgb()
	x, y, z := colorful.LinearRgbToXyz(r, g, b)
	return XYZ{X: x, Y: y, Z: z}
}

// XYZToRGB converts XYZ to 8-bit sRGB, clamping out-of-gamut channels.
func XYZToRGB(xyz XYZ) RGB {
	r, g, b := colorful.XyzToLinearRgb(xyz.X, xyz.Y, xyz.Z)
	return fromColorful(colorful.LinearRgb(r, g, b))
}

// XYZToLab converts XYZ to CIE-LAB under the D65 white point.
func XYZToLab(xyz XYZ) Lab {
	l, a, b := colorful.XyzToLabWhiteRef(xyz.X, xyz.Y, xyz.Z, WhiteD65.wref())
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// LabToXYZ converts CIE-LAB under the D65 white point to XYZ.
func LabToXYZ(lab Lab) XYZ {
	x, y, z := colorful.LabToXyzWhiteRef(lab.L/labScale, lab.A/labScale, lab.B/labScale, WhiteD65.wref())
	return XYZ{X: x, Y: y, Z: z}
}

// RGBToLab converts sRGB to CIE-LAB.
func RGBToLab(rgb RGB) Lab {
	return XYZToLab(RGBToXYZ(rgb))
}

// LabToRGB converts CIE-LAB to sRGB, clamping each channel to [0,255].
func LabToRGB(lab Lab) RGB {
	return XYZToRGB(LabToXYZ(lab))
}

// DistanceRGB returns the Euclidean distance between two colors in RGB space (0-441.67).
func DistanceRGB(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Distance returns the Euclidean RGB distance between two hex colors.
func Distance(hex1, hex2 string) (float64, error) {
	a, err := ParseHex(hex1)
	if err != nil {
		return 0, err
	}
	b, err := ParseHex(hex2)
	if err != nil {
		return 0, err
	}
	return DistanceRGB(a, b), nil
}

// DeltaE76 returns the CIE76 perceptual distance between two colors.
func DeltaE76(a, b RGB) float64 {
	return DeltaE76Lab(RGBToLab(a), RGBToLab(b))
}

// DeltaE76Lab returns the Euclidean distance between two LAB colors.
func DeltaE76Lab(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Lerp interpolates each RGB channel linearly and rounds to the nearest integer.
// t is clamped to [0,1].
func Lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

// LerpLab interpolates L*, a* and b* linearly and converts back to sRGB.
// t is clamped to [0,1].
func LerpLab(a, b RGB, t float64) RGB {
	t = clamp01(t)
	la, lb := RGBToLab(a), RGBToLab(b)
	return LabToRGB(Lab{
		L: la.L + t*(lb.L-la.L),
		A: la.A + t*(lb.A-la.A),
		B: la.B + t*(lb.B-la.B),
	})
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + t*(float64(b)-float64(a))
	return clampChannel(int(math.Round(v)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
