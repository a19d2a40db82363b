package colour

import (
	"math"
	"testing"
)

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func within(got, want RGB, tol int) bool {
	return absDiff(got.R, want.R) <= tol && absDiff(got.G, want.G) <= tol && absDiff(got.B, want.B) <= tol
}

// 8-bit quantization allows at most one step of drift per channel.
func TestLabRoundTripTolerance(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := LabToRGB(RGBToLab(c))
				if !within(got, c, 1) {
					t.Errorf("LabToRGB(RGBToLab(%s)) = %s, want within 1 of %s", c.Hex(), got.Hex(), c.Hex())
				}
			}
		}
	}
}

func TestXYZRoundTripTolerance(t *testing.T) {
	for _, hex := range []string{"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF", "#E69F00", "#56B4E9"} {
		c, _ := ParseHex(hex)
		got := XYZToRGB(RGBToXYZ(c))
		if !within(got, c, 1) {
			t.Errorf("XYZToRGB(RGBToXYZ(%s)) = %s", hex, got.Hex())
		}
	}
}

func TestRGBToLabReferencePoints(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want Lab
	}{
		{name: "black", rgb: RGB{}, want: Lab{L: 0, A: 0, B: 0}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: Lab{L: 100, A: 0, B: 0}},
		{name: "red", rgb: RGB{R: 255}, want: Lab{L: 53.24, A: 80.09, B: 67.20}},
		{name: "blue", rgb: RGB{B: 255}, want: Lab{L: 32.30, A: 79.19, B: -107.86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToLab(tt.rgb)
			if math.Abs(got.L-tt.want.L) > 0.1 || math.Abs(got.A-tt.want.A) > 0.1 || math.Abs(got.B-tt.want.B) > 0.1 {
				t.Errorf("RGBToLab(%s) = %+v, want %+v", tt.rgb.Hex(), got, tt.want)
			}
		})
	}
}

func TestLabToRGBClamps(t *testing.T) {
	got := LabToRGB(Lab{L: 150, A: 0, B: 0})
	if got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("LabToRGB(L=150) = %s, want #FFFFFF", got.Hex())
	}
	got = LabToRGB(Lab{L: -20, A: 0, B: 0})
	if got != (RGB{}) {
		t.Errorf("LabToRGB(L=-20) = %s, want #000000", got.Hex())
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{a: "#000000", b: "#FFFFFF", want: 441.67},
		{a: "#FF0000", b: "#00FF00", want: 360.62},
		{a: "#123456", b: "123456", want: 0},
	}

	for _, tt := range tests {
		got, err := Distance(tt.a, tt.b)
		if err != nil {
			t.Fatalf("Distance(%s, %s) error: %v", tt.a, tt.b, err)
		}
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("Distance(%s, %s) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := Distance("#000000", "bad"); err == nil {
		t.Error("Distance with malformed input expected error")
	}
}

func TestDeltaE76(t *testing.T) {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	if got := DeltaE76(black, white); math.Abs(got-100) > 0.01 {
		t.Errorf("DeltaE76(black, white) = %.3f, want 100", got)
	}
	if got := DeltaE76(white, white); got != 0 {
		t.Errorf("DeltaE76(white, white) = %.3f, want 0", got)
	}
}

func TestLerp(t *testing.T) {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}

	tests := []struct {
		t    float64
		want RGB
	}{
		{t: 0, want: black},
		{t: 1, want: white},
		{t: 0.5, want: RGB{R: 128, G: 128, B: 128}},
		{t: 0.25, want: RGB{R: 64, G: 64, B: 64}},
		{t: -1, want: black},
		{t: 2, want: white},
	}

	for _, tt := range tests {
		if got := Lerp(black, white, tt.t); got != tt.want {
			t.Errorf("Lerp(black, white, %v) = %s, want %s", tt.t, got.Hex(), tt.want.Hex())
		}
	}
}

func TestLerpLabEndpoints(t *testing.T) {
	blue := RGB{B: 255}
	red := RGB{R: 255}

	if got := LerpLab(blue, red, 0); !within(got, blue, 1) {
		t.Errorf("LerpLab(t=0) = %s, want %s", got.Hex(), blue.Hex())
	}
	if got := LerpLab(blue, red, 1); !within(got, red, 1) {
		t.Errorf("LerpLab(t=1) = %s, want %s", got.Hex(), red.Hex())
	}

	// LAB midpoint between black and white is L*=50, which is not RGB 128.
	mid := LerpLab(RGB{}, RGB{R: 255, G: 255, B: 255}, 0.5)
	if mid.R != mid.G || mid.G != mid.B {
		t.Errorf("LerpLab grey midpoint = %s, want a neutral grey", mid.Hex())
	}
	if lab := RGBToLab(mid); math.Abs(lab.L-50) > 0.5 {
		t.Errorf("LerpLab grey midpoint L* = %.2f, want 50", lab.L)
	}
}
