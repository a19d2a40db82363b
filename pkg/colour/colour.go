// Package colour converts between hex, RGB, XYZ and CIE-LAB representations and
// measures colour distances.
package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB represents a color in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// FormatError reports a malformed hex color.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid hex color %q: %s", e.Input, e.Reason)
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (case-insensitive) into RGB.
func ParseHex(hex string) (RGB, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return RGB{}, &FormatError{Input: hex, Reason: fmt.Sprintf("expected 6 hex digits, got %d", len(digits))}
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return RGB{}, &FormatError{Input: hex, Reason: fmt.Sprintf("non-hex character %q", digits[i])}
		}
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, &FormatError{Input: hex, Reason: err.Error()}
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// IsHex reports whether s is a well-formed hex color.
func IsHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// HexToRGB parses a hex color into integer channels in [0,255].
func HexToRGB(hex string) (r, g, b int, err error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	return int(rgb.R), int(rgb.G), int(rgb.B), nil
}

// RGBToHex formats integer channels as "#RRGGBB".
// Out-of-range channels are clamped to [0,255].
func RGBToHex(r, g, b int) string {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}.Hex()
}

// Normalise returns the canonical "#RRGGBB" form of a hex color.
func Normalise(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// clampChannel clamps an integer to the 8-bit range.
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
