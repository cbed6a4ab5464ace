// Package colorspace converts between 8-bit RGB, HSL and hex notation.
//
// HSL values use hue in degrees [0,360) and saturation/lightness in [0,1].
// Hex strings are produced lowercase with a leading '#'.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a 6-digit hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB is an 8-bit per channel colour without alpha.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL is a colour in hue/saturation/lightness space.
type HSL struct {
	H float64 `json:"h"` // Hue: [0,360) degrees
	S float64 `json:"s"` // Saturation: [0,1]
	L float64 `json:"l"` // Lightness: [0,1]
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return FormatHex(c.R, c.G, c.B)
}

// HSL converts the colour to HSL.
func (c RGB) HSL() HSL {
	return RGBToHSL(c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// RGBToHSL converts 8-bit RGB to HSL. Achromatic input (max == min) yields
// hue 0 and saturation 0.
func RGBToHSL(r, g, b uint8) HSL {
	h, s, l := RGB{R: r, G: g, B: b}.colorful().Hsl()
	if h >= 360 {
		h -= 360
	}
	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts HSL to 8-bit RGB, rounding each channel. Hue is wrapped
// into [0,360) and saturation/lightness are clamped to [0,1] first.
func HSLToRGB(h, s, l float64) RGB {
	c := colorful.Hsl(WrapHue(h), Clamp(s, 0, 1), Clamp(l, 0, 1)).Clamped()
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// HSLToHex is HSLToRGB followed by FormatHex.
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// FormatHex renders 8-bit channels as "#rrggbb".
func FormatHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// NormalizeHex returns s as lowercase "#rrggbb". Surrounding whitespace and
// the leading '#' are optional on input. Anything other than exactly six hex
// digits is rejected.
func NormalizeHex(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q has %d digits, want 6", ErrInvalidHex, s, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return "", fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidHex, s, s[i])
		}
	}
	return "#" + strings.ToLower(s), nil
}

// ParseHex parses a hex colour. The boolean is false for malformed input;
// callers treat that as an unknown colour.
func ParseHex(s string) (RGB, bool) {
	norm, err := NormalizeHex(s)
	if err != nil {
		return RGB{}, false
	}
	c, err := colorful.Hex(norm)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

// Distance is the Euclidean distance between two colours in 8-bit RGB space.
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// WrapHue maps any angle into [0,360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HueDistance is the shortest angular distance between two hues, in [0,180].
func HueDistance(a, b float64) float64 {
	d := math.Abs(WrapHue(a) - WrapHue(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Clamp restricts v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
