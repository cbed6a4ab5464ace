// Package palette derives colour-theory harmonies from a base colour, names
// colours against a fixed reference table and normalises accent colours for
// legibility.
//
// Everything here is a pure function of its arguments; the named table and
// the neutral list are read-only package data.
package palette

import (
	"fmt"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
)

// Hue offsets in degrees.
var (
	splitComplementaryOffsets = [2]float64{150, 210}
	analogousOffsets          = [4]float64{-30, -15, 15, 30}
	basicAnalogousOffsets     = [2]float64{30, -30}
	triadicOffsets            = [2]float64{120, -120}
	tetradicOffsets           = [3]float64{90, 180, 270}
)

const complementaryOffset = 180

// Monochrome steps are relative lightness changes, clamped to
// [monoMinLightness, monoMaxLightness]. Saturation is clamped so tints of a
// near-gray base are not washed out and tints of a vivid base do not glare.
var monochromeSteps = [6]float64{-0.3, -0.18, -0.08, 0.08, 0.18, 0.3}

const (
	monoMinLightness  = 0.05
	monoMaxLightness  = 0.95
	monoMinSaturation = 0.28
	monoMaxSaturation = 0.9
)

// neutrals pair safely with anything and do not depend on the base colour.
var neutrals = [7]string{"#000000", "#ffffff", "#f5f5f5", "#e5e7eb", "#9ca3af", "#4b5563", "#111827"}

// RichPalette is the full harmony set for a base colour.
type RichPalette struct {
	Base               string    `json:"base"`
	Complementary      string    `json:"complementary"`
	SplitComplementary [2]string `json:"split_complementary"`
	Analogous          [4]string `json:"analogous"`
	Triadic            [2]string `json:"triadic"`
	Tetradic           [3]string `json:"tetradic"`
	Monochrome         [6]string `json:"monochrome"`
	Neutrals           [7]string `json:"neutrals"`
}

// BasicMatches is the reduced harmony set for lighter callers.
type BasicMatches struct {
	Base          string    `json:"base"`
	Complementary string    `json:"complementary"`
	Analogous     [2]string `json:"analogous"`
	Triadic       [2]string `json:"triadic"`
}

// Neutrals returns the fixed neutral list.
func Neutrals() [7]string {
	return neutrals
}

// DeriveHarmony computes every harmony of baseHex. Rotated colours keep the
// base saturation and lightness.
func DeriveHarmony(baseHex string) (*RichPalette, error) {
	base, hsl, err := parseBase(baseHex)
	if err != nil {
		return nil, err
	}

	p := &RichPalette{
		Base:          base,
		Complementary: rotate(hsl, complementaryOffset),
		Neutrals:      neutrals,
	}
	for i, off := range splitComplementaryOffsets {
		p.SplitComplementary[i] = rotate(hsl, off)
	}
	for i, off := range analogousOffsets {
		p.Analogous[i] = rotate(hsl, off)
	}
	for i, off := range triadicOffsets {
		p.Triadic[i] = rotate(hsl, off)
	}
	for i, off := range tetradicOffsets {
		p.Tetradic[i] = rotate(hsl, off)
	}

	s := colorspace.Clamp(hsl.S, monoMinSaturation, monoMaxSaturation)
	for i, step := range monochromeSteps {
		l := colorspace.Clamp(hsl.L+step, monoMinLightness, monoMaxLightness)
		p.Monochrome[i] = colorspace.HSLToHex(hsl.H, s, l)
	}
	return p, nil
}

// DeriveBasicMatches computes the complementary, two analogous (+30, -30)
// and two triadic (+120, -120) colours of baseHex.
func DeriveBasicMatches(baseHex string) (*BasicMatches, error) {
	base, hsl, err := parseBase(baseHex)
	if err != nil {
		return nil, err
	}

	m := &BasicMatches{
		Base:          base,
		Complementary: rotate(hsl, complementaryOffset),
	}
	for i, off := range basicAnalogousOffsets {
		m.Analogous[i] = rotate(hsl, off)
	}
	for i, off := range triadicOffsets {
		m.Triadic[i] = rotate(hsl, off)
	}
	return m, nil
}

// All returns every colour in the palette, base first, without duplicates.
func (p *RichPalette) All() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(hexes ...string) {
		for _, h := range hexes {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	add(p.Base, p.Complementary)
	add(p.SplitComplementary[:]...)
	add(p.Analogous[:]...)
	add(p.Triadic[:]...)
	add(p.Tetradic[:]...)
	add(p.Monochrome[:]...)
	add(p.Neutrals[:]...)
	return out
}

func parseBase(baseHex string) (string, colorspace.HSL, error) {
	base, err := colorspace.NormalizeHex(baseHex)
	if err != nil {
		return "", colorspace.HSL{}, fmt.Errorf("base colour: %w", err)
	}
	rgb, _ := colorspace.ParseHex(base)
	return base, rgb.HSL(), nil
}

func rotate(hsl colorspace.HSL, offset float64) string {
	return colorspace.HSLToHex(colorspace.WrapHue(hsl.H+offset), hsl.S, hsl.L)
}
