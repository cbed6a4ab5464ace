package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/palette"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor is an HSL color rounded for display.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorSample describes a single pixel of an upload.
type ColorSample struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Hex   string   `json:"hex"`
	RGB   RGBColor `json:"rgb"`
	Alpha uint8    `json:"alpha"`
	HSL   HSLColor `json:"hsl"`

	// Name is the nearest entry of the named colour table.
	Name string `json:"name"`

	// Skin reports whether the colour engine would treat the pixel as skin
	// when locating the garment.
	Skin bool `json:"skin"`
}

// SampleColor reads the pixel at (x, y) of img, with the origin at the
// top-left of its bounds. Colours are reported unpremultiplied.
func SampleColor(img image.Image, x, y int) (*ColorSample, error) {
	b := img.Bounds()
	px, py := b.Min.X+x, b.Min.Y+y
	if x < 0 || y < 0 || px >= b.Max.X || py >= b.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, b.Dx(), b.Dy())
	}

	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	hex := colorspace.FormatHex(c.R, c.G, c.B)

	return &ColorSample{
		X:     x,
		Y:     y,
		Hex:   hex,
		RGB:   RGBColor{R: c.R, G: c.G, B: c.B},
		Alpha: c.A,
		HSL:   roundHSL(colorspace.RGBToHSL(c.R, c.G, c.B)),
		Name:  palette.NearestName(hex),
		Skin:  extract.IsSkin(c.R, c.G, c.B),
	}, nil
}

func roundHSL(hsl colorspace.HSL) HSLColor {
	h := int(math.Round(hsl.H)) % 360
	return HSLColor{
		H: h,
		S: int(math.Round(hsl.S * 100)),
		L: int(math.Round(hsl.L * 100)),
	}
}
