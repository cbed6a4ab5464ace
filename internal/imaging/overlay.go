package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

const (
	// DefaultOverlayColor is the focus box colour when none is given.
	DefaultOverlayColor = "#FF00FFCC"

	overlayLineWidth  = 2
	overlayChipSize   = 16
	overlayChipMargin = 4
)

// OverlayResult contains the source image annotated with the focus region
// and the extracted palette.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	Focused bool          `json:"focused"`
	Region  raster.Region `json:"region"`
}

// FocusOverlay draws the focus region of d as a box labelled with its
// source coordinates, and a row of colour chips for the dominant colours of
// res along the bottom edge. res may be nil.
func FocusOverlay(d *Decoded, res *extract.Result, boxColorHex string) (*OverlayResult, error) {
	boxColor, err := overlayColor(boxColorHex)
	if err != nil {
		boxColor, _ = overlayColor(DefaultOverlayColor)
	}

	bounds := d.Source.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), d.Source, bounds.Min, draw.Src)

	bg, hasBg := extract.EstimateBackground(d.Working)
	region, ok := extract.FocusRegion(d.Working, bg, hasBg)

	var src raster.Region
	if ok {
		src = d.ScaleToSource(region)
		drawBox(out, src, boxColor)
		label := fmt.Sprintf("%d,%d", src.X, src.Y)
		drawLabel(out, src.X+overlayLineWidth+1, src.Y+overlayLineWidth+1, label,
			color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})
	}

	if res != nil {
		drawChips(out, res.Hexes())
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Focused:     ok,
		Region:      src,
	}, nil
}

func drawBox(img *image.RGBA, r raster.Region, c color.RGBA) {
	for i := 0; i < overlayLineWidth; i++ {
		for x := r.X; x < r.X+r.Width; x++ {
			blendPixel(img, x, r.Y+i, c)
			blendPixel(img, x, r.Y+r.Height-1-i, c)
		}
		for y := r.Y + overlayLineWidth; y < r.Y+r.Height-overlayLineWidth; y++ {
			blendPixel(img, r.X+i, y, c)
			blendPixel(img, r.X+r.Width-1-i, y, c)
		}
	}
}

func drawChips(img *image.RGBA, hexes []string) {
	bounds := img.Bounds()
	y0 := bounds.Max.Y - overlayChipSize - overlayChipMargin
	if y0 < bounds.Min.Y {
		return
	}
	x0 := bounds.Min.X + overlayChipMargin
	for _, hex := range hexes {
		c, err := overlayColor(hex)
		if err != nil {
			continue
		}
		if x0+overlayChipSize > bounds.Max.X {
			return
		}
		draw.Draw(img, image.Rect(x0-1, y0-1, x0+overlayChipSize+1, y0+overlayChipSize+1),
			image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(x0, y0, x0+overlayChipSize, y0+overlayChipSize),
			image.NewUniform(c), image.Point{}, draw.Src)
		x0 += overlayChipSize + overlayChipMargin
	}
}

// blendPixel composites c over the pixel at (x, y), ignoring points outside
// the image.
func blendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	draw.Draw(img, image.Rect(x, y, x+1, y+1), image.NewUniform(premultiply(c)), image.Point{}, draw.Over)
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// overlayColor parses "#rrggbb" or "#rrggbbaa". The colour part goes
// through colorspace; the optional trailing byte is the alpha. The result is
// not premultiplied.
func overlayColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	alpha := uint8(255)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: alpha %q", colorspace.ErrInvalidHex, hex[6:])
		}
		alpha = uint8(a)
		hex = hex[:6]
	}
	rgb, ok := colorspace.ParseHex(hex)
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", colorspace.ErrInvalidHex, hex)
	}
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: alpha}, nil
}

// labelGlyphs is a 3x5 bitmap font for coordinate labels, one row per byte
// with the leftmost pixel in bit 2.
var labelGlyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	',': {0b000, 0b000, 0b000, 0b010, 0b010},
}

const (
	labelAdvance = 4
	labelHeight  = 5
)

// drawLabel writes text at (x, y) in fg over a one pixel padded bg plate.
// Runes without a glyph leave a gap.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	n := utf8.RuneCountInString(text)
	plate := image.Rect(x-1, y-1, x+n*labelAdvance, y+labelHeight+1)
	for py := plate.Min.Y; py < plate.Max.Y; py++ {
		for px := plate.Min.X; px < plate.Max.X; px++ {
			blendPixel(img, px, py, bg)
		}
	}

	for i, ch := range []rune(text) {
		glyph, ok := labelGlyphs[ch]
		if !ok {
			continue
		}
		gx := x + i*labelAdvance
		for row, bits := range glyph {
			for col := 0; col < 3; col++ {
				if bits&(0b100>>col) != 0 {
					blendPixel(img, gx+col, y+row, fg)
				}
			}
		}
	}
}
