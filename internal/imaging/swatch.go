package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
)

const (
	// DefaultSwatchSize is the edge length of each chip in a rendered swatch.
	DefaultSwatchSize = 48

	// MaxSwatchSize and MaxSwatchColors bound the strip so a single request
	// cannot allocate an arbitrarily large image.
	MaxSwatchSize   = 512
	MaxSwatchColors = 64
)

var (
	// ErrNoColors is returned when a swatch is requested for an empty palette.
	ErrNoColors = errors.New("no colours to render")

	// ErrSwatchTooLarge is returned when the chip size or colour count
	// exceeds MaxSwatchSize or MaxSwatchColors.
	ErrSwatchTooLarge = errors.New("swatch too large")
)

// SwatchResult is an encoded palette swatch.
type SwatchResult struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Colors      []string `json:"colors"`
	ImageBase64 string   `json:"image_base64"`
	MimeType    string   `json:"mime_type"`
}

// RenderSwatch draws hexes as a horizontal strip of square chips, size
// pixels each, in the given order.
func RenderSwatch(hexes []string, size int) (*image.NRGBA, error) {
	if len(hexes) == 0 {
		return nil, ErrNoColors
	}
	if size <= 0 {
		size = DefaultSwatchSize
	}
	if size > MaxSwatchSize {
		return nil, fmt.Errorf("%w: chip size %d exceeds %d", ErrSwatchTooLarge, size, MaxSwatchSize)
	}
	if len(hexes) > MaxSwatchColors {
		return nil, fmt.Errorf("%w: %d colours exceeds %d", ErrSwatchTooLarge, len(hexes), MaxSwatchColors)
	}

	img := image.NewNRGBA(image.Rect(0, 0, size*len(hexes), size))
	for i, hex := range hexes {
		rgb, ok := colorspace.ParseHex(hex)
		if !ok {
			return nil, fmt.Errorf("%w: %q", colorspace.ErrInvalidHex, hex)
		}
		chip := image.Rect(i*size, 0, (i+1)*size, size)
		draw.Draw(img, chip, image.NewUniform(color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}), image.Point{}, draw.Src)
	}
	return img, nil
}

// EncodeSwatch renders hexes and returns the swatch as a base64 PNG.
func EncodeSwatch(hexes []string, size int) (*SwatchResult, error) {
	img, err := RenderSwatch(hexes, size)
	if err != nil {
		return nil, err
	}
	encoded, err := encodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}
	return &SwatchResult{
		Width:       img.Rect.Dx(),
		Height:      img.Rect.Dy(),
		Colors:      hexes,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// WriteSwatch renders hexes and saves the swatch as a PNG file at path.
func WriteSwatch(path string, hexes []string, size int) error {
	img, err := RenderSwatch(hexes, size)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write swatch: %w", err)
	}
	return nil
}
