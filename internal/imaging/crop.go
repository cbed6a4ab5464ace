package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// MaxPreviewScale is the largest resize factor FocusPreview accepts.
const MaxPreviewScale = 4.0

// ErrPreviewScale is returned for a preview scale outside (0, MaxPreviewScale].
var ErrPreviewScale = errors.New("invalid preview scale")

// PreviewResult contains an encoded view of the part of an upload the
// colour engine analyses.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// Focused is false when no garment region was found and the preview
	// shows the whole image.
	Focused bool `json:"focused"`

	// Region is the focus region in source pixels.
	Region raster.Region `json:"region"`

	Background string `json:"background,omitempty"`
}

// FocusPreview crops the source image to the garment region found on the
// working raster. A scale other than 1 resizes the crop.
func FocusPreview(d *Decoded, scale float64) (*PreviewResult, error) {
	if !(scale > 0 && scale <= MaxPreviewScale) {
		return nil, fmt.Errorf("%w: %g not in (0, %g]", ErrPreviewScale, scale, MaxPreviewScale)
	}

	bg, hasBg := extract.EstimateBackground(d.Working)
	region, ok := extract.FocusRegion(d.Working, bg, hasBg)

	b := d.Source.Bounds()
	src := raster.Region{Width: b.Dx(), Height: b.Dy()}
	if ok {
		src = d.ScaleToSource(region)
	}
	if src.Empty() {
		return nil, fmt.Errorf("failed to crop preview: %w", raster.ErrEmptyImage)
	}

	var cropped image.Image = imaging.Crop(d.Source, image.Rect(
		b.Min.X+src.X, b.Min.Y+src.Y, b.Min.X+src.X+src.Width, b.Min.Y+src.Y+src.Height))

	if scale != 1.0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	encoded, err := encodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	res := &PreviewResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Focused:     ok,
		Region:      src,
	}
	if hasBg {
		res.Background = bg.Hex()
	}
	return res, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
