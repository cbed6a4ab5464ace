package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// DefaultWorkingWidth is the width uploads are reduced to before analysis.
const DefaultWorkingWidth = 200

// Decoded is an uploaded photo prepared for colour analysis.
//
// Source is the decoded image after EXIF auto-orientation. Working is Source
// reduced to the working width (never enlarged) as a non-premultiplied RGBA
// buffer; the colour engine only ever sees Working.
type Decoded struct {
	// Hash is the hex SHA-256 of the encoded file contents.
	Hash string

	// Format is the decoder name reported by the image package ("png", "jpeg", ...).
	Format string

	Source  image.Image
	Working *raster.Image

	cacheKey string
}

// ImageInfo describes a decoded upload.
type ImageInfo struct {
	// Width and Height are the oriented source dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// WorkingWidth and WorkingHeight are the dimensions analysis runs at.
	WorkingWidth  int `json:"working_width"`
	WorkingHeight int `json:"working_height"`

	Format string `json:"format"`
	SHA256 string `json:"sha256"`
}

// Info summarises d.
func (d *Decoded) Info() *ImageInfo {
	b := d.Source.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		WorkingWidth:  d.Working.Width,
		WorkingHeight: d.Working.Height,
		Format:        d.Format,
		SHA256:        d.Hash,
	}
}

// ScaleToSource converts a region on the working image to source pixels.
func (d *Decoded) ScaleToSource(r raster.Region) raster.Region {
	b := d.Source.Bounds()
	sx := float64(b.Dx()) / float64(d.Working.Width)
	sy := float64(b.Dy()) / float64(d.Working.Height)
	out := raster.Region{
		X:      int(float64(r.X) * sx),
		Y:      int(float64(r.Y) * sy),
		Width:  int(float64(r.Width)*sx + 0.5),
		Height: int(float64(r.Height)*sy + 0.5),
	}
	return out.Clip(b.Dx(), b.Dy())
}

// Decode decodes an encoded image (PNG, JPEG, GIF or WebP), applies EXIF
// orientation and prepares the working raster.
//
// A workingWidth of zero or less selects DefaultWorkingWidth.
func Decode(data []byte, workingWidth int) (*Decoded, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode image: %w", raster.ErrEmptyImage)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Decoded{
		Hash:    contentHash(data),
		Format:  format,
		Source:  src,
		Working: ToRaster(Downscale(src, workingWidth)),
	}, nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string, workingWidth int) (*Decoded, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-supplied image path
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data, workingWidth)
}

// Downscale reduces img to width pixels wide, preserving aspect ratio. Images
// already at or below width are returned unchanged.
func Downscale(img image.Image, width int) image.Image {
	if width <= 0 {
		width = DefaultWorkingWidth
	}
	if img.Bounds().Dx() <= width {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Box)
}

// ToRaster copies img into a non-premultiplied RGBA raster.
func ToRaster(img image.Image) *raster.Image {
	nrgba := imaging.Clone(img)
	return &raster.Image{
		Pix:    nrgba.Pix,
		Width:  nrgba.Rect.Dx(),
		Height: nrgba.Rect.Dy(),
	}
}
