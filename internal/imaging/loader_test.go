package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// encodeTestPNG returns img encoded as PNG.
func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// createTestImage writes a solid PNG into a temp directory and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")
	if err := os.WriteFile(path, encodeTestPNG(t, createInMemoryImage(width, height, c)), 0o600); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func TestDecode(t *testing.T) {
	data := encodeTestPNG(t, createInMemoryImage(100, 80, color.NRGBA{255, 0, 0, 255}))

	d, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := &ImageInfo{
		Width:         100,
		Height:        80,
		WorkingWidth:  100,
		WorkingHeight: 80,
		Format:        "png",
		SHA256:        contentHash(data),
	}
	if diff := cmp.Diff(want, d.Info()); diff != "" {
		t.Errorf("Info mismatch (-want +got):\n%s", diff)
	}
	if err := d.Working.Validate(); err != nil {
		t.Errorf("working raster invalid: %v", err)
	}
}

func TestDecode_Downscales(t *testing.T) {
	data := encodeTestPNG(t, createInMemoryImage(400, 300, color.NRGBA{0, 0, 255, 255}))

	d, err := Decode(data, 200)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Working.Width != 200 || d.Working.Height != 150 {
		t.Errorf("working size: got %dx%d, want 200x150", d.Working.Width, d.Working.Height)
	}
	r, g, b, a := d.Working.At(100, 75)
	if r != 0 || g != 0 || b != 255 || a != 255 {
		t.Errorf("working pixel: got (%d,%d,%d,%d), want (0,0,255,255)", r, g, b, a)
	}
}

func TestDecode_FormatDetection(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{100, 100, 100, 255})

	encoders := []struct {
		format string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, img) }},
		{"jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) }},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }},
	}

	for _, tt := range encoders {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("failed to encode: %v", err)
			}
			d, err := Decode(buf.Bytes(), 0)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if d.Format != tt.format {
				t.Errorf("Format: got %s, want %s", d.Format, tt.format)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(nil, 0); !errors.Is(err, raster.ErrEmptyImage) {
		t.Errorf("Decode(nil): got %v, want ErrEmptyImage", err)
	}
	if _, err := Decode([]byte("not an image"), 0); err == nil {
		t.Error("Decode should fail for invalid image data")
	}
}

func TestDecodeFile(t *testing.T) {
	path := createTestImage(t, 30, 20, color.NRGBA{0, 255, 0, 255})

	d, err := DecodeFile(path, 0)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	if d.Info().Width != 30 || d.Info().Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", d.Info().Width, d.Info().Height)
	}

	if _, err := DecodeFile("/nonexistent/path/to/image.png", 0); err == nil {
		t.Error("DecodeFile should fail for non-existent file")
	}
}

func TestDecoded_ScaleToSource(t *testing.T) {
	data := encodeTestPNG(t, createInMemoryImage(400, 300, color.NRGBA{0, 0, 0, 255}))
	d, err := Decode(data, 200)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	tests := []struct {
		name string
		in   raster.Region
		want raster.Region
	}{
		{"interior", raster.Region{X: 10, Y: 20, Width: 50, Height: 60}, raster.Region{X: 20, Y: 40, Width: 100, Height: 120}},
		{"whole", raster.Region{Width: 200, Height: 150}, raster.Region{Width: 400, Height: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, d.ScaleToSource(tt.in)); diff != "" {
				t.Errorf("ScaleToSource mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDownscale_NeverEnlarges(t *testing.T) {
	img := createInMemoryImage(50, 40, color.NRGBA{1, 2, 3, 255})
	if got := Downscale(img, 200); got != image.Image(img) {
		t.Error("Downscale should return small images unchanged")
	}
}

func TestToRaster(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.Set(5, 5, color.RGBA{10, 20, 30, 255})
	img.Set(7, 6, color.RGBA{40, 50, 60, 255})

	r := ToRaster(img)
	if r.Width != 3 || r.Height != 2 {
		t.Fatalf("size: got %dx%d, want 3x2", r.Width, r.Height)
	}
	if cr, cg, cb, _ := r.At(0, 0); cr != 10 || cg != 20 || cb != 30 {
		t.Errorf("At(0,0): got (%d,%d,%d), want (10,20,30)", cr, cg, cb)
	}
	if cr, cg, cb, _ := r.At(2, 1); cr != 40 || cg != 50 || cb != 60 {
		t.Errorf("At(2,1): got (%d,%d,%d), want (40,50,60)", cr, cg, cb)
	}
}
