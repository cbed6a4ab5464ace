package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// decodeResultPNG decodes a base64 PNG returned by a preview or overlay.
func decodeResultPNG(t *testing.T, encoded string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	return img
}

func TestFocusPreview(t *testing.T) {
	d, err := Decode(encodeTestPNG(t, createGarmentImage(200, 200)), 200)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	result, err := FocusPreview(d, 1.0)
	if err != nil {
		t.Fatalf("FocusPreview failed: %v", err)
	}

	if !result.Focused {
		t.Fatal("expected a focus region")
	}
	want := raster.Region{X: 42, Y: 32, Width: 116, Height: 156}
	if diff := cmp.Diff(want, result.Region); diff != "" {
		t.Errorf("Region mismatch (-want +got):\n%s", diff)
	}
	if result.Width != 116 || result.Height != 156 {
		t.Errorf("dimensions: got %dx%d, want 116x156", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.Background != "#f0f0f0" {
		t.Errorf("Background: got %s, want #f0f0f0", result.Background)
	}

	img := decodeResultPNG(t, result.ImageBase64)
	r, g, b, _ := img.At(58, 78).RGBA()
	if r>>8 != 30 || g>>8 != 40 || b>>8 != 120 {
		t.Errorf("preview centre: got (%d,%d,%d), want navy", r>>8, g>>8, b>>8)
	}
}

func TestFocusPreview_ScalesToSource(t *testing.T) {
	d, err := Decode(encodeTestPNG(t, createGarmentImage(400, 400)), 200)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	result, err := FocusPreview(d, 1.0)
	if err != nil {
		t.Fatalf("FocusPreview failed: %v", err)
	}
	want := raster.Region{X: 84, Y: 64, Width: 232, Height: 312}
	if diff := cmp.Diff(want, result.Region); diff != "" {
		t.Errorf("Region mismatch (-want +got):\n%s", diff)
	}
}

func TestFocusPreview_WithScale(t *testing.T) {
	d, err := Decode(encodeTestPNG(t, createGarmentImage(200, 200)), 200)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	result, err := FocusPreview(d, 0.5)
	if err != nil {
		t.Fatalf("FocusPreview failed: %v", err)
	}
	if result.Width != 58 || result.Height != 78 {
		t.Errorf("scaled dimensions: got %dx%d, want 58x78", result.Width, result.Height)
	}
}

func TestFocusPreview_ScaleBounds(t *testing.T) {
	d, err := Decode(encodeTestPNG(t, createGarmentImage(200, 200)), 200)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for _, scale := range []float64{0, -0.5, MaxPreviewScale * 2, math.Inf(1), math.NaN()} {
		if _, err := FocusPreview(d, scale); !errors.Is(err, ErrPreviewScale) {
			t.Errorf("scale %g: got %v, want ErrPreviewScale", scale, err)
		}
	}
	if _, err := FocusPreview(d, MaxPreviewScale); err != nil {
		t.Errorf("scale %g rejected: %v", MaxPreviewScale, err)
	}
}

func TestFocusPreview_NoRegion(t *testing.T) {
	d, err := Decode(encodeTestPNG(t, createInMemoryImage(80, 60, color.NRGBA{245, 245, 240, 255})), 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	result, err := FocusPreview(d, 1.0)
	if err != nil {
		t.Fatalf("FocusPreview failed: %v", err)
	}
	if result.Focused {
		t.Error("a plain backdrop should have no focus region")
	}
	if result.Width != 80 || result.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want whole image 80x60", result.Width, result.Height)
	}
}
