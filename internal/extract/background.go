package extract

import (
	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

const (
	// backgroundSamplesPerEdge sets the border stride: max(1, edge/50).
	backgroundSamplesPerEdge = 50

	// backgroundMinAlpha skips near-transparent border pixels.
	backgroundMinAlpha = 128
)

// EstimateBackground guesses the backdrop colour from the image border.
//
// Border pixels are bucketed at 4 bits per channel and the most frequent
// bucket is expanded back to 8 bits by shifting, so the result is the bucket's
// lower corner rather than a true centroid. Ties go to the bucket seen first
// (top edge, bottom edge, left edge, right edge).
//
// The boolean is false when the border has no opaque pixel; callers then skip
// background suppression.
func EstimateBackground(img *raster.Image) (colorspace.RGB, bool) {
	if img.Validate() != nil {
		return colorspace.RGB{}, false
	}

	w, h := img.Width, img.Height
	xStride := max(1, w/backgroundSamplesPerEdge)
	yStride := max(1, h/backgroundSamplesPerEdge)

	counts := make(map[uint16]int)
	var order []uint16

	sample := func(x, y int) {
		r, g, b, a := img.At(x, y)
		if a < backgroundMinAlpha {
			return
		}
		key := uint16(r>>4)<<8 | uint16(g>>4)<<4 | uint16(b>>4)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	for x := 0; x < w; x += xStride {
		sample(x, 0)
	}
	for x := 0; x < w; x += xStride {
		sample(x, h-1)
	}
	for y := 0; y < h; y += yStride {
		sample(0, y)
	}
	for y := 0; y < h; y += yStride {
		sample(w-1, y)
	}

	if len(order) == 0 {
		return colorspace.RGB{}, false
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}

	return colorspace.RGB{
		R: uint8(best>>8&0xF) << 4,
		G: uint8(best>>4&0xF) << 4,
		B: uint8(best&0xF) << 4,
	}, true
}
