package extract

import (
	"math"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// Garment focus thresholds. These are empirically tuned; changing any of
// them changes the crop (and so the colours) existing users get.
const (
	// focusMinAlpha is the opacity a pixel needs to count towards activity.
	focusMinAlpha = 64

	// focusBackgroundDistance: pixels this close (RGB Euclidean, inclusive)
	// to the estimated background are not foreground.
	focusBackgroundDistance = 48.0

	// Rows above focusTopMargin are skipped (headwear, hair); rows below
	// focusBottomMargin are skipped (floor, shoes).
	focusTopMargin    = 0.12
	focusBottomMargin = 0.95

	// focusRowActivity is the activity the first garment row must reach.
	focusRowActivity = 0.28

	// focusBottomActivityFactor relaxes focusRowActivity for the bottom edge.
	focusBottomActivityFactor = 0.6

	// focusFallbackHeight is the garment height assumed when no bottom row
	// qualifies, as a fraction of image height.
	focusFallbackHeight = 0.6

	// Columns outside [focusSideMargin, 1-focusSideMargin] are skipped.
	focusSideMargin = 0.05

	// focusColumnActivity is the activity an edge column must reach.
	focusColumnActivity = 0.18

	// focusExpandMargin pads the detected box on every side.
	focusExpandMargin = 0.04

	// A box narrower or shorter than these fractions is not trusted.
	focusMinWidthFraction  = 0.40
	focusMinHeightFraction = 0.30

	// focusMaxAreaFraction: a box this large achieved no useful crop.
	focusMaxAreaFraction = 0.92
)

// IsSkin reports whether an RGB colour looks like a skin tone under a fixed
// rule-based classifier.
func IsSkin(r, g, b uint8) bool {
	maxC := max(r, g, b)
	minC := min(r, g, b)
	diffRG := int(r) - int(g)
	if diffRG < 0 {
		diffRG = -diffRG
	}
	return r > 95 && g > 40 && b > 20 &&
		int(maxC)-int(minC) > 15 &&
		diffRG > 15 &&
		r > g && r > b
}

// Activity holds the per-row and per-column foreground fractions of an image.
type Activity struct {
	Rows    []float64
	Columns []float64
}

// MeasureActivity computes, for every row and column, the fraction of opaque
// pixels that are neither near the background nor skin coloured. When hasBg
// is false only the skin rule applies.
func MeasureActivity(img *raster.Image, bg colorspace.RGB, hasBg bool) Activity {
	w, h := img.Width, img.Height
	rowOpaque := make([]int, h)
	rowActive := make([]int, h)
	colOpaque := make([]int, w)
	colActive := make([]int, w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(x, y)
			if a < focusMinAlpha {
				continue
			}
			rowOpaque[y]++
			colOpaque[x]++

			if hasBg && colorspace.Distance(colorspace.RGB{R: r, G: g, B: b}, bg) <= focusBackgroundDistance {
				continue
			}
			if IsSkin(r, g, b) {
				continue
			}
			rowActive[y]++
			colActive[x]++
		}
	}

	act := Activity{Rows: make([]float64, h), Columns: make([]float64, w)}
	for y := range act.Rows {
		if rowOpaque[y] > 0 {
			act.Rows[y] = float64(rowActive[y]) / float64(rowOpaque[y])
		}
	}
	for x := range act.Columns {
		if colOpaque[x] > 0 {
			act.Columns[x] = float64(colActive[x]) / float64(colOpaque[x])
		}
	}
	return act
}

// FocusRegion returns a box likely to contain the garment. The boolean is
// false when no trustworthy box exists; callers then analyse the full image.
//
// This is a heuristic: cluttered or multi-garment photos can produce a poor
// crop.
func FocusRegion(img *raster.Image, bg colorspace.RGB, hasBg bool) (raster.Region, bool) {
	if img.Validate() != nil {
		return raster.Region{}, false
	}
	return focusFromActivity(MeasureActivity(img, bg, hasBg), img.Width, img.Height)
}

func focusFromActivity(act Activity, w, h int) (raster.Region, bool) {
	rowStart := int(float64(h) * focusTopMargin)
	rowEnd := int(float64(h) * focusBottomMargin)

	top := -1
	for y := rowStart; y < rowEnd; y++ {
		if act.Rows[y] >= focusRowActivity {
			top = y
			break
		}
	}
	if top < 0 {
		return raster.Region{}, false
	}

	bottom := -1
	for y := rowEnd - 1; y > top; y-- {
		if act.Rows[y] >= focusRowActivity*focusBottomActivityFactor {
			bottom = y
			break
		}
	}
	if bottom < 0 {
		bottom = min(h-1, top+int(focusFallbackHeight*float64(h)))
	}

	colStart := int(float64(w) * focusSideMargin)
	colEnd := int(float64(w) * (1 - focusSideMargin))

	left := -1
	for x := colStart; x < colEnd; x++ {
		if act.Columns[x] >= focusColumnActivity {
			left = x
			break
		}
	}
	if left < 0 {
		return raster.Region{}, false
	}
	right := left
	for x := colEnd - 1; x > left; x-- {
		if act.Columns[x] >= focusColumnActivity {
			right = x
			break
		}
	}

	mx := int(math.Round(float64(w) * focusExpandMargin))
	my := int(math.Round(float64(h) * focusExpandMargin))
	x0, x1 := max(0, left-mx), min(w-1, right+mx)
	y0, y1 := max(0, top-my), min(h-1, bottom+my)

	region := raster.Region{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1}

	if float64(region.Width) < focusMinWidthFraction*float64(w) ||
		float64(region.Height) < focusMinHeightFraction*float64(h) {
		return raster.Region{}, false
	}
	if float64(region.Area()) > focusMaxAreaFraction*float64(w*h) {
		return raster.Region{}, false
	}
	return region, true
}
