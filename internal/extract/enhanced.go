package extract

import (
	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// Enhanced sampler thresholds. Empirically tuned; keep them stable.
const (
	// enhancedStride samples every 2nd pixel on both axes.
	enhancedStride = 2

	enhancedMinAlpha = 128

	// Pixels whose mean channel is not strictly inside this range are
	// too dark or too blown out to vote.
	minBrightness = 10.0
	maxBrightness = 240.0

	// Near-gray (max-min chroma) and bright pixels are backdrop, not cloth.
	grayMaxChroma     = 10
	grayMinBrightness = 210.0

	// Ellipse radii as fractions of width/height, centred on the image.
	tightEllipseRadius = 0.22
	softEllipseRadiusX = 0.34
	softEllipseRadiusY = 0.30

	// enhancedBackgroundDistance: outside the soft ellipse, pixels this
	// close (inclusive) to the background are skipped.
	enhancedBackgroundDistance = 72.0

	// Outside the soft ellipse, desaturated pixels whose hue is within this
	// many degrees of the background hue are background spill.
	backgroundHueWindow        = 24.0
	backgroundHueMaxSaturation = 0.2

	// Beige and cream backdrops.
	beigeMinHue        = 25.0
	beigeMaxHue        = 50.0
	beigeMaxSaturation = 0.35
	beigeMinLightness  = 0.65

	// Pale, nearly colourless backdrops.
	paleMaxSaturation = 0.12
	paleMinLightness  = 0.6

	// quantizeMask keeps the top 5 bits of each channel.
	quantizeMask = 0xF8

	tightCenterWeight = 16.0
	softCenterWeight  = 4.0
	outerCenterWeight = 0.4

	saturationBoostScale = 3.5
	maxSaturationBoost   = 3.0

	// Lightness bonuses counteract mid-tone dominance.
	nearWhiteMinLightness = 0.72
	nearWhiteMaxLightness = 0.9
	nearWhiteBonus        = 1.15
	darkMaxLightness      = 0.55
	darkBonus             = 1.1
)

// EnhancedExtractor is the default, perceptually weighted sampler. It focuses
// on the garment region, suppresses background, skin and backdrop tones, and
// favours saturated pixels near the centre of the frame.
type EnhancedExtractor struct{}

// NewEnhancedExtractor creates an EnhancedExtractor.
func NewEnhancedExtractor() *EnhancedExtractor {
	return &EnhancedExtractor{}
}

// Extract implements Extractor.
func (e *EnhancedExtractor) Extract(img *raster.Image) *Result {
	res := newResult(AlgorithmEnhanced)

	bg, hasBg := EstimateBackground(img)
	if hasBg {
		res.Background = bg.Hex()
	}

	work := img
	if region, ok := FocusRegion(img, bg, hasBg); ok {
		if cropped, err := img.Crop(region); err == nil {
			work = cropped
			res.Region = &region
		}
	}

	buckets := SampleWeighted(work, bg, hasBg)
	sortBuckets(buckets)
	merged := Consolidate(buckets, ConsolidateDistance)
	sortBuckets(merged)
	fillTop(res, merged)
	return res
}

// SampleWeighted accumulates quantised colour buckets over img using the
// enhanced weighting rules. The returned slice is unordered.
func SampleWeighted(img *raster.Image, bg colorspace.RGB, hasBg bool) []Bucket {
	w, h := float64(img.Width), float64(img.Height)
	cx, cy := w/2, h/2
	bgHSL := bg.HSL()

	weights := make(map[colorspace.RGB]float64)

	for y := 0; y < img.Height; y += enhancedStride {
		for x := 0; x < img.Width; x += enhancedStride {
			r, g, b, a := img.At(x, y)
			if a < enhancedMinAlpha {
				continue
			}

			brightness := (float64(r) + float64(g) + float64(b)) / 3
			if brightness <= minBrightness || brightness >= maxBrightness {
				continue
			}
			chroma := int(max(r, g, b)) - int(min(r, g, b))
			if chroma < grayMaxChroma && brightness > grayMinBrightness {
				continue
			}

			px := colorspace.RGB{R: r, G: g, B: b}
			hsl := px.HSL()

			dx, dy := float64(x)-cx, float64(y)-cy
			inTight := inEllipse(dx, dy, w*tightEllipseRadius, h*tightEllipseRadius)
			inSoft := inEllipse(dx, dy, w*softEllipseRadiusX, h*softEllipseRadiusY)

			if !inSoft {
				if hasBg && colorspace.Distance(px, bg) <= enhancedBackgroundDistance {
					continue
				}
				if IsSkin(r, g, b) {
					continue
				}
				if hasBg && hsl.S < backgroundHueMaxSaturation &&
					colorspace.HueDistance(hsl.H, bgHSL.H) <= backgroundHueWindow {
					continue
				}
			}

			if hsl.H >= beigeMinHue && hsl.H <= beigeMaxHue &&
				hsl.S < beigeMaxSaturation && hsl.L > beigeMinLightness {
				continue
			}
			if hsl.S < paleMaxSaturation && hsl.L > paleMinLightness {
				continue
			}

			center := outerCenterWeight
			switch {
			case inTight:
				center = tightCenterWeight
			case inSoft:
				center = softCenterWeight
			}

			key := colorspace.RGB{R: r & quantizeMask, G: g & quantizeMask, B: b & quantizeMask}
			weights[key] += center * saturationWeight(hsl.S) * lightnessBonus(hsl.L)
		}
	}

	buckets := make([]Bucket, 0, len(weights))
	for c, wt := range weights {
		buckets = append(buckets, NewBucket(c, wt))
	}
	return buckets
}

func inEllipse(dx, dy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	nx, ny := dx/rx, dy/ry
	return nx*nx+ny*ny <= 1
}

func saturationWeight(s float64) float64 {
	return 1 + min(maxSaturationBoost, s*saturationBoostScale)
}

func lightnessBonus(l float64) float64 {
	switch {
	case l >= nearWhiteMinLightness && l <= nearWhiteMaxLightness:
		return nearWhiteBonus
	case l <= darkMaxLightness:
		return darkBonus
	default:
		return 1
	}
}

// fillTop copies the heaviest buckets into res, renormalising percentages
// over the returned set.
func fillTop(res *Result, ranked []Bucket) {
	if len(ranked) > MaxDominantColors {
		ranked = ranked[:MaxDominantColors]
	}

	var total float64
	for _, b := range ranked {
		total += b.Weight
	}
	if total <= 0 {
		return
	}

	for _, b := range ranked {
		hex := b.Hex()
		res.DominantColors = append(res.DominantColors, WeightedColor{Hex: hex, Weight: b.Weight})
		res.ColorPercentages[hex] = b.Weight / total * 100
	}
}
