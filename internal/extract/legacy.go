package extract

import (
	"sort"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

const (
	// legacyStride samples every 10th pixel in buffer order.
	legacyStride = 10

	legacyMinAlpha = 128
)

// LegacyExtractor is the original histogram sampler. It counts exact colours
// with no quantisation, suppression or region focus, and reports percentages
// against the sample count, so they stay within 0-100 and sum to at most 100.
// Kept for output compatibility.
type LegacyExtractor struct{}

// NewLegacyExtractor creates a LegacyExtractor.
func NewLegacyExtractor() *LegacyExtractor {
	return &LegacyExtractor{}
}

type legacyCount struct {
	hex   string
	count int
}

// Extract implements Extractor.
func (e *LegacyExtractor) Extract(img *raster.Image) *Result {
	total := img.Width * img.Height
	counts := make(map[string]int)

	for i := 0; i < total; i += legacyStride {
		p := img.Pix[i*4 : i*4+4]
		if p[3] < legacyMinAlpha {
			continue
		}
		counts[colorspace.FormatHex(p[0], p[1], p[2])]++
	}

	ranked := make([]legacyCount, 0, len(counts))
	for hex, n := range counts {
		ranked = append(ranked, legacyCount{hex: hex, count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].hex < ranked[j].hex
	})
	if len(ranked) > MaxDominantColors {
		ranked = ranked[:MaxDominantColors]
	}

	res := newResult(AlgorithmLegacy)
	// The nominal sample count total/stride undercounts the positions
	// visited when total is not a multiple of the stride, which pushes
	// percentages past 100 on tiny images. Never divide by fewer than the
	// positions actually sampled.
	sampled := (total + legacyStride - 1) / legacyStride
	denom := max(float64(total)/legacyStride, float64(sampled))
	for _, c := range ranked {
		res.DominantColors = append(res.DominantColors, WeightedColor{Hex: c.hex, Weight: float64(c.count)})
		res.ColorPercentages[c.hex] = float64(c.count) / denom * 100
	}
	return res
}
