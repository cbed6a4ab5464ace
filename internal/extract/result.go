package extract

import "github.com/ironsheep/garment-palette-mcp/internal/raster"

// MaxDominantColors is the number of colours an analysis returns at most.
const MaxDominantColors = 5

// WeightedColor is a colour with a relative score. Only ordering and the
// derived percentages are meaningful, not the magnitude.
type WeightedColor struct {
	Hex    string  `json:"hex"`
	Weight float64 `json:"weight"`
}

// Result is the outcome of a colour analysis.
//
// DominantColors holds up to MaxDominantColors entries, heaviest first.
// ColorPercentages maps each returned hex to its share (0-100) of the
// returned set. Both are empty, never nil, when no pixel survived
// suppression.
type Result struct {
	Algorithm        Algorithm          `json:"algorithm"`
	DominantColors   []WeightedColor    `json:"dominant_colors"`
	ColorPercentages map[string]float64 `json:"color_percentages"`

	// Region is the garment box that was analysed, nil for the full image.
	Region *raster.Region `json:"region,omitempty"`

	// Background is the estimated backdrop colour, empty if none was found.
	Background string `json:"background,omitempty"`
}

// Empty reports whether the analysis found no usable colours.
func (r *Result) Empty() bool {
	return len(r.DominantColors) == 0
}

// Hexes returns the dominant colours in rank order.
func (r *Result) Hexes() []string {
	out := make([]string, len(r.DominantColors))
	for i, c := range r.DominantColors {
		out[i] = c.Hex
	}
	return out
}

func newResult(alg Algorithm) *Result {
	return &Result{
		Algorithm:        alg,
		DominantColors:   []WeightedColor{},
		ColorPercentages: map[string]float64{},
	}
}
