package server

import (
	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/imaging"
	"github.com/ironsheep/garment-palette-mcp/internal/palette"
)

// AnalysisOptions selects the optional parts of an Analysis.
type AnalysisOptions struct {
	// Harmony adds the harmony palette of the top colour.
	Harmony bool

	// Readable adds the legible UI accent of each colour.
	Readable bool
}

// AnalysisColor is one dominant colour of an Analysis.
type AnalysisColor struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
	Name       string  `json:"name"`
	Readable   string  `json:"readable,omitempty"`
}

// Analysis is the report returned for a garment photo by the
// garment_analyze_colors tool and the analyze command.
type Analysis struct {
	Image   *imaging.ImageInfo   `json:"image,omitempty"`
	Result  *extract.Result      `json:"analysis"`
	Colors  []AnalysisColor      `json:"colors"`
	Harmony *palette.RichPalette `json:"harmony,omitempty"`
}

// NewAnalysis names the colours of res and adds the parts opts selects.
// An empty result yields an empty colour list and no harmony.
func NewAnalysis(info *imaging.ImageInfo, res *extract.Result, opts AnalysisOptions) *Analysis {
	a := &Analysis{
		Image:  info,
		Result: res,
		Colors: make([]AnalysisColor, 0, len(res.DominantColors)),
	}
	for _, c := range res.DominantColors {
		ac := AnalysisColor{
			Hex:        c.Hex,
			Percentage: res.ColorPercentages[c.Hex],
			Name:       palette.NearestName(c.Hex),
		}
		if opts.Readable {
			ac.Readable = palette.EnsureReadableDefault(c.Hex)
		}
		a.Colors = append(a.Colors, ac)
	}
	if opts.Harmony && len(a.Colors) > 0 {
		if p, err := palette.DeriveHarmony(a.Colors[0].Hex); err == nil {
			a.Harmony = p
		}
	}
	return a
}
