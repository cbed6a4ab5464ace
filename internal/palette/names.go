package palette

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
)

// UnknownColorName is returned by NearestName for unparseable input.
const UnknownColorName = "Unknown"

//go:embed named_colors.json
var namedColorData []byte

// NamedColor is an entry of the reference table.
type NamedColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type namedEntry struct {
	NamedColor
	color colorful.Color
}

var namedTable = mustLoadNamedColors(namedColorData)

func mustLoadNamedColors(data []byte) []namedEntry {
	entries, err := loadNamedColors(data)
	if err != nil {
		panic(err)
	}
	return entries
}

func loadNamedColors(data []byte) ([]namedEntry, error) {
	var raw []NamedColor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse named colours: %w", err)
	}

	entries := make([]namedEntry, 0, len(raw))
	for _, nc := range raw {
		hex, err := colorspace.NormalizeHex(nc.Hex)
		if err != nil {
			return nil, fmt.Errorf("named colour %q: %w", nc.Name, err)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("named colour %q: %w", nc.Name, err)
		}
		entries = append(entries, namedEntry{NamedColor: NamedColor{Name: nc.Name, Hex: hex}, color: c})
	}
	return entries, nil
}

// NamedColors returns a copy of the reference table in table order.
func NamedColors() []NamedColor {
	out := make([]NamedColor, len(namedTable))
	for i, e := range namedTable {
		out[i] = e.NamedColor
	}
	return out
}

// Nearest returns the table entry closest to hex in RGB space, and the
// distance in 8-bit units. The boolean is false for unparseable input. Ties
// go to the earlier table entry.
func Nearest(hex string) (NamedColor, float64, bool) {
	rgb, ok := colorspace.ParseHex(hex)
	if !ok {
		return NamedColor{}, 0, false
	}
	target, _ := colorful.Hex(rgb.Hex())

	best := -1
	var bestDist float64
	for i, e := range namedTable {
		d := target.DistanceRgb(e.color)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return NamedColor{}, 0, false
	}
	return namedTable[best].NamedColor, bestDist * 255, true
}

// NearestName returns the name of the closest table entry, or
// UnknownColorName when hex cannot be parsed.
func NearestName(hex string) string {
	nc, _, ok := Nearest(hex)
	if !ok {
		return UnknownColorName
	}
	return nc.Name
}
