package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: %s, %s)", format, formatText, formatJSON)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// chip returns a terminal colour block for hex. It is blank when colour
// output is disabled (NO_COLOR, or output is not a terminal).
func chip(hex string) string {
	rgb, ok := colorspace.ParseHex(hex)
	if !ok {
		return "    "
	}
	return color.BgRGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprint("    ")
}
