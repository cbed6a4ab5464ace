package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/imaging"
	"github.com/ironsheep/garment-palette-mcp/internal/palette"
)

func newHarmonyCmd() *cobra.Command {
	var (
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "harmony <hex>",
		Short: "Derive the harmony palette of a colour",
		Long: `Derive complementary, split complementary, analogous, triadic, tetradic and
monochrome colours from a base colour, plus a fixed set of neutrals.

Examples:
  garment-palette harmony '#d12b2b'
  garment-palette harmony --format json 3366cc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			p, err := palette.DeriveHarmony(args[0])
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), harmonyTable(p, preview).render())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour previews in terminal")
	return cmd
}

func harmonyTable(p *palette.RichPalette, preview bool) *table {
	groups := []struct {
		name   string
		colors []string
	}{
		{"base", []string{p.Base}},
		{"complementary", []string{p.Complementary}},
		{"split complementary", p.SplitComplementary[:]},
		{"analogous", p.Analogous[:]},
		{"triadic", p.Triadic[:]},
		{"tetradic", p.Tetradic[:]},
		{"monochrome", p.Monochrome[:]},
		{"neutrals", p.Neutrals[:]},
	}

	headers := []string{"HARMONY", "COLOURS"}
	if preview {
		headers = append(headers, "")
	}
	t := newTable(headers...)
	for _, g := range groups {
		row := []string{g.name, strings.Join(g.colors, " ")}
		if preview {
			chips := make([]string, len(g.colors))
			for i, c := range g.colors {
				chips[i] = chip(c)
			}
			row = append(row, strings.Join(chips, " "))
		}
		t.addRow(row...)
	}
	return t
}

func newMatchesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "matches <hex>",
		Short: "Derive the basic matches of a colour",
		Long:  `Derive the complementary colour, two analogous colours and two triadic colours of a base colour.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			m, err := palette.DeriveBasicMatches(args[0])
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			t := newTable("MATCH", "COLOURS")
			t.addRow("base", m.Base)
			t.addRow("complementary", m.Complementary)
			t.addRow("analogous", strings.Join(m.Analogous[:], " "))
			t.addRow("triadic", strings.Join(m.Triadic[:], " "))
			_, err = fmt.Fprint(cmd.OutOrStdout(), t.render())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	return cmd
}

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <hex>",
		Short: "Name a colour",
		Long:  `Print the closest entry of the reference colour table, its hex value and the distance to it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, dist, ok := palette.Nearest(args[0])
			if !ok {
				return fmt.Errorf("cannot name %q: not a #RRGGBB colour", args[0])
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, distance %.1f)\n", nc.Name, nc.Hex, dist)
			return err
		},
	}
}

func newReadableCmd() *cobra.Command {
	var lightness, saturation float64

	cmd := &cobra.Command{
		Use:   "readable <hex>",
		Short: "Adjust a colour for legibility as a UI accent",
		Long: `Raise the saturation of a colour to a minimum and clamp its lightness near a
target so it reads on both light and dark backgrounds. Colours already
inside the bounds are printed unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := colorspace.NormalizeHex(args[0]); err != nil {
				return err
			}
			out := palette.EnsureReadable(args[0], lightness, saturation)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().Float64Var(&lightness, "lightness", palette.DefaultTargetLightness, "target lightness (0-1)")
	cmd.Flags().Float64Var(&saturation, "saturation", palette.DefaultMinSaturation, "minimum saturation (0-1)")
	return cmd
}

func newSwatchCmd() *cobra.Command {
	var (
		output  string
		size    int
		harmony bool
	)

	cmd := &cobra.Command{
		Use:   "swatch <hex>...",
		Short: "Render colours as a PNG swatch",
		Long: `Render colours as a strip of square chips and save it as a PNG file.

Examples:
  # Render three colours
  garment-palette swatch -o palette.png '#d12b2b' '#f5f5f0' '#1e2878'

  # Render the full harmony palette of a colour
  garment-palette swatch --harmony -o harmony.png '#d12b2b'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("an output file is required (-o)")
			}
			if size < 1 || size > imaging.MaxSwatchSize {
				return fmt.Errorf("--size must be between 1 and %d", imaging.MaxSwatchSize)
			}
			colors := args
			if harmony {
				p, err := palette.DeriveHarmony(args[0])
				if err != nil {
					return err
				}
				colors = p.All()
			}
			if err := imaging.WriteSwatch(output, colors, size); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d colours to %s\n", len(colors), output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file")
	cmd.Flags().IntVar(&size, "size", imaging.DefaultSwatchSize, fmt.Sprintf("chip edge length in pixels (max %d)", imaging.MaxSwatchSize))
	cmd.Flags().BoolVar(&harmony, "harmony", false, "render the harmony palette of the first colour")
	return cmd
}
