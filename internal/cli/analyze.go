package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/imaging"
	"github.com/ironsheep/garment-palette-mcp/internal/server"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		format   string
		harmony  bool
		readable bool
		preview  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Extract the dominant garment colours of a photo",
		Long: `Extract up to five dominant colours of the clothing item in a photo.

The backdrop colour is estimated from the image border and suppressed, skin
tones are ignored, and the garment region is located before voting.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Analyse a product photo
  garment-palette analyze shirt.jpg

  # Use the legacy histogram and print JSON
  garment-palette analyze --algorithm legacy --format json shirt.jpg

  # Add a harmony palette for the top colour and colour previews
  garment-palette analyze --harmony --preview shirt.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			log, err := logger(cmd, cfg)
			if err != nil {
				return err
			}

			d, err := imaging.DecodeFile(args[0], cfg.WorkingWidth)
			if err != nil {
				return err
			}
			log.Debug("image loaded", "path", args[0], "width", d.Info().Width, "height", d.Info().Height)

			res, err := extract.AnalyzeColors(d.Working, cfg.Algorithm)
			if err != nil {
				return err
			}
			a := server.NewAnalysis(d.Info(), res, server.AnalysisOptions{Harmony: harmony, Readable: readable})

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			return writeAnalysisText(cmd.OutOrStdout(), a, preview)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&harmony, "harmony", false, "derive the harmony palette of the top colour")
	cmd.Flags().BoolVar(&readable, "readable", false, "show each colour normalised for legibility")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour previews in terminal")
	return cmd
}

func writeAnalysisText(w io.Writer, a *server.Analysis, preview bool) error {
	var b strings.Builder
	if info := a.Image; info != nil {
		fmt.Fprintf(&b, "Image:      %dx%d %s (analysed at %dx%d)\n",
			info.Width, info.Height, info.Format, info.WorkingWidth, info.WorkingHeight)
	}
	fmt.Fprintf(&b, "Algorithm:  %s\n", a.Result.Algorithm)
	if a.Result.Region != nil {
		fmt.Fprintf(&b, "Region:     %s\n", a.Result.Region)
	} else {
		b.WriteString("Region:     full image\n")
	}
	if a.Result.Background != "" {
		fmt.Fprintf(&b, "Background: %s\n", a.Result.Background)
	}
	b.WriteString("\n")

	if len(a.Colors) == 0 {
		b.WriteString("No garment colours found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	headers := []string{"#", "HEX", "SHARE", "NAME"}
	if a.Colors[0].Readable != "" {
		headers = append(headers, "READABLE")
	}
	if preview {
		headers = append(headers, "")
	}
	t := newTable(headers...)
	for i, c := range a.Colors {
		row := []string{fmt.Sprint(i + 1), c.Hex, fmt.Sprintf("%.1f%%", c.Percentage), c.Name}
		if c.Readable != "" {
			row = append(row, c.Readable)
		}
		if preview {
			row = append(row, chip(c.Hex))
		}
		t.addRow(row...)
	}
	b.WriteString(t.render())

	if a.Harmony != nil {
		b.WriteString("\n")
		b.WriteString(harmonyTable(a.Harmony, preview).render())
	}

	_, err := io.WriteString(w, b.String())
	return err
}
