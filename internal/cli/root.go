// Package cli provides the command-line interface for garment-palette.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/garment-palette-mcp/internal/config"
	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/logging"
	"github.com/ironsheep/garment-palette-mcp/internal/version"
)

// rootOptions holds the persistent flags. Flags left unset fall back to the
// GARMENT_PALETTE_* environment and then to the built-in defaults.
type rootOptions struct {
	logLevel     string
	algorithm    string
	workingWidth int
	cacheEntries int
}

// NewRootCmd builds the command tree. With no subcommand the root runs the
// MCP server.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   version.Name,
		Short: "Garment colour extraction and palette engine",
		Long: `garment-palette finds the dominant colours of the clothing item in a product
photo and derives matching palettes from them.

Run without a subcommand (or with "serve") it speaks the Model Context
Protocol over stdin/stdout so an assistant can call the engine as tools.
The other subcommands run the same engine from the shell.

Environment variables:
  GARMENT_PALETTE_LOG_LEVEL      trace, debug, info, warn, error, off
  GARMENT_PALETTE_ALGORITHM      enhanced or legacy
  GARMENT_PALETTE_WORKING_WIDTH  analysis width in pixels
  GARMENT_PALETTE_CACHE_ENTRIES  photos kept by the server cache`,
		Version:      version.Short(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error, off)")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", string(defaults.Algorithm), "extraction algorithm (enhanced, legacy)")
	flags.IntVar(&opts.workingWidth, "width", defaults.WorkingWidth, "width in pixels photos are reduced to before analysis")
	flags.IntVar(&opts.cacheEntries, "cache-entries", defaults.CacheEntries, "photos kept by the server cache")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeCmd(opts),
		newHarmonyCmd(),
		newMatchesCmd(),
		newNameCmd(),
		newReadableCmd(),
		newSwatchCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// config resolves the effective configuration for cmd: defaults, then
// environment, then explicitly set flags.
func (o *rootOptions) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}

	fs := cmd.Flags()
	if changed(fs, "log-level") {
		cfg.LogLevel = o.logLevel
	}
	if changed(fs, "algorithm") {
		cfg.Algorithm = extract.Algorithm(o.algorithm)
	}
	if changed(fs, "width") {
		cfg.WorkingWidth = o.workingWidth
	}
	if changed(fs, "cache-entries") {
		cfg.CacheEntries = o.cacheEntries
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// logger builds the root logger writing to the command's stderr.
func logger(cmd *cobra.Command, cfg config.Config) (hclog.Logger, error) {
	return logging.New(cfg.LogLevel, cmd.ErrOrStderr())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
