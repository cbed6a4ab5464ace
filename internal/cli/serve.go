package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/garment-palette-mcp/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run the Model Context Protocol server. Requests are read from stdin one
JSON-RPC message per line and responses are written to stdout; logs go to
stderr. Configure it in your MCP client (e.g., Claude Desktop).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	log, err := logger(cmd, cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg, log)
	if err := srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	return nil
}
