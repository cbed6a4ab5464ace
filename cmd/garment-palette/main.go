// garment-palette extracts the dominant colours of clothing in product photos
// and derives matching palettes. It runs as an MCP server over stdio or as a
// command-line tool.
//
// Build metadata is injected with:
//
//	go build -ldflags "-X github.com/ironsheep/garment-palette-mcp/internal/version.Version=v1.0.0 \
//	  -X github.com/ironsheep/garment-palette-mcp/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/ironsheep/garment-palette-mcp/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package main

import "github.com/ironsheep/garment-palette-mcp/internal/cli"

func main() {
	cli.Execute()
}
