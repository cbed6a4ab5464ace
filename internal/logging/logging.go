// Package logging builds the hclog loggers used by the CLI and the server.
//
// Logs always go to stderr or a caller-supplied writer: stdout carries the
// MCP protocol.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/garment-palette-mcp/internal/version"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// ParseLevel maps a level name (trace, debug, info, warn, error, off) to an
// hclog level.
func ParseLevel(name string) (hclog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultLevel
	}
	level := hclog.LevelFromString(name)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("unknown log level %q (valid: trace, debug, info, warn, error, off)", name)
	}
	return level, nil
}

// New creates the root logger writing to w, or to stderr when w is nil.
func New(level string, w io.Writer) (hclog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   version.Name,
		Output: w,
		Level:  lvl,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
