// Package server implements the MCP (Model Context Protocol) server that
// exposes the garment colour engine.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr through hclog. Supported MCP methods are initialize,
// tools/list, tools/call and ping.
//
// # Available Tools
//
// Garment Analysis:
//   - garment_analyze_colors: Dominant colours, names, optional harmony
//   - garment_focus_preview: Crop of the analysed garment region
//   - garment_focus_overlay: Photo with the focus box and colour chips
//   - image_sample_color: Colour at one pixel
//
// Colour Theory:
//   - color_harmony: Full harmony palette of a base colour
//   - color_basic_matches: Complementary, analogous and triadic matches
//   - color_nearest_name: Closest named colour
//   - color_ensure_readable: Legible UI accent for a colour
//   - color_palette_swatch: PNG strip of colours
//
// # Image Caching
//
// Each Server owns an imaging.Cache keyed by file contents, so repeated
// calls on the same photo decode and analyse it once. The cache is bounded
// by config.Config.CacheEntries.
//
// # Error Handling
//
// Unknown methods return -32601, malformed parameters or tool arguments
// -32602, and other tool failures -32000 with the Go error in data. A photo
// with no usable garment colours is not an error: the analysis is empty.
package server
