package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/imaging"
	"github.com/ironsheep/garment-palette-mcp/internal/palette"
)

// errInvalidArguments marks tool failures caused by the caller's arguments.
var errInvalidArguments = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "garment_analyze_colors", "color_harmony").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments return -32602; other tool errors return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	s.logger.Debug("tool call", "tool", params.Name)
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Garment Analysis
	case "garment_analyze_colors":
		return s.handleAnalyzeColors(args)
	case "garment_focus_preview":
		return s.handleFocusPreview(args)
	case "garment_focus_overlay":
		return s.handleFocusOverlay(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Colour Theory
	case "color_harmony":
		return s.handleColorHarmony(args)
	case "color_basic_matches":
		return s.handleColorBasicMatches(args)
	case "color_nearest_name":
		return s.handleColorNearestName(args)
	case "color_ensure_readable":
		return s.handleColorEnsureReadable(args)
	case "color_palette_swatch":
		return s.handleColorPaletteSwatch(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Missing arguments decode as
// an empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", errInvalidArguments, name)
	}
	return nil
}

// load decodes the photo at path through the server cache.
func (s *Server) load(path string, workingWidth int) (*imaging.Decoded, error) {
	if err := requireField("path", path); err != nil {
		return nil, err
	}
	if workingWidth <= 0 {
		workingWidth = s.cfg.WorkingWidth
	}
	return s.cache.Load(path, workingWidth)
}

func (s *Server) algorithm(name string) (extract.Algorithm, error) {
	if name == "" {
		return s.cfg.Algorithm, nil
	}
	alg, err := extract.ParseAlgorithm(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return alg, nil
}

// === Garment Analysis Handlers ===

type analyzeColorsArgs struct {
	Path           string `json:"path"`
	Algorithm      string `json:"algorithm"`
	WorkingWidth   int    `json:"working_width"`
	IncludeHarmony bool   `json:"include_harmony"`
	Readable       bool   `json:"readable"`
}

func (s *Server) handleAnalyzeColors(args json.RawMessage) (interface{}, error) {
	var a analyzeColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	alg, err := s.algorithm(a.Algorithm)
	if err != nil {
		return nil, err
	}
	d, err := s.load(a.Path, a.WorkingWidth)
	if err != nil {
		return nil, err
	}
	res, err := s.cache.Analyze(d, alg)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("analysed", "sha256", d.Hash, "algorithm", alg, "colors", len(res.DominantColors))
	return NewAnalysis(d.Info(), res, AnalysisOptions{Harmony: a.IncludeHarmony, Readable: a.Readable}), nil
}

type focusPreviewArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleFocusPreview(args json.RawMessage) (interface{}, error) {
	var a focusPreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 || a.Scale > imaging.MaxPreviewScale {
		return nil, fmt.Errorf("%w: scale must be in (0, %g]", errInvalidArguments, imaging.MaxPreviewScale)
	}
	d, err := s.load(a.Path, 0)
	if err != nil {
		return nil, err
	}
	return imaging.FocusPreview(d, a.Scale)
}

type focusOverlayArgs struct {
	Path      string `json:"path"`
	Color     string `json:"color"`
	Algorithm string `json:"algorithm"`
}

func (s *Server) handleFocusOverlay(args json.RawMessage) (interface{}, error) {
	var a focusOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOverlayColor
	}
	alg, err := s.algorithm(a.Algorithm)
	if err != nil {
		return nil, err
	}
	d, err := s.load(a.Path, 0)
	if err != nil {
		return nil, err
	}
	res, err := s.cache.Analyze(d, alg)
	if err != nil {
		return nil, err
	}
	return imaging.FocusOverlay(d, res, a.Color)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	d, err := s.load(a.Path, 0)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(d.Source, a.X, a.Y)
}

// === Colour Theory Handlers ===

type hexArgs struct {
	Hex string `json:"hex"`
}

func decodeHexArgs(args json.RawMessage) (string, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return "", err
	}
	if err := requireField("hex", a.Hex); err != nil {
		return "", err
	}
	return a.Hex, nil
}

func (s *Server) handleColorHarmony(args json.RawMessage) (interface{}, error) {
	hex, err := decodeHexArgs(args)
	if err != nil {
		return nil, err
	}
	p, err := palette.DeriveHarmony(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return p, nil
}

func (s *Server) handleColorBasicMatches(args json.RawMessage) (interface{}, error) {
	hex, err := decodeHexArgs(args)
	if err != nil {
		return nil, err
	}
	m, err := palette.DeriveBasicMatches(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return m, nil
}

type nearestNameResult struct {
	Hex      string  `json:"hex"`
	Name     string  `json:"name"`
	Match    string  `json:"match_hex,omitempty"`
	Distance float64 `json:"distance"`
}

func (s *Server) handleColorNearestName(args json.RawMessage) (interface{}, error) {
	hex, err := decodeHexArgs(args)
	if err != nil {
		return nil, err
	}
	nc, dist, ok := palette.Nearest(hex)
	if !ok {
		return &nearestNameResult{Hex: hex, Name: palette.UnknownColorName}, nil
	}
	return &nearestNameResult{Hex: hex, Name: nc.Name, Match: nc.Hex, Distance: dist}, nil
}

type ensureReadableArgs struct {
	Hex             string   `json:"hex"`
	TargetLightness *float64 `json:"target_lightness"`
	MinSaturation   *float64 `json:"min_saturation"`
}

type ensureReadableResult struct {
	Input   string `json:"input"`
	Hex     string `json:"hex"`
	Changed bool   `json:"changed"`
}

func (s *Server) handleColorEnsureReadable(args json.RawMessage) (interface{}, error) {
	var a ensureReadableArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireField("hex", a.Hex); err != nil {
		return nil, err
	}
	target, minSat := palette.DefaultTargetLightness, palette.DefaultMinSaturation
	if a.TargetLightness != nil {
		target = *a.TargetLightness
	}
	if a.MinSaturation != nil {
		minSat = *a.MinSaturation
	}
	norm, err := colorspace.NormalizeHex(a.Hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	out := palette.EnsureReadable(norm, target, minSat)
	return &ensureReadableResult{Input: a.Hex, Hex: out, Changed: out != norm}, nil
}

type paletteSwatchArgs struct {
	Colors []string `json:"colors"`
	Hex    string   `json:"hex"`
	Size   int      `json:"size"`
}

func (s *Server) handleColorPaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a paletteSwatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	colors := a.Colors
	if len(colors) == 0 {
		if err := requireField("colors or hex", a.Hex); err != nil {
			return nil, err
		}
		p, err := palette.DeriveHarmony(a.Hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
		}
		colors = p.All()
	}
	if a.Size < 0 || a.Size > imaging.MaxSwatchSize {
		return nil, fmt.Errorf("%w: size must be at most %d", errInvalidArguments, imaging.MaxSwatchSize)
	}
	res, err := imaging.EncodeSwatch(colors, a.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return res, nil
}
