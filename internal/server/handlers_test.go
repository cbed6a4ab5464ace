package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/garment-palette-mcp/internal/imaging"
	"github.com/ironsheep/garment-palette-mcp/internal/palette"
)

// createTestImageFile writes a PNG into a temp directory and returns its path.
// A non-nil garment colour is drawn as a centred block on c.
func createTestImageFile(t *testing.T, width, height int, c, garment color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	if garment != nil {
		for y := height / 5; y < height/5+height*7/10; y++ {
			for x := width / 4; x < width/4+width/2; x++ {
				img.Set(x, y, garment)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "garment.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

var (
	white = color.NRGBA{255, 255, 255, 255}
	navy  = color.NRGBA{30, 40, 120, 255}
)

// callTool sends a tools/call request through the router.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: paramsJSON})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the text content of a successful tool response.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content should hold one block, got %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode content %q: %v", text, err)
	}
}

func TestHandleToolsCall_AnalyzeColors(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 200, 200, white, navy)

	resp := callTool(t, s, "garment_analyze_colors", map[string]interface{}{
		"path":            imgPath,
		"include_harmony": true,
		"readable":        true,
	})

	var got Analysis
	decodeContent(t, resp, &got)

	if got.Image == nil || got.Image.Width != 200 || got.Image.Format != "png" {
		t.Errorf("image info: got %+v", got.Image)
	}
	if got.Result == nil || got.Result.Algorithm != "enhanced" {
		t.Fatalf("analysis: got %+v", got.Result)
	}
	if len(got.Colors) == 0 {
		t.Fatal("expected dominant colours")
	}
	top := got.Colors[0]
	if top.Name == "" || top.Name == palette.UnknownColorName {
		t.Errorf("top colour %s should be named, got %q", top.Hex, top.Name)
	}
	if top.Readable == "" {
		t.Error("readable accent missing")
	}
	if got.Harmony == nil || got.Harmony.Base != top.Hex {
		t.Errorf("harmony should be derived from the top colour %s, got %+v", top.Hex, got.Harmony)
	}

	var sum float64
	for _, c := range got.Colors {
		sum += c.Percentage
	}
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("percentages sum to %.3f, want 100", sum)
	}
}

func TestHandleToolsCall_AnalyzeColors_Legacy(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 100, 100, white, navy)

	resp := callTool(t, s, "garment_analyze_colors", map[string]interface{}{"path": imgPath, "algorithm": "legacy"})

	var got Analysis
	decodeContent(t, resp, &got)
	if got.Result.Algorithm != "legacy" {
		t.Errorf("algorithm: got %s, want legacy", got.Result.Algorithm)
	}
	if got.Harmony != nil {
		t.Error("harmony should be omitted unless requested")
	}
}

func TestHandleToolsCall_AnalyzeColors_Errors(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 50, 50, white, nil)

	tests := []struct {
		name     string
		args     interface{}
		wantCode int
	}{
		{"missing arguments", nil, codeInvalidParams},
		{"missing path", map[string]interface{}{}, codeInvalidParams},
		{"unknown algorithm", map[string]interface{}{"path": imgPath, "algorithm": "kmeans"}, codeInvalidParams},
		{"non-existent file", map[string]interface{}{"path": "/nonexistent/image.png"}, codeToolFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "garment_analyze_colors", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("Error code: got %d, want %d", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleToolsCall_AnalyzeColors_PlainBackdrop(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 80, 80, white, nil)

	resp := callTool(t, s, "garment_analyze_colors", map[string]interface{}{"path": imgPath, "include_harmony": true})

	var got Analysis
	decodeContent(t, resp, &got)
	if len(got.Colors) != 0 {
		t.Errorf("a plain backdrop should yield no colours, got %v", got.Colors)
	}
	if got.Harmony != nil {
		t.Error("no harmony without a top colour")
	}
}

func TestHandleToolsCall_FocusPreview(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 200, 200, white, navy)

	var got imaging.PreviewResult
	decodeContent(t, callTool(t, s, "garment_focus_preview", map[string]interface{}{"path": imgPath}), &got)

	if !got.Focused {
		t.Fatal("expected a focus region")
	}
	if got.Width != got.Region.Width || got.Height != got.Region.Height {
		t.Errorf("preview %dx%d does not match region %v", got.Width, got.Height, got.Region)
	}
	if got.MimeType != "image/png" || got.ImageBase64 == "" {
		t.Errorf("unexpected encoding: %s, %d bytes", got.MimeType, len(got.ImageBase64))
	}

	for _, scale := range []float64{-1, imaging.MaxPreviewScale + 0.5, 1000} {
		resp := callTool(t, s, "garment_focus_preview", map[string]interface{}{"path": imgPath, "scale": scale})
		if resp.Error == nil || resp.Error.Code != codeInvalidParams {
			t.Errorf("scale %g: got %+v, want invalid params", scale, resp.Error)
		}
	}
}

func TestHandleToolsCall_FocusOverlay(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 200, 200, white, navy)

	var got imaging.OverlayResult
	decodeContent(t, callTool(t, s, "garment_focus_overlay", map[string]interface{}{"path": imgPath}), &got)

	if got.Width != 200 || got.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 200x200", got.Width, got.Height)
	}
	if !got.Focused {
		t.Error("expected a focus region")
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 100, 100, white, navy)

	var got imaging.ColorSample
	decodeContent(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 50, "y": 50}), &got)

	if got.Hex != "#1e2878" {
		t.Errorf("Hex: got %s, want #1e2878", got.Hex)
	}

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 500, "y": 50})
	if resp.Error == nil || resp.Error.Code != codeToolFailed {
		t.Errorf("out of bounds: got %+v, want tool failure", resp.Error)
	}
}

func TestHandleToolsCall_ColorHarmony(t *testing.T) {
	s := newTestServer()

	var got palette.RichPalette
	decodeContent(t, callTool(t, s, "color_harmony", map[string]interface{}{"hex": "#D12B2B"}), &got)

	want, err := palette.DeriveHarmony("#d12b2b")
	if err != nil {
		t.Fatalf("DeriveHarmony failed: %v", err)
	}
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}

	resp := callTool(t, s, "color_harmony", map[string]interface{}{"hex": "crimson"})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Errorf("malformed hex: got %+v, want invalid params", resp.Error)
	}
}

func TestHandleToolsCall_ColorBasicMatches(t *testing.T) {
	s := newTestServer()

	var got palette.BasicMatches
	decodeContent(t, callTool(t, s, "color_basic_matches", map[string]interface{}{"hex": "#3366cc"}), &got)

	want, err := palette.DeriveBasicMatches("#3366cc")
	if err != nil {
		t.Fatalf("DeriveBasicMatches failed: %v", err)
	}
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleToolsCall_ColorNearestName(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		hex  string
		want string
	}{
		{"#fe0000", "Red"},
		{"#010101", "Black"},
		{"#zzzzzz", palette.UnknownColorName},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			var got nearestNameResult
			decodeContent(t, callTool(t, s, "color_nearest_name", map[string]interface{}{"hex": tt.hex}), &got)
			if got.Name != tt.want {
				t.Errorf("Name: got %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_ColorEnsureReadable(t *testing.T) {
	s := newTestServer()

	var got ensureReadableResult
	decodeContent(t, callTool(t, s, "color_ensure_readable", map[string]interface{}{"hex": "#f8f8f8"}), &got)
	if !got.Changed {
		t.Error("near white should be adjusted")
	}
	if got.Hex != palette.EnsureReadableDefault("#f8f8f8") {
		t.Errorf("Hex: got %s, want %s", got.Hex, palette.EnsureReadableDefault("#f8f8f8"))
	}

	decodeContent(t, callTool(t, s, "color_ensure_readable", map[string]interface{}{
		"hex": "#f8f8f8", "target_lightness": 0.4, "min_saturation": 0.8,
	}), &got)
	if got.Hex != palette.EnsureReadable("#f8f8f8", 0.4, 0.8) {
		t.Errorf("Hex with options: got %s, want %s", got.Hex, palette.EnsureReadable("#f8f8f8", 0.4, 0.8))
	}

	for _, in := range []string{"#FF0000", " #ff0000 ", "FF0000"} {
		var same ensureReadableResult
		decodeContent(t, callTool(t, s, "color_ensure_readable", map[string]interface{}{"hex": in}), &same)
		if same.Changed || same.Hex != "#ff0000" {
			t.Errorf("%q: got %s changed=%v, want #ff0000 unchanged", in, same.Hex, same.Changed)
		}
		if same.Input != in {
			t.Errorf("Input: got %q, want %q", same.Input, in)
		}
	}

	resp := callTool(t, s, "color_ensure_readable", map[string]interface{}{"hex": "#12"})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Errorf("malformed hex: got %+v, want invalid params", resp.Error)
	}
}

func TestHandleToolsCall_ColorPaletteSwatch(t *testing.T) {
	s := newTestServer()

	var got imaging.SwatchResult
	decodeContent(t, callTool(t, s, "color_palette_swatch", map[string]interface{}{
		"colors": []string{"#ff0000", "#00ff00"}, "size": 10,
	}), &got)
	if got.Width != 20 || got.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", got.Width, got.Height)
	}

	decodeContent(t, callTool(t, s, "color_palette_swatch", map[string]interface{}{"hex": "#3366cc"}), &got)
	p, _ := palette.DeriveHarmony("#3366cc")
	if diff := cmp.Diff(p.All(), got.Colors); diff != "" {
		t.Errorf("harmony swatch colours (-want +got):\n%s", diff)
	}

	many := make([]string, imaging.MaxSwatchColors+1)
	for i := range many {
		many[i] = "#808080"
	}
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no colours", map[string]interface{}{}},
		{"oversized chips", map[string]interface{}{"colors": []string{"#ff0000", "#00ff00"}, "size": imaging.MaxSwatchSize + 1}},
		{"negative size", map[string]interface{}{"colors": []string{"#ff0000"}, "size": -1}},
		{"too many colours", map[string]interface{}{"colors": many}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "color_palette_swatch", tt.args)
			if resp.Error == nil || resp.Error.Code != codeInvalidParams {
				t.Errorf("got %+v, want invalid params", resp.Error)
			}
		})
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_ocr_full", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != codeToolFailed {
		t.Errorf("unknown tool: got %+v, want tool failure", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: json.RawMessage(`[1,2]`)})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Errorf("got %+v, want invalid params", resp.Error)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 100, 100, white, navy)

	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"garment_analyze_colors", map[string]interface{}{"path": imgPath}},
		{"garment_focus_preview", map[string]interface{}{"path": imgPath, "scale": 0.5}},
		{"garment_focus_overlay", map[string]interface{}{"path": imgPath, "color": "#00FF00"}},
		{"image_sample_color", map[string]interface{}{"path": imgPath, "x": 10, "y": 10}},
		{"color_harmony", map[string]interface{}{"hex": "#808080"}},
		{"color_basic_matches", map[string]interface{}{"hex": "#808080"}},
		{"color_nearest_name", map[string]interface{}{"hex": "#808080"}},
		{"color_ensure_readable", map[string]interface{}{"hex": "#808080"}},
		{"color_palette_swatch", map[string]interface{}{"hex": "#808080"}},
	}

	if len(toolTests) != len(GetToolDefinitions()) {
		t.Fatalf("test covers %d tools, %d are defined", len(toolTests), len(GetToolDefinitions()))
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := newTestServer()
	if _, err := s.executeTool("color_harmony", json.RawMessage(`{invalid`)); err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}

func TestNewAnalysis_Empty(t *testing.T) {
	s := newTestServer()
	d, err := s.load(createTestImageFile(t, 40, 40, white, nil), 0)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	res, err := s.cache.Analyze(d, s.cfg.Algorithm)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	a := NewAnalysis(nil, res, AnalysisOptions{Harmony: true, Readable: true})
	if a.Colors == nil || len(a.Colors) != 0 {
		t.Errorf("Colors: got %#v, want empty non-nil", a.Colors)
	}
}
