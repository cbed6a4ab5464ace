package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the garment photo (PNG, JPEG, GIF or WebP)",
	}
}

func hexProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"pattern":     "^#?[0-9a-fA-F]{6}$",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Garment Analysis
		{
			Name: "garment_analyze_colors",
			Description: "Extract up to five dominant colours of the clothing item in a photo. The backdrop is estimated from the border " +
				"and suppressed, skin is ignored, and the garment region is located automatically. Returns the colours with " +
				"their share of the palette, the nearest colour names and, optionally, a harmony palette for the top colour.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"enhanced", "legacy"},
						"description": "Extraction algorithm. Defaults to the server setting (normally enhanced)",
					},
					"working_width": map[string]interface{}{
						"type":        "integer",
						"description": "Width in pixels the photo is reduced to before analysis. Defaults to the server setting (normally 200)",
					},
					"include_harmony": map[string]interface{}{
						"type":        "boolean",
						"description": "Also derive the full harmony palette of the top colour",
						"default":     false,
					},
					"readable": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return each colour normalised for legibility as a UI accent",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "garment_focus_preview",
			Description: "Crop the photo to the region the colour analysis focuses on and return it as a base64-encoded PNG. Use this to check what part of the photo the palette came from.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 0.5 to halve the size), at most 4. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "garment_focus_overlay",
			Description: "Return the photo with the detected garment region outlined and the dominant colours drawn as chips along the bottom edge, as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Box color in hex format (e.g., '#FF00FF' or '#FF00FFCC' with alpha). Default '#FF00FFCC'",
						"default":     "#FF00FFCC",
					},
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"enhanced", "legacy"},
						"description": "Algorithm used for the colour chips",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a specific pixel coordinate, with its HSL value, nearest colour name and whether it reads as skin.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Colour Theory
		{
			Name:        "color_harmony",
			Description: "Derive a full harmony palette from a base colour: complementary, split complementary, analogous, triadic, tetradic, monochrome steps and fixed neutrals.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": hexProperty("Base colour as #RRGGBB"),
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_basic_matches",
			Description: "Derive the reduced match set for a base colour: complementary, two analogous and two triadic colours.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": hexProperty("Base colour as #RRGGBB"),
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_nearest_name",
			Description: "Name a colour by finding the closest entry of the reference colour table.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": hexProperty("Colour as #RRGGBB"),
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_ensure_readable",
			Description: "Adjust a colour so it stays legible as a UI accent on light and dark backgrounds: saturation is raised to a minimum and lightness is clamped near a target.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": hexProperty("Colour as #RRGGBB"),
					"target_lightness": map[string]interface{}{
						"type":        "number",
						"description": "Target HSL lightness (0-1). Default 0.55",
						"default":     0.55,
					},
					"min_saturation": map[string]interface{}{
						"type":        "number",
						"description": "Minimum HSL saturation (0-1). Default 0.5",
						"default":     0.5,
					},
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_palette_swatch",
			Description: "Render colours as a strip of square chips and return it as a base64-encoded PNG. Pass explicit colors, or a hex to render its harmony palette.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"colors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Colours to render, in order",
					},
					"hex": hexProperty("Base colour whose harmony palette is rendered when colors is empty"),
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Chip edge length in pixels, at most 512. Default 48",
						"default":     48,
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
