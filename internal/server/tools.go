package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file into the server cache and return its dimensions. Later hough_* calls on the same path reuse the decoded image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Edge Masks
		{
			Name:        "hough_edge_mask",
			Description: "Build the binary mask that feeds the Hough transform and return it as base64-encoded PNG (foreground white). Use this to tune edge settings before detecting lines.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": merge(map[string]interface{}{"path": pathProperty()}, edgeProperties()),
				"required":   []string{"path"},
			},
		},

		// Line Detection
		{
			Name:        "hough_detect_lines",
			Description: "Detect straight lines with the classic Hough transform. Returns lines ranked by vote count, each in normal form (angle, radius relative to the image center) with its endpoints across the analysed area, the visible segment and the stroke colour. Optionally returns an overlay image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{
						"path": pathProperty(),
						"overlay": map[string]interface{}{
							"type":        "boolean",
							"description": "Also return the image with detected lines drawn over it. Default false",
							"default":     false,
						},
						"show_segments": map[string]interface{}{
							"type":        "boolean",
							"description": "In the overlay, draw only the supported segment of each line. Default false",
							"default":     false,
						},
					},
					edgeProperties(),
					transformProperties(),
					lineProperties(),
				),
				"required": []string{"path"},
			},
		},
		{
			Name:        "hough_lines_from_points",
			Description: "Run the Hough transform on an explicit point set instead of an image. Width and height define the plane: its center is the reference point for the line radii.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{
						"points": map[string]interface{}{
							"type":        "array",
							"description": "Points that vote for lines",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"x": map[string]interface{}{"type": "number"},
									"y": map[string]interface{}{"type": "number"},
								},
								"required": []string{"x", "y"},
							},
						},
						"width": map[string]interface{}{
							"type":        "integer",
							"description": "Plane width in pixels",
						},
						"height": map[string]interface{}{
							"type":        "integer",
							"description": "Plane height in pixels",
						},
					},
					transformProperties(),
					lineProperties(),
				),
				"required": []string{"points", "width", "height"},
			},
		},

		// Accumulator Inspection
		{
			Name:        "hough_accumulator",
			Description: "Render the Hough accumulator of an image as base64-encoded PNG: angle index on x, radius index on y, brightest cell = most votes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{
						"path": pathProperty(),
						"kind": map[string]interface{}{
							"type":        "string",
							"description": "raw: the accumulator; extended: accumulator plus its radially mirrored copy (angles 0-2pi); maxima: only local maxima",
							"enum":        []string{"raw", "extended", "maxima"},
							"default":     "raw",
						},
						"scale": map[string]interface{}{
							"type":        "number",
							"description": "Optional scale factor for the returned image. Default 1.0",
							"default":     1.0,
						},
					},
					edgeProperties(),
					transformProperties(),
				),
				"required": []string{"path"},
			},
		},
	}
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// edgeProperties describes the arguments that select how a mask is built.
func edgeProperties() map[string]interface{} {
	return map[string]interface{}{
		"mode": map[string]interface{}{
			"type":        "string",
			"description": "canny: thin edges, good for photos and filled shapes; threshold: luminance cut, good for line drawings",
			"enum":        []string{"canny", "threshold"},
		},
		"threshold_low": map[string]interface{}{
			"type":        "integer",
			"description": "Canny low threshold (0-255)",
		},
		"threshold_high": map[string]interface{}{
			"type":        "integer",
			"description": "Canny high threshold (0-255)",
		},
		"level": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance cut for threshold mode (0-255)",
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Threshold mode: treat dark pixels as foreground",
		},
		"region": map[string]interface{}{
			"type":        "string",
			"description": "Optional area to analyse: \"x1,y1,x2,y2\" or a name (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center)",
		},
	}
}

func transformProperties() map[string]interface{} {
	return map[string]interface{}{
		"n_ang": map[string]interface{}{
			"type":        "integer",
			"description": "Number of angle bins over [0, pi)",
		},
		"n_rad": map[string]interface{}{
			"type":        "integer",
			"description": "Number of radius bins per sign",
		},
	}
}

func lineProperties() map[string]interface{} {
	return map[string]interface{}{
		"min_votes": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum accumulator votes for a line",
		},
		"max_lines": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of lines to return",
		},
	}
}

// merge combines property maps; later maps win on duplicate keys.
func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
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
