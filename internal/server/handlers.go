package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "hough_detect_lines").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Fills omitted arguments from the server configuration
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection/hough function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "hough_edge_mask":
		return s.handleEdgeMask(args)
	case "hough_detect_lines":
		return s.handleDetectLines(args)
	case "hough_lines_from_points":
		return s.handleLinesFromPoints(args)
	case "hough_accumulator":
		return s.handleAccumulator(args)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared Arguments ===

// edgeArgs are optional overrides of the [edges] configuration. Pointer
// fields distinguish "not given" from zero.
type edgeArgs struct {
	Mode          *string `json:"mode"`
	ThresholdLow  *int    `json:"threshold_low"`
	ThresholdHigh *int    `json:"threshold_high"`
	Level         *int    `json:"level"`
	Invert        *bool   `json:"invert"`
	Region        string  `json:"region"`
}

type transformArgs struct {
	NAng *int `json:"n_ang"`
	NRad *int `json:"n_rad"`
}

type lineArgs struct {
	MinVotes *int `json:"min_votes"`
	MaxLines *int `json:"max_lines"`
}

func (a edgeArgs) apply(opts *imaging.EdgeOptions, bounds image.Rectangle) error {
	setIfGiven(&opts.Mode, a.Mode)
	setIfGiven(&opts.Low, a.ThresholdLow)
	setIfGiven(&opts.High, a.ThresholdHigh)
	setIfGiven(&opts.Level, a.Level)
	setIfGiven(&opts.Invert, a.Invert)

	if a.Region != "" {
		r, err := imaging.ParseRegion(bounds, a.Region)
		if err != nil {
			return err
		}
		opts.Region = &r
	}
	return nil
}

func (a transformArgs) apply(p *hough.Parameters) {
	setIfGiven(&p.NAng, a.NAng)
	setIfGiven(&p.NRad, a.NRad)
}

func (a lineArgs) apply(opts *detection.Options) {
	setIfGiven(&opts.MinVotes, a.MinVotes)
	setIfGiven(&opts.MaxLines, a.MaxLines)
}

func setIfGiven[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// options loads path and resolves the pipeline options for it.
func (s *Server) options(path string, e edgeArgs, t transformArgs, l lineArgs) (image.Image, detection.Options, error) {
	opts := s.cfg.DetectionOptions()
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, opts, err
	}
	if err := e.apply(&opts.Edges, img.Bounds()); err != nil {
		return nil, opts, err
	}
	t.apply(&opts.Params)
	l.apply(&opts)
	return img, opts, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// ImageLoadResult reports a cached image.
type ImageLoadResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cached int    `json:"cached_images"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	dims, err := imaging.GetDimensions(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return &ImageLoadResult{
		Path:   a.Path,
		Width:  dims.Width,
		Height: dims.Height,
		Cached: s.cache.Len(),
	}, nil
}

// === Edge Mask Handlers ===

type edgeMaskArgs struct {
	Path string `json:"path"`
	edgeArgs
}

func (s *Server) handleEdgeMask(args json.RawMessage) (interface{}, error) {
	var a edgeMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, opts, err := s.options(a.Path, a.edgeArgs, transformArgs{}, lineArgs{})
	if err != nil {
		return nil, err
	}

	mask, err := imaging.BuildMask(img, opts.Edges)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("edge mask built", "path", a.Path, "mode", opts.Edges.Mode, "foreground", mask.Count())
	return imaging.EncodeMask(mask)
}

// === Line Detection Handlers ===

type detectLinesArgs struct {
	Path         string `json:"path"`
	Overlay      bool   `json:"overlay"`
	ShowSegments bool   `json:"show_segments"`
	edgeArgs
	transformArgs
	lineArgs
}

// DetectLinesResult is the hough_detect_lines payload.
type DetectLinesResult struct {
	*detection.LinesResult
	Overlay *imaging.EncodedImage `json:"overlay,omitempty"`
}

func (s *Server) handleDetectLines(args json.RawMessage) (interface{}, error) {
	var a detectLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, opts, err := s.options(a.Path, a.edgeArgs, a.transformArgs, a.lineArgs)
	if err != nil {
		return nil, err
	}

	lines, err := detection.DetectLines(img, opts, hough.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("lines detected", "path", a.Path, "count", lines.Count, "edge_pixels", lines.EdgePixels)

	result := &DetectLinesResult{LinesResult: lines}
	if a.Overlay {
		overlayOpts := detection.DefaultOverlayOptions()
		overlayOpts.ShowSegments = a.ShowSegments
		enc, err := imaging.EncodePNG(detection.DrawOverlay(img, lines, overlayOpts))
		if err != nil {
			return nil, err
		}
		result.Overlay = enc
	}
	return result, nil
}

type linesFromPointsArgs struct {
	Points []hough.Point `json:"points"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	transformArgs
	lineArgs
}

// PointLinesResult is the hough_lines_from_points payload.
type PointLinesResult struct {
	Reference    hough.Point              `json:"reference"`
	Lines        []detection.DetectedLine `json:"lines"`
	Descriptions []string                 `json:"descriptions"`
	Count        int                      `json:"count"`
}

func (s *Server) handleLinesFromPoints(args json.RawMessage) (interface{}, error) {
	var a linesFromPointsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := s.cfg.DetectionOptions()
	a.transformArgs.apply(&opts.Params)
	a.lineArgs.apply(&opts)

	t, err := hough.NewFromPoints(a.Points, a.Width, a.Height, opts.Params, hough.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	lines := t.Lines(opts.MinVotes, opts.MaxLines)
	descriptions := make([]string, len(lines))
	for i, l := range lines {
		descriptions[i] = l.String()
	}
	return &PointLinesResult{
		Reference:    t.Reference(),
		Lines:        detection.DescribeLines(lines, a.Width, a.Height, image.Point{}),
		Descriptions: descriptions,
		Count:        len(lines),
	}, nil
}

// === Accumulator Handlers ===

type accumulatorArgs struct {
	Path  string  `json:"path"`
	Kind  string  `json:"kind"`
	Scale float64 `json:"scale"`
	edgeArgs
	transformArgs
}

// AccumulatorResult is the hough_accumulator payload.
type AccumulatorResult struct {
	imaging.EncodedImage
	Kind       string  `json:"kind"`
	AngleBins  int     `json:"angle_bins"`
	RadiusBins int     `json:"radius_bins"`
	AngleStep  float64 `json:"angle_step"`
	RadiusStep float64 `json:"radius_step"`
	MaxVotes   float64 `json:"max_votes"`
	TotalVotes float64 `json:"total_votes"`
	EdgePixels int     `json:"edge_pixels"`
}

func (s *Server) handleAccumulator(args json.RawMessage) (interface{}, error) {
	var a accumulatorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Kind == "" {
		a.Kind = detection.KindRaw
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, opts, err := s.options(a.Path, a.edgeArgs, a.transformArgs, lineArgs{})
	if err != nil {
		return nil, err
	}
	analysis, err := detection.Analyze(img, opts, hough.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	grid, err := detection.SelectGrid(analysis.Transform, a.Kind)
	if err != nil {
		return nil, err
	}

	enc, err := imaging.EncodePNG(imaging.Scale(detection.RenderGrid(grid), a.Scale))
	if err != nil {
		return nil, err
	}
	return &AccumulatorResult{
		EncodedImage: *enc,
		Kind:         a.Kind,
		AngleBins:    grid.Width(),
		RadiusBins:   grid.Height(),
		AngleStep:    analysis.Transform.AngleStep(),
		RadiusStep:   analysis.Transform.RadiusStep(),
		MaxVotes:     grid.Max(),
		TotalVotes:   grid.Sum(),
		EdgePixels:   analysis.Mask.Count(),
	}, nil
}
