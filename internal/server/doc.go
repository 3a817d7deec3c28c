// Package server implements the MCP (Model Context Protocol) server for Hough
// line detection.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logging goes to the injected charmbracelet logger, never to stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load and cache an image, report its size
//   - hough_edge_mask: Preview the binary mask the transform will see
//   - hough_detect_lines: Ranked lines with endpoints, segments and colours
//   - hough_lines_from_points: Transform an explicit point set
//   - hough_accumulator: Render the raw, extended or maxima grid
//
// Arguments a client omits fall back to the server's config.Config, so a
// deployment can tune edge thresholds and transform resolution once in its
// TOML file.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(config.Default(), server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
