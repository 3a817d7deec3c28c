// Package config loads the TOML configuration shared by the MCP server and
// the command-line tools.
//
// A configuration file is optional; every field has a default. Example:
//
//	[hough]
//	n_ang = 256
//	n_rad = 128
//
//	[edges]
//	mode = "threshold"
//	level = 128
//	invert = true
//
//	[lines]
//	min_votes = 20
//	max_lines = 5
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// Lines holds the line extraction settings.
type Lines struct {
	MinVotes  int     `toml:"min_votes"`
	MaxLines  int     `toml:"max_lines"`
	Tolerance float64 `toml:"tolerance"`
}

// Config is the complete configuration.
type Config struct {
	Hough hough.Parameters    `toml:"hough"`
	Edges imaging.EdgeOptions `toml:"edges"`
	Lines Lines               `toml:"lines"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := detection.DefaultOptions()
	return Config{
		Hough: d.Params,
		Edges: d.Edges,
		Lines: Lines{
			MinVotes:  d.MinVotes,
			MaxLines:  d.MaxLines,
			Tolerance: d.Tolerance,
		},
	}
}

// Load reads the TOML file at path on top of the defaults, so a file only
// needs the keys it changes. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section and joins the problems found.
func (c Config) Validate() error {
	var errs []error
	if err := c.Hough.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch c.Edges.Mode {
	case imaging.EdgeModeCanny, imaging.EdgeModeThreshold:
	default:
		errs = append(errs, fmt.Errorf("edges.mode must be %q or %q, got %q",
			imaging.EdgeModeCanny, imaging.EdgeModeThreshold, c.Edges.Mode))
	}
	if c.Edges.Low < 0 || c.Edges.High > 255 || c.Edges.Low > c.Edges.High {
		errs = append(errs, fmt.Errorf("edges.low/high must satisfy 0 <= low <= high <= 255, got %d/%d",
			c.Edges.Low, c.Edges.High))
	}
	if c.Edges.Level < 0 || c.Edges.Level > 255 {
		errs = append(errs, fmt.Errorf("edges.level must be 0-255, got %d", c.Edges.Level))
	}

	if c.Lines.MinVotes < 0 {
		errs = append(errs, fmt.Errorf("lines.min_votes must not be negative, got %d", c.Lines.MinVotes))
	}
	if c.Lines.MaxLines < 1 {
		errs = append(errs, fmt.Errorf("lines.max_lines must be at least 1, got %d", c.Lines.MaxLines))
	}
	if c.Lines.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("lines.tolerance must be positive, got %g", c.Lines.Tolerance))
	}
	return errors.Join(errs...)
}

// DetectionOptions converts the configuration into pipeline options.
func (c Config) DetectionOptions() detection.Options {
	return detection.Options{
		Params:    c.Hough,
		Edges:     c.Edges,
		MinVotes:  c.Lines.MinVotes,
		MaxLines:  c.Lines.MaxLines,
		Tolerance: c.Lines.Tolerance,
	}
}
