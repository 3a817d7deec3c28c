// Package cli implements the hough-mcp command-line interface.
//
// Without a subcommand the binary runs the MCP server on stdio, which is how
// MCP clients launch it. The detect and accumulator subcommands run the same
// pipeline once on a file, for scripting and for tuning a configuration.
//
// # Logging
//
// Logs go to stderr. --verbose (-v) or HOUGH_MCP_LOG_LEVEL=debug enables
// debug output. Loggers are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines-mcp/internal/config"
)

var (
	version = "dev"     // semantic version (e.g., "v1.2.3")
	commit  = "unknown" // git commit SHA
	date    = "unknown" // build timestamp
)

// SetVersion sets the version information displayed by --version and
// reported to MCP clients. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the hough-mcp CLI and returns an error if any command fails.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "hough-mcp",
		Short: "Hough transform line detection as an MCP server",
		Long: `hough-mcp detects straight lines in images with the classic Hough transform.

Run without a subcommand it serves the Model Context Protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), resolveLevel(verbose))
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if configPath != "" {
				logger.Debug("loaded config", "path", configPath)
			}
			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), os.Stdin, os.Stdout)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("hough-mcp %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newDetectCmd())
	root.AddCommand(newAccumulatorCmd())

	return root
}
