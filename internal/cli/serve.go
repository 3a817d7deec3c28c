package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines-mcp/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
}

func runServe(ctx context.Context, r io.Reader, w io.Writer) error {
	logger := loggerFromContext(ctx)
	srv := server.New(configFromContext(ctx),
		server.WithLogger(logger),
		server.WithVersion(version),
	)
	logger.Debug("starting server", "version", version, "commit", commit, "built", date)
	return srv.Serve(r, w)
}
