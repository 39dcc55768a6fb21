package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/mcpserver"
)

var (
	serveHTTP bool
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Kvasir as an MCP server",
	Long: `Run Kvasir as an MCP (Model Context Protocol) server.

This lets LLM agents browse tables of contents and read individual
sections of your documentation through a standardized protocol.

By default the server communicates over stdin/stdout; --http serves the
streamable HTTP transport instead.

Examples:
  kvs serve
  kvs serve --docs-path ./docs
  kvs serve --http --addr :8532

For use with Claude Desktop, add to your config (or run 'kvs mcp install'):
  {
    "mcpServers": {
      "kvasir": {
        "command": "kvs",
        "args": ["serve", "--docs-path", "/path/to/docs"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Stdout belongs to the protocol in stdio mode; all logging
		// goes to stderr.
		log := newServeLogger(verboseFlag)
		srv := mcpserver.New(getSettings(), currentVersionInfo().Version, log)

		if serveHTTP {
			if err := srv.ListenAndServe(ctx, serveAddr); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		}

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

// newServeLogger is chattier than the one-shot command logger: a
// long-running server wants lifecycle and request logging by default.
func newServeLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve the streamable HTTP transport instead of stdio")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8532", "HTTP listen address (with --http)")
	rootCmd.AddCommand(serveCmd)
}
