// Package mcpserver exposes the document index to MCP clients over
// stdio or streamable HTTP. Tool semantics match the CLI commands; the
// scanner snapshot lives for the whole session, so file ids stay stable
// across tool calls.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aidanlsb/kvasir/internal/config"
	"github.com/aidanlsb/kvasir/internal/discovery"
)

// Server wraps the MCP server with kvasir's document scanner.
type Server struct {
	settings config.Settings
	scanner  *discovery.Scanner
	log      *slog.Logger
	server   *mcp.Server
}

// New creates an MCP server over the configured documentation roots.
func New(settings config.Settings, version string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if version == "" {
		version = "dev"
	}

	s := &Server{
		settings: settings,
		scanner:  discovery.NewScanner(settings.DocsPaths, log),
		log:      log,
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "kvasir",
		Version: version,
	}, nil)
	s.registerTools()
	s.registerResources()

	return s
}

// Run serves MCP on stdio until ctx is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server starting", "transport", "stdio", "docs_paths", s.settings.DocsPaths)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to a transport and returns the session.
// Used by in-process clients and tests.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
