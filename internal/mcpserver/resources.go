package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aidanlsb/kvasir/docs"
)

// GuideURI identifies the bundled agent guide resource.
const GuideURI = "kvasir://guide"

// registerResources exposes the static resources. The agent guide ships
// inside the binary, so reads never touch the corpus.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         GuideURI,
		Name:        "agent_guide",
		Description: "How to use the kvasir tools: section ids, the toc-then-read loop, search, and error recovery",
		MIMEType:    "text/markdown",
	}, s.handleGuideResource)
}

func (s *Server) handleGuideResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      GuideURI,
			MIMEType: "text/markdown",
			Text:     docs.AgentGuide,
		}},
	}, nil
}
