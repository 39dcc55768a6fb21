package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aidanlsb/kvasir/internal/discovery"
	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
	"github.com/aidanlsb/kvasir/internal/search"
	"github.com/aidanlsb/kvasir/internal/section"
	"github.com/aidanlsb/kvasir/internal/stats"
)

// registerTools adds the document tools to the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "list_documents",
		Description: "List every markdown document in the corpus with its file id, " +
			"filename, title, and metadata. START HERE to see what documentation " +
			"exists. Use a file id (e.g. f3) or filename with table_of_contents " +
			"to explore a document's structure before reading it.",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "table_of_contents",
		Description: "Get the hierarchical section structure of a document. Returns " +
			"section ids (e.g. 2/1 for the first subsection of the second top-level " +
			"section) to pass to read_sections. An entry with subsection_count has " +
			"that many direct children hidden by the depth cut; raise max_depth to " +
			"reveal them. Prefer this over reading whole documents.",
	}, s.handleTableOfContents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "read_sections",
		Description: "Read specific sections of a document by section id. Ids come " +
			"from table_of_contents. A section includes all of its subsections, so " +
			"request the parent instead of listing every child. Returns the sections " +
			"sorted shallowest first.",
	}, s.handleReadSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_documents",
		Description: "Search every document for a substring (default, case-insensitive) " +
			"or a Go regular expression. Returns matching lines with file, line " +
			"number, and the enclosing section id; follow up with read_sections to " +
			"pull the surrounding context. An empty result means nothing matched.",
	}, s.handleSearchDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "get_statistics",
		Description: "Corpus-level statistics: file count, total size, section count, " +
			"deepest heading level, per-level heading histogram, link and code block " +
			"counts. Useful to gauge how much documentation exists before exploring.",
	}, s.handleGetStatistics)
}

// toolError reports a domain failure in-band so the caller sees the
// structured code instead of a protocol error.
func toolError(err error) (*mcp.CallToolResult, any, error) {
	payload, mErr := json.Marshal(docerr.From(err))
	if mErr != nil {
		payload = []byte(`{"code":"INTERNAL_ERROR","message":"failed to encode error"}`)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil, nil
}

// ListDocumentsArgs defines the input for list_documents.
type ListDocumentsArgs struct{}

// ListDocumentsResult is the output of list_documents.
type ListDocumentsResult struct {
	Documents []discovery.File `json:"documents"`
}

func (s *Server) handleListDocuments(ctx context.Context, req *mcp.CallToolRequest, args ListDocumentsArgs) (*mcp.CallToolResult, any, error) {
	files := s.scanner.Files()
	s.log.Debug("tool call", "tool", "list_documents", "count", len(files))
	return nil, ListDocumentsResult{Documents: files}, nil
}

// TableOfContentsArgs defines the input for table_of_contents.
type TableOfContentsArgs struct {
	File     string `json:"file" jsonschema:"Document reference: filename (guide.md), name without extension (guide), slug, or file id (f3)"`
	MaxDepth *int   `json:"max_depth,omitempty" jsonschema:"Deepest header level to include, 1-6. Defaults to the server configuration; omitted levels are summarized by subsection_count."`
}

// TableOfContentsResult is the output of table_of_contents.
type TableOfContentsResult struct {
	Filename string             `json:"filename"`
	Sections []section.TOCEntry `json:"sections"`
}

func (s *Server) handleTableOfContents(ctx context.Context, req *mcp.CallToolRequest, args TableOfContentsArgs) (*mcp.CallToolResult, any, error) {
	depth := s.settings.MaxTOCDepth
	if args.MaxDepth != nil {
		if *args.MaxDepth < 1 || *args.MaxDepth > 6 {
			return toolError(docerr.New(docerr.CodeInvalidParameter,
				"max_depth must be between 1 and 6, got %d", *args.MaxDepth))
		}
		depth = args.MaxDepth
	}

	file, content, err := s.scanner.ReadDocument(args.File)
	if err != nil {
		return toolError(err)
	}

	doc := section.Parse(content)
	entries := section.BuildTOC(doc, section.TOCOptions{
		MaxDepth:                depth,
		DiscountSingleTopHeader: s.settings.DiscountSingleTopHeader,
	})
	s.log.Debug("tool call", "tool", "table_of_contents", "file", file.Filename, "sections", len(entries))

	return nil, TableOfContentsResult{Filename: file.Filename, Sections: entries}, nil
}

// ReadSectionsArgs defines the input for read_sections.
type ReadSectionsArgs struct {
	File       string   `json:"file" jsonschema:"Document reference: filename, name without extension, slug, or file id"`
	SectionIDs []string `json:"section_ids" jsonschema:"Section ids from table_of_contents (e.g. [\"1/2\", \"3\"]). At least one is required."`
}

// ReadSectionsResult is the output of read_sections.
type ReadSectionsResult struct {
	Filename string              `json:"filename"`
	Sections []section.Extracted `json:"sections"`
}

func (s *Server) handleReadSections(ctx context.Context, req *mcp.CallToolRequest, args ReadSectionsArgs) (*mcp.CallToolResult, any, error) {
	if len(args.SectionIDs) == 0 {
		return toolError(docerr.New(docerr.CodeInvalidParameter, "section_ids must not be empty"))
	}

	ids := make([]docid.SectionID, 0, len(args.SectionIDs))
	for _, raw := range args.SectionIDs {
		id, err := docid.ParseSection(raw)
		if err != nil {
			return toolError(docerr.New(docerr.CodeInvalidParameter, "%v", err))
		}
		ids = append(ids, id)
	}

	file, content, err := s.scanner.ReadDocument(args.File)
	if err != nil {
		return toolError(err)
	}

	extracted, err := section.Extract(section.Parse(content), file.Filename, ids)
	if err != nil {
		return toolError(err)
	}
	s.log.Debug("tool call", "tool", "read_sections", "file", file.Filename, "sections", len(extracted))

	return nil, ReadSectionsResult{Filename: file.Filename, Sections: extracted}, nil
}

// SearchDocumentsArgs defines the input for search_documents.
type SearchDocumentsArgs struct {
	Query         string `json:"query" jsonschema:"Text to search for. A plain substring unless regex is set."`
	File          string `json:"file,omitempty" jsonschema:"Restrict the search to one document reference (optional)"`
	Regex         bool   `json:"regex,omitempty" jsonschema:"Treat query as a Go regular expression"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"Match case exactly (default: insensitive)"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum number of matches to return (default 50)"`
}

// SearchDocumentsResult is the output of search_documents.
type SearchDocumentsResult struct {
	Matches []search.Match `json:"matches"`
	Count   int            `json:"count"`
}

func (s *Server) handleSearchDocuments(ctx context.Context, req *mcp.CallToolRequest, args SearchDocumentsArgs) (*mcp.CallToolResult, any, error) {
	matches, err := search.Run(s.scanner, search.Options{
		Query:         args.Query,
		File:          args.File,
		Regex:         args.Regex,
		CaseSensitive: args.CaseSensitive,
		Limit:         args.Limit,
	}, s.log)
	if err != nil {
		return toolError(err)
	}
	s.log.Debug("tool call", "tool", "search_documents", "query", args.Query, "matches", len(matches))

	return nil, SearchDocumentsResult{Matches: matches, Count: len(matches)}, nil
}

// GetStatisticsArgs defines the input for get_statistics.
type GetStatisticsArgs struct{}

func (s *Server) handleGetStatistics(ctx context.Context, req *mcp.CallToolRequest, args GetStatisticsArgs) (*mcp.CallToolResult, any, error) {
	corpus := stats.Collect(s.scanner, s.log)
	s.log.Debug("tool call", "tool", "get_statistics", "files", corpus.FileCount)
	return nil, corpus, nil
}
