// Package stats aggregates corpus-level statistics over the discovered
// documents. Section figures come from the line-oriented section index;
// markdown element counts come from a goldmark parse of each document.
package stats

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/kvasir/internal/discovery"
	"github.com/aidanlsb/kvasir/internal/frontmatter"
	"github.com/aidanlsb/kvasir/internal/section"
)

// Corpus summarizes everything discovery can see.
type Corpus struct {
	FileCount       int         `json:"file_count"`
	TotalBytes      int64       `json:"total_bytes"`
	TotalSize       string      `json:"total_size"`
	SectionCount    int         `json:"section_count"`
	MaxDepth        int         `json:"max_depth"`
	HeadingsByLevel map[int]int `json:"headings_by_level"`
	LinkCount       int         `json:"link_count"`
	CodeBlockCount  int         `json:"code_block_count"`
}

// Collect scans every discovered document. Unreadable files still count
// toward FileCount and TotalBytes from their discovery metadata; their
// content figures are skipped with a warning.
func Collect(sc *discovery.Scanner, log *slog.Logger) *Corpus {
	if log == nil {
		log = slog.Default()
	}

	c := &Corpus{HeadingsByLevel: make(map[int]int)}
	md := goldmark.New()

	for _, f := range sc.Files() {
		c.FileCount++
		c.TotalBytes += f.SizeBytes

		raw, err := os.ReadFile(f.AbsPath)
		if err != nil {
			log.Warn("skipping unreadable document", "file", f.Filename, "error", err)
			continue
		}

		doc := section.Parse(string(raw))
		c.SectionCount += len(doc.Sections())
		for _, s := range doc.Sections() {
			if s.Level > c.MaxDepth {
				c.MaxDepth = s.Level
			}
		}

		countElements(c, md, documentBody(doc))
	}

	c.TotalSize = humanize.Bytes(uint64(c.TotalBytes))
	return c
}

// documentBody returns the document text with any front matter block
// removed. Without this the closing "---" turns the block above it into
// a setext heading under a plain CommonMark parse.
func documentBody(doc *section.Document) []byte {
	lines := doc.Lines()
	if _, end, ok := frontmatter.Bounds(lines); ok && end >= 0 {
		lines = lines[end+1:]
	}
	return []byte(strings.Join(lines, "\n"))
}

// countElements walks the goldmark AST for links and code blocks, and a
// second opinion on headings that, unlike the section index, understands
// code fences.
func countElements(c *Corpus, md goldmark.Markdown, raw []byte) {
	root := md.Parser().Parse(text.NewReader(raw))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			c.HeadingsByLevel[node.Level]++
		case *ast.Link, *ast.AutoLink:
			c.LinkCount++
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			c.CodeBlockCount++
		}
		return ast.WalkContinue, nil
	})
}
