// Package search scans discovered documents line by line for plain-text
// or regular-expression matches, attributing each hit to the innermost
// section that contains it.
package search

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/aidanlsb/kvasir/internal/discovery"
	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
	"github.com/aidanlsb/kvasir/internal/section"
)

// DefaultLimit caps result sets when the caller does not.
const DefaultLimit = 50

// Options selects what to search and how.
type Options struct {
	// Query is the text or pattern to look for. Required.
	Query string

	// File restricts the scan to one document reference. Empty means
	// every discovered document.
	File string

	// Regex treats Query as a Go regular expression.
	Regex bool

	// CaseSensitive matches case exactly. The default is insensitive
	// for both plain and regex queries.
	CaseSensitive bool

	// Limit caps the number of matches; zero means DefaultLimit.
	Limit int
}

// Match is one matching line.
type Match struct {
	FileID       docid.FileID    `json:"file_id"`
	Filename     string          `json:"filename"`
	SectionID    docid.SectionID `json:"section_id,omitempty"`
	SectionTitle string          `json:"section_title,omitempty"`
	Line         int             `json:"line"` // 1-based
	Text         string          `json:"text"`
}

// Run scans the corpus in discovery order and returns matches until the
// limit fills. Matches outside any section (text before the first
// header) carry no section attribution. An empty result is success, not
// an error; unreadable files are skipped with a warning.
func Run(sc *discovery.Scanner, opts Options, log *slog.Logger) ([]Match, error) {
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(opts.Query) == "" {
		return nil, docerr.New(docerr.CodeInvalidParameter, "search query is empty")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	matches, err := newMatcher(opts)
	if err != nil {
		return nil, docerr.New(docerr.CodeInvalidParameter, "invalid regular expression: %v", err).
			WithDetail("query", opts.Query)
	}

	var files []discovery.File
	if opts.File != "" {
		f, err := sc.Resolve(opts.File)
		if err != nil {
			return nil, err
		}
		files = []discovery.File{f}
	} else {
		files = sc.Files()
	}

	var out []Match
	for _, f := range files {
		raw, err := os.ReadFile(f.AbsPath)
		if err != nil {
			log.Warn("skipping unreadable document", "file", f.Filename, "error", err)
			continue
		}
		doc := section.Parse(string(raw))
		for i, line := range doc.Lines() {
			if !matches(line) {
				continue
			}
			m := Match{
				FileID:   f.ID,
				Filename: f.Filename,
				Line:     i + 1,
				Text:     strings.TrimSpace(line),
			}
			if s, ok := doc.Enclosing(i); ok {
				m.SectionID = s.ID
				m.SectionTitle = s.Title
			}
			out = append(out, m)
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func newMatcher(opts Options) (func(string) bool, error) {
	if opts.Regex {
		expr := opts.Query
		if !opts.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}

	if opts.CaseSensitive {
		query := opts.Query
		return func(line string) bool {
			return strings.Contains(line, query)
		}, nil
	}
	query := strings.ToLower(opts.Query)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), query)
	}, nil
}
