// Package frontmatter extracts the YAML front matter block from markdown
// documents. Only the descriptive fields discovery cares about are
// surfaced; everything else in the block is ignored.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the document description carried in front matter. Absent
// fields stay zero; discovery applies filename-derived fallbacks.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
}

// Bounds returns the opening and closing delimiter line indices. Front
// matter is only recognized when the first line is "---". If the block
// is unclosed, endLine is -1.
func Bounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0, -1, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return 0, i, true
		}
	}

	return 0, -1, true
}

// Parse extracts Metadata from the document content. The second return
// reports whether a closed front matter block was present at all. A
// malformed YAML block returns an error; callers decide whether to
// tolerate it.
func Parse(content string) (Metadata, bool, error) {
	lines := strings.Split(content, "\n")

	_, endLine, ok := Bounds(lines)
	if !ok || endLine == -1 {
		return Metadata{}, false, nil
	}

	raw := strings.Join(lines[1:endLine], "\n")

	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return Metadata{}, true, fmt.Errorf("parse front matter: %w", err)
	}
	// An empty block (or comments only) decodes to a nil map.
	if doc == nil {
		return Metadata{}, true, nil
	}

	var meta Metadata
	if s, ok := doc["title"].(string); ok {
		meta.Title = strings.TrimSpace(s)
	}
	if s, ok := doc["description"].(string); ok {
		meta.Description = strings.TrimSpace(s)
	}
	meta.Keywords = keywordList(doc["keywords"])
	return meta, true, nil
}

// keywordList accepts either a YAML list or a comma-separated string.
func keywordList(v interface{}) []string {
	var out []string
	switch kw := v.(type) {
	case []interface{}:
		for _, item := range kw {
			s, ok := item.(string)
			if !ok {
				if item == nil {
					continue
				}
				s = fmt.Sprintf("%v", item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(kw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
