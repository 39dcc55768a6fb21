// Package section turns markdown text into an ordered, addressable
// section index and provides the table-of-contents and extraction views
// over it.
package section

import (
	"strings"

	"github.com/aidanlsb/kvasir/internal/docid"
)

// Section is one ATX header and the content that follows it, up to the
// next header at the same or a shallower level. Its range and character
// count include everything nested beneath it.
type Section struct {
	ID              docid.SectionID `json:"id"`
	Title           string          `json:"title"`
	Level           int             `json:"level"`
	Range           Range           `json:"range"`
	CharacterCount  int             `json:"character_count"`
	SubsectionCount int             `json:"subsection_count"`
}

// Range is an inclusive, 0-based line span into the parsed document.
type Range struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Document is the parse result for one markdown document. The line slice
// it holds is the source of truth for extraction: slicing a section's
// range out of it reproduces the section's text exactly.
type Document struct {
	lines    []string
	sections []Section
	byID     map[docid.SectionID]int
}

// Sections returns the parsed sections in document order.
func (d *Document) Sections() []Section {
	return d.sections
}

// Lookup returns the section with the given id.
func (d *Document) Lookup(id docid.SectionID) (Section, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Section{}, false
	}
	return d.sections[i], true
}

// Enclosing returns the innermost section containing the 0-based line.
func (d *Document) Enclosing(line int) (Section, bool) {
	found := -1
	for i, s := range d.sections {
		if s.Range.StartLine <= line && line <= s.Range.EndLine {
			found = i
		}
	}
	if found < 0 {
		return Section{}, false
	}
	return d.sections[found], true
}

// Slice returns the text covered by r, lines joined with "\n".
func (d *Document) Slice(r Range) string {
	return strings.Join(d.lines[r.StartLine:r.EndLine+1], "\n")
}

// Lines returns the normalized document lines.
func (d *Document) Lines() []string {
	return d.lines
}

// LineCount returns the number of normalized lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Text returns the normalized document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}
