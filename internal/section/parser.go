package section

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aidanlsb/kvasir/internal/docid"
)

// headerLine matches an ATX header at the start of a raw line: one to six
// '#' characters, whitespace, then the title. Indented headers do not
// count. The parse is line-oriented, so a matching line inside a fenced
// code block is indexed like any other header.
var headerLine = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Parse indexes the document's ATX headers into sections. Line endings
// are normalized (CRLF and lone CR become LF) before line numbers are
// assigned, so ranges and ids are identical across platforms. A document
// with no headers parses to an empty index; parsing never fails.
func Parse(text string) *Document {
	doc := &Document{
		lines: strings.Split(normalizeNewlines(text), "\n"),
		byID:  make(map[docid.SectionID]int),
	}

	// counters[k] is the running position at header level k+1. A header
	// at level L takes the next position there and resets every deeper
	// counter, which is what makes ids encode the full hierarchy path.
	var counters [6]int
	var open []int // indices into doc.sections, strictly increasing level

	for lineNo, line := range doc.lines {
		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		counters[level-1]++
		for k := level; k < len(counters); k++ {
			counters[k] = 0
		}

		// A new header closes every open section at its level or deeper.
		for len(open) > 0 && doc.sections[open[len(open)-1]].Level >= level {
			doc.sections[open[len(open)-1]].Range.EndLine = lineNo - 1
			open = open[:len(open)-1]
		}

		id := docid.SectionFromSegments(counters[:level])
		doc.byID[id] = len(doc.sections)
		doc.sections = append(doc.sections, Section{
			ID:    id,
			Title: strings.TrimSpace(m[2]),
			Level: level,
			Range: Range{StartLine: lineNo},
		})
		open = append(open, len(doc.sections)-1)
	}

	for _, i := range open {
		doc.sections[i].Range.EndLine = len(doc.lines) - 1
	}

	for i := range doc.sections {
		s := &doc.sections[i]
		s.CharacterCount = utf8.RuneCountInString(doc.Slice(s.Range))
		if parent, ok := s.ID.Parent(); ok {
			// Ids with a 0 segment have no section at the parent id;
			// those children simply go uncounted anywhere.
			if pi, ok := doc.byID[parent]; ok {
				doc.sections[pi].SubsectionCount++
			}
		}
	}

	return doc
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
