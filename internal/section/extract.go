package section

import (
	"sort"
	"strings"

	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
)

// Extracted is one emitted section: its display title and the exact text
// of its line range, subsections included.
type Extracted struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Extract resolves ids against doc and returns their text.
//
// Validation is all-or-nothing: if any id is unknown the call fails with
// a SECTION_NOT_FOUND error listing every missing id, and nothing is
// extracted. Ids covered by another requested id are dropped as
// redundant, so asking for a parent and its child returns only the
// parent. Exact duplicate ids are not deduplicated. filename is used for
// error context only.
func Extract(doc *Document, filename string, ids []docid.SectionID) ([]Extracted, error) {
	if len(ids) == 0 {
		return nil, docerr.New(docerr.CodeInvalidParameter, "no section ids requested")
	}

	var missing []string
	for _, id := range ids {
		if _, ok := doc.Lookup(id); !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, docerr.New(docerr.CodeSectionNotFound,
			"section(s) not found in %s: %s", filename, strings.Join(missing, ", ")).
			WithDetail("file", filename).
			WithDetail("missing_ids", missing)
	}

	// Shallow ids win. The stable sort keeps request order within a
	// level, then anything inside an already accepted range is skipped.
	ordered := make([]docid.SectionID, len(ids))
	copy(ordered, ids)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Level() < ordered[j].Level()
	})

	var accepted []docid.SectionID
	for _, id := range ordered {
		redundant := false
		for _, a := range accepted {
			if id.IsDescendantOf(a) {
				redundant = true
				break
			}
		}
		if !redundant {
			accepted = append(accepted, id)
		}
	}

	out := make([]Extracted, 0, len(accepted))
	for _, id := range accepted {
		s, _ := doc.Lookup(id)
		title := id.String()
		if m := headerLine.FindStringSubmatch(doc.lines[s.Range.StartLine]); m != nil {
			title = strings.TrimSpace(m[2])
		}
		out = append(out, Extracted{
			Title:   title,
			Content: doc.Slice(s.Range),
		})
	}
	return out, nil
}
