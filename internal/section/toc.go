package section

import "github.com/aidanlsb/kvasir/internal/docid"

// DefaultMinTOCEntries is the smallest table of contents considered
// useful. Below it the depth filter relaxes rather than returning a
// near-empty listing.
const DefaultMinTOCEntries = 3

// TOCEntry is one row of a table of contents. SubsectionCount appears
// only when some of the section's direct children were cut by the depth
// filter; it then carries the total number of direct children, so a
// caller knows how much detail is hidden underneath.
type TOCEntry struct {
	ID              docid.SectionID `json:"id"`
	Title           string          `json:"title"`
	Level           int             `json:"level"`
	CharacterCount  int             `json:"character_count"`
	SubsectionCount int             `json:"subsection_count,omitempty"`
}

// TOCOptions controls the depth filter.
type TOCOptions struct {
	// MaxDepth caps header levels in the result; nil means unlimited.
	MaxDepth *int

	// DiscountSingleTopHeader treats a lone level-1 header as a free
	// wrapper: when a document has exactly one level-1 section, the
	// effective depth grows by one so the cap buys the same amount of
	// real structure as in documents without the wrapper.
	DiscountSingleTopHeader bool

	// MinEntries is the threshold for adaptive relaxation; when the
	// depth filter yields fewer entries and deeper sections exist, the
	// depth is raised one level at a time until the threshold is met.
	// Zero means DefaultMinTOCEntries.
	MinEntries int
}

// BuildTOC returns the depth-filtered table of contents for doc, in
// document order. Because of relaxation the result can contain sections
// deeper than MaxDepth: the cap is a target, not a hard limit.
func BuildTOC(doc *Document, opts TOCOptions) []TOCEntry {
	sections := doc.Sections()
	if len(sections) == 0 {
		return nil
	}

	depth := 0 // unlimited
	if opts.MaxDepth != nil {
		depth = *opts.MaxDepth
		if opts.DiscountSingleTopHeader && countAtLevel(sections, 1) == 1 {
			depth++
		}
	}

	minEntries := opts.MinEntries
	if minEntries <= 0 {
		minEntries = DefaultMinTOCEntries
	}

	filtered := filterDepth(sections, depth)
	if depth > 0 {
		deepest := deepestLevel(sections)
		for len(filtered) < minEntries && depth < deepest {
			depth++
			filtered = filterDepth(sections, depth)
		}
	}

	retained := make(map[docid.SectionID]bool, len(filtered))
	for _, s := range filtered {
		retained[s.ID] = true
	}

	entries := make([]TOCEntry, 0, len(filtered))
	for _, s := range filtered {
		entry := TOCEntry{
			ID:             s.ID,
			Title:          s.Title,
			Level:          s.Level,
			CharacterCount: s.CharacterCount,
		}
		if s.SubsectionCount > 0 && hidesChildren(sections, s, retained) {
			entry.SubsectionCount = s.SubsectionCount
		}
		entries = append(entries, entry)
	}
	return entries
}

// hidesChildren reports whether any of s's direct children fell to the
// depth filter.
func hidesChildren(sections []Section, s Section, retained map[docid.SectionID]bool) bool {
	present := 0
	for _, c := range sections {
		if c.ID.IsDirectChildOf(s.ID) && retained[c.ID] {
			present++
		}
	}
	return present < s.SubsectionCount
}

func filterDepth(sections []Section, depth int) []Section {
	if depth <= 0 {
		return sections
	}
	var out []Section
	for _, s := range sections {
		if s.Level <= depth {
			out = append(out, s)
		}
	}
	return out
}

func countAtLevel(sections []Section, level int) int {
	n := 0
	for _, s := range sections {
		if s.Level == level {
			n++
		}
	}
	return n
}

func deepestLevel(sections []Section) int {
	max := 0
	for _, s := range sections {
		if s.Level > max {
			max = s.Level
		}
	}
	return max
}
