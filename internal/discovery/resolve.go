package discovery

import (
	"path/filepath"
	"strings"

	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
	"github.com/aidanlsb/kvasir/internal/slugs"
)

// Resolve maps a caller-supplied document reference to a discovered
// file. Accepted forms, tried in order:
//
//   - a file id from the current snapshot ("f3")
//   - the exact relative filename ("guides/setup.md")
//   - the filename without its ".md" extension ("guides/setup")
//   - a slug comparison, so "Getting Started" finds getting-started.md
//
// When roots overlap and a filename appears more than once, filename
// forms resolve to the first file in discovery order; the others remain
// reachable by id.
func (s *Scanner) Resolve(ref string) (File, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return File{}, docerr.New(docerr.CodeInvalidParameter, "empty document reference")
	}

	snap := s.current()

	if docid.LooksLikeFileID(ref) {
		if i, ok := snap.byID[docid.FileID(ref)]; ok {
			return snap.files[i], nil
		}
		// Fall through: an unassigned id may still name a file.
	}

	name := filepath.ToSlash(strings.TrimPrefix(ref, "./"))
	if i, ok := snap.byName[name]; ok {
		return snap.files[i], nil
	}
	if i, ok := snap.byName[name+".md"]; ok {
		return snap.files[i], nil
	}

	want := slugs.PathSlug(name)
	for _, f := range snap.files {
		if slugs.PathSlug(f.Filename) == want {
			return f, nil
		}
	}

	return File{}, docerr.New(docerr.CodeFileNotFound, "document not found: %s", ref).
		WithDetail("reference", ref).
		WithDetail("search_paths", s.roots)
}
