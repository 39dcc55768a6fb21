// Package discovery enumerates markdown documents across the configured
// documentation roots, reads their front matter metadata, and assigns
// stable, session-scoped file ids.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
	"github.com/aidanlsb/kvasir/internal/frontmatter"
)

// File is one discovered markdown document.
type File struct {
	ID          docid.FileID `json:"file_id"`
	Filename    string       `json:"filename"`
	SourceRoot  string       `json:"source"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Keywords    []string     `json:"keywords,omitempty"`
	Size        string       `json:"size"`
	SizeBytes   int64        `json:"-"`
	AbsPath     string       `json:"-"`
}

// Scanner owns the discovery cache for a fixed, ordered set of roots.
// The scan runs lazily on first use and the snapshot is reused until
// Invalidate is called; file ids are stable for the lifetime of one
// snapshot.
type Scanner struct {
	roots []string
	log   *slog.Logger

	mu   sync.Mutex
	snap *snapshot
}

type snapshot struct {
	files  []File
	byID   map[docid.FileID]int
	byName map[string]int // relative filename to first occurrence
}

// NewScanner builds a scanner over the given roots. Root order matters:
// it is the primary sort key for file ids.
func NewScanner(roots []string, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{roots: roots, log: log}
}

// Roots returns the configured documentation roots.
func (s *Scanner) Roots() []string {
	return s.roots
}

// Files returns every discovered document in snapshot order.
func (s *Scanner) Files() []File {
	snap := s.current()
	out := make([]File, len(snap.files))
	copy(out, snap.files)
	return out
}

// Lookup returns the document assigned the given file id.
func (s *Scanner) Lookup(id docid.FileID) (File, bool) {
	snap := s.current()
	i, ok := snap.byID[id]
	if !ok {
		return File{}, false
	}
	return snap.files[i], true
}

// Invalidate drops the cached scan; the next call re-reads the roots and
// reassigns file ids.
func (s *Scanner) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// ReadDocument resolves ref and returns the document together with its
// raw content.
func (s *Scanner) ReadDocument(ref string) (File, string, error) {
	f, err := s.Resolve(ref)
	if err != nil {
		return File{}, "", err
	}
	raw, err := os.ReadFile(f.AbsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, "", docerr.New(docerr.CodeFileNotFound,
				"document no longer exists: %s", f.Filename).
				WithDetail("file", f.Filename)
		}
		return File{}, "", docerr.New(docerr.CodeFileSystemError,
			"read %s: %v", f.Filename, err).
			WithDetail("file", f.Filename)
	}
	return f, string(raw), nil
}

func (s *Scanner) current() *snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		s.snap = scan(s.roots, s.log)
	}
	return s.snap
}

type rootedFile struct {
	file File
	root int
}

// scan walks every root and assembles the snapshot. A root that cannot
// be walked logs a warning and contributes zero files; discovery itself
// never fails.
func scan(roots []string, log *slog.Logger) *snapshot {
	var found []rootedFile
	for i, root := range roots {
		files, err := scanRoot(root, log)
		if err != nil {
			log.Warn("skipping documentation root", "root", root, "error", err)
			continue
		}
		for _, f := range files {
			found = append(found, rootedFile{file: f, root: i})
		}
	}

	// Sort explicitly so ids do not depend on filesystem enumeration
	// order: root position first, then filename (case-sensitive).
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].root != found[j].root {
			return found[i].root < found[j].root
		}
		return found[i].file.Filename < found[j].file.Filename
	})

	snap := &snapshot{
		files:  make([]File, 0, len(found)),
		byID:   make(map[docid.FileID]int, len(found)),
		byName: make(map[string]int, len(found)),
	}
	for i, rf := range found {
		f := rf.file
		f.ID = docid.FileAtIndex(i)
		snap.files = append(snap.files, f)
		snap.byID[f.ID] = i
		if _, seen := snap.byName[f.Filename]; !seen {
			snap.byName[f.Filename] = i
		}
	}
	return snap
}

func scanRoot(root string, log *slog.Logger) ([]File, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var files []File
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// Hidden directories below the root are skipped; the root
			// itself was asked for explicitly, whatever its name.
			if path != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			log.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		f := File{
			Filename:   filepath.ToSlash(rel),
			SourceRoot: root,
			AbsPath:    path,
			SizeBytes:  info.Size(),
			Size:       humanize.Bytes(uint64(info.Size())),
		}
		applyMetadata(&f, log)
		files = append(files, f)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

// applyMetadata fills in front matter fields, falling back to a
// filename-derived title. A file that cannot be read or parsed is still
// listed; only its metadata degrades.
func applyMetadata(f *File, log *slog.Logger) {
	f.Title = TitleFromFilename(f.Filename)

	raw, err := os.ReadFile(f.AbsPath)
	if err != nil {
		log.Warn("could not read document metadata", "file", f.Filename, "error", err)
		return
	}
	meta, present, err := frontmatter.Parse(string(raw))
	if err != nil {
		log.Warn("broken front matter", "file", f.Filename, "error", err)
		return
	}
	if !present {
		return
	}
	if meta.Title != "" {
		f.Title = meta.Title
	}
	f.Description = meta.Description
	f.Keywords = meta.Keywords
}

// TitleFromFilename derives a display title from a relative path: the
// base name without its extension, with dashes and underscores turned
// into spaces.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return strings.TrimSpace(base)
}
