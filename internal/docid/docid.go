// Package docid defines the identifier types used to address documents
// and sections. Keeping them as distinct types prevents raw strings from
// being passed where a validated identifier is expected.
package docid

import (
	"fmt"
	"strconv"
	"strings"
)

// SectionID addresses a section by its position at each header level,
// serialized as slash-joined decimal segments ("1", "1/2", "1/0/3").
// Segment k corresponds to header level k+1. A 0 segment means no header
// was seen at that level on the path to the section (a skipped level),
// which is valid and addressable like any other id.
type SectionID string

// ParseSection validates s and returns it in canonical form. Valid ids
// are one or more non-negative decimal segments joined by "/"; segments
// with leading zeros are canonicalized ("01" becomes "1").
func ParseSection(s string) (SectionID, error) {
	if s == "" {
		return "", fmt.Errorf("empty section id")
	}
	parts := strings.Split(s, "/")
	segments := make([]int, len(parts))
	for i, part := range parts {
		n, err := parseSegment(part)
		if err != nil {
			return "", fmt.Errorf("invalid section id %q: %w", s, err)
		}
		segments[i] = n
	}
	return SectionFromSegments(segments), nil
}

func parseSegment(part string) (int, error) {
	if part == "" {
		return 0, fmt.Errorf("empty segment")
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("segment %q is not a non-negative integer", part)
		}
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, fmt.Errorf("segment %q: %w", part, err)
	}
	return n, nil
}

// SectionFromSegments builds a SectionID from position segments.
func SectionFromSegments(segments []int) SectionID {
	parts := make([]string, len(segments))
	for i, n := range segments {
		parts[i] = strconv.Itoa(n)
	}
	return SectionID(strings.Join(parts, "/"))
}

// Segments returns the id's position segments.
func (id SectionID) Segments() []int {
	if id == "" {
		return nil
	}
	parts := strings.Split(string(id), "/")
	segments := make([]int, len(parts))
	for i, part := range parts {
		segments[i], _ = strconv.Atoi(part)
	}
	return segments
}

// Level returns the header level the id addresses, which is its segment
// count.
func (id SectionID) Level() int {
	if id == "" {
		return 0
	}
	return strings.Count(string(id), "/") + 1
}

// Parent returns the id with its last segment dropped. The second return
// is false for top-level ids.
func (id SectionID) Parent() (SectionID, bool) {
	i := strings.LastIndexByte(string(id), '/')
	if i < 0 {
		return "", false
	}
	return id[:i], true
}

// IsDescendantOf reports whether id lies strictly below ancestor in the
// hierarchy. An id is not a descendant of itself.
func (id SectionID) IsDescendantOf(ancestor SectionID) bool {
	return strings.HasPrefix(string(id), string(ancestor)+"/")
}

// IsDirectChildOf reports whether id sits exactly one level below parent.
func (id SectionID) IsDirectChildOf(parent SectionID) bool {
	p, ok := id.Parent()
	return ok && p == parent
}

func (id SectionID) String() string { return string(id) }

// CompareSections orders two ids segment-wise numerically, with a strict
// prefix sorting before its extensions. For ids produced by one parse
// this matches document order.
func CompareSections(a, b SectionID) int {
	as, bs := a.Segments(), b.Segments()
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			if as[i] < bs[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

// FileID addresses a discovered document within one discovery snapshot,
// serialized as "f" plus a 1-based ordinal ("f1", "f2"). Ids are stable
// only for the lifetime of the snapshot that assigned them.
type FileID string

// FileAtIndex returns the FileID for a 0-based position in discovery
// order.
func FileAtIndex(index int) FileID {
	return FileID("f" + strconv.Itoa(index+1))
}

// ParseFile validates s as a file id.
func ParseFile(s string) (FileID, error) {
	if !LooksLikeFileID(s) {
		return "", fmt.Errorf("invalid file id %q", s)
	}
	return FileID(s), nil
}

// LooksLikeFileID reports whether s has the f<N> shape. Used to decide
// whether a document reference is an id or a filename.
func LooksLikeFileID(s string) bool {
	if len(s) < 2 || s[0] != 'f' || s[1] == '0' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (id FileID) String() string { return string(id) }
