// Package slugs provides the slugification helpers used across kvasir.
//
// There are two slugging strategies:
//   - Heading anchors: the fragment form markdown viewers generate from
//     heading text, derived with a conservative, ASCII-ish transformation.
//   - Path slugs: used for tolerant document-reference matching, built on
//     gosimple/slug.
//
// This package centralizes both so their implementations are not
// duplicated.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// HeadingAnchor converts heading text to the anchor form used in
// markdown links ("Getting Started" -> "getting-started").
func HeadingAnchor(text string) string {
	var result strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_' || r == ':':
			// Separators (including colon) become dashes
			if !prevDash && result.Len() > 0 {
				result.WriteRune('-')
				prevDash = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}

// ComponentSlug converts one path component to a URL-safe slug.
func ComponentSlug(s string) string {
	s = strings.TrimSuffix(s, ".md")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// PathSlug slugifies each "/"-separated component of a document path,
// ignoring a trailing ".md". Two references match when their PathSlugs
// are equal, so "Getting Started.md" finds "getting-started.md".
// Backslash separators are accepted for references typed on Windows.
func PathSlug(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	path = strings.TrimSuffix(path, ".md")

	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = ComponentSlug(part)
	}
	return strings.Join(parts, "/")
}
