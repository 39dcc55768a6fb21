package search

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/kvasir/internal/discovery"
	"github.com/aidanlsb/kvasir/internal/docerr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func corpusScanner(t *testing.T, files map[string]string) *discovery.Scanner {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return discovery.NewScanner([]string{root}, quietLogger())
}

func TestRunPlainTextCaseInsensitive(t *testing.T) {
	sc := corpusScanner(t, map[string]string{
		"a.md": "# Intro\nThe Widget API is stable.\n",
		"b.md": "# Other\nnothing here\nwidget again\n",
	})

	matches, err := Run(sc, Options{Query: "widget"}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	first := matches[0]
	if first.Filename != "a.md" || first.Line != 2 {
		t.Errorf("first match = %s:%d, want a.md:2", first.Filename, first.Line)
	}
	if first.Text != "The Widget API is stable." {
		t.Errorf("match text = %q", first.Text)
	}
}

func TestRunCaseSensitive(t *testing.T) {
	sc := corpusScanner(t, map[string]string{
		"a.md": "Widget\nwidget\n",
	})

	matches, err := Run(sc, Options{Query: "Widget", CaseSensitive: true}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 1 || matches[0].Line != 1 {
		t.Fatalf("got %+v, want only line 1", matches)
	}
}

func TestRunSectionAttribution(t *testing.T) {
	sc := corpusScanner(t, map[string]string{
		"doc.md": "before any header needle\n# Top\n## Inner\nthe needle line\n",
	})

	matches, err := Run(sc, Options{Query: "needle"}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	if matches[0].SectionID != "" || matches[0].SectionTitle != "" {
		t.Errorf("preamble match should have no section, got %+v", matches[0])
	}
	if matches[1].SectionID != "1/1" || matches[1].SectionTitle != "Inner" {
		t.Errorf("match attributed to %s (%s), want innermost 1/1 Inner",
			matches[1].SectionID, matches[1].SectionTitle)
	}
}

func TestRunRegex(t *testing.T) {
	sc := corpusScanner(t, map[string]string{
		"doc.md": "# API\nGET /users\nPOST /users\nDELETE /users/1\n",
	})

	matches, err := Run(sc, Options{Query: `^(get|post)\s`, Regex: true}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	// Case sensitivity applies to regex queries too.
	matches, err = Run(sc, Options{Query: `^(get|post)\s`, Regex: true, CaseSensitive: true}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("case-sensitive regex matched %d lines, want 0", len(matches))
	}
}

func TestRunBadRegex(t *testing.T) {
	sc := corpusScanner(t, map[string]string{"doc.md": "text\n"})

	_, err := Run(sc, Options{Query: "[unclosed", Regex: true}, quietLogger())
	if docerr.CodeOf(err) != docerr.CodeInvalidParameter {
		t.Fatalf("error = %v, want INVALID_PARAMETER", err)
	}
}

func TestRunEmptyQuery(t *testing.T) {
	sc := corpusScanner(t, map[string]string{"doc.md": "text\n"})

	_, err := Run(sc, Options{Query: "   "}, quietLogger())
	if docerr.CodeOf(err) != docerr.CodeInvalidParameter {
		t.Fatalf("error = %v, want INVALID_PARAMETER", err)
	}
}

func TestRunFileScope(t *testing.T) {
	sc := corpusScanner(t, map[string]string{
		"a.md": "needle\n",
		"b.md": "needle\n",
	})

	matches, err := Run(sc, Options{Query: "needle", File: "b.md"}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 1 || matches[0].Filename != "b.md" {
		t.Fatalf("got %+v, want one match in b.md", matches)
	}

	_, err = Run(sc, Options{Query: "needle", File: "missing.md"}, quietLogger())
	if docerr.CodeOf(err) != docerr.CodeFileNotFound {
		t.Fatalf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunLimit(t *testing.T) {
	sc := corpusScanner(t, map[string]string{
		"doc.md": "hit\nhit\nhit\nhit\nhit\n",
	})

	matches, err := Run(sc, Options{Query: "hit", Limit: 3}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want limit of 3", len(matches))
	}
}

func TestRunNoMatchesIsSuccess(t *testing.T) {
	sc := corpusScanner(t, map[string]string{"doc.md": "text\n"})

	matches, err := Run(sc, Options{Query: "absent"}, quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %d matches, want none", len(matches))
	}
}
