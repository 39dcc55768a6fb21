package discovery

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/kvasir/internal/docerr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestScannerDiscoversAndOrders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zebra.md", "# Z\n")
	writeFile(t, root, "alpha.md", "# A\n")
	writeFile(t, root, "guides/setup.md", "# Setup\n")
	writeFile(t, root, "notes.txt", "not markdown")
	writeFile(t, root, ".hidden/secret.md", "# Hidden\n")

	sc := NewScanner([]string{root}, quietLogger())
	files := sc.Files()

	var names []string
	for _, f := range files {
		names = append(names, f.Filename)
	}
	want := []string{"alpha.md", "guides/setup.md", "zebra.md"}
	if len(names) != len(want) {
		t.Fatalf("got files %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got files %v, want %v", names, want)
		}
	}
	for i, f := range files {
		if want := fmt.Sprintf("f%d", i+1); f.ID.String() != want {
			t.Errorf("file %s has id %s, want %s", f.Filename, f.ID, want)
		}
		if f.SourceRoot != root {
			t.Errorf("file %s source = %q, want %q", f.Filename, f.SourceRoot, root)
		}
	}
}

func TestScannerFrontMatterMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "api-reference.md", `---
title: API Reference
description: REST endpoints
keywords: [http, rest]
---

# API Reference
`)
	writeFile(t, root, "plain-notes.md", "no front matter here\n")
	writeFile(t, root, "broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	sc := NewScanner([]string{root}, quietLogger())
	files := sc.Files()
	byName := map[string]File{}
	for _, f := range files {
		byName[f.Filename] = f
	}

	api := byName["api-reference.md"]
	if api.Title != "API Reference" || api.Description != "REST endpoints" {
		t.Errorf("api metadata = %+v", api)
	}
	if len(api.Keywords) != 2 || api.Keywords[0] != "http" {
		t.Errorf("api keywords = %v", api.Keywords)
	}

	if got := byName["plain-notes.md"].Title; got != "plain notes" {
		t.Errorf("fallback title = %q, want %q", got, "plain notes")
	}
	// Broken front matter degrades to the fallback, the file stays listed.
	if got := byName["broken.md"].Title; got != "broken" {
		t.Errorf("broken front matter title = %q, want %q", got, "broken")
	}
}

func TestScannerMultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, rootA, "shared.md", "# From A\n")
	writeFile(t, rootA, "only-a.md", "# A\n")
	writeFile(t, rootB, "shared.md", "# From B\n")

	sc := NewScanner([]string{rootA, rootB}, quietLogger())
	files := sc.Files()

	if len(files) != 3 {
		t.Fatalf("got %d files, want 3 (duplicates are both listed)", len(files))
	}
	// Root order is the primary key, filename the secondary.
	if files[0].Filename != "only-a.md" || files[1].Filename != "shared.md" || files[2].Filename != "shared.md" {
		t.Fatalf("unexpected order: %v, %v, %v", files[0].Filename, files[1].Filename, files[2].Filename)
	}
	if files[1].SourceRoot != rootA || files[2].SourceRoot != rootB {
		t.Error("duplicate filenames not ordered by root position")
	}

	// The filename form resolves to the first occurrence; the second
	// copy stays reachable by id.
	f, err := sc.Resolve("shared.md")
	if err != nil {
		t.Fatalf("Resolve(shared.md): %v", err)
	}
	if f.SourceRoot != rootA {
		t.Errorf("Resolve(shared.md) chose root %q, want first root", f.SourceRoot)
	}
	other, err := sc.Resolve("f3")
	if err != nil {
		t.Fatalf("Resolve(f3): %v", err)
	}
	if other.SourceRoot != rootB {
		t.Errorf("Resolve(f3) chose root %q, want second root", other.SourceRoot)
	}
}

func TestScannerMissingRootContributesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real.md", "# Real\n")

	sc := NewScanner([]string{filepath.Join(root, "does-not-exist"), root}, quietLogger())
	files := sc.Files()
	if len(files) != 1 || files[0].Filename != "real.md" {
		t.Fatalf("got %v, want just real.md", files)
	}
}

func TestScannerSnapshotAndInvalidate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "first.md", "# First\n")

	sc := NewScanner([]string{root}, quietLogger())
	if n := len(sc.Files()); n != 1 {
		t.Fatalf("initial scan found %d files", n)
	}

	writeFile(t, root, "second.md", "# Second\n")
	if n := len(sc.Files()); n != 1 {
		t.Errorf("snapshot should not see new files, got %d", n)
	}

	sc.Invalidate()
	files := sc.Files()
	if len(files) != 2 {
		t.Fatalf("after Invalidate got %d files, want 2", len(files))
	}
	if files[0].ID != "f1" || files[1].ID != "f2" {
		t.Errorf("ids after rescan = %s, %s", files[0].ID, files[1].ID)
	}
}

func TestResolveForms(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guides/getting-started.md", "# Getting Started\n")

	sc := NewScanner([]string{root}, quietLogger())

	for _, ref := range []string{
		"f1",
		"guides/getting-started.md",
		"guides/getting-started",
		"./guides/getting-started.md",
		"guides/Getting Started",
	} {
		f, err := sc.Resolve(ref)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", ref, err)
			continue
		}
		if f.Filename != "guides/getting-started.md" {
			t.Errorf("Resolve(%q) = %q", ref, f.Filename)
		}
	}

	// References are full relative paths; a bare basename does not match
	// a nested file.
	if f, err := sc.Resolve("getting-started"); err == nil {
		t.Errorf("Resolve(getting-started) matched %q, want a miss", f.Filename)
	}
}

func TestResolveNotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "# A\n")

	sc := NewScanner([]string{root}, quietLogger())
	_, err := sc.Resolve("missing.md")
	if err == nil {
		t.Fatal("Resolve succeeded for a missing document")
	}
	de := docerr.From(err)
	if de.Code != docerr.CodeFileNotFound {
		t.Errorf("code = %q, want FILE_NOT_FOUND", de.Code)
	}
	if _, ok := de.Details["search_paths"]; !ok {
		t.Error("error should carry the searched paths")
	}

	if _, err := sc.Resolve("  "); docerr.CodeOf(err) != docerr.CodeInvalidParameter {
		t.Errorf("blank reference error = %v, want INVALID_PARAMETER", err)
	}
}

func TestReadDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.md", "# Doc\nbody\n")

	sc := NewScanner([]string{root}, quietLogger())
	f, content, err := sc.ReadDocument("doc")
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if f.Filename != "doc.md" || !strings.HasPrefix(content, "# Doc") {
		t.Errorf("ReadDocument = %q, %q", f.Filename, content)
	}

	// A file deleted after the scan resolves but cannot be read.
	if err := os.Remove(filepath.Join(root, "doc.md")); err != nil {
		t.Fatal(err)
	}
	_, _, err = sc.ReadDocument("doc")
	if docerr.CodeOf(err) != docerr.CodeFileNotFound {
		t.Errorf("stale document error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"getting-started.md", "getting started"},
		{"guides/api_reference.md", "api reference"},
		{"README.md", "README"},
	}
	for _, tt := range tests {
		if got := TitleFromFilename(tt.in); got != tt.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
