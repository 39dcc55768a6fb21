package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	depth := 3
	discount := true
	cfg := &Config{
		DocsPaths:               []string{"./docs", "/srv/handbook"},
		MaxTOCDepth:             &depth,
		DiscountSingleTopHeader: &discount,
		Editor:                  "cursor",
		UI: UIConfig{
			Accent:    "39",
			CodeTheme: "dracula",
		},
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if len(loaded.DocsPaths) != 2 || loaded.DocsPaths[0] != "./docs" || loaded.DocsPaths[1] != "/srv/handbook" {
		t.Errorf("docs_paths = %v, want [./docs /srv/handbook]", loaded.DocsPaths)
	}
	if loaded.MaxTOCDepth == nil || *loaded.MaxTOCDepth != 3 {
		t.Errorf("max_toc_depth = %v, want 3", loaded.MaxTOCDepth)
	}
	if loaded.DiscountSingleTopHeader == nil || !*loaded.DiscountSingleTopHeader {
		t.Errorf("discount_single_top_header = %v, want true", loaded.DiscountSingleTopHeader)
	}
	if loaded.Editor != "cursor" {
		t.Errorf("editor = %q, want cursor", loaded.Editor)
	}
	if loaded.UI.Accent != "39" || loaded.UI.CodeTheme != "dracula" {
		t.Errorf("ui = %+v, want accent 39 / code_theme dracula", loaded.UI)
	}
}

func TestSaveToOmitsUnsetFields(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	if err := SaveTo(path, &Config{Editor: "  "}); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(raw)

	for _, key := range []string{"docs_paths", "max_toc_depth", "discount_single_top_header", "editor", "[ui]"} {
		if strings.Contains(content, key) {
			t.Errorf("config should omit %s, got:\n%s", key, content)
		}
	}
}

func TestSaveToCreatesParentDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "kvasir", "config.toml")

	if err := SaveTo(path, &Config{Editor: "vim"}); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if loaded.Editor != "vim" {
		t.Errorf("editor = %q, want vim", loaded.Editor)
	}
}
