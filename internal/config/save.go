package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/kvasir/internal/atomicfile"
)

// persistedConfig mirrors Config with pointer fields so unset values
// are omitted from the file instead of written as zero values.
type persistedConfig struct {
	DocsPaths               []string             `toml:"docs_paths,omitempty"`
	MaxTOCDepth             *int                 `toml:"max_toc_depth,omitempty"`
	DiscountSingleTopHeader *bool                `toml:"discount_single_top_header,omitempty"`
	Editor                  *string              `toml:"editor,omitempty"`
	UI                      *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		MaxTOCDepth:             cfg.MaxTOCDepth,
		DiscountSingleTopHeader: cfg.DiscountSingleTopHeader,
		Editor:                  nonEmptyPtr(cfg.Editor),
	}
	if paths := cleanPaths(cfg.DocsPaths); len(paths) > 0 {
		out.DocsPaths = paths
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
