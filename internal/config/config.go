// Package config handles kvasir configuration: the config file on disk
// and its resolution against environment variables and command-line
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Environment variables recognized during resolution. They sit between
// the config file and command-line flags in precedence.
const (
	EnvDocsPaths               = "KVASIR_DOCS_PATHS"
	EnvMaxTOCDepth             = "KVASIR_MAX_TOC_DEPTH"
	EnvDiscountSingleTopHeader = "KVASIR_DISCOUNT_SINGLE_TOP_HEADER"
)

// Config represents the on-disk configuration file.
type Config struct {
	// DocsPaths are the documentation roots to index, in order. Order
	// matters: it decides file id assignment when roots overlap.
	DocsPaths []string `toml:"docs_paths"`

	// MaxTOCDepth caps table-of-contents depth (1-6). Unset means
	// unlimited.
	MaxTOCDepth *int `toml:"max_toc_depth"`

	// DiscountSingleTopHeader controls whether a document's lone
	// level-1 header counts against the TOC depth limit.
	DiscountSingleTopHeader *bool `toml:"discount_single_top_header"`

	// Editor is the editor used for terminal hyperlinks (defaults to
	// $EDITOR).
	Editor string `toml:"editor"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255")
	// or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered
	// markdown code blocks. Example values: "monokai", "dracula",
	// "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// Settings is the resolved configuration the rest of the program runs
// on. It is assembled once per invocation and treated as immutable.
type Settings struct {
	DocsPaths               []string
	MaxTOCDepth             *int
	DiscountSingleTopHeader bool
	Editor                  string
	UI                      UIConfig
}

// Overrides carries explicit command-line values. Nil or empty fields
// mean the flag was not given.
type Overrides struct {
	DocsPaths               []string
	MaxTOCDepth             *int
	DiscountSingleTopHeader *bool
}

// Resolve layers configuration sources: flags over environment over the
// config file over defaults. The default corpus is the current
// directory.
func Resolve(file *Config, ov Overrides) (Settings, error) {
	s := Settings{DocsPaths: []string{"."}}

	if file != nil {
		if paths := cleanPaths(file.DocsPaths); len(paths) > 0 {
			s.DocsPaths = paths
		}
		if file.MaxTOCDepth != nil {
			v := *file.MaxTOCDepth
			s.MaxTOCDepth = &v
		}
		if file.DiscountSingleTopHeader != nil {
			s.DiscountSingleTopHeader = *file.DiscountSingleTopHeader
		}
		s.Editor = file.Editor
		s.UI = file.UI
	}

	if v := os.Getenv(EnvDocsPaths); v != "" {
		if paths := cleanPaths(filepath.SplitList(v)); len(paths) > 0 {
			s.DocsPaths = paths
		}
	}
	if v := os.Getenv(EnvMaxTOCDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %q is not an integer", EnvMaxTOCDepth, v)
		}
		s.MaxTOCDepth = &n
	}
	if v := os.Getenv(EnvDiscountSingleTopHeader); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %q is not a boolean", EnvDiscountSingleTopHeader, v)
		}
		s.DiscountSingleTopHeader = b
	}

	if paths := cleanPaths(ov.DocsPaths); len(paths) > 0 {
		s.DocsPaths = paths
	}
	if ov.MaxTOCDepth != nil {
		v := *ov.MaxTOCDepth
		s.MaxTOCDepth = &v
	}
	if ov.DiscountSingleTopHeader != nil {
		s.DiscountSingleTopHeader = *ov.DiscountSingleTopHeader
	}

	if s.MaxTOCDepth != nil && (*s.MaxTOCDepth < 1 || *s.MaxTOCDepth > 6) {
		return Settings{}, fmt.Errorf("max toc depth must be between 1 and 6, got %d", *s.MaxTOCDepth)
	}
	return s, nil
}

func cleanPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EditorCommand returns the editor to use for terminal hyperlinks,
// falling back to $EDITOR.
func (s Settings) EditorCommand() string {
	if s.Editor != "" {
		return s.Editor
	}
	return os.Getenv("EDITOR")
}

// Load loads the configuration from the default location. Returns a
// zero config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path. Checks
// ~/.config/kvasir/config.toml first (XDG style), then falls back to
// the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "kvasir", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "kvasir", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a commented default config file at the default
// location if none exists and returns its path.
func CreateDefault() (string, error) {
	return CreateDefaultAt(DefaultPath())
}

// CreateDefaultAt creates a commented default config file at the given
// path if none exists and returns the path.
func CreateDefaultAt(configPath string) (string, error) {
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Kvasir Configuration
# See: https://github.com/aidanlsb/kvasir

# Documentation roots to index, in order. Order decides file id
# assignment when the same filename exists under several roots.
# docs_paths = ["./docs", "/path/to/more/docs"]

# Deepest header level shown in tables of contents (1-6).
# Unset means unlimited.
# max_toc_depth = 2

# Do not count a document's single wrapping "# Title" header against
# the depth limit.
# discount_single_top_header = true

# Editor for terminal hyperlinks (defaults to $EDITOR).
# editor = "code"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
