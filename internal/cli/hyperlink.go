package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Hyperlinks only make sense on an interactive terminal; the decision is
// cached per run.
var hyperlinkEnabled *bool

// Forced off by --no-links.
var hyperlinksDisabled bool

func setHyperlinksDisabled(disabled bool) {
	hyperlinksDisabled = disabled
	hyperlinkEnabled = nil
}

func shouldEmitHyperlinks() bool {
	if hyperlinkEnabled == nil {
		enabled := !jsonOutput && !hyperlinksDisabled && isatty.IsTerminal(os.Stdout.Fd())
		hyperlinkEnabled = &enabled
	}
	return *hyperlinkEnabled
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// buildEditorURL maps the configured editor command to its URL scheme
// for opening absPath at line. Matching is substring-based so commands
// like "open -a Cursor" still resolve. Editors without a line-aware
// scheme get a plain file:// URL.
func buildEditorURL(editor, absPath string, line int) string {
	e := strings.ToLower(editor)

	switch {
	case strings.Contains(e, "cursor"):
		return fmt.Sprintf("cursor://file%s:%d:1", absPath, line)
	case containsAny(e, "code", "vscode"):
		return fmt.Sprintf("vscode://file%s:%d:1", absPath, line)
	case containsAny(e, "subl", "sublime"):
		return fmt.Sprintf("subl://open?url=file://%s&line=%d", absPath, line)
	case containsAny(e, "idea", "goland", "webstorm", "pycharm", "phpstorm", "rider", "rubymine", "clion"):
		return fmt.Sprintf("idea://open?file=%s&line=%d", absPath, line)
	case strings.Contains(e, "zed"):
		return fmt.Sprintf("zed://file%s:%d", absPath, line)
	default:
		// vim, emacs, and anything unrecognized: no line-number scheme.
		return fmt.Sprintf("file://%s", absPath)
	}
}

// formatLocationStyled renders "file:line", wrapped in an OSC 8
// hyperlink to the configured editor when the terminal supports it.
func formatLocationStyled(absPath, relPath string, line int, render func(...string) string) string {
	location := fmt.Sprintf("%s:%d", relPath, line)
	if render == nil {
		render = func(strs ...string) string {
			if len(strs) == 0 {
				return ""
			}
			return strs[0]
		}
	}

	if !shouldEmitHyperlinks() || absPath == "" {
		return render(location)
	}

	url := buildEditorURL(getSettings().EditorCommand(), absPath, line)
	return render(fmt.Sprintf("\x1b]8;;%s\x07%s\x1b]8;;\x07", url, location))
}
