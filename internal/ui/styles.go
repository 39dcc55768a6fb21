package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, line numbers
// - No colored success/error/warning - use unicode symbols only

const defaultAccentColor = "#A78BFA"

var (
	// Accent style for file paths, document references, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)

	accentColor   = defaultAccentColor
	accentEnabled = true
	colorEnabled  = true
)

// ConfigureTheme applies a configured accent color. An empty value keeps
// the default; "none", "off", "default", or an unparseable value turns
// accent styling off.
func ConfigureTheme(accent string) {
	if strings.TrimSpace(accent) == "" {
		return
	}

	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentEnabled = false
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}

	accentEnabled = true
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color, if accent styling is on.
func AccentColor() (string, bool) {
	if !colorEnabled || !accentEnabled {
		return "", false
	}
	return accentColor, true
}

// DisableColor strips color from every style. Used for --no-color.
func DisableColor() {
	colorEnabled = false
	Accent = lipgloss.NewStyle()
	AccentBold = lipgloss.NewStyle()
	Muted = lipgloss.NewStyle()
	Bold = lipgloss.NewStyle()
}

// normalizeAccentColor validates a configured accent value: ANSI color
// codes ("0" to "255") or hex colors ("#RGB" or "#RRGGBB"). Shorthand
// hex expands to the full form. The explicit values "none", "off" and
// "default" (and anything unrecognized) report ok=false.
func normalizeAccentColor(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	switch strings.ToLower(v) {
	case "none", "off", "default":
		return "", false
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	if strings.HasPrefix(v, "#") {
		hex := strings.ToLower(v[1:])
		if !isHex(hex) {
			return "", false
		}
		switch len(hex) {
		case 3:
			var b strings.Builder
			b.WriteByte('#')
			for i := 0; i < 3; i++ {
				b.WriteByte(hex[i])
				b.WriteByte(hex[i])
			}
			return b.String(), true
		case 6:
			return "#" + hex, true
		}
		return "", false
	}

	return "", false
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
