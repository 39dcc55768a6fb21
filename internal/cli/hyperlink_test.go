package cli

import (
	"testing"
)

func TestBuildEditorURL(t *testing.T) {
	tests := []struct {
		name    string
		editor  string
		absPath string
		line    int
		wantURL string
	}{
		{
			name:    "cursor editor",
			editor:  "cursor",
			absPath: "/Users/test/docs/file.md",
			line:    42,
			wantURL: "cursor://file/Users/test/docs/file.md:42:1",
		},
		{
			name:    "cursor via open command",
			editor:  "open -a Cursor",
			absPath: "/Users/test/docs/file.md",
			line:    10,
			wantURL: "cursor://file/Users/test/docs/file.md:10:1",
		},
		{
			name:    "vscode",
			editor:  "code",
			absPath: "/Users/test/docs/file.md",
			line:    5,
			wantURL: "vscode://file/Users/test/docs/file.md:5:1",
		},
		{
			name:    "sublime text",
			editor:  "subl",
			absPath: "/Users/test/docs/file.md",
			line:    15,
			wantURL: "subl://open?url=file:///Users/test/docs/file.md&line=15",
		},
		{
			name:    "jetbrains idea",
			editor:  "idea",
			absPath: "/Users/test/docs/file.md",
			line:    20,
			wantURL: "idea://open?file=/Users/test/docs/file.md&line=20",
		},
		{
			name:    "goland",
			editor:  "goland",
			absPath: "/Users/test/docs/file.md",
			line:    25,
			wantURL: "idea://open?file=/Users/test/docs/file.md&line=25",
		},
		{
			name:    "zed",
			editor:  "zed",
			absPath: "/Users/test/docs/file.md",
			line:    30,
			wantURL: "zed://file/Users/test/docs/file.md:30",
		},
		{
			name:    "vim fallback to file://",
			editor:  "vim",
			absPath: "/Users/test/docs/file.md",
			line:    1,
			wantURL: "file:///Users/test/docs/file.md",
		},
		{
			name:    "unknown editor fallback",
			editor:  "nano",
			absPath: "/Users/test/docs/file.md",
			line:    1,
			wantURL: "file:///Users/test/docs/file.md",
		},
		{
			name:    "no editor configured",
			editor:  "",
			absPath: "/Users/test/docs/file.md",
			line:    1,
			wantURL: "file:///Users/test/docs/file.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL := buildEditorURL(tt.editor, tt.absPath, tt.line)
			if gotURL != tt.wantURL {
				t.Errorf("buildEditorURL() = %q, want %q", gotURL, tt.wantURL)
			}
		})
	}
}

func TestFormatLocationStyledWithoutTTY(t *testing.T) {
	prevDisabled := hyperlinksDisabled
	prevEnabled := hyperlinkEnabled
	t.Cleanup(func() {
		hyperlinksDisabled = prevDisabled
		hyperlinkEnabled = prevEnabled
	})

	setHyperlinksDisabled(true)

	got := formatLocationStyled("/abs/guide.md", "guide.md", 12, nil)
	if got != "guide.md:12" {
		t.Errorf("formatLocationStyled() = %q, want plain location", got)
	}
}
