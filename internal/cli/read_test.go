package cli

import (
	"strings"
	"testing"

	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
)

func TestParseSectionIDs(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []docid.SectionID
	}{
		{
			name:   "single id",
			values: []string{"1/2"},
			want:   []docid.SectionID{"1/2"},
		},
		{
			name:   "repeated flag",
			values: []string{"1", "2/1"},
			want:   []docid.SectionID{"1", "2/1"},
		},
		{
			name:   "comma separated",
			values: []string{"1/2,3"},
			want:   []docid.SectionID{"1/2", "3"},
		},
		{
			name:   "mixed with whitespace",
			values: []string{" 1 , 2/3 ", "4"},
			want:   []docid.SectionID{"1", "2/3", "4"},
		},
		{
			name:   "leading zeros canonicalized",
			values: []string{"01/002"},
			want:   []docid.SectionID{"1/2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSectionIDs(tt.values)
			if err != nil {
				t.Fatalf("parseSectionIDs(%v) error: %v", tt.values, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseSectionIDs(%v) = %v, want %v", tt.values, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("id[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseSectionIDsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "non-numeric", values: []string{"abc"}},
		{name: "negative segment", values: []string{"1/-2"}},
		{name: "trailing slash", values: []string{"1/"}},
		{name: "only commas", values: []string{",,"}},
		{name: "empty values", values: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSectionIDs(tt.values)
			if err == nil {
				t.Fatalf("parseSectionIDs(%v) succeeded, want error", tt.values)
			}
			if code := docerr.CodeOf(err); code != docerr.CodeInvalidParameter {
				t.Errorf("error code = %s, want %s", code, docerr.CodeInvalidParameter)
			}
		})
	}
}

func TestParseSectionIDsErrorNamesBadPart(t *testing.T) {
	_, err := parseSectionIDs([]string{"1/2,x/y"})
	if err == nil {
		t.Fatal("expected error for malformed id")
	}
	if !strings.Contains(err.Error(), `"x/y"`) {
		t.Errorf("error %q should name the malformed id", err)
	}
}
