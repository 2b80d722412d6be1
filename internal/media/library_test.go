package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Christmas Day", "christmas day"},
		{"New Year's Day", "new years day"},
		{"  April   Fools’ Day!! ", "april fools day"},
		{"Pi-Day", "piday"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLibraryLookup(t *testing.T) {
	l := NewLibrary()
	tests := []struct {
		name   string
		wantOK bool
	}{
		{"Christmas Day", true},
		{"CHRISTMAS DAY", true},
		{"New Year's Day", true},
		{"National Coffee Appreciation Day Observed", true}, // key contained in name
		{"Halloween", true},
		{"Hallo", true}, // name contained in key
		{"Towel Day", false},
		{"", false},
	}
	for _, tt := range tests {
		list, ok := l.Lookup(tt.name)
		if ok != tt.wantOK {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
		if ok && len(list) == 0 {
			t.Errorf("Lookup(%q) returned an empty list", tt.name)
		}
	}
}

func TestLibraryLookup_PrefersLongestKey(t *testing.T) {
	l := &Library{entries: map[string][]model.MediaArtifact{}}
	l.Add("Day", model.TextArtifact("generic"))
	l.Add("Pi Day", model.TextArtifact("pi"))

	list, ok := l.Lookup("Happy Pi Day Everyone")
	if !ok || list[0].Body != "pi" {
		t.Errorf("Lookup = %+v, want the more specific key", list)
	}
}

func TestLibraryAdd_DropsEmpty(t *testing.T) {
	l := &Library{entries: map[string][]model.MediaArtifact{}}
	l.Add("Empty Day", model.TextArtifact(""))
	l.Add("!!!", model.TextArtifact("x"))
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
}

func TestLoadLibraryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	content := `holidays:
  "5-4":
    - name: Star Wars Day
      description: May the fork be with you
media:
  star wars day:
    - text: "These aren't the bugs you're looking for."
    - image: https://example.com/yoda.gif
    - {}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadLibraryFile(path)
	if err != nil {
		t.Fatalf("LoadLibraryFile: %v", err)
	}

	days := f.HolidayDays()
	if len(days["5-4"]) != 1 || days["5-4"][0].Description != "May the fork be with you" {
		t.Errorf("HolidayDays = %+v", days)
	}

	l := NewLibrary()
	f.ApplyTo(l)
	list, ok := l.Lookup("Star Wars Day")
	if !ok || len(list) != 2 {
		t.Fatalf("Lookup(Star Wars Day) = %+v, %v; want 2 artifacts", list, ok)
	}
	if list[1].Kind != model.MediaImageURL {
		t.Errorf("second artifact kind = %q, want image_url", list[1].Kind)
	}
}

func TestLoadLibraryFile_Errors(t *testing.T) {
	if _, err := LoadLibraryFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("media: [unclosed"), 0644)
	if _, err := LoadLibraryFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
