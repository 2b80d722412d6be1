package media

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Normalize lowercases name, strips punctuation and collapses whitespace.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Library maps normalized holiday names to pre-vetted artifacts.
type Library struct {
	entries map[string][]model.MediaArtifact
	// keys is sorted longest first so the most specific key wins substring matching.
	keys []string
}

// NewLibrary returns the built-in curated library.
func NewLibrary() *Library {
	l := &Library{entries: map[string][]model.MediaArtifact{}}
	for name, memes := range builtinMemes {
		list := make([]model.MediaArtifact, 0, len(memes))
		for _, m := range memes {
			list = append(list, model.TextArtifact(m))
		}
		l.Add(name, list...)
	}
	return l
}

// Add appends artifacts under name's normalized key. Empty artifacts are dropped.
func (l *Library) Add(name string, artifacts ...model.MediaArtifact) {
	key := Normalize(name)
	if key == "" {
		return
	}
	var valid []model.MediaArtifact
	for _, a := range artifacts {
		if !a.IsZero() {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		return
	}
	if _, ok := l.entries[key]; !ok {
		l.keys = append(l.keys, key)
		sort.Slice(l.keys, func(i, j int) bool {
			if len(l.keys[i]) != len(l.keys[j]) {
				return len(l.keys[i]) > len(l.keys[j])
			}
			return l.keys[i] < l.keys[j]
		})
	}
	l.entries[key] = append(l.entries[key], valid...)
}

// Lookup finds artifacts for a holiday name: exact normalized key first, then a
// key contained in the name or containing it.
func (l *Library) Lookup(name string) ([]model.MediaArtifact, bool) {
	key := Normalize(name)
	if key == "" {
		return nil, false
	}
	if list, ok := l.entries[key]; ok {
		return list, true
	}
	for _, k := range l.keys {
		if strings.Contains(key, k) || strings.Contains(k, key) {
			return l.entries[k], true
		}
	}
	return nil, false
}

// Len returns the number of keys.
func (l *Library) Len() int {
	return len(l.keys)
}

// LibraryFile is the operator-supplied YAML extension of the built-in tables.
//
//	holidays:
//	  "5-4":
//	    - name: Star Wars Day
//	      description: May the fork be with you
//	media:
//	  star wars day:
//	    - text: "These aren't the bugs you're looking for."
//	    - image: https://example.com/yoda.gif
type LibraryFile struct {
	Holidays map[string][]fileHoliday `yaml:"holidays"`
	Media    map[string][]fileMedia   `yaml:"media"`
}

type fileHoliday struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

type fileMedia struct {
	Text  string `yaml:"text"`
	Image string `yaml:"image"`
}

// LoadLibraryFile parses a YAML library file.
func LoadLibraryFile(path string) (*LibraryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library file: %w", err)
	}
	var f LibraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse library file %s: %w", path, err)
	}
	return &f, nil
}

// HolidayDays returns the file's holiday entries keyed by "month-day".
func (f *LibraryFile) HolidayDays() map[string][]model.Holiday {
	out := make(map[string][]model.Holiday, len(f.Holidays))
	for day, list := range f.Holidays {
		for _, h := range list {
			out[day] = append(out[day], model.Holiday{Name: h.Name, Description: h.Description, Category: h.Category})
		}
	}
	return out
}

// ApplyTo adds the file's media entries to l.
func (f *LibraryFile) ApplyTo(l *Library) {
	for name, list := range f.Media {
		artifacts := make([]model.MediaArtifact, 0, len(list))
		for _, m := range list {
			switch {
			case m.Image != "":
				artifacts = append(artifacts, model.ImageArtifact(m.Image))
			case m.Text != "":
				artifacts = append(artifacts, model.TextArtifact(m.Text))
			}
		}
		l.Add(name, artifacts...)
	}
}

var builtinMemes = map[string][]string{
	"new year's day": {
		"New year, new me.\nSame legacy code.",
		"2 weeks into January: still writing last year in every timestamp.",
		"Resolution: write tests first.\nJanuary 2nd: // TODO: add tests",
	},
	"valentine's day": {
		"Roses are red, violets are blue,\nunexpected '}' on line 32.",
		"My love for you is like a recursive function without a base case.",
		"Be the git to my hub.",
	},
	"pi day": {
		"Pi Day: the only day floating point errors are a feature.",
		"3.14159265358979...\nStill more digits than my test coverage.",
		"Be rational. Get real. Then come celebrate Pi Day.",
	},
	"april fools' day": {
		"The best prank? Telling the team the build is green.",
		"April Fools' deploy: it works on prod but not on my machine.",
		"git commit -m \"fixed everything\" - a classic April Fools' joke.",
	},
	"halloween": {
		"The scariest thing tonight? A 3 a.m. page for a service nobody owns.",
		"Trick or treat?\nMerge conflict or force push?",
		"I've seen things. Production logs with no timestamps.",
	},
	"christmas day": {
		"All I want for Christmas is a green CI pipeline.",
		"He's making a list, he's checking it twice,\nhe's running a linter to see who's been nice.",
		"Code freeze? More like code snow day.",
	},
	"international debugging day": {
		"Debugging: being the detective in a crime movie where you are also the murderer.",
		"99 little bugs in the code. Take one down, patch it around. 127 little bugs in the code.",
		"It's not a bug, it's an undocumented feature.",
	},
	"productive coding day": {
		"Productivity hack: close Slack.\nProductivity reality: reopen Slack to say you closed Slack.",
		"Shipped 3 features today. Also 4 hotfixes for those features.",
		"Today's standup: yesterday I wrote code. Today I'll write code. Blockers: meetings about code.",
	},
	"coffee appreciation day": {
		"Programmer: a machine that turns coffee into code.",
		"while (!awake) { coffee++; }",
		"Decaf? Sorry, that's an unsupported operation.",
	},
}
