package engine

import (
	"fmt"
	"strings"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Markers the stub client keys off.
const (
	rankPromptMarker = "most fun, interesting, or funny holiday"
	memePromptMarker = "Create a funny meme text"
)

func buildRankPrompt(candidates []model.Holiday) string {
	var list strings.Builder
	for _, h := range candidates {
		fmt.Fprintf(&list, "- %s: %s\n", h.Name, h.DescriptionOr("No description"))
	}
	return fmt.Sprintf(`You are selecting the %s for an engineering team to share.

Here are today's holidays:
%s
Pick the ONE holiday that would be most entertaining, surprising, or relatable for software engineers. Consider:
- Humor potential
- Uniqueness/obscurity
- Relevance to tech culture
- Shareability among teammates

Respond with just the holiday name exactly as listed above, followed by | and a brief reason why it's the best choice for engineers.`,
		rankPromptMarker, list.String())
}

func buildMemePrompt(h model.Holiday) string {
	return fmt.Sprintf(`%s for "%s" that would appeal to software engineers and developers.

The meme should:
- Be workplace appropriate
- Relate to programming/engineering culture
- Be witty and shareable
- Reference common developer experiences

Keep it short and punchy - just return the meme text, nothing else.`, memePromptMarker, h.Name)
}

// parseRankResponse splits "<name> | <reason>". ok is false when the
// separator is missing or the name is blank.
func parseRankResponse(raw string) (name, reason string, ok bool) {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	name, reason, found := strings.Cut(line, "|")
	if !found {
		return "", "", false
	}
	name = strings.Trim(strings.TrimSpace(name), `"'*`+"`")
	reason = strings.TrimSpace(reason)
	if name == "" {
		return "", "", false
	}
	return name, reason, true
}

// matchCandidate returns the index of the candidate named by the oracle:
// case-insensitive equality first, then containment in either direction.
// It returns -1 when nothing matches.
func matchCandidate(candidates []model.Holiday, name string) int {
	want := strings.ToLower(name)
	for i, h := range candidates {
		if strings.ToLower(h.Name) == want {
			return i
		}
	}
	for i, h := range candidates {
		have := strings.ToLower(h.Name)
		if have == "" {
			continue
		}
		if strings.Contains(want, have) || strings.Contains(have, want) {
			return i
		}
	}
	return -1
}

// cleanMeme trims whitespace and one pair of surrounding quotes.
func cleanMeme(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimPrefix(s, `'`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, `'`)
	return strings.TrimSpace(s)
}
