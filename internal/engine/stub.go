package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	firstCandidate = regexp.MustCompile(`(?m)^- (.+?): `)
	memeSubject    = regexp.MustCompile(`for "([^"]+)"`)
)

// StubModelClient returns canned oracle answers (for development/testing).
// Rankings pick the last listed candidate so the ranking path is visible.
type StubModelClient struct{}

func (m *StubModelClient) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, rankPromptMarker) {
		names := firstCandidate.FindAllStringSubmatch(prompt, -1)
		if len(names) == 0 {
			return "", fmt.Errorf("stub: no candidates in prompt")
		}
		pick := names[len(names)-1][1]
		return pick + " | [Stub] Relatable for anyone who has ever shipped on a Friday.", nil
	}

	if strings.Contains(prompt, memePromptMarker) {
		subject := "today"
		if match := memeSubject.FindStringSubmatch(prompt); match != nil {
			subject = match[1]
		}
		return fmt.Sprintf("\"Me: I'll take %s off.\nAlso me: git push --force at 11:58pm\"", subject), nil
	}

	return "", fmt.Errorf("stub: unrecognized prompt")
}
