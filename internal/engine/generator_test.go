package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

func TestMemeGenerator_StripsQuotes(t *testing.T) {
	m := &fakeModel{reply: "  \"It works on my machine... and under the tree\"\n"}
	got, err := NewMemeGenerator(m).Generate(context.Background(), christmasDay)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "It works on my machine... and under the tree" {
		t.Errorf("Generate = %q", got)
	}
	if !strings.Contains(m.prompts[0], `"Christmas Day"`) {
		t.Errorf("prompt should name the holiday, got %q", m.prompts[0])
	}
}

func TestMemeGenerator_Failures(t *testing.T) {
	for _, m := range []*fakeModel{
		{err: errors.New("down")},
		{reply: `""`},
		{reply: "   "},
	} {
		_, err := NewMemeGenerator(m).Generate(context.Background(), christmasDay)
		if !errors.Is(err, model.ErrMediaUnavailable) {
			t.Errorf("Generate(%q, %v) error = %v, want ErrMediaUnavailable", m.reply, m.err, err)
		}
	}
}

func TestStubModelClient(t *testing.T) {
	stub := &StubModelClient{}

	got := NewRanker(stub, 0).Select(context.Background(), defaultCandidates)
	if got.Name != "Coffee Appreciation Day" {
		t.Errorf("stub ranking = %q, want the last candidate", got.Name)
	}
	if got.Reason == "" {
		t.Error("stub ranking should carry a reason")
	}

	meme, err := NewMemeGenerator(stub).Generate(context.Background(), christmasDay)
	if err != nil {
		t.Fatalf("stub Generate: %v", err)
	}
	if !strings.Contains(meme, "Christmas Day") {
		t.Errorf("stub meme = %q, want holiday name", meme)
	}

	if _, err := stub.Complete(context.Background(), "something else"); err == nil {
		t.Error("stub should reject unknown prompts")
	}
}
