package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/clock"
	"github.com/yangwenmai/holidaymeme/internal/model"
)

// scriptedTier returns a fixed result and counts calls.
type scriptedTier struct {
	name     string
	artifact model.MediaArtifact
	err      error
	panics   bool
	block    bool
	calls    int
	lastReq  Request
}

func (s *scriptedTier) Name() string { return s.name }

func (s *scriptedTier) Resolve(ctx context.Context, req Request) (model.MediaArtifact, error) {
	s.calls++
	s.lastReq = req
	if s.panics {
		panic("boom")
	}
	if s.block {
		<-ctx.Done()
		return model.MediaArtifact{}, ctx.Err()
	}
	return s.artifact, s.err
}

var (
	christmas = model.Holiday{Name: "Christmas Day"}
	noon      = time.Date(2026, 12, 25, 12, 0, 0, 0, time.UTC)
)

func TestResolver_FirstSuccessWins(t *testing.T) {
	first := &scriptedTier{name: "a", err: model.ErrMediaUnavailable}
	second := &scriptedTier{name: "b", artifact: model.TextArtifact("hit")}
	third := &scriptedTier{name: "c", artifact: model.TextArtifact("unused")}

	r := NewResolver(clock.NewManual(noon), []Tier{first, second, third})
	got := r.Resolve(context.Background(), christmas, true)

	if got.Body != "hit" || got.Source != "b" {
		t.Errorf("Resolve = %+v, want hit from tier b", got)
	}
	if third.calls != 0 {
		t.Errorf("tier after the winner was called %d times", third.calls)
	}
	if !second.lastReq.ForceNew || !second.lastReq.Now.Equal(noon) {
		t.Errorf("request = %+v, want ForceNew and clock time", second.lastReq)
	}
}

func TestResolver_ExhaustionReturnsGenericFallback(t *testing.T) {
	tiers := []Tier{
		&scriptedTier{name: TierCurated, err: model.ErrMediaUnavailable},
		&scriptedTier{name: TierGenerate, err: errors.New("oracle down")},
		&scriptedTier{name: TierSearch, artifact: model.ImageArtifact("")},
		&scriptedTier{name: "panicky", panics: true},
		&scriptedTier{name: "slow", block: true},
	}
	r := NewResolver(clock.NewManual(noon), tiers, WithTierTimeout(20*time.Millisecond))

	got := r.Resolve(context.Background(), christmas, false)
	if got.IsZero() {
		t.Fatal("Resolve returned an empty artifact")
	}
	if got.Source != TierFallback {
		t.Errorf("Source = %q, want %q", got.Source, TierFallback)
	}
	if !strings.Contains(got.Body, "Christmas Day") {
		t.Errorf("fallback body = %q, want holiday name", got.Body)
	}
}

func TestResolver_NoTiers(t *testing.T) {
	r := NewResolver(clock.NewManual(noon), nil)
	got := r.Resolve(context.Background(), model.Holiday{}, true)
	if got.IsZero() || !strings.Contains(got.Body, "Today") {
		t.Errorf("Resolve = %+v, want generic artifact for unnamed holiday", got)
	}
}

func TestResolver_CuratedStableWithinHour(t *testing.T) {
	clk := clock.NewManual(noon)
	picker := NewPickerWithRand(func(n int) int { return 0 })
	r := NewResolver(clk, []Tier{NewCuratedTier(NewLibrary(), picker)})

	first := r.Resolve(context.Background(), christmas, false)
	clk.Advance(45 * time.Minute)
	second := r.Resolve(context.Background(), christmas, false)
	if first != second {
		t.Errorf("same-hour picks differ: %q vs %q", first.Body, second.Body)
	}
	if first.Source != TierCurated {
		t.Errorf("Source = %q, want curated", first.Source)
	}

	clk.Advance(time.Hour)
	if third := r.Resolve(context.Background(), christmas, false); third == first {
		t.Error("pick did not rotate in the next hour window")
	}
}

func TestResolver_ForceNewCanDiffer(t *testing.T) {
	n := 0
	picker := NewPickerWithRand(func(size int) int { n++; return n % size })
	r := NewResolver(clock.NewManual(noon), []Tier{NewCuratedTier(NewLibrary(), picker)})

	a := r.Resolve(context.Background(), christmas, true)
	b := r.Resolve(context.Background(), christmas, true)
	if a == b {
		t.Errorf("forced picks with different random draws should differ, both %q", a.Body)
	}
}

func TestCuratedTier_Miss(t *testing.T) {
	tier := NewCuratedTier(NewLibrary(), NewPicker())
	_, err := tier.Resolve(context.Background(), Request{Holiday: model.Holiday{Name: "Towel Day"}, Now: noon})
	if !errors.Is(err, model.ErrMediaUnavailable) {
		t.Errorf("err = %v, want ErrMediaUnavailable", err)
	}
}

func TestFallbackTier_StableWithinHour(t *testing.T) {
	tier := NewFallbackTier(NewPicker())
	a := tier.Artifact(Request{Holiday: christmas, Now: noon})
	b := tier.Artifact(Request{Holiday: christmas, Now: noon.Add(10 * time.Minute)})
	if a != b {
		t.Errorf("fallback changed within the hour: %q vs %q", a.Body, b.Body)
	}
}
