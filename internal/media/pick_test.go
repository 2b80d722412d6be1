package media

import (
	"testing"
	"time"
)

func TestPicker_StableWithinHourWindow(t *testing.T) {
	p := NewPickerWithRand(func(int) int { t.Fatal("random source used for a non-forced pick"); return 0 })
	base := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)

	first := p.Pick(3, base, false)
	for _, d := range []time.Duration{time.Second, 30 * time.Minute, 59*time.Minute + 59*time.Second} {
		if got := p.Pick(3, base.Add(d), false); got != first {
			t.Errorf("Pick at +%v = %d, want %d", d, got, first)
		}
	}
	if got := p.Pick(3, base.Add(time.Hour), false); got != (first+1)%3 {
		t.Errorf("Pick next hour = %d, want %d", got, (first+1)%3)
	}
}

func TestPicker_ForcedUsesRandom(t *testing.T) {
	calls := 0
	p := NewPickerWithRand(func(n int) int { calls++; return n - 1 })
	if got := p.Pick(4, time.Now(), true); got != 3 {
		t.Errorf("Pick forced = %d, want 3", got)
	}
	if calls != 1 {
		t.Errorf("random calls = %d, want 1", calls)
	}
}

func TestPicker_SingleOption(t *testing.T) {
	p := NewPicker()
	if got := p.Pick(1, time.Now(), true); got != 0 {
		t.Errorf("Pick(1) = %d, want 0", got)
	}
}

func TestPicker_DefaultRandomInRange(t *testing.T) {
	p := NewPicker()
	for i := 0; i < 100; i++ {
		if got := p.Pick(3, time.Now(), true); got < 0 || got > 2 {
			t.Fatalf("Pick = %d, out of range", got)
		}
	}
}
