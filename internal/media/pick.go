package media

import (
	"math/rand/v2"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/clock"
)

// Picker chooses an index within a list of options. Non-forced picks are
// stable for an hour window; forced picks are uniformly random.
type Picker struct {
	randIntN func(n int) int
}

// NewPicker returns a Picker backed by math/rand/v2.
func NewPicker() *Picker {
	return &Picker{randIntN: rand.IntN}
}

// NewPickerWithRand returns a Picker using randIntN for forced picks.
func NewPickerWithRand(randIntN func(n int) int) *Picker {
	return &Picker{randIntN: randIntN}
}

// Pick returns an index in [0, n). n must be positive.
func (p *Picker) Pick(n int, now time.Time, forceNew bool) int {
	if n <= 1 {
		return 0
	}
	if forceNew {
		return p.randIntN(n)
	}
	i := int(clock.HourWindow(now) % int64(n))
	if i < 0 {
		i += n
	}
	return i
}
