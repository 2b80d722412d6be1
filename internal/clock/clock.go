// Package clock abstracts wall-clock reads so day boundaries and hour windows
// can be driven deterministically in tests.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// hourMillis is the length of one selection window in milliseconds.
const hourMillis = int64(time.Hour / time.Millisecond)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System reads the real clock, optionally converted to a fixed location.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	now := time.Now()
	if s.Location != nil {
		return now.In(s.Location)
	}
	return now
}

// Manual is a settable clock for tests and replays.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// DayKey identifies the calendar day of t in t's location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthDayKey returns the unpadded "month-day" key used by the static holiday table.
func MonthDayKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", int(t.Month()), t.Day())
}

// HourWindow returns floor(epochMillis / hourMillis).
func HourWindow(t time.Time) int64 {
	ms := t.UnixMilli()
	w := ms / hourMillis
	if ms < 0 && ms%hourMillis != 0 {
		w--
	}
	return w
}
