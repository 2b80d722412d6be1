package holiday

import (
	"time"

	"github.com/yangwenmai/holidaymeme/internal/clock"
	"github.com/yangwenmai/holidaymeme/internal/model"
)

var builtinDays = map[string][]model.Holiday{
	"1-1":   {{Name: "New Year's Day", Description: "Fresh start, new bugs to fix!"}},
	"2-14":  {{Name: "Valentine's Day", Description: "Love is in the air... and in your code"}},
	"3-14":  {{Name: "Pi Day", Description: "Celebrating the most famous mathematical constant"}},
	"4-1":   {{Name: "April Fools' Day", Description: "The day when even your IDE plays pranks"}},
	"10-31": {{Name: "Halloween", Description: "The scariest bugs come out today"}},
	"12-25": {{Name: "Christmas Day", Description: "Time for some holiday coding magic"}},
}

var builtinDefaults = []model.Holiday{
	{Name: "International Debugging Day", Description: "Every day is debugging day for engineers!"},
	{Name: "Productive Coding Day", Description: "A perfect day to ship some features"},
	{Name: "Coffee Appreciation Day", Description: "Fuel for developers worldwide"},
}

// Table maps "month-day" keys to candidate holidays and falls back to a fixed
// list of engineering-themed defaults for unlisted days.
type Table struct {
	days     map[string][]model.Holiday
	defaults []model.Holiday
}

// NewTable returns the built-in table.
func NewTable() *Table {
	t := &Table{days: make(map[string][]model.Holiday, len(builtinDays))}
	for k, v := range builtinDays {
		t.days[k] = v
	}
	t.defaults = builtinDefaults
	return t
}

// Merge adds or replaces day entries. Empty lists and nameless holidays are ignored.
func (t *Table) Merge(days map[string][]model.Holiday) {
	for k, list := range days {
		var valid []model.Holiday
		for _, h := range list {
			if h.Name != "" {
				valid = append(valid, h)
			}
		}
		if len(valid) > 0 {
			t.days[k] = valid
		}
	}
}

// Lookup returns the candidates for day's month-day key, or the defaults.
// The result is never empty and is safe for the caller to modify.
func (t *Table) Lookup(day time.Time) []model.Holiday {
	return t.LookupKey(clock.MonthDayKey(day))
}

// LookupKey is Lookup for a precomputed "month-day" key.
func (t *Table) LookupKey(key string) []model.Holiday {
	if list, ok := t.days[key]; ok {
		return append([]model.Holiday(nil), list...)
	}
	return append([]model.Holiday(nil), t.defaults...)
}
