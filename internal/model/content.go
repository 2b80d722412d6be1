package model

import "fmt"

// CacheKey is the fixed key under which the daily card is persisted.
const CacheKey = "daily-holiday-content"

// DailyContent is the resolved card for one calendar day.
// A new value is built on every run; stored values are never patched.
type DailyContent struct {
	// Date is the calendar-day key the card was computed for. Compare by equality only.
	Date    string        `json:"date"`
	Holiday Holiday       `json:"holiday"`
	Media   MediaArtifact `json:"media"`
	RunID   string        `json:"run_id,omitempty"`
}

// NewDailyContent assembles a card for the given day.
func NewDailyContent(date string, h Holiday, media MediaArtifact, runID string) DailyContent {
	return DailyContent{Date: date, Holiday: h, Media: media, RunID: runID}
}

// IsFor reports whether c was computed for the day identified by date.
func (c *DailyContent) IsFor(date string) bool {
	return c != nil && c.Date == date
}

// ShareTitle is the title used by share sheets.
func ShareTitle(c DailyContent) string {
	return "Today's Holiday: " + c.Holiday.Name
}

// ShareableText renders the clipboard/share-sheet text for a card.
func ShareableText(c DailyContent) string {
	return fmt.Sprintf("🎉 Today's Holiday: %s\n\n%s\n\n#HolidayFun #Engineering", c.Holiday.Name, c.Media.String())
}
