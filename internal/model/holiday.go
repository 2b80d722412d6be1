package model

// Holiday is one candidate observance for a calendar day.
// Values are treated as immutable; WithReason returns a copy.
type Holiday struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// WithReason returns a copy of h carrying the ranker's explanation.
func (h Holiday) WithReason(reason string) Holiday {
	h.Reason = reason
	return h
}

// DescriptionOr returns the description, or fallback when it is empty.
func (h Holiday) DescriptionOr(fallback string) string {
	if h.Description == "" {
		return fallback
	}
	return h.Description
}
