package sorting

import (
	"strings"
	"time"
)

// dateLayouts is the accepted-format cascade, tried in order. The two slashed
// layouts are ambiguous for low day numbers; day-first wins because it comes
// first, so 03/04/2024 reads as 3 April.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02/01/2006",
	"01/02/2006",
}

// ParseDate parses a metadata date string against the accepted layouts.
// Returns false for empty or unparseable input; callers treat those
// documents as undated rather than erroring.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
