package investment

import (
	"github.com/shopspring/decimal"
)

// Latest returns the entry with the greatest RegisteredAt. Entries registered
// at the same instant are ordered by ID, so the last inserted one wins.
// It returns nil for an empty timeline.
func Latest(entries []TimelineEntry) *TimelineEntry {
	var latest *TimelineEntry
	for i := range entries {
		e := &entries[i]
		if latest == nil ||
			e.RegisteredAt.After(latest.RegisteredAt) ||
			(e.RegisteredAt.Equal(latest.RegisteredAt) && e.ID > latest.ID) {
			latest = e
		}
	}
	return latest
}

// CurrentValue is the value of the latest entry, or initial when the timeline is empty.
func CurrentValue(initial decimal.Decimal, entries []TimelineEntry) decimal.Decimal {
	if latest := Latest(entries); latest != nil {
		return latest.Value
	}
	return initial
}
