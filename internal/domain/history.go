package domain

import "time"

// LookupOutcome records whether a lookup was served from the cache.
type LookupOutcome string

const (
	LookupHit     LookupOutcome = "hit"
	LookupMiss    LookupOutcome = "miss"
	LookupUnknown LookupOutcome = "unknown"
)

// LookupEvent is appended to history once per forecast lookup that reaches
// the cache decision.
type LookupEvent struct {
	Timestamp time.Time
	City      string
	Outcome   LookupOutcome
}

// HistoryEntry is a reconstructed lookup, ready for display.
type HistoryEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	City      string        `json:"city"`
	Outcome   LookupOutcome `json:"outcome"`
}

// HistoryQuery narrows a history listing.
type HistoryQuery struct {
	// Limit caps the number of entries; zero means all.
	Limit int
	// Strict aborts on the first malformed record instead of skipping it.
	Strict bool
}

// HistoryListing is the most-recent-first result of a history read.
type HistoryListing struct {
	Entries []HistoryEntry
	Skipped int
}
