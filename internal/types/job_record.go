// Package types defines the core data structures shared between the parser,
// the reconciler, and the store collaborators.
package types

import "strings"

// JobRecord represents one posting parsed from the source table. It is
// transient: records are never persisted directly, only translated into
// create or update operations by the reconciler.
type JobRecord struct {
	Company    string `json:"company"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	SourceLink string `json:"source_link"`
	RawAge     string `json:"raw_age"`
	AgeDays    Age    `json:"age_days"`
}

// Key returns the deduplication key for the record: the source link with
// surrounding whitespace trimmed. Matching is exact string equality — query
// strings and protocol differences produce distinct keys.
func (r JobRecord) Key() string {
	return strings.TrimSpace(r.SourceLink)
}

// PersistedEntry is a record already present in the store, carrying the
// store-assigned page ID and the last-known age.
type PersistedEntry struct {
	PageID     string `json:"page_id"`
	SourceLink string `json:"source_link"`
	AgeDays    Age    `json:"age_days"`
}

// Key returns the deduplication key for the entry.
func (e PersistedEntry) Key() string {
	return strings.TrimSpace(e.SourceLink)
}
