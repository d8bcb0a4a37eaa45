package types

// OpFailure records one store operation that failed during the apply phase.
// Failures are collected, not raised; the batch continues past them.
type OpFailure struct {
	Op         string `json:"op"` // "create" or "update"
	SourceLink string `json:"source_link"`
	Err        string `json:"error"`
}

// RunSummary is the outcome of one sync run. A run always produces a
// summary, even when individual operations failed.
type RunSummary struct {
	RunID           string      `json:"run_id"`
	RowsParsed      int         `json:"rows_parsed"`
	SkippedRows     int         `json:"skipped_rows"`
	Created         int         `json:"created"`
	Updated         int         `json:"updated"`
	SkippedLocation int         `json:"skipped_location"`
	Failed          int         `json:"failed"`
	Notified        int         `json:"notified"`
	Failures        []OpFailure `json:"failures,omitempty"`
}
