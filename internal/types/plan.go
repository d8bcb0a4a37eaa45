package types

// CreateOp requests creation of a new store entry for a record whose source
// link has no persisted counterpart.
type CreateOp struct {
	Record JobRecord `json:"record"`
}

// UpdateOp requests refreshing the stored age of an existing entry.
type UpdateOp struct {
	PageID     string `json:"page_id"`
	SourceLink string `json:"source_link"`
	AgeDays    Age    `json:"age_days"`
}

// Plan is the reconciler's output: the operations needed to bring the store
// in line with the current parse pass. Both lists preserve the order of
// first appearance in the parsed sequence.
type Plan struct {
	Creates []CreateOp `json:"creates"`
	Updates []UpdateOp `json:"updates"`
}

// Empty reports whether the plan contains no work.
func (p Plan) Empty() bool {
	return len(p.Creates) == 0 && len(p.Updates) == 0
}
