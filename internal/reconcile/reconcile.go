// Package reconcile diffs freshly parsed records against the store snapshot
// and decides what to create and what to update. It is pure: no I/O, no
// side effects, so the create-or-update policy is testable without a live
// store.
package reconcile

import (
	"github.com/jonathan/job-sync/internal/types"
)

// Plan computes the operations needed to bring the store in line with the
// current parse pass.
//
// Records match persisted entries by exact equality of the trimmed source
// link; no URL normalization is applied, so trailing query parameters or
// protocol differences create distinct keys. The first record per link wins
// within a pass; later duplicates are ignored. A matched entry gets an
// update only when the new age is known and differs from the stored age —
// an unknown age never overwrites a known one. With agesOnly set, no
// creates are produced regardless of input.
func Plan(records []types.JobRecord, snapshot []types.PersistedEntry, agesOnly bool) types.Plan {
	byLink := make(map[string]types.PersistedEntry, len(snapshot))
	for _, e := range snapshot {
		if key := e.Key(); key != "" {
			// First entry wins if the store somehow holds duplicates.
			if _, ok := byLink[key]; !ok {
				byLink[key] = e
			}
		}
	}

	var plan types.Plan
	seen := make(map[string]bool, len(records))

	for _, r := range records {
		key := r.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		entry, exists := byLink[key]
		if !exists {
			if !agesOnly {
				plan.Creates = append(plan.Creates, types.CreateOp{Record: r})
			}
			continue
		}

		if r.AgeDays.Known && !r.AgeDays.Equal(entry.AgeDays) {
			plan.Updates = append(plan.Updates, types.UpdateOp{
				PageID:     entry.PageID,
				SourceLink: key,
				AgeDays:    r.AgeDays,
			})
		}
	}

	return plan
}
