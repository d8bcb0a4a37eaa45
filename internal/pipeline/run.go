// Package pipeline drives one sync run: fetch, parse, filter, reconcile,
// apply, notify.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/job-sync/internal/location"
	"github.com/jonathan/job-sync/internal/markdown"
	"github.com/jonathan/job-sync/internal/reconcile"
	"github.com/jonathan/job-sync/internal/types"
)

// Fetcher retrieves the raw source markdown.
type Fetcher interface {
	FetchSource(ctx context.Context) (string, error)
}

// Store is the persistence collaborator. It has no uniqueness constraint;
// the reconciler is the only thing standing between a rerun and duplicate
// entries.
type Store interface {
	ListEntries(ctx context.Context) ([]types.PersistedEntry, error)
	CreateEntry(ctx context.Context, record types.JobRecord) (string, error)
	UpdateAge(ctx context.Context, pageID string, ageDays types.Age) error
}

// Notifier delivers a best-effort notification per created entry.
type Notifier interface {
	Notify(ctx context.Context, record types.JobRecord) error
}

// Options holds the collaborators and settings for one run.
type Options struct {
	Fetcher Fetcher
	Store   Store
	// Notifier may be nil; notification is then disabled.
	Notifier Notifier
	// Matcher classifies locations; nil means the built-in NYC set.
	Matcher *location.Matcher
	// SectionMarkers selects the document sections to parse; nil means the
	// default role sections.
	SectionMarkers []string
	// AgesOnly refreshes existing ages without ever creating entries.
	AgesOnly bool
	// Verbose enables per-row trace logging.
	Verbose bool
}

// Run executes one sync. It returns an error only for the fatal classes —
// fetch, parse, snapshot listing; individual store failures are collected
// into the summary and the batch continues. A summary is produced whenever
// the run gets past reconciliation, even with failures in it.
func Run(ctx context.Context, opts Options) (*types.RunSummary, error) {
	runID := uuid.New().String()
	matcher := opts.Matcher
	if matcher == nil {
		matcher = location.NewMatcher()
	}
	markers := opts.SectionMarkers
	if markers == nil {
		markers = markdown.DefaultSectionMarkers
	}

	log.Printf("[run %s] fetching source", runID)
	raw, err := opts.Fetcher.FetchSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch phase: %w", err)
	}

	records, skippedRows, err := markdown.Parse(raw, markers)
	if err != nil {
		return nil, fmt.Errorf("parse phase: %w", err)
	}
	log.Printf("[run %s] parsed %d rows, skipped %d", runID, len(records), skippedRows)

	var inScope []types.JobRecord
	skippedLocation := 0
	for _, r := range records {
		if !matcher.InScope(r.Location) {
			skippedLocation++
			if opts.Verbose {
				log.Printf("[run %s] skipped (location) title=%q loc=%q", runID, r.Title, r.Location)
			}
			continue
		}
		inScope = append(inScope, r)
	}

	snapshot, err := opts.Store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot phase: %w", err)
	}
	log.Printf("[run %s] snapshot holds %d entries", runID, len(snapshot))

	plan := reconcile.Plan(inScope, snapshot, opts.AgesOnly)

	summary := applyPlan(ctx, runID, opts, plan)
	summary.RunID = runID
	summary.RowsParsed = len(records)
	summary.SkippedRows = skippedRows
	summary.SkippedLocation = skippedLocation
	return summary, nil
}

// applyPlan is a result-collecting fold over the plan: every operation is
// attempted, failures are recorded, and nothing aborts the batch.
func applyPlan(ctx context.Context, runID string, opts Options, plan types.Plan) *types.RunSummary {
	summary := &types.RunSummary{}

	for _, op := range plan.Creates {
		pageID, err := opts.Store.CreateEntry(ctx, op.Record)
		if err != nil {
			log.Printf("[run %s] create failed link=%q: %v", runID, op.Record.SourceLink, err)
			summary.Failed++
			summary.Failures = append(summary.Failures, types.OpFailure{
				Op:         "create",
				SourceLink: op.Record.Key(),
				Err:        err.Error(),
			})
			continue
		}
		summary.Created++
		if opts.Verbose {
			log.Printf("[run %s] created page=%s link=%q", runID, pageID, op.Record.SourceLink)
		}

		if opts.Notifier != nil {
			if err := opts.Notifier.Notify(ctx, op.Record); err != nil {
				// Best effort: the created entry stands regardless.
				log.Printf("[run %s] notification failed link=%q: %v", runID, op.Record.SourceLink, err)
			} else {
				summary.Notified++
			}
		}
	}

	for _, op := range plan.Updates {
		if err := opts.Store.UpdateAge(ctx, op.PageID, op.AgeDays); err != nil {
			log.Printf("[run %s] update failed page=%s: %v", runID, op.PageID, err)
			summary.Failed++
			summary.Failures = append(summary.Failures, types.OpFailure{
				Op:         "update",
				SourceLink: op.SourceLink,
				Err:        err.Error(),
			})
			continue
		}
		summary.Updated++
		if opts.Verbose {
			log.Printf("[run %s] updated page=%s age=%s", runID, op.PageID, op.AgeDays)
		}
	}

	return summary
}
