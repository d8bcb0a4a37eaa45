package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-sync/internal/types"
)

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(&types.RunSummary{
		RunID:           "3b2f1a00-0000-0000-0000-000000000000",
		RowsParsed:      12,
		SkippedRows:     4,
		Created:         2,
		Updated:         3,
		SkippedLocation: 6,
		Failed:          1,
		Notified:        2,
		Failures: []types.OpFailure{
			{Op: "create", SourceLink: "https://a.example/x", Err: "boom"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Sync run 3b2f1a00")
	assert.Contains(t, out, "Skipped (rows):   4")
	assert.Contains(t, out, "Created:          2")
	assert.Contains(t, out, "Updated:          3")
	assert.Contains(t, out, "Failed:           1")
	assert.Contains(t, out, "create https://a.example/x")
}

func TestPrintRunSummaryNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRunSummary(nil)
	assert.Empty(t, buf.String())
}
