// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-sync/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxFailuresToShow caps the failure lines in a summary box
	maxFailuresToShow = 5
)

// Printer handles formatted output for run results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSummary outputs a human-readable summary of a sync run.
func (p *Printer) PrintRunSummary(summary *types.RunSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Rows parsed:      %d\n", summary.RowsParsed))
	sb.WriteString(fmt.Sprintf("Skipped (rows):   %d\n", summary.SkippedRows))
	sb.WriteString(fmt.Sprintf("Created:          %d\n", summary.Created))
	sb.WriteString(fmt.Sprintf("Updated:          %d\n", summary.Updated))
	sb.WriteString(fmt.Sprintf("Skipped (loc):    %d\n", summary.SkippedLocation))
	sb.WriteString(fmt.Sprintf("Failed:           %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("Notified:         %d", summary.Notified))

	if len(summary.Failures) > 0 {
		sb.WriteString("\n\nFailures:\n")
		count := min(len(summary.Failures), maxFailuresToShow)
		for i := 0; i < count; i++ {
			f := summary.Failures[i]
			sb.WriteString(fmt.Sprintf("  • %s %s: %s\n", f.Op, f.SourceLink, f.Err))
		}
		if len(summary.Failures) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.Failures)-count))
		}
	}

	p.printBox(fmt.Sprintf("Sync run %s", shortID(summary.RunID)), sb.String())
}

// shortID trims a uuid down to its first group for display.
func shortID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i]
	}
	return id
}
