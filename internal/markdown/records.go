package markdown

import (
	"strings"

	"github.com/jonathan/job-sync/internal/age"
	"github.com/jonathan/job-sync/internal/types"
)

// Cell positions in the source table. The layout is fixed by position, not
// by header names; the source emits the same shape consistently.
const (
	cellCompany = iota
	cellTitle
	cellLocation
	cellApply
	cellAge
	cellCount
)

// continuationMarker flags a row that belongs to the previous row's
// employer ("↳" in the company cell).
const continuationMarker = "↳"

// gradCapMarker tags PhD-track listings in the source; those rows are out
// of scope for this sync.
const gradCapMarker = "🎓"

// DefaultSectionMarkers are the role sections of the upstream README that
// feed the sync.
var DefaultSectionMarkers = []string{
	"## 💻 Software Engineering New Grad Roles",
	"## 📱 Product Management New Grad Roles",
	"## 🤖 Data Science, AI & Machine Learning New Grad Roles",
}

// Records builds job records from tokenized rows, also reporting how many
// rows were skipped. Rows with missing cells, no apply link, or PhD-track
// titles are skipped; a company or title cell left empty (or marked "↳")
// inherits the value from the previous row.
func Records(rows []Row) ([]types.JobRecord, int) {
	var out []types.JobRecord
	var lastCompany, lastTitle string
	skipped := 0

	for _, row := range rows {
		if len(row) < cellCount {
			skipped++
			continue
		}

		company := strings.TrimSpace(strings.ReplaceAll(row[cellCompany].Text, continuationMarker, ""))
		if company == "" {
			company = lastCompany
		}
		title := strings.TrimSpace(row[cellTitle].Text)
		if title == "" {
			title = lastTitle
		}
		if company == "" || title == "" {
			skipped++
			continue
		}
		lastCompany, lastTitle = company, title

		if isPhDTitle(title) {
			skipped++
			continue
		}

		link := row[cellApply].Link
		if link == "" {
			// Nothing to key on; the record cannot be tracked.
			skipped++
			continue
		}

		rawAge := row[cellAge].Text
		out = append(out, types.JobRecord{
			Company:    company,
			Title:      title,
			Location:   strings.ReplaceAll(row[cellLocation].Text, "|", ","),
			SourceLink: link,
			RawAge:     rawAge,
			AgeDays:    age.Parse(rawAge),
		})
	}

	return out, skipped
}

// Parse is the full parsing pass: slice the configured sections, tokenize
// their active tables, and build records plus the skipped-row count. An
// empty marker list parses the whole document.
func Parse(md string, sectionMarkers []string) ([]types.JobRecord, int, error) {
	rows, err := TokenizeTables(SliceSections(md, sectionMarkers))
	if err != nil {
		return nil, 0, err
	}
	records, skipped := Records(rows)
	return records, skipped, nil
}

func isPhDTitle(title string) bool {
	if strings.Contains(title, gradCapMarker) {
		return true
	}
	lower := strings.ToLower(title)
	for i := strings.Index(lower, "phd"); i != -1; {
		before := i == 0 || !isWordByte(lower[i-1])
		after := i+3 >= len(lower) || !isWordByte(lower[i+3])
		if before && after {
			return true
		}
		next := strings.Index(lower[i+3:], "phd")
		if next == -1 {
			break
		}
		i += 3 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
