package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-sync/internal/types"
)

func row(company, title, loc, link, age string) Row {
	return Row{
		{Text: company},
		{Text: title},
		{Text: loc},
		{Text: "Apply", Link: link},
		{Text: age},
	}
}

func TestRecords(t *testing.T) {
	rows := []Row{
		row("Acme", "SWE I", "NYC", "https://a.example/1", "3d"),
		row("Beta", "Backend Eng", "Austin, TX", "https://a.example/2", "2w"),
	}

	got, skipped := Records(rows)
	require.Len(t, got, 2)
	assert.Zero(t, skipped)

	assert.Equal(t, types.JobRecord{
		Company:    "Acme",
		Title:      "SWE I",
		Location:   "NYC",
		SourceLink: "https://a.example/1",
		RawAge:     "3d",
		AgeDays:    types.KnownAge(3),
	}, got[0])
	assert.Equal(t, types.KnownAge(14), got[1].AgeDays)
}

func TestRecordsCarryForward(t *testing.T) {
	rows := []Row{
		row("Acme", "SWE I", "NYC", "https://a.example/1", "3d"),
		row("↳", "SWE II", "Brooklyn", "https://a.example/2", "3d"),
		row("", "", "Queens", "https://a.example/3", "1w"),
	}

	got, skipped := Records(rows)
	require.Len(t, got, 3)
	assert.Zero(t, skipped)
	assert.Equal(t, "Acme", got[1].Company, "continuation marker inherits company")
	assert.Equal(t, "Acme", got[2].Company, "empty company cell inherits company")
	assert.Equal(t, "SWE II", got[2].Title, "empty title cell inherits last title")
}

func TestRecordsSkipsMalformedRows(t *testing.T) {
	rows := []Row{
		row("", "Orphan continuation", "NYC", "https://a.example/4", "3d"),
		{{Text: "Acme"}, {Text: "too few cells"}},
		row("Beta", "No Link Role", "NYC", "", "3d"),
		row("Good", "Kept Role", "NYC", "https://a.example/5", "3d"),
	}

	got, skipped := Records(rows)
	require.Len(t, got, 1, "malformed rows are skipped, not fatal")
	assert.Equal(t, 3, skipped)
	assert.Equal(t, "Kept Role", got[0].Title)
}

func TestRecordsSkipsPhDTrackTitles(t *testing.T) {
	rows := []Row{
		row("Lab", "Research Scientist, PhD", "NYC", "https://a.example/1", "3d"),
		row("Lab", "ML Engineer 🎓", "NYC", "https://a.example/2", "3d"),
		row("Lab", "Upholstery Designer", "NYC", "https://a.example/3", "3d"),
	}

	got, skipped := Records(rows)
	require.Len(t, got, 1, "PhD-track rows excluded; substring collisions kept")
	assert.Equal(t, 2, skipped)
	assert.Equal(t, "Upholstery Designer", got[0].Title)
}

func TestRecordsUnknownAge(t *testing.T) {
	got, skipped := Records([]Row{row("Acme", "SWE", "NYC", "https://a.example/1", "soon™")})
	require.Len(t, got, 1)
	assert.Zero(t, skipped)
	assert.False(t, got[0].AgeDays.Known)
	assert.Equal(t, "soon™", got[0].RawAge)
}

func TestParseEndToEnd(t *testing.T) {
	got, skipped, err := Parse(sectionedDoc, DefaultSectionMarkers)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Zero(t, skipped)
	assert.Equal(t, "Acme", got[0].Company)
	assert.Equal(t, "DataCo", got[1].Company)
}
