package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionedDoc = `# Listings

Intro text.

## 💻 Software Engineering New Grad Roles

<table>
<tbody>
<tr><td>Acme</td><td>SWE I</td><td>NYC</td><td><a href="https://jobs.acme.example/1">Apply</a></td><td>3d</td></tr>
</tbody>
</table>

## Ignored Section

<table>
<tbody>
<tr><td>Other</td><td>Role</td><td>LA</td><td><a href="https://x.example/2">Apply</a></td><td>1d</td></tr>
</tbody>
</table>

## 🤖 Data Science, AI & Machine Learning New Grad Roles

<table>
<tbody>
<tr><td>DataCo</td><td>DS</td><td>Remote</td><td><a href="https://x.example/3">Apply</a></td><td>2w</td></tr>
</tbody>
</table>
`

func TestSliceSections(t *testing.T) {
	out := SliceSections(sectionedDoc, DefaultSectionMarkers)

	assert.Contains(t, out, "jobs.acme.example/1")
	assert.Contains(t, out, "x.example/3")
	assert.NotContains(t, out, "x.example/2", "unlisted sections must be cut")
	assert.NotContains(t, out, "Intro text")
}

func TestSliceSectionsMissingMarker(t *testing.T) {
	out := SliceSections("## Something Else\n\nbody\n", DefaultSectionMarkers)
	assert.Empty(t, out, "absent markers are skipped silently")
}

func TestSliceSectionsNoMarkersKeepsDocument(t *testing.T) {
	assert.Equal(t, sectionedDoc, SliceSections(sectionedDoc, nil))
}

func TestTokenizeTables(t *testing.T) {
	rows, err := TokenizeTables(`
<table>
<thead><tr><th>Company</th><th>Role</th></tr></thead>
<tbody>
<tr><td>Acme</td><td>SWE&nbsp;I</td><td>NYC<br>Austin, TX</td><td><a href="https://a.example/1">Apply</a></td><td>3d</td></tr>
<tr><td></td><td colspan="4">short row</td></tr>
</tbody>
</table>`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	full := rows[0]
	require.Len(t, full, 5)
	assert.Equal(t, "Acme", full[0].Text)
	assert.Equal(t, "SWE I", full[1].Text, "non-breaking space normalized")
	assert.Equal(t, "NYC | Austin, TX", full[2].Text, "<br> becomes a delimiter")
	assert.Equal(t, "https://a.example/1", full[3].Link)
	assert.Equal(t, "3d", full[4].Text)

	assert.Len(t, rows[1], 2, "short rows still tokenize; the record builder skips them")
}

func TestTokenizeTablesSkipsDetails(t *testing.T) {
	rows, err := TokenizeTables(`
<details>
<summary>Inactive listings</summary>
<table><tbody>
<tr><td>Old Co</td><td>Old Role</td><td>NYC</td><td><a href="https://a.example/old">Apply</a></td><td>9mo</td></tr>
</tbody></table>
</details>
<table><tbody>
<tr><td>Live Co</td><td>Role</td><td>NYC</td><td><a href="https://a.example/live">Apply</a></td><td>1d</td></tr>
</tbody></table>`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Live Co", rows[0][0].Text)
}

func TestTokenizeTablesNonText(t *testing.T) {
	_, err := TokenizeTables("\xff\xfe binary junk")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestTokenizeTablesNoTables(t *testing.T) {
	rows, err := TokenizeTables("just some markdown prose, no tables")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
