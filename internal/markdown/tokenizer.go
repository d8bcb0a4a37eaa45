// Package markdown extracts candidate job records from the source document.
// The listing embeds HTML tables inside markdown; extraction happens in two
// layers so each is testable on its own: a tokenizer that turns raw text
// into rows of cells, and a record builder that applies the table's
// positional layout.
package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ParseError means the input could not be tokenized at all. Individual
// malformed rows are skipped, never fatal; this error is reserved for
// non-textual input.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Cell is one table cell: its visible text plus the first link target, if
// any.
type Cell struct {
	Text string
	Link string
}

// Row is the ordered cell list of one table row.
type Row []Cell

// cellDelimiter replaces <br> line breaks inside cells, so multi-line cells
// stay splittable downstream.
const cellDelimiter = " | "

// SliceSections cuts the document down to the given `## ` section markers,
// each section running until the next `## ` heading. Absent markers are
// skipped silently.
func SliceSections(md string, markers []string) string {
	if len(markers) == 0 {
		return md
	}
	var out []string
	for _, marker := range markers {
		start := strings.Index(md, marker)
		if start == -1 {
			continue
		}
		rest := md[start:]
		if next := strings.Index(rest[3:], "\n## "); next != -1 {
			rest = rest[:next+3]
		}
		out = append(out, rest)
	}
	return strings.Join(out, "\n\n")
}

// TokenizeTables returns the cell rows of every active table in the text.
// Tables nested under <details> hold archived listings and are excluded.
func TokenizeTables(text string) ([]Row, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Message: "input is not valid UTF-8 text"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, &ParseError{Message: "failed to tokenize document", Cause: err}
	}

	// Fold <br> into a text delimiter before reading cell text.
	doc.Find("td br").ReplaceWithHtml(cellDelimiter)

	var rows []Row
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if table.ParentsFiltered("details").Length() > 0 {
			return
		}
		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			var row Row
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				row = append(row, Cell{
					Text: cleanText(td.Text()),
					Link: firstHref(td),
				})
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})
	})

	return rows, nil
}

// cleanText collapses all whitespace runs (including non-breaking spaces)
// to single spaces.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// firstHref returns the first anchor target inside the cell, if any.
func firstHref(td *goquery.Selection) string {
	href, _ := td.Find("a[href]").First().Attr("href")
	return strings.TrimSpace(href)
}
