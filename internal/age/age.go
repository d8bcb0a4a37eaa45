// Package age converts the source table's free-text age strings ("3d",
// "2 weeks", "1mo") into a canonical day count.
package age

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/job-sync/internal/types"
)

// unitFolds maps long-form unit spellings to their canonical abbreviation.
// Longer variants first so "months" doesn't fold into "mo" + "nths".
var unitFolds = []struct{ from, to string }{
	{"months", "mo"},
	{"month", "mo"},
	{"weeks", "w"},
	{"week", "w"},
	{"days", "d"},
	{"day", "d"},
	{"hours", "h"},
	{"hour", "h"},
	{"hrs", "h"},
	{"hr", "h"},
}

var (
	nonAlnum = regexp.MustCompile(`[^0-9A-Za-z]`)
	agePat   = regexp.MustCompile(`^(\d+)(mo|w|d|h)$`)
)

// Parse normalizes a raw age string to days. Weeks count as 7 days and
// months as a fixed 30 — an approximation, not calendar arithmetic. Hours
// round down to zero days. Anything unrecognized yields the unknown
// sentinel, never zero.
func Parse(raw string) types.Age {
	s := strings.ToLower(strings.TrimSpace(raw))
	// Drop emoji and separators so "2 mo" and "~2mo🔥" both parse.
	s = nonAlnum.ReplaceAllString(s, "")
	for _, f := range unitFolds {
		s = strings.ReplaceAll(s, f.from, f.to)
	}

	m := agePat.FindStringSubmatch(s)
	if m == nil {
		return types.UnknownAge()
	}

	qty, err := strconv.Atoi(m[1])
	if err != nil {
		return types.UnknownAge()
	}

	switch m[2] {
	case "h":
		return types.KnownAge(0)
	case "d":
		return types.KnownAge(qty)
	case "w":
		return types.KnownAge(qty * 7)
	case "mo":
		return types.KnownAge(qty * 30)
	}
	return types.UnknownAge()
}
