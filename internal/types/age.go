package types

import "fmt"

// Age is a normalized posting age in days. The zero value is the unknown
// sentinel: a distinguished marker rather than zero days, so unparseable
// ages never look fresher than real ones and never overwrite a known value.
type Age struct {
	Days  int  `json:"days"`
	Known bool `json:"known"`
}

// KnownAge constructs a known age of n days.
func KnownAge(n int) Age {
	return Age{Days: n, Known: true}
}

// UnknownAge returns the unknown sentinel.
func UnknownAge() Age {
	return Age{}
}

// Equal reports whether two ages are the same value. Two unknown ages are
// equal; an unknown age never equals a known one.
func (a Age) Equal(b Age) bool {
	if a.Known != b.Known {
		return false
	}
	return !a.Known || a.Days == b.Days
}

// String renders the age in the store's canonical "<n>d" form, or "?" when
// unknown.
func (a Age) String() string {
	if !a.Known {
		return "?"
	}
	return fmt.Sprintf("%dd", a.Days)
}
