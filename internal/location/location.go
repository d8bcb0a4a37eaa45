// Package location classifies free-text location cells against the target
// metro area.
package location

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultPatterns is the built-in NYC metro set: the full city name, the
// bare state abbreviation, and the named boroughs. Each phrase is matched as
// whole tokens, so "Sunnyvale" never hits "ny" and "Queensland" never hits
// "Queens".
var defaultPatterns = []string{
	"NYC",
	"NY",
	"New York",
	"Manhattan",
	"Brooklyn",
	"Queens",
	"Bronx",
	"Staten Island",
}

// delimiters split multi-location cells ("SF / NYC / Remote").
var delimiters = regexp.MustCompile(`[/,|;]`)

// Matcher holds the compiled in-scope patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher returns a matcher for the built-in NYC metro patterns.
func NewMatcher() *Matcher {
	m, err := NewMatcherFromPatterns(defaultPatterns)
	if err != nil {
		// The built-in set is static; a compile failure is a programming error.
		panic(err)
	}
	return m
}

// NewMatcherFromPatterns compiles a matcher from literal phrases. Each
// phrase matches case-insensitively at token boundaries.
func NewMatcherFromPatterns(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile location pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	if len(m.patterns) == 0 {
		return nil, fmt.Errorf("no location patterns configured")
	}
	return m, nil
}

// patternsFile is the YAML shape of a pattern override file.
type patternsFile struct {
	Patterns []string `yaml:"patterns"`
}

// LoadMatcher builds a matcher from a YAML override file containing a
// `patterns` list. An empty path returns the built-in NYC matcher.
func LoadMatcher(path string) (*Matcher, error) {
	if path == "" {
		return NewMatcher(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location patterns file: %w", err)
	}
	var pf patternsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse location patterns file %s: %w", path, err)
	}
	return NewMatcherFromPatterns(pf.Patterns)
}

// InScope reports whether any location listed in the cell matches the
// configured metro patterns. Cells may list several locations separated by
// "/", ",", "|" or ";"; one match is enough.
func (m *Matcher) InScope(cell string) bool {
	if strings.TrimSpace(cell) == "" {
		return false
	}
	for _, segment := range delimiters.Split(cell, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		for _, re := range m.patterns {
			if re.MatchString(segment) {
				return true
			}
		}
	}
	return false
}
