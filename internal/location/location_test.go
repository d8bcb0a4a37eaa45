package location

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInScope(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name     string
		cell     string
		expected bool
	}{
		{"Plain NYC", "NYC", true},
		{"Lowercase nyc", "nyc", true},
		{"Full city name", "New York", true},
		{"City and state", "New York, NY", true},
		{"Borough Manhattan", "Manhattan", true},
		{"Borough Brooklyn", "Brooklyn, NY", true},
		{"Borough Queens", "Queens", true},
		{"Borough Bronx", "Bronx, NY", true},
		{"Two-word borough", "Staten Island", true},
		{"Bare state token", "NY", true},
		{"Multi-location any match", "SF / NYC / Seattle", true},
		{"Multi-location comma", "Austin, TX, New York, NY", true},
		{"Multi-location pipe", "Remote | Brooklyn", true},
		{"Out of scope city", "San Francisco, CA", false},
		{"Substring collision Sunnyvale", "Sunnyvale, CA", false},
		{"Substring collision Queensland", "Queensland, Australia", false},
		{"Bronxville is its own token", "Bronxville", false},
		{"Remote only", "Remote", false},
		{"Empty cell", "", false},
		{"Whitespace cell", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.InScope(tt.cell))
		})
	}
}

func TestNewMatcherFromPatterns(t *testing.T) {
	m, err := NewMatcherFromPatterns([]string{"Chicago", "IL"})
	require.NoError(t, err)

	assert.True(t, m.InScope("Chicago, IL"))
	assert.True(t, m.InScope("chicago"))
	assert.False(t, m.InScope("New York, NY"))

	_, err = NewMatcherFromPatterns(nil)
	assert.Error(t, err, "empty pattern set should be rejected")
}

func TestLoadMatcher(t *testing.T) {
	t.Run("empty path falls back to built-in set", func(t *testing.T) {
		m, err := LoadMatcher("")
		require.NoError(t, err)
		assert.True(t, m.InScope("Brooklyn"))
	})

	t.Run("override file replaces the pattern set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "patterns.yaml")
		require.NoError(t, os.WriteFile(path, []byte("patterns:\n  - Boston\n  - Cambridge\n"), 0o644))

		m, err := LoadMatcher(path)
		require.NoError(t, err)
		assert.True(t, m.InScope("Boston, MA"))
		assert.False(t, m.InScope("New York, NY"))
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadMatcher(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
