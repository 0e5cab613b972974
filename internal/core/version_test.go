package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------- Comparison tests ----------

func TestVersionCacheComparePEP440(t *testing.T) {
	cache := newVersionCache()
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.0", "1.0", 0},
		{"1.9", "1.10", -1},
		{"1.0a1", "1.0", -1},
		{"1.0.post1", "1.0", 1},
		{"1.0", "1.0.0", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, cache.compare(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestVersionCacheCompareFallsBackToNaturalOrder(t *testing.T) {
	cache := newVersionCache()
	assert.Equal(t, -1, cache.compare("apples", "bananas"))
	assert.Equal(t, -1, cache.compare("v9", "v10"))
	assert.Equal(t, 0, cache.compare("apples", "apples"))
}

func TestNaturalCompareDigitRuns(t *testing.T) {
	assert.Equal(t, -1, naturalCompare("1.2", "1.10"))
	assert.Equal(t, 1, naturalCompare("1.2.1", "1.2"))
}

// ---------- Filter tests ----------

func TestNoDevVersions(t *testing.T) {
	filtered := NoDevVersions([]string{"1.0", "1.1-dev", "2.0"})
	assert.Equal(t, []string{"1.0", "2.0"}, filtered)
}

func TestNoPreVersions(t *testing.T) {
	filtered := NoPreVersions([]string{"1.0", "1.1a1", "1.1b2", "1.1rc1", "1.2.dev3", "2.0"})
	assert.Equal(t, []string{"1.0", "2.0"}, filtered)
}

func TestNoPreVersionsKeepsUnparseableTokens(t *testing.T) {
	filtered := NoPreVersions([]string{"not-a-version", "1.0"})
	assert.Equal(t, []string{"not-a-version", "1.0"}, filtered)
}
