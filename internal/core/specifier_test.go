package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypack/internal/types"
)

// ---------- Clause parsing tests ----------

func TestParseSpecifierClause(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.SpecifierClause
	}{
		{
			name:     "greater equal",
			input:    ">=1.2.3",
			expected: types.SpecifierClause{Op: types.SpecifierOpGte, Version: "1.2.3"},
		},
		{
			name:     "arbitrary equality",
			input:    "===1.0",
			expected: types.SpecifierClause{Op: types.SpecifierOpArbitrary, Version: "1.0"},
		},
		{
			name:     "compatible release",
			input:    "~=2.1",
			expected: types.SpecifierClause{Op: types.SpecifierOpCompat, Version: "2.1"},
		},
		{
			name:     "whitespace between operator and version",
			input:    ">= 1.2.3",
			expected: types.SpecifierClause{Op: types.SpecifierOpGte, Version: "1.2.3"},
		},
		{
			name:     "wildcard equality",
			input:    "==1.2.*",
			expected: types.SpecifierClause{Op: types.SpecifierOpEq, Version: "1.2.*"},
		},
		{
			name:     "non pep440 token accepted",
			input:    ">=apples",
			expected: types.SpecifierClause{Op: types.SpecifierOpGte, Version: "apples"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, err := ParseSpecifierClause(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, clause)
		})
	}
}

func TestParseSpecifierClauseInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "1.2.3", "=>1.2", ">=", ">=1.2 beta", ">=1.2;"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSpecifierClause(input)
			assert.Error(t, err)
		})
	}
}

// ---------- Set parsing tests ----------

func TestParseSpecifierSet(t *testing.T) {
	set, err := ParseSpecifierSet(">=1.2, <2.0, !=1.5")
	require.NoError(t, err)
	assert.Equal(t, types.SpecifierSet{
		{Op: types.SpecifierOpGte, Version: "1.2"},
		{Op: types.SpecifierOpLt, Version: "2.0"},
		{Op: types.SpecifierOpNe, Version: "1.5"},
	}, set)
}

func TestParseSpecifierSetParenthesized(t *testing.T) {
	set, err := ParseSpecifierSet("(>=1.2,<2.0)")
	require.NoError(t, err)
	assert.Len(t, set, 2)
}

func TestParseSpecifierSetEmpty(t *testing.T) {
	set, err := ParseSpecifierSet("")
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestParseSpecifierSetInvalidClause(t *testing.T) {
	_, err := ParseSpecifierSet(">=1.2,banana")
	assert.Error(t, err)
}

// ---------- Printed form tests ----------

func TestSpecifierSetStringSorted(t *testing.T) {
	set := types.SpecifierSet{
		{Op: types.SpecifierOpGt, Version: "2.5"},
		{Op: types.SpecifierOpEq, Version: "3.2.1"},
	}
	assert.Equal(t, "==3.2.1,>2.5", set.String())
}
