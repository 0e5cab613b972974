package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypack/internal/shared"
	"pypack/internal/types"
)

func reqs(t *testing.T, lines ...string) []types.Requirement {
	t.Helper()
	out := make([]types.Requirement, 0, len(lines))
	for _, line := range lines {
		req, err := ParseRequirement(line)
		require.NoError(t, err)
		out = append(out, req)
	}
	return out
}

func printed(requirements []types.Requirement) []string {
	out := make([]string, 0, len(requirements))
	for _, req := range requirements {
		out = append(out, req.String())
	}
	return out
}

// ---------- Grouping tests ----------

func TestCombineRequirementsMergesByName(t *testing.T) {
	combined := CombineRequirements(reqs(t,
		"foo",
		"foo>2",
		"foo>2.5",
		"foo==3.2.1",
		"foo==3.2.3",
		"foo==3.2.5",
	), nil)
	require.Len(t, combined, 1)
	assert.Equal(t, "foo==3.2.1,==3.2.3,==3.2.5,>2.5", combined[0].String())
}

func TestCombineRequirementsNormalizesNames(t *testing.T) {
	combined := CombineRequirements(reqs(t, "Foo_Bar>=1.0", "foo.bar<2.0"), nil)
	require.Len(t, combined, 1)
	assert.Equal(t, "foo-bar", combined[0].Name)
	assert.Equal(t, "<2.0,>=1.0", combined[0].Specifiers.String())
}

func TestCombineRequirementsMarkersKeptApart(t *testing.T) {
	combined := CombineRequirements(reqs(t,
		`importlib-metadata>=1.0; python_version < "3.8"`,
		`importlib-metadata>=4.0; python_version < "3.10"`,
	), nil)
	assert.Len(t, combined, 2)
}

func TestCombineRequirementsSameMarkerMerged(t *testing.T) {
	combined := CombineRequirements(reqs(t,
		`foo>=1.0; python_version < "3.8"`,
		`foo<2.0; python_version < "3.8"`,
	), nil)
	require.Len(t, combined, 1)
	assert.Equal(t, `foo<2.0,>=1.0; python_version < "3.8"`, combined[0].String())
}

func TestCombineRequirementsURLPassesThrough(t *testing.T) {
	combined := CombineRequirements(reqs(t,
		"foo @ https://example.com/foo.tar.gz",
		"foo>=1.0",
	), nil)
	require.Len(t, combined, 2)
	assert.Equal(t, "https://example.com/foo.tar.gz", combined[0].URL)
	assert.Equal(t, ">=1.0", combined[1].Specifiers.String())
}

func TestCombineRequirementsExtrasIntersected(t *testing.T) {
	combined := CombineRequirements(reqs(t, "foo[a,b]>=1.0", "foo[b,c]<2.0"), nil)
	require.Len(t, combined, 1)
	assert.Equal(t, []string{"b"}, combined[0].Extras)
}

// ---------- Alias tests ----------

func TestCombineRequirementsRuamelAlias(t *testing.T) {
	for _, alias := range []string{"ruamel-yaml", "ruamel_yaml", "Ruamel.YAML"} {
		combined := CombineRequirements(reqs(t, alias), nil)
		require.Len(t, combined, 1)
		assert.Equal(t, "ruamel.yaml", combined[0].Name, "alias %s", alias)
	}
}

func TestCombineRequirementsCustomNormalizeFunc(t *testing.T) {
	combined := CombineRequirements(reqs(t, "Zope.Interface>=5.0"), shared.NormalizeKeepDot)
	require.Len(t, combined, 1)
	assert.Equal(t, "zope.interface", combined[0].Name)
}

// ---------- Purity tests ----------

func TestCombineRequirementsIdempotent(t *testing.T) {
	input := reqs(t, "foo>=1.0", "foo<2.0", "bar", "foo @ https://example.com/foo.whl")
	once := CombineRequirements(input, nil)
	twice := CombineRequirements(once, nil)
	if diff := cmp.Diff(printed(once), printed(twice)); diff != "" {
		t.Fatalf("combine not idempotent (-once +twice):\n%s", diff)
	}
}

func TestCombineRequirementsDoesNotMutateInput(t *testing.T) {
	input := reqs(t, "Foo[a]>=1.0", "foo[a]<2.0")
	snapshot := make([]types.Requirement, len(input))
	for i, req := range input {
		snapshot[i] = req.Clone()
	}
	_ = CombineRequirements(input, nil)
	assert.Equal(t, snapshot, input)

	again := CombineRequirements(input, nil)
	require.Len(t, again, 1)
	assert.Equal(t, "foo[a]<2.0,>=1.0", again[0].String())
}

func TestCombineRequirementsInsertionOrder(t *testing.T) {
	combined := CombineRequirements(reqs(t, "zebra", "apple", "zebra>=1.0"), nil)
	require.Len(t, combined, 2)
	assert.Equal(t, "zebra", combined[0].Name)
	assert.Equal(t, "apple", combined[1].Name)
}
