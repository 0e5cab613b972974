package core

import (
	"sort"

	"pypack/internal/types"
)

// CompareRequirements gives requirements a deterministic total order
// for textual output: name ascending, then specifier string descending,
// then marker string descending. The descending legs keep tighter pins
// ahead of looser ones for the same name.
func CompareRequirements(a types.Requirement, b types.Requirement) types.Ordering {
	if a.Name != b.Name {
		if a.Name < b.Name {
			return types.OrderingLess
		}
		return types.OrderingGreater
	}
	aSpec, bSpec := a.Specifiers.String(), b.Specifiers.String()
	if aSpec != bSpec {
		if aSpec > bSpec {
			return types.OrderingLess
		}
		return types.OrderingGreater
	}
	if a.Marker != b.Marker {
		if a.Marker > b.Marker {
			return types.OrderingLess
		}
		return types.OrderingGreater
	}
	return types.OrderingEqual
}

// EquivalentRequirements reports whether two requirements match under
// none-or-equal semantics: a field left empty on either side matches
// any value on the other. Markers compare by their exact text.
func EquivalentRequirements(a types.Requirement, b types.Requirement) bool {
	if !equalNotEmpty(a.Name, b.Name) {
		return false
	}
	if !equalNotEmpty(a.URL, b.URL) {
		return false
	}
	if !equalNotEmpty(a.Specifiers.String(), b.Specifiers.String()) {
		return false
	}
	if len(a.Extras) > 0 && len(b.Extras) > 0 && !sameExtras(a.Extras, b.Extras) {
		return false
	}
	if a.Marker != "" && b.Marker != "" && a.Marker != b.Marker {
		return false
	}
	return true
}

// SortRequirements orders requirements in place per CompareRequirements.
func SortRequirements(requirements []types.Requirement) {
	sort.SliceStable(requirements, func(i, j int) bool {
		return CompareRequirements(requirements[i], requirements[j]) == types.OrderingLess
	})
}

func equalNotEmpty(left string, right string) bool {
	if left == "" || right == "" {
		return true
	}
	return left == right
}

func sameExtras(left []string, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	set := make(map[string]struct{}, len(left))
	for _, extra := range left {
		set[extra] = struct{}{}
	}
	for _, extra := range right {
		if _, ok := set[extra]; !ok {
			return false
		}
	}
	return true
}
