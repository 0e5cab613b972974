package core

import (
	"pypack/internal/shared"
	"pypack/internal/types"
)

// NormalizeFunc rewrites a project name to its canonical form.
type NormalizeFunc func(string) string

// CombineRequirements merges duplicated requirements in a list.
//
// Each requirement's name is normalized (PEP 503 by default, with the
// ruamel.yaml denormalization exception applied afterwards), and
// requirements sharing a normalized name and an identical marker
// expression are folded together: their specifiers are AND-combined and
// resolved, their extras intersected. Requirements with differing
// markers stay separate, and URL requirements pass through untouched.
//
// Inputs are never mutated; results share no mutable state with the
// arguments. Output order is the insertion order of each first-seen
// (name, marker) group.
func CombineRequirements(requirements []types.Requirement, normalize NormalizeFunc) []types.Requirement {
	if normalize == nil {
		normalize = shared.Normalize
	}

	merged := make([]types.Requirement, 0, len(requirements))
	for _, raw := range requirements {
		req := raw.Clone()
		req.Name = shared.DenormalizeAlias(normalize(req.Name))

		if req.URL != "" {
			merged = append(merged, req)
			continue
		}
		index := findGroup(merged, req.Name, req.Marker)
		if index < 0 {
			merged = append(merged, req)
			continue
		}
		group := &merged[index]
		group.Specifiers = ResolveSpecifiers(append(group.Specifiers.Clone(), req.Specifiers...))
		group.Extras = intersectExtras(group.Extras, req.Extras)
	}
	return merged
}

func findGroup(requirements []types.Requirement, name string, marker string) int {
	for i, req := range requirements {
		if req.URL != "" {
			continue
		}
		if req.Name == name && req.Marker == marker {
			return i
		}
	}
	return -1
}

// intersectExtras keeps the extras present in both sets, preserving the
// order of the first.
func intersectExtras(left []string, right []string) []string {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	rightSet := make(map[string]struct{}, len(right))
	for _, extra := range right {
		rightSet[extra] = struct{}{}
	}
	var out []string
	for _, extra := range left {
		if _, ok := rightSet[extra]; ok {
			out = append(out, extra)
		}
	}
	return out
}
