package types

import (
	"sort"
	"strings"
)

// SpecifierClause is a single (operator, version) version constraint.
type SpecifierClause struct {
	Op      SpecifierOp
	Version string
}

func (c SpecifierClause) String() string {
	return string(c.Op) + c.Version
}

// SpecifierSet is a conjunction of specifier clauses. The zero value is
// the empty set, which admits every version.
type SpecifierSet []SpecifierClause

// String renders the set as a comma-joined, lexicographically sorted
// clause list, matching the canonical textual form used in
// requirements files.
func (s SpecifierSet) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s))
	for _, clause := range s {
		parts = append(parts, clause.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (s SpecifierSet) Empty() bool {
	return len(s) == 0
}

// Clone returns an independent copy of the set.
func (s SpecifierSet) Clone() SpecifierSet {
	if s == nil {
		return nil
	}
	out := make(SpecifierSet, len(s))
	copy(out, s)
	return out
}

// Requirement is a parsed PEP 508 dependency declaration. Marker is the
// raw marker expression text; it is opaque to specifier resolution. A
// requirement with a URL never takes part in specifier combination.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers SpecifierSet
	Marker     string
	URL        string
}

// String renders the requirement in PEP 508 form:
// name[extra,...]specifiers@ url ; marker.
func (r Requirement) String() string {
	var builder strings.Builder
	builder.WriteString(r.Name)
	if len(r.Extras) > 0 {
		extras := append([]string(nil), r.Extras...)
		sort.Strings(extras)
		builder.WriteString("[")
		builder.WriteString(strings.Join(extras, ","))
		builder.WriteString("]")
	}
	builder.WriteString(r.Specifiers.String())
	if r.URL != "" {
		builder.WriteString("@ ")
		builder.WriteString(r.URL)
		if r.Marker != "" {
			builder.WriteString(" ")
		}
	}
	if r.Marker != "" {
		builder.WriteString("; ")
		builder.WriteString(r.Marker)
	}
	return builder.String()
}

// Clone returns a copy sharing no mutable state with the receiver.
func (r Requirement) Clone() Requirement {
	out := r
	if r.Extras != nil {
		out.Extras = append([]string(nil), r.Extras...)
	}
	out.Specifiers = r.Specifiers.Clone()
	return out
}

// HasExtra reports whether the requirement names the given extra.
func (r Requirement) HasExtra(extra string) bool {
	for _, candidate := range r.Extras {
		if candidate == extra {
			return true
		}
	}
	return false
}
