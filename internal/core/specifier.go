// Package core implements the domain logic of pypack: PEP 508
// requirement parsing, specifier resolution, requirement merging, and
// sdist filename handling.
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pypack/internal/types"
)

// opTokens is the ordered list of specifier operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false
// matches (e.g. "===" before "==", ">=" before ">").
var opTokens = []types.SpecifierOp{
	types.SpecifierOpArbitrary,
	types.SpecifierOpEq,
	types.SpecifierOpLte,
	types.SpecifierOpGte,
	types.SpecifierOpNe,
	types.SpecifierOpCompat,
	types.SpecifierOpLt,
	types.SpecifierOpGt,
}

// versionTokenPattern is the permissive PEP 508 version charset. It
// deliberately admits tokens that are not valid PEP 440 versions; the
// original ecosystem accepted those at parse time.
var versionTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_.*+!-]+$`)

// ParseSpecifierClause splits a raw ">=1.2.3" string into a clause.
func ParseSpecifierClause(raw string) (types.SpecifierClause, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return types.SpecifierClause{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty specifier clause")
	}
	for _, op := range opTokens {
		if !strings.HasPrefix(text, string(op)) {
			continue
		}
		version := strings.TrimSpace(strings.TrimPrefix(text, string(op)))
		if version == "" || !versionTokenPattern.MatchString(version) {
			return types.SpecifierClause{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid specifier clause: %s", raw))
		}
		return types.SpecifierClause{Op: op, Version: version}, nil
	}
	return types.SpecifierClause{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid specifier clause: %s", raw))
}

// ParseSpecifierSet parses a comma-separated clause list, with optional
// surrounding parentheses as PEP 508 allows.
func ParseSpecifierSet(raw string) (types.SpecifierSet, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if text == "" {
		return nil, nil
	}
	var set types.SpecifierSet
	for _, part := range strings.Split(text, ",") {
		clause, err := ParseSpecifierClause(part)
		if err != nil {
			return nil, err
		}
		set = append(set, clause)
	}
	return set, nil
}
