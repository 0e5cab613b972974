package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pypack/internal/types"
)

// namePattern is the PEP 508 project name grammar: it must start and
// end with a letter or digit.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

func invalidRequirement(raw string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid requirement: %s", strings.TrimSpace(raw)))
}

// ParseRequirement parses a PEP 508 dependency declaration: a name,
// optional bracketed extras, an optional version specifier list
// (parenthesized or bare), an optional "@ url" reference, and an
// optional "; marker" suffix. The marker text is kept verbatim and
// never interpreted here.
func ParseRequirement(raw string) (types.Requirement, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return types.Requirement{}, invalidRequirement(raw)
	}

	var req types.Requirement

	if i := strings.Index(text, ";"); i >= 0 {
		req.Marker = strings.TrimSpace(text[i+1:])
		text = strings.TrimSpace(text[:i])
		if req.Marker == "" || text == "" {
			return types.Requirement{}, invalidRequirement(raw)
		}
	}

	if i := strings.Index(text, "@"); i >= 0 {
		req.URL = strings.TrimSpace(text[i+1:])
		text = strings.TrimSpace(text[:i])
		if req.URL == "" || text == "" {
			return types.Requirement{}, invalidRequirement(raw)
		}
	}

	if i := strings.Index(text, "["); i >= 0 {
		j := strings.Index(text, "]")
		if j < i {
			return types.Requirement{}, invalidRequirement(raw)
		}
		for _, extra := range strings.Split(text[i+1:j], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				return types.Requirement{}, invalidRequirement(raw)
			}
			req.Extras = append(req.Extras, extra)
		}
		req.Name = strings.TrimSpace(text[:i])
		text = strings.TrimSpace(text[j+1:])
	} else if i := strings.IndexAny(text, "(<>!=~"); i >= 0 {
		req.Name = strings.TrimSpace(text[:i])
		text = strings.TrimSpace(text[i:])
	} else {
		req.Name = text
		text = ""
	}

	if !namePattern.MatchString(req.Name) {
		return types.Requirement{}, invalidRequirement(raw)
	}

	if text != "" {
		specifiers, err := ParseSpecifierSet(text)
		if err != nil {
			return types.Requirement{}, invalidRequirement(raw)
		}
		req.Specifiers = specifiers
	}
	return req, nil
}

// MustParseRequirement is ParseRequirement for static inputs; it panics
// on invalid text.
func MustParseRequirement(raw string) types.Requirement {
	req, err := ParseRequirement(raw)
	if err != nil {
		panic(err)
	}
	return req
}
