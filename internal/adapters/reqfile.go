package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pypack/internal/core"
	"pypack/internal/types"
)

// ParseRequirementLines parses requirements.txt lines. Blank lines are
// skipped, comment lines are collected separately in file order, and
// duplicate requirements (same printed form) are dropped. Lines that do
// not parse are logged as warnings and dropped, or, when collectInvalid
// is set, returned verbatim in the third result instead.
func ParseRequirementLines(lines []string, collectInvalid bool) ([]types.Requirement, []string, []string) {
	var requirements []types.Requirement
	var comments []string
	var invalid []string
	seen := map[string]struct{}{}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			comments = append(comments, trimmed)
			continue
		}
		req, err := core.ParseRequirement(trimmed)
		if err != nil {
			if collectInvalid {
				invalid = append(invalid, trimmed)
			} else {
				log.Warn().
					Str("line", trimmed).
					Msg("ignoring invalid requirement")
			}
			continue
		}
		printed := req.String()
		if _, ok := seen[printed]; ok {
			continue
		}
		seen[printed] = struct{}{}
		requirements = append(requirements, req)
	}
	return requirements, comments, invalid
}

// ReadRequirements parses a requirements.txt file per
// ParseRequirementLines.
func ReadRequirements(path string, collectInvalid bool) ([]types.Requirement, []string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read requirements file: " + path).
			WithCause(err)
	}
	requirements, comments, invalid := ParseRequirementLines(strings.Split(string(data), "\n"), collectInvalid)
	return requirements, comments, invalid, nil
}

// WriteRequirements writes a requirements.txt file: comments first in
// their original order, then the requirements sorted.
func WriteRequirements(path string, requirements []types.Requirement, comments []string) error {
	sorted := make([]types.Requirement, len(requirements))
	copy(sorted, requirements)
	core.SortRequirements(sorted)

	var builder strings.Builder
	for _, comment := range comments {
		builder.WriteString(comment)
		builder.WriteString("\n")
	}
	for _, req := range sorted {
		builder.WriteString(req.String())
		builder.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write requirements file: " + path).
			WithCause(err)
	}
	return nil
}
