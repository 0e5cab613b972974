package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pypack/internal/adapters"
	"pypack/internal/core"
	"pypack/internal/shared"
	"pypack/internal/types"
)

// CompileCondaRequirements builds the conda run requirements for a
// repository: requirements.txt plus any extra requirement strings,
// combined and sorted, with URL requirements skipped and extras and
// markers stripped. Conda has no equivalent for either.
func (s Service) CompileCondaRequirements(repoDir string, extras []string) ([]types.Requirement, error) {
	requirements, _, _, err := adapters.ReadRequirements(filepath.Join(repoDir, "requirements.txt"), false)
	if err != nil {
		return nil, err
	}
	for _, extra := range extras {
		req, err := core.ParseRequirement(extra)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}

	combined := core.CombineRequirements(requirements, nil)
	core.SortRequirements(combined)

	compiled := make([]types.Requirement, 0, len(combined))
	for _, req := range combined {
		if req.URL != "" {
			continue
		}
		req.Extras = nil
		req.Marker = ""
		compiled = append(compiled, req)
	}
	return compiled, nil
}

// ValidateCondaRequirements checks that every requirement is available
// from at least one of the given conda channels, rewriting names to the
// channel's spelling. The alias map is consulted before the channel
// listings.
func (s Service) ValidateCondaRequirements(ctx context.Context, requirements []types.Requirement, channels []string) ([]types.Requirement, error) {
	available := map[string]string{}
	for _, channel := range channels {
		packages, err := s.Conda.ChannelPackages(ctx, channel)
		if err != nil {
			return nil, err
		}
		for _, pkg := range packages {
			available[shared.Normalize(pkg)] = pkg
		}
	}

	validated := make([]types.Requirement, 0, len(requirements))
	for _, req := range requirements {
		if alias := shared.DenormalizeAlias(req.Name); alias != req.Name {
			req.Name = alias
			validated = append(validated, req)
			continue
		}
		if match, ok := available[shared.Normalize(req.Name)]; ok {
			req.Name = match
			validated = append(validated, req)
			continue
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("cannot satisfy the requirement '" + req.Name +
				"' from any of the channels: '" + strings.Join(channels, "', '") + "'")
	}
	return validated, nil
}

// MakeCondaDescription builds the conda package description from the
// project summary, appending a notice listing the channels required to
// install it.
func MakeCondaDescription(summary string, channels []string) string {
	description := summary
	if len(channels) > 0 {
		description += "\n\n\n"
		description += "Before installing please ensure you have added the following channels: "
		description += strings.Join(channels, ", ")
		description += "\n"
	}
	return description
}
