package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pypack/internal/adapters"
	"pypack/internal/core"
	"pypack/internal/shared"
	"pypack/internal/types"
)

// BindRequirements pins every unbound, URL-less requirement in a
// requirements.txt file to the latest version on the package index,
// using the given operator (>= when unset). Invalid lines and comments
// are written back untouched. It reports whether the file changed.
func (s Service) BindRequirements(ctx context.Context, path string, op types.SpecifierOp, normalize core.NormalizeFunc) (bool, error) {
	if op == types.SpecifierOpNone {
		op = types.SpecifierOpGte
	}
	if !op.Known() {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid specifier operator: " + string(op))
	}
	if normalize == nil {
		normalize = shared.Normalize
	}

	requirements, comments, invalid, err := adapters.ReadRequirements(path, true)
	if err != nil {
		return false, err
	}

	for i := range requirements {
		requirements[i].Name = shared.DenormalizeAlias(normalize(requirements[i].Name))
		if requirements[i].URL != "" || !requirements[i].Specifiers.Empty() {
			continue
		}
		latest, err := s.Index.LatestVersion(ctx, requirements[i].Name)
		if err != nil {
			return false, err
		}
		requirements[i].Specifiers = types.SpecifierSet{{Op: op, Version: latest}}
	}
	core.SortRequirements(requirements)

	lines := make([]string, 0, len(comments)+len(invalid)+len(requirements))
	lines = append(lines, comments...)
	lines = append(lines, invalid...)
	for _, req := range requirements {
		lines = append(lines, req.String())
	}
	content := strings.Join(lines, "\n") + "\n"

	existing, err := os.ReadFile(path)
	if err == nil && string(existing) == content {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write requirements file: " + path).
			WithCause(err)
	}
	return true, nil
}
