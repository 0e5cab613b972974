package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"

	"pypack/internal/core"
	"pypack/internal/types"
)

type pyprojectProject struct {
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
}

type pyprojectFlitMetadata struct {
	Requires      []string            `toml:"requires"`
	RequiresExtra map[string][]string `toml:"requires-extra"`
}

type pyprojectFile struct {
	Project *pyprojectProject `toml:"project"`
	Tool    struct {
		Flit struct {
			Metadata *pyprojectFlitMetadata `toml:"metadata"`
		} `toml:"flit"`
	} `toml:"tool"`
}

// PyprojectDependencies extracts the main and per-extra dependencies
// from a pyproject.toml file. The flavour selects the table: pep621
// reads [project], flit reads [tool.flit.metadata], and auto prefers
// [project] when present.
func PyprojectDependencies(path string, flavour types.PyprojectFlavour) ([]types.Requirement, map[string][]types.Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read pyproject file: " + path).
			WithCause(err)
	}
	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse pyproject file: " + path).
			WithCause(err)
	}

	var raw []string
	var rawExtras map[string][]string
	switch flavour {
	case types.PyprojectFlavourPEP621:
		if file.Project == nil {
			return nil, nil, missingTable(path, "project")
		}
		raw, rawExtras = file.Project.Dependencies, file.Project.OptionalDependencies
	case types.PyprojectFlavourFlit:
		if file.Tool.Flit.Metadata == nil {
			return nil, nil, missingTable(path, "tool.flit.metadata")
		}
		raw, rawExtras = file.Tool.Flit.Metadata.Requires, file.Tool.Flit.Metadata.RequiresExtra
	case types.PyprojectFlavourAuto, "":
		switch {
		case file.Project != nil:
			raw, rawExtras = file.Project.Dependencies, file.Project.OptionalDependencies
		case file.Tool.Flit.Metadata != nil:
			raw, rawExtras = file.Tool.Flit.Metadata.Requires, file.Tool.Flit.Metadata.RequiresExtra
		default:
			return nil, nil, missingTable(path, "project or tool.flit.metadata")
		}
	default:
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown pyproject flavour: " + string(flavour))
	}

	dependencies, err := parseDependencyList(raw, path)
	if err != nil {
		return nil, nil, err
	}
	var extras map[string][]types.Requirement
	if len(rawExtras) > 0 {
		extras = make(map[string][]types.Requirement, len(rawExtras))
		for extra, list := range rawExtras {
			parsed, err := parseDependencyList(list, path)
			if err != nil {
				return nil, nil, err
			}
			extras[extra] = parsed
		}
	}
	return dependencies, extras, nil
}

func parseDependencyList(raw []string, path string) ([]types.Requirement, error) {
	requirements := make([]types.Requirement, 0, len(raw))
	for _, text := range raw {
		req, err := core.ParseRequirement(text)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid dependency in " + path + ": " + text).
				WithCause(err)
		}
		requirements = append(requirements, req)
	}
	return requirements, nil
}

func missingTable(path string, table string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("pyproject file " + path + " has no [" + table + "] table")
}
