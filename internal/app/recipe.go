package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pypack/internal/types"
)

// CondaRecipe carries everything needed to render a minimal noarch
// python meta.yaml.
type CondaRecipe struct {
	Name         string
	Version      string
	Summary      string
	Homepage     string
	License      string
	Channels     []string
	Requirements []types.Requirement
}

type recipeDoc struct {
	Package struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"package"`
	Source struct {
		URL string `yaml:"url"`
	} `yaml:"source"`
	Build struct {
		Noarch string `yaml:"noarch"`
		Script string `yaml:"script"`
	} `yaml:"build"`
	Requirements struct {
		Build []string `yaml:"build"`
		Host  []string `yaml:"host"`
		Run   []string `yaml:"run"`
	} `yaml:"requirements"`
	Test struct {
		Imports []string `yaml:"imports"`
	} `yaml:"test"`
	About struct {
		Home        string `yaml:"home,omitempty"`
		License     string `yaml:"license,omitempty"`
		Summary     string `yaml:"summary,omitempty"`
		Description string `yaml:"description,omitempty"`
	} `yaml:"about"`
}

// RenderCondaRecipe renders a meta.yaml for a pure-python noarch
// package. The requirements are expected to have been validated against
// the recipe's channels.
func RenderCondaRecipe(recipe CondaRecipe) (string, error) {
	if recipe.Name == "" || recipe.Version == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("conda recipe needs a package name and version")
	}

	var doc recipeDoc
	doc.Package.Name = recipe.Name
	doc.Package.Version = recipe.Version
	doc.Source.URL = fmt.Sprintf(
		"https://pypi.io/packages/source/%s/%s/%s-%s.tar.gz",
		recipe.Name[:1], recipe.Name, recipe.Name, recipe.Version)
	doc.Build.Noarch = "python"
	doc.Build.Script = "{{ PYTHON }} -m pip install . -vv"

	run := []string{"python"}
	for _, req := range recipe.Requirements {
		run = append(run, req.String())
	}
	doc.Requirements.Build = []string{"python", "setuptools", "wheel"}
	doc.Requirements.Host = append([]string{"pip"}, run...)
	doc.Requirements.Run = run

	doc.Test.Imports = []string{recipe.Name}
	doc.About.Home = recipe.Homepage
	doc.About.License = recipe.License
	doc.About.Summary = recipe.Summary
	doc.About.Description = MakeCondaDescription(recipe.Summary, recipe.Channels)

	rendered, err := yaml.Marshal(doc)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render conda recipe").
			WithCause(err)
	}
	return string(rendered), nil
}

// WriteCondaRecipe renders the recipe into <dir>/meta.yaml, creating
// the directory when needed, and returns the written path.
func WriteCondaRecipe(recipe CondaRecipe, dir string) (string, error) {
	rendered, err := RenderCondaRecipe(recipe)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create recipe directory: " + dir).
			WithCause(err)
	}
	path := filepath.Join(dir, "meta.yaml")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write recipe: " + path).
			WithCause(err)
	}
	return path, nil
}
