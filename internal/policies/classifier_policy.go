package policies

import (
	_ "embed"
	"strings"

	"github.com/rs/zerolog/log"

	"pypack/internal/shared"
	"pypack/internal/types"
)

//go:embed data/classifiers.txt
var knownClassifierData string

//go:embed data/deprecated_classifiers.txt
var deprecatedClassifierData string

// ClassifierPolicy validates trove classifiers against an embedded
// snapshot of the PyPI reference list and suggests classifiers from a
// project's requirements.
type ClassifierPolicy struct {
	known      map[string]struct{}
	deprecated map[string]struct{}
}

func NewClassifierPolicy() *ClassifierPolicy {
	return &ClassifierPolicy{
		known:      classifierSet(knownClassifierData),
		deprecated: classifierSet(deprecatedClassifierData),
	}
}

func classifierSet(data string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	return set
}

// Validate checks each classifier against the reference list. A
// deprecated classifier logs a warning, an unknown one logs an error.
// It reports whether any unknown classifier was seen.
func (p *ClassifierPolicy) Validate(classifiers []string) bool {
	sawUnknown := false
	for _, classifier := range classifiers {
		if _, ok := p.deprecated[classifier]; ok {
			log.Warn().
				Str("classifier", classifier).
				Msg("classifier is deprecated")
			continue
		}
		if _, ok := p.known[classifier]; !ok {
			log.Error().
				Str("classifier", classifier).
				Msg("unknown classifier")
			sawUnknown = true
		}
	}
	return sawUnknown
}

// suggestion maps a normalized requirement name to the classifiers its
// presence implies.
type suggestion struct {
	name        string
	classifiers []string
}

var suggestions = []suggestion{
	{"dash", []string{"Framework :: Dash"}},
	{"jupyter", []string{"Framework :: Jupyter"}},
	{"matplotlib", []string{"Framework :: Matplotlib"}},
	{"pygame", []string{
		"Topic :: Software Development :: Libraries :: pygame",
		"Topic :: Games/Entertainment",
	}},
	{"arcade", []string{"Topic :: Games/Entertainment"}},
	{"flake8", []string{
		"Framework :: Flake8",
		"Intended Audience :: Developers",
	}},
	{"flask", []string{
		"Framework :: Flask",
		"Topic :: Internet :: WWW/HTTP :: WSGI :: Application",
		"Topic :: Internet :: WWW/HTTP :: Dynamic Content",
	}},
	{"werkzeug", []string{"Topic :: Internet :: WWW/HTTP :: WSGI :: Application"}},
	{"click", []string{"Environment :: Console"}},
	{"typer", []string{"Environment :: Console"}},
	{"pytest", []string{
		"Framework :: Pytest",
		"Topic :: Software Development :: Quality Assurance",
		"Topic :: Software Development :: Testing",
		"Topic :: Software Development :: Testing :: Unit",
		"Intended Audience :: Developers",
	}},
	{"tox", []string{
		"Framework :: tox",
		"Topic :: Software Development :: Quality Assurance",
		"Topic :: Software Development :: Testing",
		"Topic :: Software Development :: Testing :: Unit",
		"Intended Audience :: Developers",
	}},
	{"sphinx", []string{
		"Framework :: Sphinx :: Extension",
		"Topic :: Documentation",
		"Topic :: Documentation :: Sphinx",
		"Topic :: Software Development :: Documentation",
		"Intended Audience :: Developers",
	}},
}

// SuggestFromRequirements returns classifiers implied by the given
// requirements, deduplicated, in a stable order.
func (p *ClassifierPolicy) SuggestFromRequirements(requirements []types.Requirement) []string {
	names := map[string]struct{}{}
	for _, req := range requirements {
		names[shared.Normalize(req.Name)] = struct{}{}
	}
	var out []string
	seen := map[string]struct{}{}
	for _, entry := range suggestions {
		if _, ok := names[entry.name]; !ok {
			continue
		}
		for _, classifier := range entry.classifiers {
			if _, dup := seen[classifier]; dup {
				continue
			}
			seen[classifier] = struct{}{}
			out = append(out, classifier)
		}
	}
	return out
}
