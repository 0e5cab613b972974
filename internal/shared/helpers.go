// Package shared provides common utility functions used across multiple
// packages in the pypack codebase.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	normalizePattern        = regexp.MustCompile(`[-_.]+`)
	normalizeKeepDotPattern = regexp.MustCompile(`[-_]+`)
)

// Normalize lowercases a Python project name and collapses runs of
// hyphens, underscores, and dots into a single hyphen, following the
// PEP 503 convention.
func Normalize(name string) string {
	return normalizePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// NormalizeKeepDot normalizes like Normalize but preserves dots, for
// namespace packages.
func NormalizeKeepDot(name string) string {
	return normalizeKeepDotPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// aliasMapping maps normalized names back to the spelling external
// tooling expects when the two differ. ruamel.yaml is special-cased to
// work around https://github.com/conda-forge/ruamel.yaml-feedstock/issues/7.
var aliasMapping = map[string]string{
	"ruamel-yaml": "ruamel.yaml",
	"ruamel_yaml": "ruamel.yaml",
}

// DenormalizeAlias returns the canonical spelling for names whose
// normalized form breaks downstream tools, or the input unchanged.
func DenormalizeAlias(name string) string {
	if alias, ok := aliasMapping[name]; ok {
		return alias
	}
	return name
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, strings.TrimSpace(body))
}
