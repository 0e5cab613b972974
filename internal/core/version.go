package core

import (
	"regexp"
	"strconv"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// versionCache memoizes parsed PEP 440 versions to avoid repeated
// parsing during specifier resolution and sorting.
type versionCache struct {
	pep    map[string]pep440.Version
	failed map[string]struct{}
}

func newVersionCache() *versionCache {
	return &versionCache{
		pep:    map[string]pep440.Version{},
		failed: map[string]struct{}{},
	}
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, bool) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, true
	}
	if _, ok := c.failed[value]; ok {
		return pep440.Version{}, false
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		c.failed[value] = struct{}{}
		return pep440.Version{}, false
	}
	c.pep[value] = parsed
	return parsed, true
}

// compare returns -1, 0, or 1 comparing two version strings with
// PEP 440 semantics, falling back to natural ordering for tokens the
// PEP 440 parser rejects.
func (c *versionCache) compare(a string, b string) int {
	v1, ok1 := c.pepVersion(a)
	v2, ok2 := c.pepVersion(b)
	if ok1 && ok2 {
		return v1.Compare(v2)
	}
	return naturalCompare(a, b)
}

// naturalCompare orders strings treating runs of digits numerically, so
// "1.10" sorts after "1.9".
func naturalCompare(a string, b string) int {
	aChunks := chunkVersion(a)
	bChunks := chunkVersion(b)
	for i := 0; i < len(aChunks) && i < len(bChunks); i++ {
		left, right := aChunks[i], bChunks[i]
		if left == right {
			continue
		}
		leftNum, leftErr := strconv.Atoi(left)
		rightNum, rightErr := strconv.Atoi(right)
		if leftErr == nil && rightErr == nil {
			if leftNum < rightNum {
				return -1
			}
			return 1
		}
		if left < right {
			return -1
		}
		return 1
	}
	switch {
	case len(aChunks) < len(bChunks):
		return -1
	case len(aChunks) > len(bChunks):
		return 1
	default:
		return 0
	}
}

var versionChunkPattern = regexp.MustCompile(`\d+|\D+`)

func chunkVersion(value string) []string {
	return versionChunkPattern.FindAllString(strings.TrimSpace(value), -1)
}

// NoDevVersions returns the subset of versions that do not end with
// "-dev".
func NoDevVersions(versions []string) []string {
	out := make([]string, 0, len(versions))
	for _, version := range versions {
		if strings.HasSuffix(version, "-dev") {
			continue
		}
		out = append(out, version)
	}
	return out
}

// preReleasePattern matches PEP 440 pre-release, dev, and alpha/beta/rc
// qualifiers in a version string.
var preReleasePattern = regexp.MustCompile(`(?i)[._-]?(a|b|c|rc|alpha|beta|pre|preview|dev)[._-]?\d*$`)

// NoPreVersions returns the subset of versions that are not
// prereleases. Tokens that are not valid PEP 440 versions are kept, as
// there is no basis for classifying them.
func NoPreVersions(versions []string) []string {
	out := make([]string, 0, len(versions))
	for _, version := range versions {
		if _, err := pep440.Parse(version); err != nil {
			out = append(out, version)
			continue
		}
		if preReleasePattern.MatchString(version) {
			continue
		}
		out = append(out, version)
	}
	return out
}
