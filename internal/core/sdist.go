package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pypack/internal/types"
)

// sdistPattern captures the project name, the version, and the archive
// extension of a source distribution filename. The name follows the
// PEP 503 grammar with an optional -stubs suffix kept attached to it.
var sdistPattern = regexp.MustCompile(
	`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?(?:-stubs)?)-([A-Za-z0-9_.!+]+)(\.tar\.gz|\.tar\.bz2|\.zip)$`)

const notAnSdistPrefix = "not a recognized sdist filename"

// IsNotAnSdist reports whether err came from ParseSdistFilename being
// handed a filename that is a valid distribution but not a source one,
// such as a wheel, or no distribution at all.
func IsNotAnSdist(err error) bool {
	return err != nil && strings.Contains(err.Error(), notAnSdistPrefix)
}

// ParseSdistFilename splits a source distribution filename into its
// project, version, and extension parts. Wheel filenames are rejected
// with a distinguishable error so callers can fall back to wheel
// handling.
func ParseSdistFilename(filename string) (types.ParsedSdistFilename, error) {
	if strings.HasSuffix(filename, ".whl") {
		return types.ParsedSdistFilename{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s (wheel): %s", notAnSdistPrefix, filename))
	}
	match := sdistPattern.FindStringSubmatch(filename)
	if match == nil {
		return types.ParsedSdistFilename{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: %s", notAnSdistPrefix, filename))
	}
	return types.ParsedSdistFilename{
		Project:   match[1],
		Version:   match[2],
		Extension: match[3],
	}, nil
}
