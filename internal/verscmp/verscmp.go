// Package verscmp implements the versioned-comparison helper used by context dimension values
// (internal/context, e.g. "fedora-33" < "fedora-40"). The hardware language's version-like
// leaves call Masterminds/semver directly rather than this package.
package verscmp

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// split separates a "<name>-<version>" identifier into its name and a parsed semantic
// version, e.g. "fedora-33" -> ("fedora", 33.0.0). Returns ok=false if there is no trailing
// "-<version>" suffix or that suffix does not parse as a version.
func split(s string) (name string, ver *semver.Version, ok bool) {
	i := strings.LastIndexByte(s, '-')
	if i < 0 || i == len(s)-1 {
		return "", nil, false
	}

	name, verStr := s[:i], s[i+1:]
	sv, err := semver.NewVersion(verStr)
	if err != nil {
		return "", nil, false
	}
	return name, sv, true
}

// Compare compares two identifiers. If both share the same name prefix and both carry a
// parseable trailing version, it returns the numeric ordering of that version (-1, 0, 1) and
// ordered=true. Otherwise it falls back to plain string equality: ordered is true only if a
// and b are identical (cmp=0); any other pair of unrelated strings is unordered.
func Compare(a, b string) (cmp int, ordered bool) {
	an, av, aok := split(a)
	bn, bv, bok := split(b)

	if aok && bok && an == bn {
		return av.Compare(bv), true
	}

	if a == b {
		return 0, true
	}

	return 0, false
}

// Version attempts to parse s directly as a bare semantic version (no name prefix), after
// trimming surrounding whitespace.
func Version(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimSpace(s))
}
