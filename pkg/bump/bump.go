// Package bump implements the "falcon bump" sibling subcommand: computing
// the next semantic version for a release, using the same blang/semver
// library already in the teacher's go.mod.
package bump

import (
	"fmt"

	"github.com/blang/semver"
)

// Kind is the part of a semantic version a bump increments.
type Kind string

const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// Next parses current and returns the version after incrementing kind,
// dropping any pre-release/build metadata per semver's own reset rules.
func Next(current string, kind Kind) (string, error) {
	v, err := semver.Parse(current)
	if err != nil {
		return "", fmt.Errorf("bump: invalid version %q: %w", current, err)
	}

	switch kind {
	case Major:
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case Minor:
		v.Minor++
		v.Patch = 0
	case Patch:
		v.Patch++
	default:
		return "", fmt.Errorf("bump: unknown kind %q", kind)
	}
	v.Pre = nil
	v.Build = nil

	return v.String(), nil
}
