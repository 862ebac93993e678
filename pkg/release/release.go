// Package release implements the "falcon release" sibling subcommand:
// tagging and pushing a version, shelling out to git the way the teacher's
// search tool shells out to ripgrep.
package release

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tag creates an annotated git tag "vX.Y.Z" for version and, if push is
// true, pushes it to origin.
func Tag(version string, push bool) error {
	tag := "v" + strings.TrimPrefix(version, "v")

	cmd := exec.Command("git", "tag", "-a", tag, "-m", fmt.Sprintf("release %s", tag))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("release: git tag failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	if !push {
		return nil
	}

	cmd = exec.Command("git", "push", "origin", tag)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("release: git push failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// CurrentBranch returns the repository's current branch name.
func CurrentBranch() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("release: failed to resolve current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func IsClean() (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("release: failed to check working tree status: %w", err)
	}
	return strings.TrimSpace(string(out)) == "", nil
}
