// Package selfupdate implements the "falcon update" sibling subcommand,
// wiring rhysd/go-github-selfupdate the way its own README documents:
// detect the latest GitHub release for a repo slug, then replace the
// running binary if a newer version exists.
package selfupdate

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Slug is the GitHub "owner/repo" this binary publishes releases under.
const Slug = "blackcoderx/falcon"

// Check reports the latest published version without installing anything.
func Check(currentVersion string) (latest string, hasUpdate bool, err error) {
	current, err := semver.Parse(currentVersion)
	if err != nil {
		return "", false, fmt.Errorf("selfupdate: invalid current version %q: %w", currentVersion, err)
	}

	release, found, err := selfupdate.DetectLatest(Slug)
	if err != nil {
		return "", false, fmt.Errorf("selfupdate: failed to detect latest release: %w", err)
	}
	if !found {
		return "", false, nil
	}

	return release.Version.String(), release.Version.GT(current), nil
}

// Apply replaces the currently running binary with the latest release, if
// one is available.
func Apply(currentVersion string) error {
	current, err := semver.Parse(currentVersion)
	if err != nil {
		return fmt.Errorf("selfupdate: invalid current version %q: %w", currentVersion, err)
	}

	latest, err := selfupdate.UpdateSelf(current, Slug)
	if err != nil {
		return fmt.Errorf("selfupdate: update failed: %w", err)
	}
	if latest.Version.Equals(current) {
		fmt.Fprintln(os.Stderr, "already running the latest version")
	}
	return nil
}
