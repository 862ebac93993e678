// Package changelog implements the "falcon changelog" sibling subcommand:
// appending a version's entries to CHANGELOG.yaml, marshaled with
// gopkg.in/yaml.v3 the way the teacher's config and memory files are.
package changelog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one changelog item under a version.
type Entry struct {
	Kind    string `yaml:"kind"` // added, changed, fixed, removed
	Summary string `yaml:"summary"`
}

// Release groups entries under one version and date.
type Release struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date"`
	Entries []Entry `yaml:"entries"`
}

// Document is the full CHANGELOG.yaml shape: newest release first.
type Document struct {
	Releases []Release `yaml:"releases"`
}

// Load reads an existing changelog document, or an empty one if path does
// not exist yet.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("changelog: failed to read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("changelog: failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes doc back to path.
func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("changelog: failed to marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// AddRelease prepends a new release entry, most-recent-first, stamped with
// the given date (callers pass this in so the package stays testable
// without a wall-clock dependency).
func (d *Document) AddRelease(version string, date time.Time, entries []Entry) {
	d.Releases = append([]Release{{
		Version: version,
		Date:    date.Format("2006-01-02"),
		Entries: entries,
	}}, d.Releases...)
}
