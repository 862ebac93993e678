package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/falcon/pkg/changelog"
)

var (
	changelogPath    string
	changelogVersion string
	changelogEntries []string

	changelogCmd = &cobra.Command{
		Use:   "changelog",
		Short: "Record a new release's entries in CHANGELOG.yaml",
		RunE:  runChangelog,
	}
)

func init() {
	changelogCmd.Flags().StringVar(&changelogPath, "file", "CHANGELOG.yaml", "changelog file")
	changelogCmd.Flags().StringVar(&changelogVersion, "version", "", "version this release entry is for (required)")
	changelogCmd.Flags().StringArrayVar(&changelogEntries, "entry", nil, `one entry as "kind: summary" (repeatable)`)
}

func runChangelog(cmd *cobra.Command, args []string) error {
	if changelogVersion == "" {
		return fmt.Errorf("changelog: --version is required")
	}

	doc, err := changelog.Load(changelogPath)
	if err != nil {
		return err
	}

	entries := make([]changelog.Entry, 0, len(changelogEntries))
	for _, raw := range changelogEntries {
		kind, summary, ok := strings.Cut(raw, ":")
		if !ok {
			return fmt.Errorf("changelog: entry %q must be \"kind: summary\"", raw)
		}
		entries = append(entries, changelog.Entry{
			Kind:    strings.TrimSpace(kind),
			Summary: strings.TrimSpace(summary),
		})
	}

	doc.AddRelease(changelogVersion, time.Now(), entries)
	return changelog.Save(changelogPath, doc)
}
