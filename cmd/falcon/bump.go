package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/falcon/pkg/bump"
)

var (
	bumpVersionFile string

	bumpCmd = &cobra.Command{
		Use:       "bump <major|minor|patch>",
		Short:     "Bump the project's semantic version",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"major", "minor", "patch"},
		RunE:      runBump,
	}
)

func init() {
	bumpCmd.Flags().StringVar(&bumpVersionFile, "version-file", "VERSION", "file holding the current version")
}

func runBump(cmd *cobra.Command, args []string) error {
	current, err := os.ReadFile(bumpVersionFile)
	if err != nil {
		return fmt.Errorf("bump: failed to read %s: %w", bumpVersionFile, err)
	}

	next, err := bump.Next(strings.TrimSpace(string(current)), bump.Kind(args[0]))
	if err != nil {
		return err
	}

	if err := os.WriteFile(bumpVersionFile, []byte(next+"\n"), 0644); err != nil {
		return fmt.Errorf("bump: failed to write %s: %w", bumpVersionFile, err)
	}

	fmt.Println(next)
	return nil
}
