package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/falcon/pkg/release"
)

var (
	releasePush bool

	releaseCmd = &cobra.Command{
		Use:   "release <version>",
		Short: "Tag the current HEAD as a release and optionally push it",
		Args:  cobra.ExactArgs(1),
		RunE:  runRelease,
	}
)

func init() {
	releaseCmd.Flags().BoolVar(&releasePush, "push", false, "push the tag to origin after creating it")
}

func runRelease(cmd *cobra.Command, args []string) error {
	clean, err := release.IsClean()
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("release: working tree has uncommitted changes")
	}

	version := strings.TrimPrefix(args[0], "v")
	if err := release.Tag(version, releasePush); err != nil {
		return err
	}

	branch, err := release.CurrentBranch()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "tagged v%s on %s\n", version, branch)
	return nil
}
