package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/falcon/pkg/selfupdate"
)

var (
	updateCheckOnly bool

	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Check for and install the latest falcon release",
		RunE:  runUpdate,
	}
)

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "only report whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateCheckOnly {
		latest, hasUpdate, err := selfupdate.Check(version)
		if err != nil {
			return err
		}
		if !hasUpdate {
			fmt.Println("already running the latest version")
			return nil
		}
		fmt.Printf("update available: %s -> %s\n", version, latest)
		return nil
	}

	return selfupdate.Apply(version)
}
