// Command falcon is a developer toolkit combining a multi-environment
// HTTP-diff engine with a handful of release-management utilities: semantic
// version bumping, release tagging, changelog entries, and a
// self-updater. falcon diff is where the engineering effort lives; the
// other subcommands are thin wrappers around their respective libraries.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version info, injected at build time by GoReleaser.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	rootCmd = &cobra.Command{
		Use:   "falcon",
		Short: "falcon - multi-environment HTTP diffing and release toolkit",
		Long: `falcon issues the same logical HTTP requests against several
configured environments, compares the responses, and renders the result.
It also bundles the release-management utilities a toolkit like this tends
to accumulate: semantic version bumps, release tagging, changelog
entries, and self-updates.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("falcon %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	})

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(changelogCmd)
	rootCmd.AddCommand(updateCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
