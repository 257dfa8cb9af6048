// Package cmd holds the ghkeeper command line.
package cmd

import (
	"context"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghkeeper",
	Short: "ghkeeper manages GitHub Actions secrets, variables and environments",
	Long: `ghkeeper is a web service that signs users in with GitHub and lets them
manage Actions secrets, variables, environments and caches of their repositories.

Configuration is read from environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	memguard.Purge()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
