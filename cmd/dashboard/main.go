package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locationgenius/dashboard/internal/interfaces/cli/migrate"
	"github.com/locationgenius/dashboard/internal/interfaces/cli/server"
	"github.com/locationgenius/dashboard/internal/interfaces/cli/token"
	"github.com/locationgenius/dashboard/internal/shared/version"
)

func main() {
	info := version.Get()

	rootCmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Location Genius dashboard backend",
		Long:    `Dashboard backend serving message templates and timeframe resolution, with migration and token tooling.`,
		Version: fmt.Sprintf("%s (commit %s)", info.Version, info.Commit),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
