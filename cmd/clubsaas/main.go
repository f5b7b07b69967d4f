package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clubsaas/clubsaas/internal/interfaces/cli/migrate"
	"github.com/clubsaas/clubsaas/internal/interfaces/cli/reconcile"
	"github.com/clubsaas/clubsaas/internal/interfaces/cli/server"
	"github.com/clubsaas/clubsaas/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clubsaas",
		Short: "ClubSaaS - subscription billing core for sports clubs",
		Long:  `ClubSaaS runs the club billing API, ingests payment provider webhooks and reconciles mandates.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		reconcile.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
