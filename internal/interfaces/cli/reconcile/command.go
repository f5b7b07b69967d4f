package reconcile

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clubsaas/clubsaas/internal/interfaces/cli/appenv"
	httpRouter "github.com/clubsaas/clubsaas/internal/interfaces/http"
)

var env string

// NewCommand runs a single reconciliation tick, for cron-driven deployments
// that keep the in-process poller disabled.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one subscription reconciliation pass",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := appenv.Setup(ctx, appenv.ResolveEnv(env), true)
	if err != nil {
		return err
	}
	defer app.Close()

	container, err := httpRouter.NewContainer(app.Config, app.DB, app.Redis, app.Log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	if !container.ReconciliationTask().Run(ctx) {
		app.Log.Infow("reconciliation tick did not run")
	}
	return nil
}
