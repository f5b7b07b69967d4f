package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clubsaas/clubsaas/internal/infrastructure/migration"
	"github.com/clubsaas/clubsaas/internal/interfaces/cli/appenv"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the embedded goose migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*appenv.Env, *migration.GooseStrategy, error) {
	app, err := appenv.Setup(context.Background(), appenv.ResolveEnv(env), false)
	if err != nil {
		return nil, nil, err
	}

	strategy, err := migration.NewGooseStrategy(app.Config.Database.Driver)
	if err != nil {
		app.Close()
		return nil, nil, err
	}

	return app, strategy, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	app, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Log.Infow("running up migrations", "environment", app.Name)

	if err := strategy.Migrate(app.DB); err != nil {
		app.Log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	app.Log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	app, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Log.Infow("running down migrations", "environment", app.Name, "steps", steps)

	if err := strategy.MigrateDown(app.DB, steps); err != nil {
		app.Log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	app.Log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer app.Close()

	current, err := strategy.GetVersion(app.DB)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", app.Name)
	fmt.Fprintf(out, "  Driver:          %s\n", app.Config.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n\n", current)

	if err := strategy.Status(app.DB); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}
