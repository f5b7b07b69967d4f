package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/clubsaas/clubsaas/internal/infrastructure/migration"
	"github.com/clubsaas/clubsaas/internal/infrastructure/scheduler"
	"github.com/clubsaas/clubsaas/internal/interfaces/cli/appenv"
	httpRouter "github.com/clubsaas/clubsaas/internal/interfaces/http"
	"github.com/clubsaas/clubsaas/internal/shared/constants"
	"github.com/clubsaas/clubsaas/internal/shared/goroutine"
	"github.com/clubsaas/clubsaas/internal/shared/version"
)

const shutdownTimeout = 30 * time.Second

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the billing API, webhook receiver and reconciliation poller.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env = appenv.ResolveEnv(env)

	ctx := context.Background()
	app, err := appenv.Setup(ctx, env, true)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config
	log := app.Log

	log.Infow("starting server",
		"environment", env,
		"version", version.String(),
		"auto_migrate", autoMigrate)

	gin.SetMode(appenv.MapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(app); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(cfg, app.DB, app.Redis, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	created, err := container.BootstrapSuperAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to bootstrap super admin: %w", err)
	}
	if created {
		log.Infow("super admin created", "email", cfg.Bootstrap.SuperAdminEmail)
	}

	if cfg.Billing.PollEnabled {
		manager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		if err := manager.RegisterReconciliationJob(container.ReconciliationTask(), cfg.Billing.PollInterval); err != nil {
			return fmt.Errorf("failed to register reconciliation job: %w", err)
		}
		manager.Start()
		defer func() {
			if err := manager.Stop(); err != nil {
				log.Errorw("failed to stop scheduler", "error", err)
			}
		}()
	} else {
		log.Infow("reconciliation poller disabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      httpRouter.NewRouter(container),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server listening",
			"address", cfg.Server.GetAddr(),
			"mode", gin.Mode())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(app *appenv.Env) error {
	log := app.Log

	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	if autoMigrate {
		if app.Name == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment, this is not recommended")
		}

		strategy, err := migration.ForEnvironment(app.Name, app.Config.Database.Driver)
		if err != nil {
			return err
		}
		log.Infow("running migrations", "strategy", strategy.GetName())
		if err := strategy.Migrate(app.DB); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("migrations completed successfully")
		return nil
	}

	strategy, err := migration.NewGooseStrategy(app.Config.Database.Driver)
	if err != nil {
		return err
	}
	current, err := strategy.GetVersion(app.DB)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", current)
	return nil
}
