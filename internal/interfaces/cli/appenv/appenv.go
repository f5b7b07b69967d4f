// Package appenv loads configuration and opens the shared resources every
// command needs.
package appenv

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/infrastructure/cache"
	"github.com/clubsaas/clubsaas/internal/infrastructure/config"
	"github.com/clubsaas/clubsaas/internal/infrastructure/database"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// Env holds what a command runs against. Redis is nil when disabled or unreachable.
type Env struct {
	Name   string
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Log    logger.Interface
}

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flag string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flag
}

// Setup loads config for env, initializes logging and the business timezone,
// and opens the database. Redis is connected only when withRedis is set.
func Setup(ctx context.Context, env string, withRedis bool) (*Env, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, MapEnvToGinMode(env)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	e := &Env{Name: env, Config: cfg, DB: database.Get(), Log: log}

	if withRedis && cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warnw("redis unavailable, continuing with in-process fallbacks", "error", err)
		} else {
			e.Redis = client
			log.Infow("redis connected", "addr", cfg.Redis.GetAddr())
		}
	}

	return e, nil
}

// Close releases the database and Redis connections.
func (e *Env) Close() {
	if e.Redis != nil {
		if err := e.Redis.Close(); err != nil {
			e.Log.Warnw("failed to close redis", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		e.Log.Warnw("failed to close database", "error", err)
	}
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
