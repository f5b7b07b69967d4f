package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/clubsaas/clubsaas/internal/shared/config"
)

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig    `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Auth        sharedConfig.AuthConfig        `mapstructure:"auth"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	Billing     sharedConfig.BillingConfig     `mapstructure:"billing"`
	MercadoPago sharedConfig.MercadoPagoConfig `mapstructure:"mercadopago"`
	Bootstrap   sharedConfig.BootstrapConfig   `mapstructure:"bootstrap"`
	RateLimit   sharedConfig.RateLimitConfig   `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is tolerated so the service can run from env alone.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("CLUBSAAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects combinations that cannot run.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Billing.PollConcurrency < 1 {
		return fmt.Errorf("billing.poll_concurrency must be at least 1")
	}
	if c.Billing.PollEnabled && c.Billing.PollInterval <= 0 {
		return fmt.Errorf("billing.poll_interval must be positive when polling is enabled")
	}
	if c.Billing.PollEnabled && c.Billing.PollTimeout >= c.Billing.PollInterval {
		return fmt.Errorf("billing.poll_timeout must be shorter than billing.poll_interval")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "America/Sao_Paulo")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "clubsaas_dev")
	v.SetDefault("database.path", "clubsaas.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 720)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("billing.webhook_secret", "")
	v.SetDefault("billing.allow_unsigned_webhook", false)
	v.SetDefault("billing.poll_enabled", true)
	v.SetDefault("billing.poll_interval", "5m")
	v.SetDefault("billing.poll_timeout", "2m")
	v.SetDefault("billing.poll_concurrency", 4)

	v.SetDefault("mercadopago.access_token", "")
	v.SetDefault("mercadopago.base_url", "https://api.mercadopago.com")
	v.SetDefault("mercadopago.timeout", "15s")
	v.SetDefault("mercadopago.back_url", "http://localhost:5173/billing/return")
	v.SetDefault("mercadopago.currency", "BRL")

	v.SetDefault("bootstrap.super_admin_email", "")
	v.SetDefault("bootstrap.super_admin_password", "")
	v.SetDefault("bootstrap.super_admin_name", "Owner")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.limit", 300)
	v.SetDefault("ratelimit.window", "15m")
}
