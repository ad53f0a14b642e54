// internal/pkg/config/config.go
package config

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Repository variants selectable through REPOSITORY_VARIANT
const (
	RepositoryPositional = "positional"
	RepositoryNamed      = "named"
	RepositorySQL        = "sql"
)

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Repository binding
	Repository RepositoryConfig

	// AWS
	AWS AWSConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string `required:"true"`
	Port               string `required:"true"`
	User               string `required:"true"`
	Password           string
	Name               string `required:"true"`
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	MigrationPath      string
	// PasswordSecret is the Secrets Manager id holding the password
	PasswordSecret string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	PoolTimeout  time.Duration
	TTL          time.Duration
}

// RepositoryConfig selects the item repository binding
type RepositoryConfig struct {
	Variant string
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region string
}

// Load loads configuration from the environment, an optional CONFIG_FILE and,
// when DB_PASSWORD_SECRET is set, AWS Secrets Manager.
func Load(logger *slog.Logger) (*Config, error) {
	cfg, err := load(logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.PasswordSecret != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sm, err := NewAWSSecretsManager(ctx, cfg.AWS.Region, cfg.Database.PasswordSecret, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create secrets manager: %w", err)
		}
		if err := cfg.ResolveSecrets(ctx, sm); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v, env)

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		logger.Info("config file loaded", slog.String("file", v.ConfigFileUsed()))
	}

	return &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Environment: env,
			Version:     v.GetString("app.version"),
			LogLevel:    v.GetString("log.level"),
			LogFormat:   v.GetString("log.format"),
			Debug:       v.GetBool("app.debug"),
		},
		Database: DatabaseConfig{
			Host:               v.GetString("db.host"),
			Port:               v.GetString("db.port"),
			User:               v.GetString("db.user"),
			Password:           v.GetString("db.password"),
			Name:               v.GetString("db.name"),
			SSLMode:            v.GetString("db.ssl_mode"),
			MaxConnections:     v.GetInt32("db.max_connections"),
			MinConnections:     v.GetInt32("db.min_connections"),
			MaxConnLifetime:    v.GetDuration("db.connection_lifetime"),
			MaxConnIdleTime:    v.GetDuration("db.idle_time"),
			HealthCheckPeriod:  v.GetDuration("db.health_check_period"),
			ConnectTimeout:     v.GetDuration("db.connect_timeout"),
			StatementCacheMode: v.GetString("db.statement_cache_mode"),
			EnableQueryLogging: v.GetBool("db.query_logging"),
			MigrationPath:      v.GetString("db.migration_path"),
			PasswordSecret:     v.GetString("db.password_secret"),
		},
		Redis: RedisConfig{
			Enabled:      v.GetBool("redis.enabled"),
			Host:         v.GetString("redis.host"),
			Port:         v.GetString("redis.port"),
			Password:     v.GetString("redis.password"),
			DB:           v.GetInt("redis.db"),
			MaxRetries:   v.GetInt("redis.max_retries"),
			DialTimeout:  v.GetDuration("redis.dial_timeout"),
			ReadTimeout:  v.GetDuration("redis.read_timeout"),
			WriteTimeout: v.GetDuration("redis.write_timeout"),
			PoolSize:     v.GetInt("redis.pool_size"),
			MinIdleConns: v.GetInt("redis.min_idle_conns"),
			PoolTimeout:  v.GetDuration("redis.pool_timeout"),
			TTL:          v.GetDuration("redis.ttl"),
		},
		Repository: RepositoryConfig{
			Variant: strings.ToLower(v.GetString("repository.variant")),
		},
		AWS: AWSConfig{
			Region: v.GetString("aws.region"),
		},
	}, nil
}

// ResolveSecrets replaces the database password with the "password" entry of
// the configured secret.
func (c *Config) ResolveSecrets(ctx context.Context, sm SecretsManager) error {
	password, err := sm.GetSecret(ctx, "password")
	if err != nil {
		return fmt.Errorf("failed to resolve database password: %w", err)
	}
	c.Database.Password = password
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}

	return nil
}

// GetDatabaseURL returns the database URL used by the migrator
func (c *Config) GetDatabaseURL() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// GetRedisAddress returns the host:port of the Redis server
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func setDefaults(v *viper.Viper, env string) {
	dev := env == "development" || env == "local"

	v.SetDefault("app.name", "item-service")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.debug", dev)
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "json")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "items")
	v.SetDefault("db.password", "items_dev")
	v.SetDefault("db.name", "item_service")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)
	v.SetDefault("db.connection_lifetime", time.Hour)
	v.SetDefault("db.idle_time", 30*time.Minute)
	v.SetDefault("db.health_check_period", time.Minute)
	v.SetDefault("db.connect_timeout", 10*time.Second)
	v.SetDefault("db.statement_cache_mode", "describe")
	v.SetDefault("db.query_logging", dev)
	v.SetDefault("db.migration_path", "")
	v.SetDefault("db.password_secret", "")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.pool_timeout", 4*time.Second)
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("repository.variant", RepositoryPositional)

	v.SetDefault("aws.region", "us-east-1")
}
