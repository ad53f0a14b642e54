// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/itemservice/internal/adapters/db"
	redis_a "github.com/ammerola/itemservice/internal/adapters/redis_adapter"
	"github.com/ammerola/itemservice/internal/core/ports"
	"github.com/ammerola/itemservice/internal/core/services"
	"github.com/ammerola/itemservice/internal/pkg/config"
)

// App holds the wired item service and the handles it owns
type App struct {
	Config   *config.Config
	Database *db.Database
	Redis    *redis.Client
	Items    *services.ItemService

	sqlDB  *sql.DB
	logger *slog.Logger
}

// New connects to the database and, when enabled, Redis, then builds the
// item service on the configured repository variant.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		logger: logger.With(slog.String("component", "app")),
	}

	a.logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, DatabaseConfig(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.Database = database

	// nil interface, not a typed nil, so the service sees caching as disabled
	var cache ports.CacheRepository
	if cfg.Redis.Enabled {
		client, redisCache, err := NewRedisCache(ctx, cfg.Redis, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = client
		cache = redisCache
	} else {
		a.logger.Info("redis disabled, item cache off")
	}

	repo, sqlDB, err := NewItemRepository(cfg.Repository.Variant, database, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.sqlDB = sqlDB

	a.Items = services.NewItemService(repo, cache, cfg.Redis.TTL, logger)

	a.logger.Info("item service initialized",
		slog.String("repository_variant", cfg.Repository.Variant),
		slog.Bool("cache_enabled", cache != nil),
	)

	return a, nil
}

// Close releases every handle the app opened
func (a *App) Close() {
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.logger.Error("failed to close sql handle", slog.String("error", err.Error()))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if a.Database != nil {
		a.Database.Close()
	}
}

// DatabaseConfig maps the application config onto the pool config
func DatabaseConfig(cfg config.DatabaseConfig) *db.Config {
	return &db.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		Database:           cfg.Name,
		SSLMode:            cfg.SSLMode,
		MaxConnections:     cfg.MaxConnections,
		MinConnections:     cfg.MinConnections,
		MaxConnLifetime:    cfg.MaxConnLifetime,
		MaxConnIdleTime:    cfg.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.HealthCheckPeriod,
		ConnectTimeout:     cfg.ConnectTimeout,
		StatementCacheMode: cfg.StatementCacheMode,
		EnableQueryLogging: cfg.EnableQueryLogging,
	}
}

// NewRedisCache opens a Redis client, checks it answers and wraps it in a cache
func NewRedisCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, *redis_a.Cache, error) {
	logger.Info("connecting to Redis",
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
	)

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		PoolTimeout:  cfg.PoolTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, redis_a.NewCache(client, cfg.TTL, logger), nil
}

// NewItemRepository builds the repository for variant. The sql variant also
// returns the *sql.DB it opened over the pool; the caller closes it.
func NewItemRepository(variant string, database *db.Database, logger *slog.Logger) (ports.ItemRepository, *sql.DB, error) {
	switch variant {
	case config.RepositoryPositional, "":
		return db.NewItemRepository(database, logger), nil, nil
	case config.RepositoryNamed:
		return db.NewNamedItemRepository(database, logger), nil, nil
	case config.RepositorySQL:
		sqlDB := database.SQLDB()
		return db.NewSQLItemRepository(sqlDB, logger), sqlDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown repository variant %q", variant)
	}
}
