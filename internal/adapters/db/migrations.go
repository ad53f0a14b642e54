// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationConfig holds migration configuration
type MigrationConfig struct {
	DatabaseURL string
	// SourcePath reads migrations from disk instead of the embedded set
	SourcePath       string
	TableName        string
	SchemaName       string
	ForceDirty       bool
	StatementTimeout time.Duration
}

// Migrator handles database migrations
type Migrator struct {
	migrate *migrate.Migrate
	config  *MigrationConfig
	logger  *slog.Logger
}

// EmbeddedMigrations returns the schema migrations compiled into the binary
func EmbeddedMigrations() fs.FS {
	return embeddedMigrations
}

// NewMigrator creates a new migrator instance
func NewMigrator(config *MigrationConfig, logger *slog.Logger) (*Migrator, error) {
	if config == nil {
		return nil, fmt.Errorf("migration config is required")
	}

	if config.TableName == "" {
		config.TableName = "schema_migrations"
	}
	if config.SchemaName == "" {
		config.SchemaName = "public"
	}
	if config.StatementTimeout == 0 {
		config.StatementTimeout = time.Minute * 10
	}

	db, err := sql.Open("pgx", config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable:  config.TableName,
		SchemaName:       config.SchemaName,
		StatementTimeout: config.StatementTimeout,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	var (
		sourceName   string
		sourceDriver source.Driver
	)
	if config.SourcePath != "" {
		sourceName = "file"
		sourceDriver, err = source.Open("file://" + config.SourcePath)
	} else {
		sourceName = "iofs"
		sourceDriver, err = iofs.New(embeddedMigrations, "migrations")
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s source driver: %w", sourceName, err)
	}

	m, err := migrate.NewWithInstance(sourceName, sourceDriver, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return &Migrator{
		migrate: m,
		config:  config,
		logger:  logger.With(slog.String("component", "migrator")),
	}, nil
}

// Up runs all available migrations
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.InfoContext(ctx, "running migrations up")

	version, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if dirty && m.config.ForceDirty {
		m.logger.WarnContext(ctx, "forcing dirty migration",
			slog.Uint64("version", uint64(version)))
		if err := m.migrate.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.InfoContext(ctx, "no migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := m.migrate.Version()
	if err != nil {
		m.logger.WarnContext(ctx, "failed to get new version", slog.String("error", err.Error()))
	} else {
		m.logger.InfoContext(ctx, "migrations completed",
			slog.Uint64("version", uint64(newVersion)))
	}

	return nil
}

// Down rolls back last migration
func (m *Migrator) Down(ctx context.Context) error {
	m.logger.InfoContext(ctx, "rolling back last migration")

	version, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", version)
	}

	if err := m.migrate.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, fs.ErrNotExist) {
			m.logger.InfoContext(ctx, "no migrations to rollback")
			return nil
		}
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	newVersion, _, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		m.logger.WarnContext(ctx, "failed to get new version", slog.String("error", err.Error()))
	} else {
		m.logger.InfoContext(ctx, "migration rolled back",
			slog.Uint64("from_version", uint64(version)),
			slog.Uint64("to_version", uint64(newVersion)))
	}

	return nil
}

// Force sets the version without running migrations
func (m *Migrator) Force(ctx context.Context, version int) error {
	m.logger.WarnContext(ctx, "forcing migration version",
		slog.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}

	return nil
}

// Version returns current migration version. A database with no migrations
// applied reports version 0.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			m.logger.InfoContext(ctx, "no migrations applied yet")
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}

	m.logger.InfoContext(ctx, "current migration version",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))

	return version, dirty, nil
}

// Close closes the migrator and releases resources
func (m *Migrator) Close() error {
	if m.migrate != nil {
		sourceErr, dbErr := m.migrate.Close()
		if sourceErr != nil || dbErr != nil {
			return fmt.Errorf("failed to close migrator - source: %v, db: %v", sourceErr, dbErr)
		}
	}

	m.logger.Info("migrator closed")
	return nil
}

// RunMigrationsWithRetry runs migrations with retry logic
func RunMigrationsWithRetry(ctx context.Context, config *MigrationConfig, logger *slog.Logger, maxRetries int) error {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			waitTime := time.Duration(i) * time.Second * 2
			logger.InfoContext(ctx, "retrying migration",
				slog.Int("attempt", i+1),
				slog.Duration("wait", waitTime))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitTime):
			}
		}

		migrator, err := NewMigrator(config, logger)
		if err != nil {
			lastErr = fmt.Errorf("failed to create migrator: %w", err)
			logger.ErrorContext(ctx, "failed to create migrator",
				slog.String("error", err.Error()),
				slog.Int("attempt", i+1))
			continue
		}

		err = migrator.Up(ctx)
		closeErr := migrator.Close()

		if err == nil && closeErr == nil {
			return nil
		}

		if err != nil {
			lastErr = err
			logger.ErrorContext(ctx, "migration failed",
				slog.String("error", err.Error()),
				slog.Int("attempt", i+1))
		}
		if closeErr != nil {
			logger.ErrorContext(ctx, "failed to close migrator",
				slog.String("error", closeErr.Error()))
		}
	}

	return fmt.Errorf("migrations failed after %d attempts: %w", maxRetries, lastErr)
}
