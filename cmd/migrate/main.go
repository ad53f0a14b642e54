// cmd/migrate/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/itemservice/internal/adapters/db"
	"github.com/ammerola/itemservice/internal/pkg/config"
	"github.com/ammerola/itemservice/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const usage = `usage: migrate [flags] <command>

commands:
  up         apply all pending migrations
  down       roll back the most recent migration
  version    print the current schema version
  force N    set the schema version to N without running migrations

flags:
`

// command is a parsed migrate invocation
type command struct {
	name    string
	version int
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	retries := flag.Int("retries", 1, "attempts for the up command")
	forceDirty := flag.Bool("force-dirty", false, "clear a dirty version before migrating up")
	flag.Parse()

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New()
	ctx = logger.WithRunID(ctx, runID)
	ctx = logger.WithOperation(ctx, "migrate_"+cmd.name)

	slogger.InfoContext(ctx, "starting migration command",
		slog.String("command", cmd.name),
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		ForceDirty:  *forceDirty,
	}

	start := time.Now()
	if err := run(ctx, cmd, migrationConfig, *retries, slogger); err != nil {
		slogger.ErrorContext(ctx, "migration command failed",
			slog.String("command", cmd.name),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.InfoContext(ctx, "migration command completed",
		slog.String("command", cmd.name),
		slog.Duration("duration", time.Since(start)))
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("missing command")
	}

	switch args[0] {
	case "up", "down", "version":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%s takes no arguments", args[0])
		}
		return command{name: args[0]}, nil
	case "force":
		if len(args) != 2 {
			return command{}, fmt.Errorf("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return command{}, fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if version < -1 {
			return command{}, fmt.Errorf("invalid version %d", version)
		}
		return command{name: "force", version: version}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
}

func run(ctx context.Context, cmd command, config *db.MigrationConfig, retries int, logger *slog.Logger) error {
	if cmd.name == "up" && retries > 1 {
		return db.RunMigrationsWithRetry(ctx, config, logger, retries)
	}

	migrator, err := db.NewMigrator(config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close migrator", slog.String("error", err.Error()))
		}
	}()

	switch cmd.name {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "force":
		return migrator.Force(ctx, cmd.version)
	case "version":
		version, dirty, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}
}
