package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/bootstrap"
	"github.com/medipharm/medipharm-console/internal/data"
	"github.com/medipharm/medipharm-console/internal/migrate"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger(config.LoggingConfig{Level: "info", Format: "text"})

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	// Only the migrate command changes the schema.
	cfg.Postgres.RunMigrationsOnStart = false

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, Config: cfg}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		stop()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Create the console_kv table (SESSION_BACKEND=postgres)",
			run:         runMigrations,
		},
		"list-sessions": {
			name:        "list-sessions",
			description: "List persisted browser sessions and who is logged in",
			run:         runListSessions,
		},
		"clear-sessions": {
			name:        "clear-sessions",
			description: "Log out one browser session or all of them",
			run:         runClearSessions,
		},
		"purge-expired": {
			name:        "purge-expired",
			description: "Delete expired session rows once (SESSION_BACKEND=postgres)",
			run:         runPurgeExpired,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: medipharm-admin <command> [flags]\n\nAvailable commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

type migrateOptions struct {
	Timeout time.Duration
	Status  bool
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	fs.BoolVar(&opts.Status, "status", false, "List migrations and when they were applied without changing the schema")
	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	if opts.Status {
		statuses, listErr := migrate.List(ctx, db)
		if listErr != nil {
			return listErr
		}
		return writeMigrationStatus(os.Stdout, statuses)
	}
	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

func writeMigrationStatus(w io.Writer, statuses []migrate.Status) error {
	for _, st := range statuses {
		applied := "pending"
		if st.Applied() {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		if err := writef(w, "%-32s %s\n", st.Version, applied); err != nil {
			return err
		}
	}
	return nil
}

func runPurgeExpired(cmdCtx *commandContext, _ []string) error {
	if cmdCtx.Config.Session.Backend != config.SessionBackendPostgres {
		return fmt.Errorf("purge-expired needs SESSION_BACKEND=postgres, got %q", cmdCtx.Config.Session.Backend)
	}
	db, err := bootstrap.ConnectDB(cmdCtx.Ctx, cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	n, err := data.NewKVRepo(db, data.KVRepoOptions{}).PurgeExpired(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Purged %d expired key(s).\n", n)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
