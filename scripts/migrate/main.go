// Package main imports tasks and their audit trail from the legacy
// SQLite database into PostgreSQL.
//
// Usage:
//
//	SQLITE_PATH=data/tasks.db DATABASE_URL=postgres://... go run ./scripts/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

// config holds environment-driven migration settings.
type config struct {
	SQLitePath  string
	DatabaseURL string
	DryRun      bool
}

// report holds the final migration summary.
type report struct {
	Source          string
	Target          string
	TasksRead       int
	TasksInserted   int
	TasksVerified   int
	EntriesRead     int
	EntriesInserted int
	EntriesSkipped  int
	EntriesVerified int
	SpotChecks      []string
	Duration        time.Duration
	DryRun          bool
	Err             error
}

func main() {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	slog.Info("starting migration",
		"sqlite", cfg.SQLitePath,
		"dry_run", cfg.DryRun,
	)

	start := time.Now()
	r, err := runMigration(context.Background(), cfg)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		slog.Error("migration failed", "error", err)
	}
	printReport(&r)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	return config{
		SQLitePath:  envOr("SQLITE_PATH", "data/tasks.db"),
		DatabaseURL: envOr("DATABASE_URL", ""),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
}

// runMigration executes the full migration pipeline.
func runMigration(ctx context.Context, cfg config) (report, error) {
	r := report{
		Source: cfg.SQLitePath,
		Target: sanitizeURL(cfg.DatabaseURL),
		DryRun: cfg.DryRun,
	}

	// Open SQLite (read-only).
	lite, err := sql.Open("sqlite", cfg.SQLitePath+"?mode=ro")
	if err != nil {
		return r, fmt.Errorf("open sqlite: %w", err)
	}
	defer lite.Close()

	tasks, err := readTasks(ctx, lite)
	if err != nil {
		return r, fmt.Errorf("read tasks: %w", err)
	}
	r.TasksRead = len(tasks)
	slog.Info("read tasks from sqlite", "count", r.TasksRead)

	entries, err := readAuditEntries(ctx, lite)
	if err != nil {
		return r, fmt.Errorf("read audit entries: %w", err)
	}
	r.EntriesRead = len(entries)
	slog.Info("read audit entries from sqlite", "count", r.EntriesRead)

	if cfg.DryRun {
		slog.Info("dry run, skipping PostgreSQL writes")
		r.TasksInserted = r.TasksRead
		r.EntriesInserted = r.EntriesRead
		return r, nil
	}

	// Connect to PostgreSQL and run in a transaction.
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return r, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if err := insertTasks(ctx, tx, tasks); err != nil {
		return r, fmt.Errorf("insert tasks: %w", err)
	}
	r.TasksInserted = len(tasks)
	slog.Info("inserted tasks", "count", r.TasksInserted)

	inserted, skipped := insertAuditEntries(ctx, tx, entries)
	r.EntriesInserted = inserted
	r.EntriesSkipped = len(skipped)
	slog.Info("inserted audit entries", "count", r.EntriesInserted, "skipped", r.EntriesSkipped)

	if err := resetSequences(ctx, tx); err != nil {
		return r, fmt.Errorf("reset sequences: %w", err)
	}

	// Verify counts.
	r.TasksVerified, err = countRows(ctx, tx, "tasks")
	if err != nil {
		return r, fmt.Errorf("verify task count: %w", err)
	}
	r.EntriesVerified, err = countRows(ctx, tx, "audit_logs")
	if err != nil {
		return r, fmt.Errorf("verify audit count: %w", err)
	}

	// Spot-check random tasks.
	r.SpotChecks, err = spotCheck(ctx, tx, tasks)
	if err != nil {
		return r, fmt.Errorf("spot check: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}
	slog.Info("transaction committed")
	return r, nil
}
