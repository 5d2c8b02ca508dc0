package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"
)

// task mirrors one row of the legacy SQLite tasks table.
type task struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   string // ISO-8601 text in the legacy schema
}

// readTasks loads every task from SQLite in insertion order.
func readTasks(ctx context.Context, lite *sql.DB) ([]task, error) {
	rows, err := lite.QueryContext(ctx,
		`SELECT id, title, description, created_at FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task
	for rows.Next() {
		var t task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// insertTasks writes tasks into PostgreSQL, preserving the legacy IDs so
// that audit entries keep pointing at the right rows.
func insertTasks(ctx context.Context, tx pgx.Tx, tasks []task) error {
	for _, t := range tasks {
		_, err := tx.Exec(ctx,
			`INSERT INTO tasks (id, title, description, created_at)
			 OVERRIDING SYSTEM VALUE
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO NOTHING`,
			t.ID, t.Title, t.Description, parseTime(t.CreatedAt))
		if err != nil {
			return fmt.Errorf("task %d: %w", t.ID, err)
		}
	}
	return nil
}

// resetSequences moves the identity sequences past the imported IDs.
func resetSequences(ctx context.Context, tx pgx.Tx) error {
	for _, table := range []string{"tasks", "audit_logs"} {
		_, err := tx.Exec(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))`,
			table, table))
		if err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
	}
	return nil
}

// spotCheck verifies up to 5 random tasks match between SQLite and PostgreSQL.
func spotCheck(ctx context.Context, tx pgx.Tx, tasks []task) ([]string, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	count := min(5, len(tasks))
	indices := rand.Perm(len(tasks))[:count]
	var checks []string

	for _, idx := range indices {
		t := tasks[idx]
		var pgTitle, pgDescription string
		err := tx.QueryRow(ctx,
			`SELECT title, description FROM tasks WHERE id = $1`,
			t.ID,
		).Scan(&pgTitle, &pgDescription)
		if err != nil {
			return checks, fmt.Errorf("task %d: %w", t.ID, err)
		}

		if pgTitle != t.Title || pgDescription != t.Description {
			slog.Warn("spot check mismatch", "id", t.ID)
			checks = append(checks, fmt.Sprintf("task %d: MISMATCH", t.ID))
			continue
		}
		checks = append(checks, fmt.Sprintf("task %d: ok", t.ID))
	}
	return checks, nil
}
