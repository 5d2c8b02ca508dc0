package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// auditEntry mirrors one row of the legacy SQLite audit_logs table.
type auditEntry struct {
	ID             int64
	Timestamp      string
	Action         string
	TaskID         sql.NullInt64
	UpdatedContent sql.NullString
}

// skippedEntry records an audit row that was not migrated.
type skippedEntry struct {
	ID     int64
	Reason string
}

// legacyActions maps the legacy display-style action strings to the
// canonical action names.
var legacyActions = map[string]string{
	"Create Task": "CreateTask",
	"Update Task": "UpdateTask",
	"Delete Task": "DeleteTask",
	// Some exports already carry canonical names.
	"CreateTask": "CreateTask",
	"UpdateTask": "UpdateTask",
	"DeleteTask": "DeleteTask",
}

// readAuditEntries loads every audit row from SQLite in insertion order.
func readAuditEntries(ctx context.Context, lite *sql.DB) ([]auditEntry, error) {
	rows, err := lite.QueryContext(ctx,
		`SELECT id, timestamp, action, task_id, updated_content FROM audit_logs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []auditEntry
	for rows.Next() {
		var e auditEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.TaskID, &e.UpdatedContent); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// insertAuditEntries writes audit rows into PostgreSQL, preserving IDs.
// Rows with unrecognized actions are skipped, not fatal: the legacy
// database accumulated freeform actions during early development.
func insertAuditEntries(ctx context.Context, tx pgx.Tx, entries []auditEntry) (int, []skippedEntry) {
	var inserted int
	var skipped []skippedEntry

	for _, e := range entries {
		action, ok := legacyActions[e.Action]
		if !ok {
			slog.Warn("skipping audit entry with unknown action", "id", e.ID, "action", e.Action)
			skipped = append(skipped, skippedEntry{ID: e.ID, Reason: "unknown action " + e.Action})
			continue
		}

		var taskID any
		if e.TaskID.Valid {
			taskID = e.TaskID.Int64
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO audit_logs (id, ts, action, task_id, updated_content)
			 OVERRIDING SYSTEM VALUE
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			e.ID, parseTime(e.Timestamp), action, taskID, normalizeJSON(e.UpdatedContent))
		if err != nil {
			slog.Warn("skipping audit entry", "id", e.ID, "error", err)
			skipped = append(skipped, skippedEntry{ID: e.ID, Reason: err.Error()})
			continue
		}
		inserted++
	}
	return inserted, skipped
}

// normalizeJSON validates an optional JSON payload, returning nil for
// absent or malformed content so the JSONB column accepts it.
func normalizeJSON(s sql.NullString) any {
	if !s.Valid || s.String == "" {
		return nil
	}
	var js json.RawMessage
	if json.Unmarshal([]byte(s.String), &js) != nil {
		slog.Warn("invalid JSON in updated_content, storing null", "value", s.String)
		return nil
	}
	return s.String
}
