package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tasktrail/tasktrail/internal/models"
)

const auditColumns = "id, ts, action, task_id, updated_content"

// AuditStore provides read access to the audit_logs table. Writes go
// through recordEntry inside the task store's transactions; there is no
// standalone audit write path.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// recordEntry inserts one audit entry within the caller's transaction.
// Package-level so TaskStore mutations can call it before committing;
// a failure here must roll the whole mutation back. Errors wrap
// models.ErrAuditWrite so callers can log the consistency defect
// distinctly.
func recordEntry(
	ctx context.Context,
	tx pgx.Tx,
	action models.AuditAction,
	taskID int64,
	payload json.RawMessage,
) (int64, time.Time, error) {
	var (
		id int64
		ts time.Time
	)

	err := tx.QueryRow(ctx,
		`INSERT INTO audit_logs (action, task_id, updated_content)
		VALUES ($1, $2, $3)
		RETURNING id, ts`,
		string(action), taskID, payload,
	).Scan(&id, &ts)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: inserting %s entry: %w", models.ErrAuditWrite, action, err)
	}

	return id, ts, nil
}

// ListEntries returns one page of audit entries sorted newest first
// (ties broken by id descending), plus the total
// entry count. Page and limit are coerced to sane bounds.
func (s *AuditStore) ListEntries(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.AuditEntry, int, error) {
	opts.Normalize(maxListLimit)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit entries: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var total int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audit entries: %w", err)
	}

	rows, err := tx.Query(ctx,
		"SELECT "+auditColumns+" FROM audit_logs ORDER BY ts DESC, id DESC LIMIT $1 OFFSET $2",
		opts.Limit, opts.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, opts.Limit)

	for rows.Next() {
		var e models.AuditEntry

		var action string

		if err := rows.Scan(&e.ID, &e.CreatedAt, &action, &e.TaskID, &e.UpdatedContent); err != nil {
			return nil, 0, fmt.Errorf("scanning audit entry: %w", err)
		}

		e.Action = models.AuditAction(action)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating audit entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("committing audit list: %w", err)
	}

	return entries, total, nil
}
