// Package store provides focused, single-concern data access stores for
// tasks and their audit trail.
//
// Each store owns one table and embeds shared helpers (Pool, logger) via
// the Base struct. The task store records audit entries through the
// package-level recordEntry helper so both writes share one transaction.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// maxListLimit caps the page size of list queries.
const maxListLimit = 100

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// beginTx starts a read-write transaction.
func (b *Base) beginTx(ctx context.Context) (pgx.Tx, error) {
	return b.Pool.Begin(ctx)
}

// beginReadTx starts a read-only transaction so list queries see one
// consistent snapshot for both the page slice and the total count.
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	return b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
}

// notify sends a pg_notify on the task_changes channel (best-effort,
// post-commit). Feed consumers tolerate gaps; the audit log itself is
// the durable record.
func (b *Base) notify(action string, taskID, auditID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static keys, cannot fail.
		"action":   action,
		"task_id":  taskID,
		"audit_id": auditID,
	})
	if _, err := b.Pool.Exec(ctx, "SELECT pg_notify('task_changes', $1)", string(payload)); err != nil {
		b.Log.WithError(err).Warn("failed to send " + action + " notification")
	}
}
