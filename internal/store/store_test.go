package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/dbpool"
	"github.com/tasktrail/tasktrail/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase creates a Base for a test. Rows inserted through the
// returned base are deleted after the test via cleanupTask.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	env := getTestEnv(t)

	return store.Base{Pool: env.pool, Log: env.log}
}

// cleanupTask removes a task and its audit entries after the test.
func cleanupTask(t *testing.T, base store.Base, taskID int64) {
	t.Helper()

	t.Cleanup(func() {
		ctx := context.Background()
		base.Pool.Exec(ctx, "DELETE FROM audit_logs WHERE task_id = $1", taskID) //nolint:errcheck // best-effort cleanup
		base.Pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", taskID)           //nolint:errcheck // best-effort cleanup
	})
}

// auditEntriesFor returns action and payload of audit entries for one
// task, oldest first.
func auditEntriesFor(t *testing.T, base store.Base, taskID int64) []auditRow {
	t.Helper()

	rows, err := base.Pool.Query(context.Background(),
		"SELECT action, COALESCE(updated_content::text, '') FROM audit_logs WHERE task_id = $1 ORDER BY id ASC",
		taskID,
	)
	if err != nil {
		t.Fatalf("querying audit entries: %v", err)
	}
	defer rows.Close()

	var entries []auditRow

	for rows.Next() {
		var r auditRow
		if err := rows.Scan(&r.action, &r.payload); err != nil {
			t.Fatalf("scanning audit entry: %v", err)
		}

		entries = append(entries, r)
	}

	return entries
}

type auditRow struct {
	action  string
	payload string
}
