package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/models"
)

const taskColumns = "id, title, description, created_at"

// TaskStore handles task CRUD. Every mutation records its audit entry in
// the same transaction: concurrent readers never observe a task change
// without its audit entry, or an audit entry for an uncommitted change.
type TaskStore struct {
	Base
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(base Base) *TaskStore {
	return &TaskStore{Base: base}
}

// scanTask scans one task row.
func scanTask(scan func(dest ...any) error) (*models.Task, error) {
	var t models.Task
	if err := scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTask inserts a new task and its Create audit entry, returning
// the created record with its storage-assigned id and timestamp.
func (s *TaskStore) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	row := tx.QueryRow(ctx,
		"INSERT INTO tasks (title, description) VALUES ($1, $2) RETURNING "+taskColumns,
		fields.Title, fields.Description,
	)

	t, err := scanTask(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created task: %w", err)
	}

	payload, err := models.CreatePayload(fields)
	if err != nil {
		return nil, err
	}

	auditID, _, err := recordEntry(ctx, tx, models.ActionCreateTask, t.ID, payload)
	if err != nil {
		s.logAuditFailure(err, models.ActionCreateTask, t.ID)

		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create task: %w", err)
	}

	s.notify(string(models.ActionCreateTask), t.ID, auditID)

	return t, nil
}

// GetTask returns a single task by id.
func (s *TaskStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)

	t, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTaskNotFound
		}

		return nil, fmt.Errorf("scanning task: %w", err)
	}

	return t, nil
}

// UpdateTask applies sanitized new values to an existing task. The row
// is re-fetched under a row lock so the diff is computed against the
// state this writer observed, never stale caller state. An empty diff
// is a genuine no-op: no write happens and no audit entry is recorded.
func (s *TaskStore) UpdateTask(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	row := tx.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1 FOR UPDATE", id)

	existing, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTaskNotFound
		}

		return nil, fmt.Errorf("fetching task for update: %w", err)
	}

	diff := models.DiffFields(existing, fields)
	if len(diff) == 0 {
		return existing, nil
	}

	if _, err := tx.Exec(ctx,
		"UPDATE tasks SET title = $1, description = $2 WHERE id = $3",
		fields.Title, fields.Description, id,
	); err != nil {
		return nil, fmt.Errorf("executing task update: %w", err)
	}

	payload, err := models.UpdatePayload(diff)
	if err != nil {
		return nil, err
	}

	auditID, _, err := recordEntry(ctx, tx, models.ActionUpdateTask, id, payload)
	if err != nil {
		s.logAuditFailure(err, models.ActionUpdateTask, id)

		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update task: %w", err)
	}

	s.notify(string(models.ActionUpdateTask), id, auditID)

	updated := *existing
	updated.Title = fields.Title
	updated.Description = fields.Description

	return &updated, nil
}

// DeleteTask hard-deletes a task, recording a Delete audit entry that
// snapshots the title at the moment of deletion.
func (s *TaskStore) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var title string

	err = tx.QueryRow(ctx, "SELECT title FROM tasks WHERE id = $1 FOR UPDATE", id).Scan(&title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrTaskNotFound
		}

		return fmt.Errorf("fetching task for delete: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("executing task delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrTaskNotFound
	}

	payload, err := models.DeletePayload(title)
	if err != nil {
		return err
	}

	auditID, _, err := recordEntry(ctx, tx, models.ActionDeleteTask, id, payload)
	if err != nil {
		s.logAuditFailure(err, models.ActionDeleteTask, id)

		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete task: %w", err)
	}

	s.notify(string(models.ActionDeleteTask), id, auditID)

	return nil
}

// escapeLike escapes LIKE metacharacters so user queries match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)

	return strings.ReplaceAll(s, "_", `\_`)
}

// ListTasks returns one page of tasks plus the total filtered count.
// A non-empty query matches title or description case-insensitively as
// a literal substring. Results are sorted newest first, ties broken by
// id descending.
func (s *TaskStore) ListTasks(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
	opts.Normalize(maxListLimit)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("listing tasks: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	where := ""

	var filterArgs []any

	if q := strings.TrimSpace(opts.Query); q != "" {
		where = " WHERE title ILIKE $1 OR description ILIKE $1"
		filterArgs = append(filterArgs, "%"+escapeLike(q)+"%")
	}

	var total int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+where, filterArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting tasks: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(filterArgs)+1, len(filterArgs)+2,
	)
	args := append(filterArgs, opts.Limit, opts.Offset())

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, opts.Limit)

	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning task row: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating task rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("committing task list: %w", err)
	}

	return tasks, total, nil
}

// logAuditFailure records the one class of failure that threatens audit
// completeness. The transaction is rolled back, so no un-audited
// mutation survives, but the event is surfaced loudly for operators.
func (s *TaskStore) logAuditFailure(err error, action models.AuditAction, taskID int64) {
	s.Log.WithError(err).WithFields(logrus.Fields{
		"action":  action,
		"task_id": taskID,
	}).Error("audit write failed, rolling back task mutation")
}
