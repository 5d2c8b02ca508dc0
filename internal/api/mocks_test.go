package api_test

import (
	"context"

	"github.com/tasktrail/tasktrail/internal/models"
)

// mockTaskRepo implements api.TaskRepository for testing.
type mockTaskRepo struct {
	listFn   func(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error)
	getFn    func(ctx context.Context, id int64) (*models.Task, error)
	createFn func(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	updateFn func(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockTaskRepo) ListTasks(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
	return m.listFn(ctx, opts)
}

func (m *mockTaskRepo) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return m.getFn(ctx, id)
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	return m.createFn(ctx, req)
}

func (m *mockTaskRepo) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockAuditRepo implements api.AuditRepository for testing.
type mockAuditRepo struct {
	listFn func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error)
}

func (m *mockAuditRepo) ListEntries(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error) {
	return m.listFn(ctx, opts)
}
