package service

import (
	"context"
	"sync"

	"github.com/tasktrail/tasktrail/internal/models"
)

// mockTaskStore records calls and returns configured responses.
type mockTaskStore struct {
	mu    sync.Mutex
	calls []string

	createTask func(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	getTask    func(ctx context.Context, id int64) (*models.Task, error)
	updateTask func(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error)
	deleteTask func(ctx context.Context, id int64) error
	listTasks  func(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error)
}

func (m *mockTaskStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockTaskStore) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockTaskStore) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	m.record("CreateTask")
	return m.createTask(ctx, fields)
}

func (m *mockTaskStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	m.record("GetTask")
	return m.getTask(ctx, id)
}

func (m *mockTaskStore) UpdateTask(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error) {
	m.record("UpdateTask")
	return m.updateTask(ctx, id, fields)
}

func (m *mockTaskStore) DeleteTask(ctx context.Context, id int64) error {
	m.record("DeleteTask")
	return m.deleteTask(ctx, id)
}

func (m *mockTaskStore) ListTasks(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
	m.record("ListTasks")
	return m.listTasks(ctx, opts)
}

// mockAuditStore returns configured audit pages.
type mockAuditStore struct {
	listEntries func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error)
}

func (m *mockAuditStore) ListEntries(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error) {
	return m.listEntries(ctx, opts)
}
