package api

import (
	"context"

	"github.com/tasktrail/tasktrail/internal/models"
)

// TaskRepository defines task operations used by TaskHandler.
type TaskRepository interface {
	ListTasks(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// AuditRepository defines audit log operations used by AuditHandler.
type AuditRepository interface {
	ListEntries(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error)
}
