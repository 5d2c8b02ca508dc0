// Package service provides business logic between API handlers and data
// stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/models"
)

// TaskStore is the data-access interface TaskService depends on. The
// store performs each mutation and its audit write in one transaction;
// the service owns input validation and never touches unsanitized values
// to storage.
type TaskStore interface {
	CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error)
}

// TaskService wraps TaskStore with validation and logging.
type TaskService struct {
	store TaskStore
	log   *logrus.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(store TaskStore, log *logrus.Logger) *TaskService {
	return &TaskService{store: store, log: log}
}

// ListTasks returns a filtered, paginated task page (pass-through).
func (s *TaskService) ListTasks(ctx context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
	return s.store.ListTasks(ctx, opts)
}

// GetTask returns a single task by id (pass-through).
func (s *TaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// CreateTask validates and sanitizes the request, then persists the task
// together with its Create audit entry.
func (s *TaskService) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	fields, err := req.Validate()
	if err != nil {
		return nil, err
	}

	task, err := s.store.CreateTask(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task_id": task.ID, "action": models.ActionCreateTask}).Info("task created")

	return task, nil
}

// UpdateTask validates the new values and applies them. Updates whose
// sanitized values match the stored row are genuine no-ops: nothing is
// written and no audit entry appears.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error) {
	fields, err := req.Validate()
	if err != nil {
		return nil, err
	}

	task, err := s.store.UpdateTask(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task_id": id, "action": models.ActionUpdateTask}).Info("task updated")

	return task, nil
}

// DeleteTask removes a task. A missing id is a hard ErrTaskNotFound,
// matching update semantics.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"task_id": id, "action": models.ActionDeleteTask}).Info("task deleted")

	return nil
}
