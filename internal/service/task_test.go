package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name        string
		title       any
		description any
		storeErr    error
		wantErr     error
		wantStore   bool
		wantTitle   string
	}{
		{
			name:  "success sanitizes before storage",
			title: " <b>ship it</b> ", description: "now",
			wantStore: true, wantTitle: "bship it/b",
		},
		{
			name:  "validation failure never reaches storage",
			title: "", description: "x",
			wantErr: models.ErrRequiredField,
		},
		{
			name:  "non-string title",
			title: 7, description: "x",
			wantErr: models.ErrInvalidType,
		},
		{
			name:  "title too long",
			title: strings.Repeat("a", models.MaxTitleLen+1), description: "x",
			wantErr: models.ErrTitleTooLong,
		},
		{
			name:  "store failure propagates",
			title: "ok", description: "ok",
			storeErr: errors.New("db down"), wantErr: nil, wantStore: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotFields models.TaskFields

			store := &mockTaskStore{
				createTask: func(_ context.Context, fields models.TaskFields) (*models.Task, error) {
					gotFields = fields
					if tc.storeErr != nil {
						return nil, tc.storeErr
					}
					return &models.Task{ID: 1, Title: fields.Title, Description: fields.Description, CreatedAt: time.Now()}, nil
				},
			}
			svc := NewTaskService(store, testLogger())

			task, err := svc.CreateTask(context.Background(), models.CreateTaskRequest{Title: tc.title, Description: tc.description})

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got error %v, want %v", err, tc.wantErr)
				}
				if len(store.recorded()) != 0 {
					t.Error("store must not be called on validation failure")
				}
				return
			}

			if tc.storeErr != nil {
				if !errors.Is(err, tc.storeErr) {
					t.Fatalf("got error %v, want %v", err, tc.storeErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotFields.Title != tc.wantTitle {
				t.Errorf("stored title = %q, want %q", gotFields.Title, tc.wantTitle)
			}
			if task.Title != tc.wantTitle {
				t.Errorf("returned title = %q, want %q", task.Title, tc.wantTitle)
			}
		})
	}
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Run("valid update passes sanitized fields through", func(t *testing.T) {
		store := &mockTaskStore{
			updateTask: func(_ context.Context, id int64, fields models.TaskFields) (*models.Task, error) {
				return &models.Task{ID: id, Title: fields.Title, Description: fields.Description}, nil
			},
		}
		svc := NewTaskService(store, testLogger())

		task, err := svc.UpdateTask(context.Background(), 42, models.UpdateTaskRequest{Title: "  new  ", Description: "desc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID != 42 || task.Title != "new" {
			t.Errorf("task = %+v", task)
		}
	})

	t.Run("not found propagates", func(t *testing.T) {
		store := &mockTaskStore{
			updateTask: func(_ context.Context, _ int64, _ models.TaskFields) (*models.Task, error) {
				return nil, models.ErrTaskNotFound
			},
		}
		svc := NewTaskService(store, testLogger())

		_, err := svc.UpdateTask(context.Background(), 42, models.UpdateTaskRequest{Title: "x", Description: "y"})
		if !errors.Is(err, models.ErrTaskNotFound) {
			t.Fatalf("got %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("invalid input never reaches storage", func(t *testing.T) {
		store := &mockTaskStore{}
		svc := NewTaskService(store, testLogger())

		_, err := svc.UpdateTask(context.Background(), 42, models.UpdateTaskRequest{Title: "x", Description: strings.Repeat("d", models.MaxDescriptionLen+1)})
		if !errors.Is(err, models.ErrDescriptionTooLong) {
			t.Fatalf("got %v, want ErrDescriptionTooLong", err)
		}
		if len(store.recorded()) != 0 {
			t.Error("store must not be called on validation failure")
		}
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := &mockTaskStore{
			deleteTask: func(_ context.Context, id int64) error {
				if id != 7 {
					t.Errorf("id = %d, want 7", id)
				}
				return nil
			},
		}
		svc := NewTaskService(store, testLogger())

		if err := svc.DeleteTask(context.Background(), 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("audit write failure surfaces as operation failure", func(t *testing.T) {
		store := &mockTaskStore{
			deleteTask: func(_ context.Context, _ int64) error {
				return models.ErrAuditWrite
			},
		}
		svc := NewTaskService(store, testLogger())

		err := svc.DeleteTask(context.Background(), 7)
		if !errors.Is(err, models.ErrAuditWrite) {
			t.Fatalf("got %v, want ErrAuditWrite", err)
		}
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	store := &mockTaskStore{
		listTasks: func(_ context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
			if opts.Query != "abc" {
				t.Errorf("query = %q", opts.Query)
			}
			return []models.Task{{ID: 1}}, 1, nil
		},
	}
	svc := NewTaskService(store, testLogger())

	tasks, total, err := svc.ListTasks(context.Background(), models.TaskQueryOpts{Query: "abc", Page: 1, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || total != 1 {
		t.Errorf("got %d items total=%d", len(tasks), total)
	}
}
