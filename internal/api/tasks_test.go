package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/tasktrail/tasktrail/internal/api"
	"github.com/tasktrail/tasktrail/internal/models"
)

func TestTaskCreate_Valid(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		createFn: func(_ context.Context, req models.CreateTaskRequest) (*models.Task, error) {
			fields, err := req.Validate()
			if err != nil {
				return nil, err
			}

			return &models.Task{
				ID:          1,
				Title:       fields.Title,
				Description: fields.Description,
				CreatedAt:   time.Now(),
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.POST("/tasks", h.Create)

	w := doRequest(r, http.MethodPost, "/tasks", `{"title":"Ship release","description":"Cut the 1.0 tag"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if task.Title != "Ship release" {
		t.Errorf("expected title 'Ship release', got %q", task.Title)
	}
}

func TestTaskCreate_MalformedBody(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewTaskHandler(&mockTaskRepo{}, testLogger())
	r.POST("/tasks", h.Create)

	w := doRequest(r, http.MethodPost, "/tasks", `{"title":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskCreate_ValidationError(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		createFn: func(_ context.Context, _ models.CreateTaskRequest) (*models.Task, error) {
			return nil, models.ErrTitleRequired
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.POST("/tasks", h.Create)

	w := doRequest(r, http.MethodPost, "/tasks", `{"title":"","description":"d"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp["code"] != "validation_error" {
		t.Errorf("expected code 'validation_error', got %q", resp["code"])
	}
}

func TestTaskCreate_NonStringTitle(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		createFn: func(_ context.Context, req models.CreateTaskRequest) (*models.Task, error) {
			if _, err := req.Validate(); err != nil {
				return nil, err
			}
			t.Fatal("validation should have failed")

			return nil, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.POST("/tasks", h.Create)

	w := doRequest(r, http.MethodPost, "/tasks", `{"title":42,"description":"d"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskGet_Found(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		getFn: func(_ context.Context, id int64) (*models.Task, error) {
			return &models.Task{ID: id, Title: "Review PR", Description: "Look at the diff"}, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.GET("/tasks/:id", h.Get)

	w := doRequest(r, http.MethodGet, "/tasks/7", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if task.ID != 7 {
		t.Errorf("expected id 7, got %d", task.ID)
	}
}

func TestTaskGet_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		getFn: func(_ context.Context, _ int64) (*models.Task, error) {
			return nil, models.ErrTaskNotFound
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.GET("/tasks/:id", h.Get)

	w := doRequest(r, http.MethodGet, "/tasks/999", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskGet_BadID(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewTaskHandler(&mockTaskRepo{}, testLogger())
	r.GET("/tasks/:id", h.Get)

	for _, id := range []string{"abc", "-1", "0"} {
		w := doRequest(r, http.MethodGet, "/tasks/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}

func TestTaskUpdate_OK(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		updateFn: func(_ context.Context, id int64, _ models.UpdateTaskRequest) (*models.Task, error) {
			return &models.Task{ID: id, Title: "Updated", Description: "d"}, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.PUT("/tasks/:id", h.Update)

	w := doRequest(r, http.MethodPut, "/tasks/1", `{"title":"Updated","description":"d"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskUpdate_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		updateFn: func(_ context.Context, _ int64, _ models.UpdateTaskRequest) (*models.Task, error) {
			return nil, models.ErrTaskNotFound
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.PUT("/tasks/:id", h.Update)

	w := doRequest(r, http.MethodPut, "/tasks/999", `{"title":"t","description":"d"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskDelete_OK(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		deleteFn: func(_ context.Context, _ int64) error {
			return nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.DELETE("/tasks/:id", h.Delete)

	w := doRequest(r, http.MethodDelete, "/tasks/1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp["deleted"] != true {
		t.Errorf("expected deleted=true, got %v", resp["deleted"])
	}
}

func TestTaskDelete_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		deleteFn: func(_ context.Context, _ int64) error {
			return models.ErrTaskNotFound
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.DELETE("/tasks/:id", h.Delete)

	w := doRequest(r, http.MethodDelete, "/tasks/999", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskList_Defaults(t *testing.T) {
	t.Parallel()

	var gotOpts models.TaskQueryOpts
	repo := &mockTaskRepo{
		listFn: func(_ context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
			gotOpts = opts

			return []models.Task{{ID: 1, Title: "a", Description: "b"}}, 1, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.GET("/tasks", h.List)

	w := doRequest(r, http.MethodGet, "/tasks", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotOpts.Page != 1 || gotOpts.Limit != 5 {
		t.Errorf("expected page=1 limit=5, got page=%d limit=%d", gotOpts.Page, gotOpts.Limit)
	}

	var resp struct {
		Data  []models.Task `json:"data"`
		Total int           `json:"total"`
		Page  int           `json:"page"`
		Limit int           `json:"limit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Errorf("expected 1 task with total 1, got %d tasks total %d", len(resp.Data), resp.Total)
	}
}

func TestTaskList_QueryParams(t *testing.T) {
	t.Parallel()

	var gotOpts models.TaskQueryOpts
	repo := &mockTaskRepo{
		listFn: func(_ context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
			gotOpts = opts

			return nil, 0, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.GET("/tasks", h.List)

	w := doRequest(r, http.MethodGet, "/tasks?query=deploy&page=3&limit=20", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotOpts.Query != "deploy" || gotOpts.Page != 3 || gotOpts.Limit != 20 {
		t.Errorf("unexpected opts: %+v", gotOpts)
	}
}

func TestTaskList_InvalidPaginationCoerced(t *testing.T) {
	t.Parallel()

	var gotOpts models.TaskQueryOpts
	repo := &mockTaskRepo{
		listFn: func(_ context.Context, opts models.TaskQueryOpts) ([]models.Task, int, error) {
			gotOpts = opts

			return nil, 0, nil
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.GET("/tasks", h.List)

	w := doRequest(r, http.MethodGet, "/tasks?page=-2&limit=junk", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotOpts.Page != 1 || gotOpts.Limit != 5 {
		t.Errorf("expected page=1 limit=5, got page=%d limit=%d", gotOpts.Page, gotOpts.Limit)
	}
}

func TestTaskList_StoreError(t *testing.T) {
	t.Parallel()

	repo := &mockTaskRepo{
		listFn: func(_ context.Context, _ models.TaskQueryOpts) ([]models.Task, int, error) {
			return nil, 0, errors.New("connection refused")
		},
	}

	r := newTestRouter()
	h := api.NewTaskHandler(repo, testLogger())
	r.GET("/tasks", h.List)

	w := doRequest(r, http.MethodGet, "/tasks", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp["message"] != "internal server error" {
		t.Errorf("expected generic message, got %q", resp["message"])
	}
}
