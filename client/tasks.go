package client

import (
	"context"
	"net/url"
	"strconv"
)

// TaskService handles task CRUD operations.
type TaskService struct {
	c *Client
}

// List returns tasks with optional search and pagination.
func (s *TaskService) List(ctx context.Context, opts *TaskListOptions) (*Page[Task], error) {
	params := url.Values{}
	if opts != nil {
		if opts.Query != "" {
			params.Set("query", opts.Query)
		}
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
	}
	var resp Page[Task]
	if err := s.c.get(ctx, "/api/v1/tasks", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a single task by ID.
func (s *TaskService) Get(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := s.c.get(ctx, "/api/v1/tasks/"+strconv.FormatInt(id, 10), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create creates a new task.
func (s *TaskService) Create(ctx context.Context, req *TaskRequest) (*Task, error) {
	var task Task
	if err := s.c.post(ctx, "/api/v1/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update replaces the title and description of an existing task.
func (s *TaskService) Update(ctx context.Context, id int64, req *TaskRequest) (*Task, error) {
	var task Task
	if err := s.c.put(ctx, "/api/v1/tasks/"+strconv.FormatInt(id, 10), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, "/api/v1/tasks/"+strconv.FormatInt(id, 10), nil)
}
