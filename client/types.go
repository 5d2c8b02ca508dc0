package client

import (
	"encoding/json"
	"time"
)

// Task represents a single task.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskRequest is the payload for creating or updating a task.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskListOptions controls filtering and pagination of task lists.
type TaskListOptions struct {
	Query string
	Page  int
	Limit int
}

// AuditEntry represents one recorded mutation.
type AuditEntry struct {
	ID             int64           `json:"id"`
	Action         string          `json:"action"`
	TaskID         *int64          `json:"taskId"`
	UpdatedContent json.RawMessage `json:"updatedContent"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AuditListOptions controls pagination of the audit log.
type AuditListOptions struct {
	Page  int
	Limit int
}

// Page wraps a paginated list response.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	Clients       int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
