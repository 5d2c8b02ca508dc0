// Package models defines data types for tasks and their audit trail.
package models

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits in characters (runes), applied after sanitization.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// Task represents a stored task record.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskFields holds sanitized title and description, ready for storage.
type TaskFields struct {
	Title       string
	Description string
}

// CreateTaskRequest is the payload for creating a task. Title and
// Description are deliberately untyped so non-string JSON values are
// rejected with ErrInvalidType instead of a generic bind error.
type CreateTaskRequest struct {
	Title       any `json:"title"`
	Description any `json:"description"`
}

// Validate sanitizes and constrains the request fields, returning the
// cleaned values. Rules run in order and the first failure wins.
func (r *CreateTaskRequest) Validate() (TaskFields, error) {
	return sanitizeTaskInput(r.Title, r.Description)
}

// UpdateTaskRequest is the payload for updating a task. Both fields are
// required; partial updates are expressed by resubmitting the current
// value for the unchanged field.
type UpdateTaskRequest struct {
	Title       any `json:"title"`
	Description any `json:"description"`
}

// Validate sanitizes and constrains the request fields.
func (r *UpdateTaskRequest) Validate() (TaskFields, error) {
	return sanitizeTaskInput(r.Title, r.Description)
}

// sanitize strips the literal '<' and '>' characters. This defends
// against trivial markup injection only; it is not HTML sanitization.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "<", "")
	return strings.ReplaceAll(s, ">", "")
}

// sanitizeTaskInput applies the validation pipeline: type check, trim,
// strip markup characters, required check, length bounds. Pure and
// deterministic; the same input always yields the same result.
func sanitizeTaskInput(title, description any) (TaskFields, error) {
	titleStr, ok := title.(string)
	if !ok {
		return TaskFields{}, ErrInvalidType
	}

	descStr, ok := description.(string)
	if !ok {
		return TaskFields{}, ErrInvalidType
	}

	titleStr = sanitize(strings.TrimSpace(titleStr))
	descStr = sanitize(strings.TrimSpace(descStr))

	if titleStr == "" {
		return TaskFields{}, ErrTitleRequired
	}

	if descStr == "" {
		return TaskFields{}, ErrDescriptionRequired
	}

	// Bounds are in characters, not bytes: multibyte input must not be
	// rejected early.
	if utf8.RuneCountInString(titleStr) > MaxTitleLen {
		return TaskFields{}, ErrTitleTooLong
	}

	if utf8.RuneCountInString(descStr) > MaxDescriptionLen {
		return TaskFields{}, ErrDescriptionTooLong
	}

	return TaskFields{Title: titleStr, Description: descStr}, nil
}

// TaskQueryOpts holds list parameters for task queries.
type TaskQueryOpts struct {
	Query string
	Page  int
	Limit int
}

// Offset returns the row offset for the current page.
func (o TaskQueryOpts) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Normalize coerces page and limit to at least 1 and caps limit. Page
// is capped so the offset multiplication cannot overflow; pages that
// deep are empty either way.
func (o *TaskQueryOpts) Normalize(maxLimit int) {
	if o.Page < 1 {
		o.Page = 1
	}

	if o.Limit < 1 {
		o.Limit = 1
	}

	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}

	if maxPage := math.MaxInt / o.Limit; o.Page > maxPage {
		o.Page = maxPage
	}
}
