package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// AuditAction is the closed set of mutation kinds recorded in the audit log.
type AuditAction string

// Audit actions, one per task mutation.
const (
	ActionCreateTask AuditAction = "CreateTask"
	ActionUpdateTask AuditAction = "UpdateTask"
	ActionDeleteTask AuditAction = "DeleteTask"
)

// Valid reports whether a is a known audit action.
func (a AuditAction) Valid() bool {
	switch a {
	case ActionCreateTask, ActionUpdateTask, ActionDeleteTask:
		return true
	}

	return false
}

// AuditEntry is an immutable record of one task mutation. TaskID is
// retained even after the task itself is deleted; audit entries outlive
// their subject.
type AuditEntry struct {
	ID             int64           `json:"id"`
	Action         AuditAction     `json:"action"`
	TaskID         *int64          `json:"taskId"`
	UpdatedContent json.RawMessage `json:"updatedContent"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// FieldChange is a before/after pair for a single changed field.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CreatePayload builds the audit payload for a task creation.
func CreatePayload(fields TaskFields) (json.RawMessage, error) {
	data, err := json.Marshal(map[string]string{
		"title":       fields.Title,
		"description": fields.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling create payload: %w", err)
	}

	return data, nil
}

// DiffFields compares the stored task against the sanitized new values
// and returns a mapping of changed field name to its before/after pair.
// Unchanged fields are omitted; an empty map means the update is a no-op.
func DiffFields(existing *Task, fields TaskFields) map[string]FieldChange {
	diff := make(map[string]FieldChange, 2)

	if fields.Title != existing.Title {
		diff["title"] = FieldChange{From: existing.Title, To: fields.Title}
	}

	if fields.Description != existing.Description {
		diff["description"] = FieldChange{From: existing.Description, To: fields.Description}
	}

	return diff
}

// UpdatePayload builds the audit payload for a non-empty update diff.
func UpdatePayload(diff map[string]FieldChange) (json.RawMessage, error) {
	data, err := json.Marshal(diff)
	if err != nil {
		return nil, fmt.Errorf("marshaling update payload: %w", err)
	}

	return data, nil
}

// DeletePayload builds the audit payload for a deletion, snapshotting
// the title at the time the task was removed.
func DeletePayload(title string) (json.RawMessage, error) {
	data, err := json.Marshal(map[string]string{"deletedTitle": title})
	if err != nil {
		return nil, fmt.Errorf("marshaling delete payload: %w", err)
	}

	return data, nil
}

// AuditQueryOpts holds list parameters for audit log queries.
type AuditQueryOpts struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page.
func (o AuditQueryOpts) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Normalize coerces page and limit to at least 1 and caps limit. Page
// is capped so the offset multiplication cannot overflow; pages that
// deep are empty either way.
func (o *AuditQueryOpts) Normalize(maxLimit int) {
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
