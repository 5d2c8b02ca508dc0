package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for input validation.
var (
	// ErrInvalidType indicates a field that must be a string was not.
	ErrInvalidType = errors.New("invalid input type")

	// ErrRequiredField indicates a field was empty after trimming and
	// sanitization. Field-specific errors wrap this sentinel.
	ErrRequiredField = errors.New("required field missing")

	ErrTitleRequired       = fmt.Errorf("title is required: %w", ErrRequiredField)
	ErrDescriptionRequired = fmt.Errorf("description is required: %w", ErrRequiredField)

	ErrTitleTooLong       = fmt.Errorf("title must be at most %d characters", MaxTitleLen)
	ErrDescriptionTooLong = fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
)

// ErrTaskNotFound indicates the referenced task id does not exist.
var ErrTaskNotFound = errors.New("task not found")

// ErrAuditWrite indicates the audit half of a mutation failed. The store
// rolls the whole transaction back, so a task write never survives its
// audit entry; callers surface the operation as failed.
var ErrAuditWrite = errors.New("audit write failed")

// IsValidationError reports whether err is one of the input validation
// sentinels (as opposed to a lookup or storage failure).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrRequiredField) ||
		errors.Is(err, ErrTitleTooLong) ||
		errors.Is(err, ErrDescriptionTooLong)
}
