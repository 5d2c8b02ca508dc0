package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/models"
)

// AuditStore is the data-access interface AuditService depends on.
type AuditStore interface {
	ListEntries(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error)
}

// AuditService exposes read access to the audit trail. Entries are
// written exclusively by task mutations; this service never records.
type AuditService struct {
	store AuditStore
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditStore, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// ListEntries returns a page of audit entries, newest first (pass-through).
func (s *AuditService) ListEntries(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, int, error) {
	return s.store.ListEntries(ctx, opts)
}
