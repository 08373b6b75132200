package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
)

// AuditService records and retrieves the append-only trail of admin actions.
type AuditService struct {
	auditRepo *repository.AuditRepository
}

// NewAuditService creates a new AuditService with the provided repository dependency.
func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record appends one audit event. Events are written after the audited
// mutation succeeds; a failed mutation leaves no trail entry.
func (s *AuditService) Record(ctx context.Context, action, details, admin string) error {
	event := &model.AuditEvent{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
		Admin:     admin,
	}

	if err := s.auditRepo.Insert(ctx, event); err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	return nil
}

// List returns the audit trail newest first, for display.
func (s *AuditService) List() ([]model.AuditEvent, error) {
	return s.auditRepo.GetAll(true)
}

// Export returns the audit trail oldest first, matching on-disk append order.
func (s *AuditService) Export() ([]model.AuditEvent, error) {
	return s.auditRepo.GetAll(false)
}
