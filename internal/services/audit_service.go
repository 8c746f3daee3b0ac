package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/pkg/logger"
)

// AuditService records and browses the append-only event log
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log records an audit event. A failure to write the log is reported but
// never propagated: audit logging must not break the operation it records.
func (s *AuditService) Log(ctx context.Context, event *models.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := s.auditRepo.Create(ctx, event); err != nil {
		logger.Error(fmt.Sprintf("[Audit] failed to record event %s: %v", event.EventType, err))
	}
}

// LogAdjustment records an EDICION event with its structured metadata.
// Unlike Log, a failure here is returned: an adjustment without its audit
// trail cannot be reversed later, so the caller must know.
func (s *AuditService) LogAdjustment(ctx context.Context, detail string, userID, residentID uint, condominiumID *uint, amount float64, meta models.AdjustmentMeta) (*models.AuditEvent, error) {
	encoded, err := meta.Encode()
	if err != nil {
		return nil, err
	}

	event := &models.AuditEvent{
		EventType:     models.EventTypeEdit,
		Detail:        detail,
		Amount:        &amount,
		UserID:        &userID,
		ResidentID:    &residentID,
		CondominiumID: condominiumID,
		Metadata:      encoded,
		CreatedAt:     time.Now(),
	}

	if err := s.auditRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List retrieves audit events with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditEvent, int64, error) {
	return s.auditRepo.List(ctx, query)
}
