package repository

import (
	"context"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// AuditRepository defines the interface for the append-only audit log.
// There is deliberately no Update or Delete: corrections are new events.
type AuditRepository interface {
	FindByID(ctx context.Context, id uint) (*models.AuditEvent, error)
	Create(ctx context.Context, event *models.AuditEvent) error
	List(ctx context.Context, query *ListQuery) ([]models.AuditEvent, int64, error)
	FindEditEventsByResident(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) FindByID(ctx context.Context, id uint) (*models.AuditEvent, error) {
	var event models.AuditEvent
	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *auditRepository) Create(ctx context.Context, event *models.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditEvent, int64, error) {
	var events []models.AuditEvent
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditEvent{})

	if query.Search != "" {
		db = db.Where("detalle ILIKE ?", "%"+query.Search+"%")
	}

	if query.Filters["tipo_evento"] != "" {
		db = db.Where("tipo_evento = ?", query.Filters["tipo_evento"])
	}

	if query.Filters["residente_id"] != "" {
		db = db.Where("residente_id = ?", query.Filters["residente_id"])
	}

	if query.Filters["usuario_id"] != "" {
		db = db.Where("usuario_id = ?", query.Filters["usuario_id"])
	}

	if query.Filters["condominio_id"] != "" {
		db = db.Where("condominio_id = ?", query.Filters["condominio_id"])
	}

	db.Count(&total)

	db = db.Order("fecha_creacion DESC, id DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&events).Error
	return events, total, err
}

// FindEditEventsByResident returns a resident's EDICION events newest
// first, which is the order reversal candidates are scanned in.
func (r *auditRepository) FindEditEventsByResident(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	db := r.db.WithContext(ctx).
		Where("residente_id = ? AND tipo_evento = ?", residentID, models.EventTypeEdit).
		Order("fecha_creacion DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&events).Error
	return events, err
}
