package repository

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// AlertRepository defines the interface for in-app alert data access
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	CreateBatch(ctx context.Context, alerts []models.Alert) error
	FindByUser(ctx context.Context, userID uint, unreadOnly bool) ([]models.Alert, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) CreateBatch(ctx context.Context, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(alerts, 100).Error
}

func (r *alertRepository) FindByUser(ctx context.Context, userID uint, unreadOnly bool) ([]models.Alert, error) {
	var alerts []models.Alert
	db := r.db.WithContext(ctx).Where("usuario_id = ?", userID)
	if unreadOnly {
		db = db.Where("leida = false")
	}
	err := db.Order("created_at DESC").Limit(100).Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("usuario_id = ? AND leida = false", userID).
		Count(&count).Error
	return count, err
}

func (r *alertRepository) MarkRead(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ? AND usuario_id = ?", id, userID).
		Updates(map[string]interface{}{
			"leida":         true,
			"fecha_lectura": time.Now(),
		}).Error
}

func (r *alertRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("usuario_id = ? AND leida = false", userID).
		Updates(map[string]interface{}{
			"leida":         true,
			"fecha_lectura": time.Now(),
		}).Error
}
