package repository

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uint) error
	FindActiveByCondominium(ctx context.Context, condominiumID uint, now time.Time) ([]models.Announcement, error)
	List(ctx context.Context, query *ListQuery) ([]models.Announcement, int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) FindByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).First(&announcement, id).Error
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

func (r *announcementRepository) FindActiveByCondominium(ctx context.Context, condominiumID uint, now time.Time) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := r.db.WithContext(ctx).
		Where("condominio_id = ? AND fecha_publicacion <= ? AND (fecha_expiracion IS NULL OR fecha_expiracion > ?)",
			condominiumID, now, now).
		Order("fecha_publicacion DESC").
		Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) List(ctx context.Context, query *ListQuery) ([]models.Announcement, int64, error) {
	var announcements []models.Announcement
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Announcement{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("titulo ILIKE ? OR contenido ILIKE ?", search, search)
	}

	if query.Filters["condominio_id"] != "" {
		db = db.Where("condominio_id = ?", query.Filters["condominio_id"])
	}

	if query.Filters["prioridad"] != "" {
		db = db.Where("prioridad = ?", query.Filters["prioridad"])
	}

	db.Count(&total)

	db = db.Order("fecha_publicacion DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&announcements).Error
	return announcements, total, err
}
