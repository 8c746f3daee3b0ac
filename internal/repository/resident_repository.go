package repository

import (
	"context"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// ResidentRepository defines the interface for resident data access
type ResidentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Resident, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Resident, error)
	Create(ctx context.Context, resident *models.Resident) error
	Update(ctx context.Context, resident *models.Resident) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Resident, int64, error)
	FindActiveByCondominium(ctx context.Context, condominiumID uint) ([]models.Resident, error)
	CountActive(ctx context.Context, condominiumID uint) (int64, error)
}

type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new resident repository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{db: db}
}

func (r *residentRepository) FindByID(ctx context.Context, id uint) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).First(&resident, id).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) FindByUserID(ctx context.Context, userID uint) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		First(&resident).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) Create(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Create(resident).Error
}

func (r *residentRepository) Update(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

func (r *residentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Resident{}).
		Where("id = ?", id).
		Update("activo", false).Error
}

func (r *residentRepository) List(ctx context.Context, query *ListQuery) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Resident{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("nombre ILIKE ? OR apellido ILIKE ? OR email ILIKE ? OR vivienda_numero ILIKE ?",
			search, search, search, search)
	}

	if query.Filters["condominio_id"] != "" {
		db = db.Where("condominio_id = ?", query.Filters["condominio_id"])
	}

	if query.Filters["activo"] != "" {
		db = db.Where("activo = ?", query.Filters["activo"] == "true")
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("vivienda_numero ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&residents).Error
	return residents, total, err
}

func (r *residentRepository) FindActiveByCondominium(ctx context.Context, condominiumID uint) ([]models.Resident, error) {
	var residents []models.Resident
	err := r.db.WithContext(ctx).
		Where("condominio_id = ? AND activo = true", condominiumID).
		Order("vivienda_numero ASC").
		Find(&residents).Error
	return residents, err
}

func (r *residentRepository) CountActive(ctx context.Context, condominiumID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Resident{}).
		Where("condominio_id = ? AND activo = true", condominiumID).
		Count(&count).Error
	return count, err
}
