package repository

import (
	"context"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// CondominiumRepository defines the interface for condominium data access
type CondominiumRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Condominium, error)
	Create(ctx context.Context, condominium *models.Condominium) error
	Update(ctx context.Context, condominium *models.Condominium) error
	List(ctx context.Context, query *ListQuery) ([]models.Condominium, int64, error)
}

type condominiumRepository struct {
	db *gorm.DB
}

// NewCondominiumRepository creates a new condominium repository
func NewCondominiumRepository(db *gorm.DB) CondominiumRepository {
	return &condominiumRepository{db: db}
}

func (r *condominiumRepository) FindByID(ctx context.Context, id uint) (*models.Condominium, error) {
	var condominium models.Condominium
	err := r.db.WithContext(ctx).First(&condominium, id).Error
	if err != nil {
		return nil, err
	}
	return &condominium, nil
}

func (r *condominiumRepository) Create(ctx context.Context, condominium *models.Condominium) error {
	return r.db.WithContext(ctx).Create(condominium).Error
}

func (r *condominiumRepository) Update(ctx context.Context, condominium *models.Condominium) error {
	return r.db.WithContext(ctx).Save(condominium).Error
}

func (r *condominiumRepository) List(ctx context.Context, query *ListQuery) ([]models.Condominium, int64, error) {
	var condominiums []models.Condominium
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Condominium{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("nombre ILIKE ? OR comuna ILIKE ?", search, search)
	}

	if query.Filters["activo"] != "" {
		db = db.Where("activo = ?", query.Filters["activo"] == "true")
	}

	db.Count(&total)

	db = db.Order("nombre ASC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&condominiums).Error
	return condominiums, total, err
}

// CommonSpaceRepository defines the interface for common space data access
type CommonSpaceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.CommonSpace, error)
	Create(ctx context.Context, space *models.CommonSpace) error
	Update(ctx context.Context, space *models.CommonSpace) error
	FindByCondominium(ctx context.Context, condominiumID uint) ([]models.CommonSpace, error)
}

type commonSpaceRepository struct {
	db *gorm.DB
}

// NewCommonSpaceRepository creates a new common space repository
func NewCommonSpaceRepository(db *gorm.DB) CommonSpaceRepository {
	return &commonSpaceRepository{db: db}
}

func (r *commonSpaceRepository) FindByID(ctx context.Context, id uint) (*models.CommonSpace, error) {
	var space models.CommonSpace
	err := r.db.WithContext(ctx).First(&space, id).Error
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *commonSpaceRepository) Create(ctx context.Context, space *models.CommonSpace) error {
	return r.db.WithContext(ctx).Create(space).Error
}

func (r *commonSpaceRepository) Update(ctx context.Context, space *models.CommonSpace) error {
	return r.db.WithContext(ctx).Save(space).Error
}

func (r *commonSpaceRepository) FindByCondominium(ctx context.Context, condominiumID uint) ([]models.CommonSpace, error) {
	var spaces []models.CommonSpace
	err := r.db.WithContext(ctx).
		Where("condominio_id = ? AND activo = true", condominiumID).
		Order("nombre ASC").
		Find(&spaces).Error
	return spaces, err
}
