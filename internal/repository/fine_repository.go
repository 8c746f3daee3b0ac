package repository

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// FineRepository defines the interface for fine data access
type FineRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Fine, error)
	Create(ctx context.Context, fine *models.Fine) error
	Update(ctx context.Context, fine *models.Fine) error
	List(ctx context.Context, query *ListQuery) ([]models.Fine, int64, error)
	FindByResident(ctx context.Context, residentID uint) ([]models.Fine, error)
	FindOpenByResident(ctx context.Context, residentID uint) ([]models.Fine, error)
	ExistsLateFine(ctx context.Context, chargeID uint) (bool, error)
	CountOpen(ctx context.Context, condominiumID uint) (int64, error)
	SumOpenDebt(ctx context.Context, condominiumID uint) (float64, error)
	SumIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error)
}

type fineRepository struct {
	db *gorm.DB
}

// NewFineRepository creates a new fine repository
func NewFineRepository(db *gorm.DB) FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) FindByID(ctx context.Context, id uint) (*models.Fine, error) {
	var fine models.Fine
	err := r.db.WithContext(ctx).First(&fine, id).Error
	if err != nil {
		return nil, err
	}
	return &fine, nil
}

func (r *fineRepository) Create(ctx context.Context, fine *models.Fine) error {
	return r.db.WithContext(ctx).Create(fine).Error
}

func (r *fineRepository) Update(ctx context.Context, fine *models.Fine) error {
	return r.db.WithContext(ctx).Save(fine).Error
}

func (r *fineRepository) List(ctx context.Context, query *ListQuery) ([]models.Fine, int64, error) {
	var fines []models.Fine
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Fine{})

	if query.Search != "" {
		db = db.Where("descripcion ILIKE ?", "%"+query.Search+"%")
	}

	if query.Filters["residente_id"] != "" {
		db = db.Where("residente_id = ?", query.Filters["residente_id"])
	}

	if query.Filters["condominio_id"] != "" {
		db = db.Where("condominio_id = ?", query.Filters["condominio_id"])
	}

	if query.Filters["estado"] != "" {
		db = db.Where("estado = ?", query.Filters["estado"])
	}

	if query.Filters["tipo"] != "" {
		db = db.Where("tipo = ?", query.Filters["tipo"])
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("fecha_emision DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&fines).Error
	return fines, total, err
}

func (r *fineRepository) FindByResident(ctx context.Context, residentID uint) ([]models.Fine, error) {
	var fines []models.Fine
	err := r.db.WithContext(ctx).
		Where("residente_id = ?", residentID).
		Order("fecha_emision DESC").
		Find(&fines).Error
	return fines, err
}

func (r *fineRepository) FindOpenByResident(ctx context.Context, residentID uint) ([]models.Fine, error) {
	var fines []models.Fine
	err := r.db.WithContext(ctx).
		Where("residente_id = ? AND estado = ?", residentID, models.FineStatusPending).
		Order("fecha_emision ASC").
		Find(&fines).Error
	return fines, err
}

// ExistsLateFine reports whether a late-payment fine was already issued
// for the given charge, so the overdue sweep never fines twice.
func (r *fineRepository) ExistsLateFine(ctx context.Context, chargeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Fine{}).
		Where("gasto_comun_id = ? AND tipo = ?", chargeID, models.FineTypeLatePayment).
		Count(&count).Error
	return count > 0, err
}

func (r *fineRepository) CountOpen(ctx context.Context, condominiumID uint) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.Fine{}).
		Where("estado = ?", models.FineStatusPending)
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	err := db.Count(&count).Error
	return count, err
}

func (r *fineRepository) SumIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error) {
	var total float64
	db := r.db.WithContext(ctx).Model(&models.Fine{})
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	if from != nil {
		db = db.Where("fecha_emision >= ?", *from)
	}
	if to != nil {
		db = db.Where("fecha_emision < ?", *to)
	}
	err := db.Select("COALESCE(SUM(monto), 0)").Scan(&total).Error
	return total, err
}

func (r *fineRepository) SumOpenDebt(ctx context.Context, condominiumID uint) (float64, error) {
	var total float64
	db := r.db.WithContext(ctx).
		Model(&models.Fine{}).
		Where("estado = ?", models.FineStatusPending)
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	err := db.Select("COALESCE(SUM(monto), 0)").Scan(&total).Error
	return total, err
}
