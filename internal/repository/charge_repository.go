package repository

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// ChargeRepository defines the interface for common-expense charge data access
type ChargeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Charge, error)
	Create(ctx context.Context, charge *models.Charge) error
	Update(ctx context.Context, charge *models.Charge) error
	List(ctx context.Context, query *ListQuery) ([]models.Charge, int64, error)
	FindByResident(ctx context.Context, residentID uint) ([]models.Charge, error)
	FindOpenByResident(ctx context.Context, residentID uint) ([]models.Charge, error)
	FindByPeriod(ctx context.Context, residentID uint, month, year int) (*models.Charge, error)
	FindDueBefore(ctx context.Context, cutoff time.Time, statuses []string) ([]models.Charge, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountOpen(ctx context.Context, condominiumID uint) (int64, error)
	SumOpenDebt(ctx context.Context, condominiumID uint) (float64, error)
	CountIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (int64, error)
	CountUnpaidIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (int64, error)
	SumIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).First(&charge, id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

func (r *chargeRepository) Update(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Save(charge).Error
}

func (r *chargeRepository) List(ctx context.Context, query *ListQuery) ([]models.Charge, int64, error) {
	var charges []models.Charge
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Charge{})

	if query.Filters["residente_id"] != "" {
		db = db.Where("residente_id = ?", query.Filters["residente_id"])
	}

	if query.Filters["condominio_id"] != "" {
		db = db.Where("condominio_id = ?", query.Filters["condominio_id"])
	}

	if query.Filters["estado"] != "" {
		db = db.Where("estado = ?", query.Filters["estado"])
	}

	if query.Filters["anio"] != "" {
		db = db.Where("anio = ?", query.Filters["anio"])
	}

	if query.Filters["mes"] != "" {
		db = db.Where("mes = ?", query.Filters["mes"])
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

	err := db.Find(&charges).Error
	return charges, total, err
}

func (r *chargeRepository) FindByResident(ctx context.Context, residentID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("residente_id = ?", residentID).
		Order("fecha_emision DESC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) FindOpenByResident(ctx context.Context, residentID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("residente_id = ? AND estado IN ?", residentID,
			[]string{models.ChargeStatusPending, models.ChargeStatusOverdue, models.ChargeStatusDelinquent}).
		Order("fecha_vencimiento ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) FindByPeriod(ctx context.Context, residentID uint, month, year int) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).
		Where("residente_id = ? AND mes = ? AND anio = ?", residentID, month, year).
		First(&charge).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) FindDueBefore(ctx context.Context, cutoff time.Time, statuses []string) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("fecha_vencimiento < ? AND estado IN ?", cutoff, statuses).
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("id = ?", id).
		Update("estado", status).Error
}

func (r *chargeRepository) CountOpen(ctx context.Context, condominiumID uint) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("estado IN ?",
			[]string{models.ChargeStatusPending, models.ChargeStatusOverdue, models.ChargeStatusDelinquent})
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	err := db.Count(&count).Error
	return count, err
}

// issuedScope narrows a charge query to a condominium and an optional
// issue-date window. Nil bounds leave that side open.
func issuedScope(db *gorm.DB, condominiumID uint, from, to *time.Time) *gorm.DB {
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	if from != nil {
		db = db.Where("fecha_emision >= ?", *from)
	}
	if to != nil {
		db = db.Where("fecha_emision < ?", *to)
	}
	return db
}

func (r *chargeRepository) CountIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (int64, error) {
	var count int64
	err := issuedScope(r.db.WithContext(ctx).Model(&models.Charge{}), condominiumID, from, to).
		Count(&count).Error
	return count, err
}

func (r *chargeRepository) CountUnpaidIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (int64, error) {
	var count int64
	err := issuedScope(r.db.WithContext(ctx).Model(&models.Charge{}), condominiumID, from, to).
		Where("estado IN ?",
			[]string{models.ChargeStatusPending, models.ChargeStatusOverdue, models.ChargeStatusDelinquent}).
		Count(&count).Error
	return count, err
}

func (r *chargeRepository) SumIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error) {
	var total float64
	err := issuedScope(r.db.WithContext(ctx).Model(&models.Charge{}), condominiumID, from, to).
		Select("COALESCE(SUM(monto_total), 0)").Scan(&total).Error
	return total, err
}

func (r *chargeRepository) SumOpenDebt(ctx context.Context, condominiumID uint) (float64, error) {
	var total float64
	db := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("estado IN ?",
			[]string{models.ChargeStatusPending, models.ChargeStatusOverdue, models.ChargeStatusDelinquent})
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	err := db.Select("COALESCE(SUM(monto_total), 0)").Scan(&total).Error
	return total, err
}
