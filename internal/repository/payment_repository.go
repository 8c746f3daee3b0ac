package repository

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error)
	FindApprovedByResident(ctx context.Context, residentID uint) ([]models.Payment, error)
	CountPending(ctx context.Context, condominiumID uint) (int64, error)
	SumApprovedBetween(ctx context.Context, condominiumID uint, from, to time.Time) (float64, error)
	SumApproved(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{})

	if query.Search != "" {
		db = db.Where("numero_transaccion ILIKE ?", "%"+query.Search+"%")
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
		db = db.Order("fecha_pago DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) FindApprovedByResident(ctx context.Context, residentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("residente_id = ? AND estado = ?", residentID, models.PaymentStatusApproved).
		Order("fecha_pago DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) CountPending(ctx context.Context, condominiumID uint) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("estado = ?", models.PaymentStatusPending)
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	err := db.Count(&count).Error
	return count, err
}

// SumApproved totals approved payments in an optional payment-date
// window. Nil bounds leave that side open.
func (r *paymentRepository) SumApproved(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error) {
	var total float64
	db := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("estado = ?", models.PaymentStatusApproved)
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	if from != nil {
		db = db.Where("fecha_pago >= ?", *from)
	}
	if to != nil {
		db = db.Where("fecha_pago < ?", *to)
	}
	err := db.Select("COALESCE(SUM(monto), 0)").Scan(&total).Error
	return total, err
}

func (r *paymentRepository) SumApprovedBetween(ctx context.Context, condominiumID uint, from, to time.Time) (float64, error) {
	var total float64
	db := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("estado = ? AND fecha_pago >= ? AND fecha_pago < ?",
			models.PaymentStatusApproved, from, to)
	if condominiumID != 0 {
		db = db.Where("condominio_id = ?", condominiumID)
	}
	err := db.Select("COALESCE(SUM(monto), 0)").Scan(&total).Error
	return total, err
}
