package repository

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// ReservationRepository defines the interface for reservation data access
type ReservationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	Create(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, reservation *models.Reservation) error
	List(ctx context.Context, query *ListQuery) ([]models.Reservation, int64, error)
	FindBySpaceAndDate(ctx context.Context, spaceID uint, date time.Time) ([]models.Reservation, error)
	FindByResident(ctx context.Context, residentID uint) ([]models.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *reservationRepository) List(ctx context.Context, query *ListQuery) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Reservation{})

	if query.Filters["residente_id"] != "" {
		db = db.Where("residente_id = ?", query.Filters["residente_id"])
	}

	if query.Filters["espacio_comun_id"] != "" {
		db = db.Where("espacio_comun_id = ?", query.Filters["espacio_comun_id"])
	}

	if query.Filters["estado"] != "" {
		db = db.Where("estado = ?", query.Filters["estado"])
	}

	db.Count(&total)

	db = db.Order("fecha_reserva DESC, hora_inicio ASC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&reservations).Error
	return reservations, total, err
}

func (r *reservationRepository) FindBySpaceAndDate(ctx context.Context, spaceID uint, date time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("espacio_comun_id = ? AND fecha_reserva = ? AND estado <> ?",
			spaceID, date, models.ReservationStatusCancelled).
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) FindByResident(ctx context.Context, residentID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("residente_id = ?", residentID).
		Order("fecha_reserva DESC").
		Find(&reservations).Error
	return reservations, err
}
