package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// ReservationService manages bookings of common spaces
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	commonSpaceRepo repository.CommonSpaceRepository
	residentRepo    repository.ResidentRepository
	alertSvc        *AlertService
}

// NewReservationService creates a new reservation service
func NewReservationService(reservationRepo repository.ReservationRepository, commonSpaceRepo repository.CommonSpaceRepository, residentRepo repository.ResidentRepository, alertSvc *AlertService) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		commonSpaceRepo: commonSpaceRepo,
		residentRepo:    residentRepo,
		alertSvc:        alertSvc,
	}
}

// CreateReservationInput is the request payload for booking a space
type CreateReservationInput struct {
	ResidentID    uint   `json:"residente_id" binding:"required"`
	CommonSpaceID uint   `json:"espacio_comun_id" binding:"required"`
	Date          string `json:"fecha_reserva" binding:"required"`
	StartHour     int    `json:"hora_inicio" binding:"required,min=0,max=23"`
	EndHour       int    `json:"hora_fin" binding:"required,min=1,max=24"`
}

// Create books a common space, rejecting overlapping reservations
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
	if input.EndHour <= input.StartHour {
		return nil, fmt.Errorf("%w: la hora de término debe ser posterior a la de inicio", ErrInvalidAmount)
	}

	if _, err := s.residentRepo.FindByID(ctx, input.ResidentID); err != nil {
		return nil, ErrNotFound
	}

	space, err := s.commonSpaceRepo.FindByID(ctx, input.CommonSpaceID)
	if err != nil {
		return nil, ErrNotFound
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, fmt.Errorf("fecha de reserva inválida: %w", err)
	}

	reservation := &models.Reservation{
		ResidentID:    input.ResidentID,
		CommonSpaceID: input.CommonSpaceID,
		Date:          date,
		StartHour:     input.StartHour,
		EndHour:       input.EndHour,
		Fee:           space.ReservationFee,
		Status:        models.ReservationStatusPending,
	}

	existing, err := s.reservationRepo.FindBySpaceAndDate(ctx, input.CommonSpaceID, date)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if reservation.Overlaps(&existing[i]) {
			return nil, ErrSpaceOccupied
		}
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}

// Confirm approves a pending reservation
func (s *ReservationService) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if reservation.Status != models.ReservationStatusPending {
		return nil, ErrInvalidState
	}

	reservation.Status = models.ReservationStatusConfirmed
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.alertSvc.NotifyResident(ctx, reservation.ResidentID, models.AlertTypeGeneral,
		"Reserva confirmada",
		fmt.Sprintf("Tu reserva del %s quedó confirmada", reservation.Date.Format("02-01-2006")))

	return reservation, nil
}

// Cancel drops a reservation
func (s *ReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !reservation.MayCancel() {
		return nil, ErrInvalidState
	}

	reservation.Status = models.ReservationStatusCancelled
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// List returns reservations matching the query
func (s *ReservationService) List(ctx context.Context, query *repository.ListQuery) ([]models.Reservation, int64, error) {
	return s.reservationRepo.List(ctx, query)
}

// ListByResident returns a resident's reservations, newest first
func (s *ReservationService) ListByResident(ctx context.Context, residentID uint) ([]models.Reservation, error) {
	return s.reservationRepo.FindByResident(ctx, residentID)
}
