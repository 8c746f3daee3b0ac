package services

import (
	"context"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// CondominiumService manages condominiums and their common spaces
type CondominiumService struct {
	condominiumRepo repository.CondominiumRepository
	commonSpaceRepo repository.CommonSpaceRepository
}

// NewCondominiumService creates a new condominium service
func NewCondominiumService(condominiumRepo repository.CondominiumRepository, commonSpaceRepo repository.CommonSpaceRepository) *CondominiumService {
	return &CondominiumService{
		condominiumRepo: condominiumRepo,
		commonSpaceRepo: commonSpaceRepo,
	}
}

// CreateCondominiumInput is the request payload for creating a condominium
type CreateCondominiumInput struct {
	Name    string `json:"nombre" binding:"required"`
	Address string `json:"direccion" binding:"required"`
	Commune string `json:"comuna"`
}

// Create registers a new condominium
func (s *CondominiumService) Create(ctx context.Context, input CreateCondominiumInput) (*models.Condominium, error) {
	condominium := &models.Condominium{
		Name:    input.Name,
		Address: input.Address,
		Commune: input.Commune,
		Active:  true,
	}
	if err := s.condominiumRepo.Create(ctx, condominium); err != nil {
		return nil, err
	}
	return condominium, nil
}

// GetByID returns one condominium
func (s *CondominiumService) GetByID(ctx context.Context, id uint) (*models.Condominium, error) {
	condominium, err := s.condominiumRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return condominium, nil
}

// List returns condominiums matching the query
func (s *CondominiumService) List(ctx context.Context, query *repository.ListQuery) ([]models.Condominium, int64, error) {
	return s.condominiumRepo.List(ctx, query)
}

// CreateCommonSpaceInput is the request payload for adding a common space
type CreateCommonSpaceInput struct {
	CondominiumID  uint    `json:"condominio_id"`
	Name           string  `json:"nombre" binding:"required"`
	ReservationFee float64 `json:"tarifa_reserva"`
	Capacity       int     `json:"capacidad"`
}

// CreateCommonSpace adds a bookable space to a condominium
func (s *CondominiumService) CreateCommonSpace(ctx context.Context, input CreateCommonSpaceInput) (*models.CommonSpace, error) {
	if _, err := s.condominiumRepo.FindByID(ctx, input.CondominiumID); err != nil {
		return nil, ErrNotFound
	}

	space := &models.CommonSpace{
		CondominiumID:  input.CondominiumID,
		Name:           input.Name,
		ReservationFee: input.ReservationFee,
		Capacity:       input.Capacity,
		Active:         true,
	}
	if err := s.commonSpaceRepo.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

// ListCommonSpaces returns a condominium's active spaces
func (s *CondominiumService) ListCommonSpaces(ctx context.Context, condominiumID uint) ([]models.CommonSpace, error) {
	return s.commonSpaceRepo.FindByCondominium(ctx, condominiumID)
}
