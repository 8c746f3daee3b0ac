package services

import (
	"context"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// ResidentService manages residents and their link to housing units
type ResidentService struct {
	residentRepo repository.ResidentRepository
	userRepo     repository.UserRepository
	auditSvc     *AuditService
}

// NewResidentService creates a new resident service
func NewResidentService(residentRepo repository.ResidentRepository, userRepo repository.UserRepository, auditSvc *AuditService) *ResidentService {
	return &ResidentService{
		residentRepo: residentRepo,
		userRepo:     userRepo,
		auditSvc:     auditSvc,
	}
}

// CreateResidentInput is the request payload for registering a resident
type CreateResidentInput struct {
	UserID        uint   `json:"usuario_id" binding:"required"`
	CondominiumID uint   `json:"condominio_id" binding:"required"`
	FirstName     string `json:"nombre" binding:"required"`
	LastName      string `json:"apellido"`
	Email         string `json:"email" binding:"required,email"`
	UnitNumber    string `json:"vivienda_numero" binding:"required"`
}

// UpdateResidentInput is the request payload for updating a resident
type UpdateResidentInput struct {
	FirstName  *string `json:"nombre"`
	LastName   *string `json:"apellido"`
	Email      *string `json:"email"`
	UnitNumber *string `json:"vivienda_numero"`
	Active     *bool   `json:"activo"`
}

// Create registers a resident in a condominium
func (s *ResidentService) Create(ctx context.Context, input CreateResidentInput) (*models.Resident, error) {
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, ErrNotFound
	}

	resident := &models.Resident{
		UserID:        input.UserID,
		CondominiumID: input.CondominiumID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		UnitNumber:    input.UnitNumber,
		Active:        true,
	}

	if err := s.residentRepo.Create(ctx, resident); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypeSystem,
		Detail:        "Residente registrado: " + resident.FullName() + " (vivienda " + resident.UnitNumber + ")",
		ResidentID:    &resident.ID,
		CondominiumID: &resident.CondominiumID,
	})

	return resident, nil
}

// GetByID returns one resident
func (s *ResidentService) GetByID(ctx context.Context, id uint) (*models.Resident, error) {
	resident, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return resident, nil
}

// GetByUserID returns the resident behind a user account
func (s *ResidentService) GetByUserID(ctx context.Context, userID uint) (*models.Resident, error) {
	resident, err := s.residentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return resident, nil
}

// Update applies a partial update to a resident
func (s *ResidentService) Update(ctx context.Context, id uint, input UpdateResidentInput) (*models.Resident, error) {
	resident, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if input.FirstName != nil {
		resident.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		resident.LastName = *input.LastName
	}
	if input.Email != nil {
		resident.Email = *input.Email
	}
	if input.UnitNumber != nil {
		resident.UnitNumber = *input.UnitNumber
	}
	if input.Active != nil {
		resident.Active = *input.Active
	}

	if err := s.residentRepo.Update(ctx, resident); err != nil {
		return nil, err
	}
	return resident, nil
}

// Deactivate disables a resident
func (s *ResidentService) Deactivate(ctx context.Context, id uint) error {
	return s.residentRepo.Delete(ctx, id)
}

// List returns residents matching the query
func (s *ResidentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Resident, int64, error) {
	return s.residentRepo.List(ctx, query)
}
