package services

import (
	"context"
	"strings"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// UserService manages portal accounts
type UserService struct {
	userRepo repository.UserRepository
	auditSvc *AuditService
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, auditSvc *AuditService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auditSvc: auditSvc,
	}
}

// CreateUserInput is the request payload for creating an account
type CreateUserInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	FirstName     string `json:"nombre" binding:"required"`
	LastName      string `json:"apellido"`
	Phone         string `json:"telefono"`
	Role          string `json:"rol"`
	CondominiumID *uint  `json:"condominio_id"`
}

// UpdateUserInput is the request payload for updating an account
type UpdateUserInput struct {
	FirstName *string `json:"nombre"`
	LastName  *string `json:"apellido"`
	Phone     *string `json:"telefono"`
	Role      *string `json:"rol"`
	Active    *bool   `json:"activo"`
}

// Create registers a new account with a hashed password
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		EncryptedPassword: hashed,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Phone:             input.Phone,
		Role:              input.Role,
		Active:            true,
		CondominiumID:     input.CondominiumID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypeSystem,
		Detail:        "Usuario creado: " + user.Email,
		UserID:        &user.ID,
		CondominiumID: user.CondominiumID,
	})

	return user, nil
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Update applies a partial update to an account
func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces a user's password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if !VerifyPassword(currentPassword, user.EncryptedPassword) {
		return ErrInvalidPassword
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.EncryptedPassword = hashed
	return s.userRepo.Update(ctx, user)
}

// Deactivate disables an account
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// List returns users matching the query
func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, query)
}
