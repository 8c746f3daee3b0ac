package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	deleted         []string
	created         []*models.RefreshToken
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	m.created = append(m.created, token)
	return nil
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, nil, nil)

	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			Email:  email,
			Active: false,
		}, nil
	}

	result, err := service.Login(context.Background(), "inactivo@example.com", "password")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "cuenta inactiva o suspendida", err.Error())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, nil, nil)

	hashed, err := HashPassword("correcta")
	assert.NoError(t, err)

	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			Email:             email,
			Active:            true,
			EncryptedPassword: hashed,
		}, nil
	}

	result, err := service.Login(context.Background(), "residente@example.com", "incorrecta")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := &mockUserRepo{}
	mockRTRepo := &mockRefreshTokenRepo{}
	cfg := &config.Config{JWTSecret: "secreto-de-prueba", JWTExpirationHours: 24}
	service := NewAuthService(mockRepo, mockRTRepo, cfg)

	hashed, err := HashPassword("password123")
	assert.NoError(t, err)

	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			ID:                5,
			Email:             email,
			Active:            true,
			Role:              models.RoleResident,
			EncryptedPassword: hashed,
		}, nil
	}

	result, err := service.Login(context.Background(), "residente@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, uint(5), result.User.ID)
	assert.Len(t, mockRTRepo.created, 1)
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	mockRepo := &mockUserRepo{}
	mockRTRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(mockRepo, mockRTRepo, nil)

	expired := time.Now().Add(-time.Hour)
	mockRTRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expired}, nil
	}

	result, err := service.RefreshToken(context.Background(), "viejo")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "token expirado", err.Error())
	assert.Equal(t, []string{"viejo"}, mockRTRepo.deleted)
}

func TestAuthService_RefreshToken_RotatesToken(t *testing.T) {
	mockRepo := &mockUserRepo{}
	mockRTRepo := &mockRefreshTokenRepo{}
	cfg := &config.Config{JWTSecret: "secreto-de-prueba", JWTExpirationHours: 24}
	service := NewAuthService(mockRepo, mockRTRepo, cfg)

	mockRTRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 5, Token: token}, nil
	}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Active: true, Role: models.RoleResident}, nil
	}

	result, err := service.RefreshToken(context.Background(), "actual")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, "actual", result.RefreshToken)
	assert.Equal(t, []string{"actual"}, mockRTRepo.deleted)
	assert.Len(t, mockRTRepo.created, 1)
}
