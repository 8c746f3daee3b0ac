package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
)

type lateFineChargeRepo struct {
	mockChargeRepo
	dueBefore []models.Charge
}

func (m *lateFineChargeRepo) FindDueBefore(ctx context.Context, cutoff time.Time, statuses []string) ([]models.Charge, error) {
	return m.dueBefore, nil
}

type lateFineRepo struct {
	mockFineRepo
	existing map[uint]bool
	created  []*models.Fine
}

func (m *lateFineRepo) ExistsLateFine(ctx context.Context, chargeID uint) (bool, error) {
	return m.existing[chargeID], nil
}

func (m *lateFineRepo) Create(ctx context.Context, fine *models.Fine) error {
	m.created = append(m.created, fine)
	return nil
}

func TestFineService_ProcessLatePayments_SkipsChargesWithExistingFine(t *testing.T) {
	chargeRepo := &lateFineChargeRepo{
		dueBefore: []models.Charge{
			{ID: 1, ResidentID: 10, Month: 1, Year: 2026, TotalAmount: 48000, Status: models.ChargeStatusOverdue},
			{ID: 2, ResidentID: 11, Month: 1, Year: 2026, TotalAmount: 52000, Status: models.ChargeStatusDelinquent},
		},
	}
	fineRepo := &lateFineRepo{existing: map[uint]bool{1: true}}
	auditRepo := &mockAuditRepo{}
	cfg := &config.Config{LateFineAmount: 20000, LateFineGraceDays: 15}

	service := NewFineService(fineRepo, chargeRepo, &mockResidentRepo{}, NewAuditService(auditRepo), newAlertServiceForTest(), cfg)

	issued, err := service.ProcessLatePayments(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, issued)
	assert.Len(t, fineRepo.created, 1)

	fine := fineRepo.created[0]
	assert.Equal(t, models.FineTypeLatePayment, fine.Type)
	assert.Equal(t, 20000.0, fine.Amount)
	assert.Equal(t, uint(11), fine.ResidentID)
	assert.Equal(t, uint(2), *fine.RelatedChargeID)
	assert.Equal(t, models.FineStatusPending, fine.Status)
}

func TestFineService_ProcessLatePayments_NothingOverdue(t *testing.T) {
	chargeRepo := &lateFineChargeRepo{}
	fineRepo := &lateFineRepo{}
	auditRepo := &mockAuditRepo{}
	cfg := &config.Config{LateFineAmount: 20000, LateFineGraceDays: 15}

	service := NewFineService(fineRepo, chargeRepo, &mockResidentRepo{}, NewAuditService(auditRepo), newAlertServiceForTest(), cfg)

	issued, err := service.ProcessLatePayments(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, issued)
	assert.Empty(t, fineRepo.created)
}

func TestFineService_Create_RejectsNonPositiveAmount(t *testing.T) {
	auditRepo := &mockAuditRepo{}
	cfg := &config.Config{}
	service := NewFineService(&lateFineRepo{}, nil, &mockResidentRepo{}, NewAuditService(auditRepo), newAlertServiceForTest(), cfg)

	_, err := service.Create(context.Background(), CreateFineInput{
		ResidentID:  1,
		Type:        models.FineTypeNoise,
		Description: "Ruido nocturno",
		Amount:      0,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
