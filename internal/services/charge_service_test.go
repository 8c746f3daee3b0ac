package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

type emitChargeRepo struct {
	mockChargeRepo
	existing *models.Charge
	created  *models.Charge
}

func (m *emitChargeRepo) FindByPeriod(ctx context.Context, residentID uint, month, year int) (*models.Charge, error) {
	if m.existing != nil {
		return m.existing, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *emitChargeRepo) Create(ctx context.Context, charge *models.Charge) error {
	m.created = charge
	return nil
}

func newChargeServiceForTest(chargeRepo *emitChargeRepo) *ChargeService {
	auditRepo := &mockAuditRepo{}
	return NewChargeService(chargeRepo, &mockResidentRepo{}, NewAuditService(auditRepo), newAlertServiceForTest(), &config.Config{})
}

func TestChargeService_Create_TotalsIncludeObservations(t *testing.T) {
	chargeRepo := &emitChargeRepo{}
	service := newChargeServiceForTest(chargeRepo)

	charge, err := service.Create(context.Background(), CreateChargeInput{
		ResidentID:     1,
		Month:          3,
		Year:           2026,
		BaseAmount:     40000,
		MaintenanceFee: 5000,
		ServicesAmount: 8000,
		DueDate:        "2026-03-10",
		Observations: []models.ObservationItem{
			{Type: "RESERVA", Description: "Arriendo quincho", Amount: 25000},
			{Type: "OTRO", Description: "Devolución garantía", Amount: -10000},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 68000.0, charge.TotalAmount)
	assert.Equal(t, models.ChargeStatusPending, charge.Status)
	assert.NotNil(t, chargeRepo.created)
}

func TestChargeService_Create_DuplicatePeriodRejected(t *testing.T) {
	chargeRepo := &emitChargeRepo{existing: &models.Charge{ID: 9, Month: 3, Year: 2026}}
	service := newChargeServiceForTest(chargeRepo)

	_, err := service.Create(context.Background(), CreateChargeInput{
		ResidentID: 1,
		Month:      3,
		Year:       2026,
		BaseAmount: 40000,
		DueDate:    "2026-03-10",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Nil(t, chargeRepo.created)
}

func TestChargeService_Create_InvalidDueDate(t *testing.T) {
	chargeRepo := &emitChargeRepo{}
	service := newChargeServiceForTest(chargeRepo)

	_, err := service.Create(context.Background(), CreateChargeInput{
		ResidentID: 1,
		Month:      3,
		Year:       2026,
		BaseAmount: 40000,
		DueDate:    "10-03-2026",
	})
	assert.Error(t, err)
	assert.Nil(t, chargeRepo.created)
}
