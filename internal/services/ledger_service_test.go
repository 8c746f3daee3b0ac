package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

type mockChargeRepo struct {
	repository.ChargeRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.Charge, error)
	mockFindByResident func(ctx context.Context, residentID uint) ([]models.Charge, error)
	mockUpdate         func(ctx context.Context, charge *models.Charge) error
}

func (m *mockChargeRepo) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockChargeRepo) FindByResident(ctx context.Context, residentID uint) ([]models.Charge, error) {
	return m.mockFindByResident(ctx, residentID)
}

func (m *mockChargeRepo) Update(ctx context.Context, charge *models.Charge) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, charge)
	}
	return nil
}

type mockFineRepo struct {
	repository.FineRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.Fine, error)
	mockFindByResident func(ctx context.Context, residentID uint) ([]models.Fine, error)
	mockUpdate         func(ctx context.Context, fine *models.Fine) error
}

func (m *mockFineRepo) FindByID(ctx context.Context, id uint) (*models.Fine, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockFineRepo) FindByResident(ctx context.Context, residentID uint) ([]models.Fine, error) {
	return m.mockFindByResident(ctx, residentID)
}

func (m *mockFineRepo) Update(ctx context.Context, fine *models.Fine) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, fine)
	}
	return nil
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	mockFindApprovedByResident func(ctx context.Context, residentID uint) ([]models.Payment, error)
}

func (m *mockPaymentRepo) FindApprovedByResident(ctx context.Context, residentID uint) ([]models.Payment, error) {
	return m.mockFindApprovedByResident(ctx, residentID)
}

type mockResidentRepo struct {
	repository.ResidentRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Resident, error)
}

func (m *mockResidentRepo) FindByID(ctx context.Context, id uint) (*models.Resident, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Resident{ID: id}, nil
}

func newLedgerServiceForTest(charges []models.Charge, fines []models.Fine, payments []models.Payment) *LedgerService {
	return NewLedgerService(
		&mockChargeRepo{mockFindByResident: func(ctx context.Context, residentID uint) ([]models.Charge, error) {
			return charges, nil
		}},
		&mockFineRepo{mockFindByResident: func(ctx context.Context, residentID uint) ([]models.Fine, error) {
			return fines, nil
		}},
		&mockPaymentRepo{mockFindApprovedByResident: func(ctx context.Context, residentID uint) ([]models.Payment, error) {
			return payments, nil
		}},
		&mockResidentRepo{},
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLedgerService_BuildStatement_ChargeObservationAndPayment(t *testing.T) {
	charges := []models.Charge{{
		ID:          7,
		Month:       3,
		Year:        2026,
		BaseAmount:  50000,
		TotalAmount: 45000,
		Status:      models.ChargeStatusPending,
		IssueDate:   date(2026, 3, 1),
		DueDate:     date(2026, 3, 10),
		Observations: models.ObservationList{
			{Type: "RESERVA", Description: "Devolución garantía quincho", Amount: -5000, Date: "2026-03-05"},
		},
	}}
	payments := []models.Payment{{
		ID:          12,
		Amount:      45000,
		Method:      models.PaymentMethodTransfer,
		Status:      models.PaymentStatusApproved,
		PaymentDate: date(2026, 3, 20),
	}}

	service := newLedgerServiceForTest(charges, nil, payments)

	statement, err := service.BuildStatement(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, statement.SectionErrors)
	assert.Len(t, statement.Entries, 3)

	// Newest first
	assert.Equal(t, "PAGO-12", statement.Entries[0].ID)
	assert.Equal(t, models.DirectionCredit, statement.Entries[0].Direction)
	assert.Equal(t, "Pago Transferencia", statement.Entries[0].Description)

	assert.Equal(t, "GC-7-OBS-0", statement.Entries[1].ID)
	assert.Equal(t, models.DirectionCredit, statement.Entries[1].Direction)
	assert.Equal(t, 5000.0, statement.Entries[1].Amount)
	assert.Equal(t, models.CategoryReservation, statement.Entries[1].Category)

	assert.Equal(t, "GC-7-BASE", statement.Entries[2].ID)
	assert.Equal(t, "Gasto común Marzo 2026", statement.Entries[2].Description)
	assert.Equal(t, 50000.0, statement.Entries[2].Amount)

	assert.Equal(t, 50000.0, statement.TotalCharges)
	assert.Equal(t, 50000.0, statement.TotalCredits)
	assert.Equal(t, 0.0, statement.Balance)
}

func TestLedgerService_BuildStatement_CondonedFineExcluded(t *testing.T) {
	fines := []models.Fine{
		{ID: 1, Description: "Ruido nocturno", Amount: 30000, Status: models.FineStatusPending, IssueDate: date(2026, 2, 1)},
		{ID: 2, Description: "Mascota sin correa", Amount: 15000, Status: models.FineStatusCondoned, IssueDate: date(2026, 2, 15)},
	}

	service := newLedgerServiceForTest(nil, fines, nil)

	statement, err := service.BuildStatement(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, statement.Entries, 1)
	assert.Equal(t, "MULTA-1", statement.Entries[0].ID)
	assert.Equal(t, 30000.0, statement.Balance)
}

func TestLedgerService_BuildStatement_PartialSourceFailure(t *testing.T) {
	service := NewLedgerService(
		&mockChargeRepo{mockFindByResident: func(ctx context.Context, residentID uint) ([]models.Charge, error) {
			return nil, errors.New("connection refused")
		}},
		&mockFineRepo{mockFindByResident: func(ctx context.Context, residentID uint) ([]models.Fine, error) {
			return []models.Fine{{ID: 3, Description: "Estacionamiento", Amount: 10000, Status: models.FineStatusPending, IssueDate: date(2026, 1, 10)}}, nil
		}},
		&mockPaymentRepo{mockFindApprovedByResident: func(ctx context.Context, residentID uint) ([]models.Payment, error) {
			return nil, nil
		}},
		&mockResidentRepo{},
	)

	statement, err := service.BuildStatement(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"no fue posible cargar los gastos comunes"}, statement.SectionErrors)
	assert.Len(t, statement.Entries, 1)
	assert.Equal(t, 10000.0, statement.Balance)

	// Balance refuses to answer from an incomplete statement
	_, err = service.Balance(context.Background(), 1)
	assert.Error(t, err)
}

func TestLedgerService_ObservationDate_FallbackToIssueDate(t *testing.T) {
	service := newLedgerServiceForTest(nil, nil, nil)
	charge := &models.Charge{ID: 1, IssueDate: date(2026, 4, 1)}

	assert.Equal(t, date(2026, 4, 1), service.observationDate(charge, models.ObservationItem{Date: ""}))
	assert.Equal(t, date(2026, 4, 1), service.observationDate(charge, models.ObservationItem{Date: "05-03-2026"}))
	assert.Equal(t, date(2026, 4, 8), service.observationDate(charge, models.ObservationItem{Date: "2026-04-08"}))
}

func TestLedgerService_Aging_Partition(t *testing.T) {
	now := date(2026, 6, 1)
	service := newLedgerServiceForTest(nil, nil, nil)

	charges := []models.Charge{
		{TotalAmount: 10000, Status: models.ChargeStatusOverdue, DueDate: now.AddDate(0, 0, -10)},
		{TotalAmount: 20000, Status: models.ChargeStatusOverdue, DueDate: now.AddDate(0, 0, -45)},
		{TotalAmount: 30000, Status: models.ChargeStatusDelinquent, DueDate: now.AddDate(0, 0, -90)},
		// Not yet due: excluded
		{TotalAmount: 99999, Status: models.ChargeStatusPending, DueDate: now.AddDate(0, 0, 5)},
		// Paid: excluded
		{TotalAmount: 88888, Status: models.ChargeStatusPaid, DueDate: now.AddDate(0, 0, -90)},
	}
	fines := []models.Fine{
		{Amount: 5000, Status: models.FineStatusPending, IssueDate: now.AddDate(0, 0, -40)},
		{Amount: 7000, Status: models.FineStatusCondoned, IssueDate: now.AddDate(0, 0, -40)},
	}

	buckets := service.aging(charges, fines, now)
	assert.Equal(t, 10000.0, buckets.UpTo30Days)
	assert.Equal(t, 25000.0, buckets.UpTo60Days)
	assert.Equal(t, 30000.0, buckets.Over60Days)
	assert.Equal(t, 65000.0, buckets.Total())
}

func TestObservationCategory(t *testing.T) {
	assert.Equal(t, models.CategoryReservation, observationCategory("RESERVA"))
	assert.Equal(t, models.CategoryFine, observationCategory("MULTA"))
	assert.Equal(t, models.CategoryFine, observationCategory("multa ruido"))
	assert.Equal(t, models.CategoryOther, observationCategory("AJUSTE"))
	assert.Equal(t, models.CategoryOther, observationCategory(""))
}
