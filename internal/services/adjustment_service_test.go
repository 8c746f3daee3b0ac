package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

type mockAuditRepo struct {
	repository.AuditRepository
	mockFindByID                 func(ctx context.Context, id uint) (*models.AuditEvent, error)
	mockFindEditEventsByResident func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error)
	created                      []*models.AuditEvent
}

func (m *mockAuditRepo) FindByID(ctx context.Context, id uint) (*models.AuditEvent, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockAuditRepo) FindEditEventsByResident(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
	return m.mockFindEditEventsByResident(ctx, residentID, limit)
}

func (m *mockAuditRepo) Create(ctx context.Context, event *models.AuditEvent) error {
	if event.ID == 0 {
		event.ID = uint(len(m.created) + 100)
	}
	m.created = append(m.created, event)
	return nil
}

type mockAlertRepo struct {
	repository.AlertRepository
}

func (m *mockAlertRepo) Create(ctx context.Context, alert *models.Alert) error {
	return nil
}

func newAlertServiceForTest() *AlertService {
	return NewAlertService(&mockAlertRepo{}, nil, &mockResidentRepo{})
}

func uintPtr(v uint) *uint { return &v }

func adjustmentEvent(id, residentID uint, meta models.AdjustmentMeta) models.AuditEvent {
	encoded, _ := meta.Encode()
	return models.AuditEvent{
		ID:         id,
		EventType:  models.EventTypeEdit,
		ResidentID: &residentID,
		Metadata:   encoded,
	}
}

func TestAdjustmentService_AdjustCharge_CondonationForcesZero(t *testing.T) {
	var updated *models.Charge
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return &models.Charge{ID: id, ResidentID: 1, Month: 5, Year: 2026, TotalAmount: 48000, Status: models.ChargeStatusOverdue}, nil
		},
		mockUpdate: func(ctx context.Context, charge *models.Charge) error {
			updated = charge
			return nil
		},
	}
	auditRepo := &mockAuditRepo{}
	service := NewAdjustmentService(chargeRepo, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	charge, err := service.AdjustCharge(context.Background(), 9, AdjustmentInput{
		NewAmount:     25000, // ignored when condoning
		Reason:        "Acuerdo directorio",
		IsCondonation: true,
		UserID:        2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, charge.TotalAmount)
	assert.Equal(t, 0.0, updated.TotalAmount)
	assert.Equal(t, models.ChargeStatusOverdue, charge.Status)

	assert.Len(t, auditRepo.created, 1)
	meta, ok := models.ParseAdjustmentMeta(auditRepo.created[0].Metadata)
	assert.True(t, ok)
	assert.Equal(t, 48000.0, meta.PreviousAmount)
	assert.Equal(t, 0.0, meta.NewAmount)
	assert.True(t, meta.IsCondonation)
}

func TestAdjustmentService_AdjustCharge_NegativeAmountRejected(t *testing.T) {
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			t.Fatal("nothing should be loaded for an invalid input")
			return nil, nil
		},
	}
	auditRepo := &mockAuditRepo{}
	service := NewAdjustmentService(chargeRepo, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	_, err := service.AdjustCharge(context.Background(), 9, AdjustmentInput{
		NewAmount: -100,
		Reason:    "Error",
		UserID:    2,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, auditRepo.created)
}

func TestAdjustmentService_AdjustCharge_PaidChargeRejected(t *testing.T) {
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return &models.Charge{ID: id, TotalAmount: 48000, Status: models.ChargeStatusPaid}, nil
		},
	}
	auditRepo := &mockAuditRepo{}
	service := NewAdjustmentService(chargeRepo, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	_, err := service.AdjustCharge(context.Background(), 9, AdjustmentInput{NewAmount: 100, Reason: "x", UserID: 2})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAdjustmentService_AdjustFine_Condonation(t *testing.T) {
	var updated *models.Fine
	fineRepo := &mockFineRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Fine, error) {
			return &models.Fine{ID: id, ResidentID: 1, Amount: 30000, Status: models.FineStatusPending}, nil
		},
		mockUpdate: func(ctx context.Context, fine *models.Fine) error {
			updated = fine
			return nil
		},
	}
	auditRepo := &mockAuditRepo{}
	service := NewAdjustmentService(nil, fineRepo, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	fine, err := service.AdjustFine(context.Background(), 4, AdjustmentInput{
		Reason:        "Primera infracción",
		IsCondonation: true,
		UserID:        2,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.FineStatusCondoned, fine.Status)
	assert.Equal(t, 0.0, fine.Amount)
	assert.Equal(t, "Primera infracción", fine.CondonedReason)
	assert.Equal(t, models.FineStatusCondoned, updated.Status)

	meta, _ := models.ParseAdjustmentMeta(auditRepo.created[0].Metadata)
	assert.Equal(t, models.FineStatusPending, meta.PreviousStatus)
}

func TestAdjustmentService_FindLastAdjustment_SkipsReversed(t *testing.T) {
	// Newest first, as the repository returns them: a reversal of event 20,
	// then event 20 itself, then the older event 10.
	events := []models.AuditEvent{
		adjustmentEvent(30, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(7), PreviousAmount: 40000, NewAmount: 48000, ReversedEventID: uintPtr(20)}),
		adjustmentEvent(20, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(7), PreviousAmount: 48000, NewAmount: 40000}),
		adjustmentEvent(10, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectFine, FineID: uintPtr(3), PreviousAmount: 30000, NewAmount: 15000}),
	}
	auditRepo := &mockAuditRepo{
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return events, nil
		},
	}
	fineRepo := &mockFineRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Fine, error) {
			return &models.Fine{ID: id, ResidentID: 1}, nil
		},
	}
	service := NewAdjustmentService(nil, fineRepo, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	event, meta, err := service.FindLastAdjustment(context.Background(), 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint(10), event.ID)
	assert.Equal(t, models.AuditObjectFine, meta.ObjectType)
}

func TestAdjustmentService_FindLastAdjustment_ScopeFilter(t *testing.T) {
	events := []models.AuditEvent{
		adjustmentEvent(21, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(7), PreviousAmount: 48000, NewAmount: 40000}),
		adjustmentEvent(11, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectFine, FineID: uintPtr(3), PreviousAmount: 30000, NewAmount: 15000}),
	}
	auditRepo := &mockAuditRepo{
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return events, nil
		},
	}
	fineRepo := &mockFineRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Fine, error) {
			return &models.Fine{ID: id, ResidentID: 1}, nil
		},
	}
	service := NewAdjustmentService(nil, fineRepo, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	event, _, err := service.FindLastAdjustment(context.Background(), 1, &AdjustmentScope{ObjectType: models.AuditObjectFine, ObjectID: 3})
	assert.NoError(t, err)
	assert.Equal(t, uint(11), event.ID)

	_, _, err = service.FindLastAdjustment(context.Background(), 1, &AdjustmentScope{ObjectType: models.AuditObjectFine, ObjectID: 99})
	assert.ErrorIs(t, err, ErrNoAdjustment)
}

func TestAdjustmentService_FindLastAdjustment_SkipsDeletedTargets(t *testing.T) {
	// Charge 99 was deleted after being adjusted; its event can no longer
	// be reversed, so the older adjustment of charge 7 wins.
	events := []models.AuditEvent{
		adjustmentEvent(22, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(99), PreviousAmount: 52000, NewAmount: 0}),
		adjustmentEvent(12, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(7), PreviousAmount: 48000, NewAmount: 40000}),
	}
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			if id == 99 {
				return nil, ErrNotFound
			}
			return &models.Charge{ID: id, ResidentID: 1}, nil
		},
	}
	auditRepo := &mockAuditRepo{
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return events, nil
		},
	}
	service := NewAdjustmentService(chargeRepo, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	event, meta, err := service.FindLastAdjustment(context.Background(), 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint(12), event.ID)
	assert.Equal(t, uint(7), *meta.ChargeID)

	// When every surviving event points at a deleted object there is
	// nothing left to reverse.
	events = events[:1]
	_, _, err = service.FindLastAdjustment(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrNoAdjustment)
}

func TestAdjustmentService_Reverse_RestoresChargeAndAppendsEvent(t *testing.T) {
	var updated *models.Charge
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return &models.Charge{ID: id, ResidentID: 1, TotalAmount: 0, Status: models.ChargeStatusOverdue}, nil
		},
		mockUpdate: func(ctx context.Context, charge *models.Charge) error {
			updated = charge
			return nil
		},
	}
	events := []models.AuditEvent{
		adjustmentEvent(40, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(7), PreviousAmount: 48000, NewAmount: 0, PreviousStatus: models.ChargeStatusOverdue, IsCondonation: true}),
	}
	auditRepo := &mockAuditRepo{
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return events, nil
		},
	}
	service := NewAdjustmentService(chargeRepo, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	reversal, err := service.Reverse(context.Background(), 1, ReversalInput{Reason: "Condonación errónea", UserID: 2})
	assert.NoError(t, err)
	assert.Equal(t, 48000.0, updated.TotalAmount)
	assert.Equal(t, models.ChargeStatusOverdue, updated.Status)

	meta, ok := models.ParseAdjustmentMeta(reversal.Metadata)
	assert.True(t, ok)
	assert.True(t, meta.IsReversal())
	assert.Equal(t, uint(40), *meta.ReversedEventID)
	assert.Equal(t, 48000.0, meta.NewAmount)
	assert.Equal(t, 0.0, meta.PreviousAmount)
}

func TestAdjustmentService_ReverseCharge_IgnoresOtherTargets(t *testing.T) {
	var updated *models.Charge
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return &models.Charge{ID: id, ResidentID: 1, TotalAmount: 40000, Status: models.ChargeStatusPending}, nil
		},
		mockUpdate: func(ctx context.Context, charge *models.Charge) error {
			updated = charge
			return nil
		},
	}
	// The fine adjustment is newer; reversing through the charge route
	// must still pick the charge's own event.
	events := []models.AuditEvent{
		adjustmentEvent(62, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectFine, FineID: uintPtr(3), PreviousAmount: 30000, NewAmount: 15000}),
		adjustmentEvent(61, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectCharge, ChargeID: uintPtr(7), PreviousAmount: 48000, NewAmount: 40000}),
	}
	auditRepo := &mockAuditRepo{
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return events, nil
		},
	}
	service := NewAdjustmentService(chargeRepo, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	reversal, err := service.ReverseCharge(context.Background(), 7, ReversalInput{Reason: "Monto equivocado", UserID: 2})
	assert.NoError(t, err)
	assert.Equal(t, 48000.0, updated.TotalAmount)

	meta, ok := models.ParseAdjustmentMeta(reversal.Metadata)
	assert.True(t, ok)
	assert.Equal(t, uint(61), *meta.ReversedEventID)
}

func TestAdjustmentService_Reverse_AlreadyReversed(t *testing.T) {
	target := adjustmentEvent(50, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectFine, FineID: uintPtr(3), PreviousAmount: 30000, NewAmount: 15000})
	events := []models.AuditEvent{
		adjustmentEvent(60, 1, models.AdjustmentMeta{ObjectType: models.AuditObjectFine, FineID: uintPtr(3), PreviousAmount: 15000, NewAmount: 30000, ReversedEventID: uintPtr(50)}),
		target,
	}
	auditRepo := &mockAuditRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.AuditEvent, error) {
			return &target, nil
		},
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return events, nil
		},
	}
	service := NewAdjustmentService(nil, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	_, err := service.Reverse(context.Background(), 1, ReversalInput{EventID: 50, Reason: "Intento doble", UserID: 2})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAdjustmentService_Reverse_IncompleteMetadataTreatedAsNoMatch(t *testing.T) {
	// The registros table is shared with hand-written events; a payload
	// carrying only a type tag must be skipped, not dereferenced.
	residentID := uint(1)
	orphan := models.AuditEvent{
		ID:         70,
		EventType:  models.EventTypeEdit,
		ResidentID: &residentID,
		Metadata:   `{"tipo_objeto":"GASTO","monto_anterior":48000,"monto_nuevo":0}`,
	}
	auditRepo := &mockAuditRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.AuditEvent, error) {
			return &orphan, nil
		},
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return []models.AuditEvent{orphan}, nil
		},
	}
	service := NewAdjustmentService(nil, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	_, _, err := service.FindLastAdjustment(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrNoAdjustment)

	_, err = service.Reverse(context.Background(), 1, ReversalInput{Reason: "x", UserID: 2})
	assert.ErrorIs(t, err, ErrNoAdjustment)

	_, err = service.Reverse(context.Background(), 1, ReversalInput{EventID: 70, Reason: "x", UserID: 2})
	assert.ErrorIs(t, err, ErrNoAdjustment)
}

func TestAdjustmentService_Reverse_NothingToReverse(t *testing.T) {
	auditRepo := &mockAuditRepo{
		mockFindEditEventsByResident: func(ctx context.Context, residentID uint, limit int) ([]models.AuditEvent, error) {
			return nil, nil
		},
	}
	service := NewAdjustmentService(nil, nil, auditRepo, NewAuditService(auditRepo), newAlertServiceForTest())

	_, err := service.Reverse(context.Background(), 1, ReversalInput{Reason: "x", UserID: 2})
	assert.ErrorIs(t, err, ErrNoAdjustment)
}
