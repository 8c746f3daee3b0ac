package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/models"
)

type reviewPaymentRepo struct {
	mockPaymentRepo
	payment *models.Payment
	updated *models.Payment
}

func (m *reviewPaymentRepo) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return m.payment, nil
}

func (m *reviewPaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	m.updated = payment
	return nil
}

func newPaymentServiceForTest(paymentRepo *reviewPaymentRepo, chargeRepo *mockChargeRepo, fineRepo *mockFineRepo) (*PaymentService, *mockAuditRepo) {
	auditRepo := &mockAuditRepo{}
	return NewPaymentService(paymentRepo, chargeRepo, fineRepo, &mockResidentRepo{},
		NewAuditService(auditRepo), newAlertServiceForTest()), auditRepo
}

func TestPaymentService_Approve_SettlesReferencedCharge(t *testing.T) {
	refID := uint(7)
	paymentRepo := &reviewPaymentRepo{
		payment: &models.Payment{
			ID:          1,
			ResidentID:  10,
			Type:        models.PaymentTypeCharge,
			ReferenceID: &refID,
			Amount:      48000,
			Status:      models.PaymentStatusPending,
		},
	}
	var settledCharge *models.Charge
	chargeRepo := &mockChargeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return &models.Charge{ID: id, Status: models.ChargeStatusOverdue, TotalAmount: 48000}, nil
		},
		mockUpdate: func(ctx context.Context, charge *models.Charge) error {
			settledCharge = charge
			return nil
		},
	}
	service, auditRepo := newPaymentServiceForTest(paymentRepo, chargeRepo, nil)

	payment, err := service.Approve(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, payment.Status)
	assert.NotNil(t, payment.ApprovedAt)
	assert.Equal(t, uint(2), *payment.ApprovedByID)

	assert.Equal(t, models.ChargeStatusPaid, settledCharge.Status)
	assert.NotNil(t, settledCharge.PaidAt)
	assert.Len(t, auditRepo.created, 1)
	assert.Equal(t, models.EventTypePayment, auditRepo.created[0].EventType)
}

func TestPaymentService_Approve_AlreadyApproved(t *testing.T) {
	paymentRepo := &reviewPaymentRepo{
		payment: &models.Payment{ID: 1, Status: models.PaymentStatusApproved},
	}
	service, _ := newPaymentServiceForTest(paymentRepo, nil, nil)

	_, err := service.Approve(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, paymentRepo.updated)
}

func TestPaymentService_Reverse_ReopensReferencedFine(t *testing.T) {
	refID := uint(3)
	paymentRepo := &reviewPaymentRepo{
		payment: &models.Payment{
			ID:          1,
			ResidentID:  10,
			Type:        models.PaymentTypeFine,
			ReferenceID: &refID,
			Amount:      30000,
			Status:      models.PaymentStatusApproved,
		},
	}
	var reopened *models.Fine
	fineRepo := &mockFineRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Fine, error) {
			return &models.Fine{ID: id, Status: models.FineStatusPaid, Amount: 30000}, nil
		},
		mockUpdate: func(ctx context.Context, fine *models.Fine) error {
			reopened = fine
			return nil
		},
	}
	service, _ := newPaymentServiceForTest(paymentRepo, nil, fineRepo)

	payment, err := service.Reverse(context.Background(), 1, 2, "Transferencia no conciliada")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusReversed, payment.Status)
	assert.Equal(t, models.FineStatusPending, reopened.Status)
	assert.Nil(t, reopened.PaidAt)
}

func TestPaymentService_Reject_KeepsReason(t *testing.T) {
	paymentRepo := &reviewPaymentRepo{
		payment: &models.Payment{ID: 1, ResidentID: 10, Amount: 5000, Status: models.PaymentStatusPending},
	}
	service, _ := newPaymentServiceForTest(paymentRepo, nil, nil)

	payment, err := service.Reject(context.Background(), 1, 2, "Comprobante ilegible")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRejected, payment.Status)
	assert.Equal(t, "Comprobante ilegible", payment.Notes)
}
