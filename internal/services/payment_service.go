package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/internal/statemachine"
	"github.com/vecindia/condominio-api/pkg/logger"
)

// PaymentService manages resident payments: registration, review by the
// administration, and reversal. Approving or reversing a payment also
// settles or reopens the charge or fine it references.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	chargeRepo   repository.ChargeRepository
	fineRepo     repository.FineRepository
	residentRepo repository.ResidentRepository
	auditSvc     *AuditService
	alertSvc     *AlertService

	// set by NewServices; nil in isolation
	kpi *KPIService
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, chargeRepo repository.ChargeRepository, fineRepo repository.FineRepository, residentRepo repository.ResidentRepository, auditSvc *AuditService, alertSvc *AlertService) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		chargeRepo:   chargeRepo,
		fineRepo:     fineRepo,
		residentRepo: residentRepo,
		auditSvc:     auditSvc,
		alertSvc:     alertSvc,
	}
}

// CreatePaymentInput is the request payload for registering a payment
type CreatePaymentInput struct {
	ResidentID  uint    `json:"residente_id" binding:"required"`
	Type        string  `json:"tipo" binding:"required"`
	ReferenceID *uint   `json:"referencia_id"`
	Amount      float64 `json:"monto" binding:"required,gt=0"`
	Method      string  `json:"metodo" binding:"required"`
	PaymentDate string  `json:"fecha_pago"`
	Notes       string  `json:"notas"`
}

// Create registers a payment awaiting administration review
func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	resident, err := s.residentRepo.FindByID(ctx, input.ResidentID)
	if err != nil {
		return nil, ErrNotFound
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	paymentDate := time.Now().Truncate(24 * time.Hour)
	if input.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", input.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("fecha de pago inválida: %w", err)
		}
	}

	payment := &models.Payment{
		ResidentID:    input.ResidentID,
		CondominiumID: resident.CondominiumID,
		Type:          input.Type,
		ReferenceID:   input.ReferenceID,
		Amount:        input.Amount,
		Method:        input.Method,
		Status:        models.PaymentStatusPending,
		PaymentDate:   paymentDate,
		Notes:         input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.alertSvc.NotifyAdmins(ctx, payment.CondominiumID, models.AlertTypePaymentStatus,
		"Pago por revisar",
		fmt.Sprintf("%s registró un pago de $%.0f pendiente de aprobación", resident.FullName(), payment.Amount))

	return payment, nil
}

// Approve accepts a pending payment and settles the charge or fine it
// references.
func (s *PaymentService) Approve(ctx context.Context, paymentID, approverID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}

	fsm := statemachine.NewPaymentFSM(payment)
	if err := fsm.Approve(ctx); err != nil {
		return nil, ErrInvalidState
	}

	now := time.Now()
	payment.ApprovedAt = &now
	payment.ApprovedByID = &approverID

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.settleReference(ctx, payment, now); err != nil {
		// The payment stays approved; a reference that cannot settle is
		// reported for manual follow-up.
		logger.Error(fmt.Sprintf("[Payment] payment %d approved but reference not settled: %v", payment.ID, err))
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypePayment,
		Detail:        fmt.Sprintf("Pago %s aprobado por $%.0f", payment.TransactionNumber, payment.Amount),
		Amount:        &payment.Amount,
		UserID:        &approverID,
		ResidentID:    &payment.ResidentID,
		CondominiumID: &payment.CondominiumID,
	})

	s.alertSvc.NotifyResident(ctx, payment.ResidentID, models.AlertTypePaymentStatus,
		"Pago aprobado",
		fmt.Sprintf("Tu pago de $%.0f fue aprobado", payment.Amount))
	if s.kpi != nil {
		s.kpi.InvalidateOverview(ctx, &payment.CondominiumID)
	}

	return payment, nil
}

// Reject declines a pending payment
func (s *PaymentService) Reject(ctx context.Context, paymentID, reviewerID uint, reason string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}

	fsm := statemachine.NewPaymentFSM(payment)
	if err := fsm.Reject(ctx); err != nil {
		return nil, ErrInvalidState
	}

	if reason != "" {
		payment.Notes = reason
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypePayment,
		Detail:        fmt.Sprintf("Pago %s rechazado: %s", payment.TransactionNumber, reason),
		Amount:        &payment.Amount,
		UserID:        &reviewerID,
		ResidentID:    &payment.ResidentID,
		CondominiumID: &payment.CondominiumID,
	})

	s.alertSvc.NotifyResident(ctx, payment.ResidentID, models.AlertTypePaymentStatus,
		"Pago rechazado",
		fmt.Sprintf("Tu pago de $%.0f fue rechazado. %s", payment.Amount, reason))

	return payment, nil
}

// Reverse undoes an approved payment and reopens the charge or fine it
// had settled.
func (s *PaymentService) Reverse(ctx context.Context, paymentID, reviewerID uint, reason string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}

	fsm := statemachine.NewPaymentFSM(payment)
	if err := fsm.Reverse(ctx); err != nil {
		return nil, ErrInvalidState
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.reopenReference(ctx, payment); err != nil {
		logger.Error(fmt.Sprintf("[Payment] payment %d reversed but reference not reopened: %v", payment.ID, err))
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypePayment,
		Detail:        fmt.Sprintf("Pago %s reversado: %s", payment.TransactionNumber, reason),
		Amount:        &payment.Amount,
		UserID:        &reviewerID,
		ResidentID:    &payment.ResidentID,
		CondominiumID: &payment.CondominiumID,
	})

	s.alertSvc.NotifyResident(ctx, payment.ResidentID, models.AlertTypePaymentStatus,
		"Pago reversado",
		fmt.Sprintf("Tu pago de $%.0f fue reversado. %s", payment.Amount, reason))
	if s.kpi != nil {
		s.kpi.InvalidateOverview(ctx, &payment.CondominiumID)
	}

	return payment, nil
}

// GetByID returns one payment
func (s *PaymentService) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// List returns payments matching the query
func (s *PaymentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, query)
}

// settleReference marks the charge or fine a payment covers as paid
func (s *PaymentService) settleReference(ctx context.Context, payment *models.Payment, paidAt time.Time) error {
	if payment.ReferenceID == nil {
		return nil
	}

	switch payment.Type {
	case models.PaymentTypeCharge:
		charge, err := s.chargeRepo.FindByID(ctx, *payment.ReferenceID)
		if err != nil {
			return err
		}
		fsm := statemachine.NewChargeFSM(charge)
		if err := fsm.Pay(ctx); err != nil {
			return err
		}
		charge.PaidAt = &paidAt
		return s.chargeRepo.Update(ctx, charge)

	case models.PaymentTypeFine:
		fine, err := s.fineRepo.FindByID(ctx, *payment.ReferenceID)
		if err != nil {
			return err
		}
		fsm := statemachine.NewFineFSM(fine)
		if err := fsm.Pay(ctx); err != nil {
			return err
		}
		fine.PaidAt = &paidAt
		return s.fineRepo.Update(ctx, fine)
	}

	return nil
}

// reopenReference puts the settled charge or fine back into pending after
// a reversal.
func (s *PaymentService) reopenReference(ctx context.Context, payment *models.Payment) error {
	if payment.ReferenceID == nil {
		return nil
	}

	switch payment.Type {
	case models.PaymentTypeCharge:
		charge, err := s.chargeRepo.FindByID(ctx, *payment.ReferenceID)
		if err != nil {
			return err
		}
		fsm := statemachine.NewChargeFSM(charge)
		if err := fsm.Reopen(ctx); err != nil {
			return err
		}
		charge.PaidAt = nil
		return s.chargeRepo.Update(ctx, charge)

	case models.PaymentTypeFine:
		fine, err := s.fineRepo.FindByID(ctx, *payment.ReferenceID)
		if err != nil {
			return err
		}
		fsm := statemachine.NewFineFSM(fine)
		if err := fsm.Reopen(ctx); err != nil {
			return err
		}
		fine.PaidAt = nil
		return s.fineRepo.Update(ctx, fine)
	}

	return nil
}
