package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/internal/statemachine"
	"github.com/vecindia/condominio-api/pkg/logger"
	"gorm.io/gorm"
)

// ChargeService manages recurring common-expense charges and their
// lifecycle from emission to payment or delinquency.
type ChargeService struct {
	chargeRepo   repository.ChargeRepository
	residentRepo repository.ResidentRepository
	auditSvc     *AuditService
	alertSvc     *AlertService
	cfg          *config.Config
}

// NewChargeService creates a new charge service
func NewChargeService(chargeRepo repository.ChargeRepository, residentRepo repository.ResidentRepository, auditSvc *AuditService, alertSvc *AlertService, cfg *config.Config) *ChargeService {
	return &ChargeService{
		chargeRepo:   chargeRepo,
		residentRepo: residentRepo,
		auditSvc:     auditSvc,
		alertSvc:     alertSvc,
		cfg:          cfg,
	}
}

// CreateChargeInput is the request payload for emitting a charge
type CreateChargeInput struct {
	ResidentID     uint                     `json:"residente_id" binding:"required"`
	Month          int                      `json:"mes" binding:"required,min=1,max=12"`
	Year           int                      `json:"anio" binding:"required"`
	BaseAmount     float64                  `json:"monto_base" binding:"required"`
	MaintenanceFee float64                  `json:"cuota_mantencion"`
	ServicesAmount float64                  `json:"servicios"`
	FinesAmount    float64                  `json:"multas"`
	IssueDate      string                   `json:"fecha_emision"`
	DueDate        string                   `json:"fecha_vencimiento" binding:"required"`
	Observations   []models.ObservationItem `json:"observaciones"`
}

// Create emits a new charge for a resident. One charge per resident per
// period; a second emission for the same month is rejected.
func (s *ChargeService) Create(ctx context.Context, input CreateChargeInput) (*models.Charge, error) {
	resident, err := s.residentRepo.FindByID(ctx, input.ResidentID)
	if err != nil {
		return nil, ErrNotFound
	}

	if _, err := s.chargeRepo.FindByPeriod(ctx, input.ResidentID, input.Month, input.Year); err == nil {
		return nil, fmt.Errorf("%w: ya existe un gasto común para el período %d/%d", ErrDuplicate, input.Month, input.Year)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.BaseAmount < 0 || input.MaintenanceFee < 0 || input.ServicesAmount < 0 || input.FinesAmount < 0 {
		return nil, ErrInvalidAmount
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		return nil, fmt.Errorf("fecha de vencimiento inválida: %w", err)
	}

	issueDate := time.Now().Truncate(24 * time.Hour)
	if input.IssueDate != "" {
		issueDate, err = time.Parse("2006-01-02", input.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("fecha de emisión inválida: %w", err)
		}
	}

	total := input.BaseAmount + input.MaintenanceFee + input.ServicesAmount + input.FinesAmount
	for _, obs := range input.Observations {
		total += obs.Amount
	}

	charge := &models.Charge{
		ResidentID:     input.ResidentID,
		CondominiumID:  resident.CondominiumID,
		Month:          input.Month,
		Year:           input.Year,
		BaseAmount:     input.BaseAmount,
		MaintenanceFee: input.MaintenanceFee,
		ServicesAmount: input.ServicesAmount,
		FinesAmount:    input.FinesAmount,
		TotalAmount:    total,
		Status:         models.ChargeStatusPending,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Observations:   input.Observations,
	}

	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypeSystem,
		Detail:        fmt.Sprintf("Gasto común %s emitido por $%.0f", charge.Period(), charge.TotalAmount),
		Amount:        &charge.TotalAmount,
		ResidentID:    &charge.ResidentID,
		CondominiumID: &charge.CondominiumID,
	})

	s.alertSvc.NotifyResident(ctx, charge.ResidentID, models.AlertTypeChargeIssued,
		"Nuevo gasto común",
		fmt.Sprintf("Se emitió tu gasto común de %s por $%.0f, vence el %s",
			charge.Period(), charge.TotalAmount, dueDate.Format("02-01-2006")))

	return charge, nil
}

// GetByID returns one charge
func (s *ChargeService) GetByID(ctx context.Context, id uint) (*models.Charge, error) {
	charge, err := s.chargeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return charge, nil
}

// List returns charges matching the query
func (s *ChargeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Charge, int64, error) {
	return s.chargeRepo.List(ctx, query)
}

// ListByResident returns all charges of one resident, newest first
func (s *ChargeService) ListByResident(ctx context.Context, residentID uint) ([]models.Charge, error) {
	return s.chargeRepo.FindByResident(ctx, residentID)
}

// SweepOverdue walks open charges past their due date and advances them
// through VENCIDO into MOROSO. Meant to run on a schedule.
func (s *ChargeService) SweepOverdue(ctx context.Context) error {
	now := time.Now()

	// Pending charges past due date (plus grace) become overdue
	graceCutoff := now.AddDate(0, 0, -s.cfg.ChargeGraceDays)
	pending, err := s.chargeRepo.FindDueBefore(ctx, graceCutoff, []string{models.ChargeStatusPending})
	if err != nil {
		return err
	}
	for i := range pending {
		charge := &pending[i]
		fsm := statemachine.NewChargeFSM(charge)
		if err := fsm.Expire(ctx); err != nil {
			logger.Error(fmt.Sprintf("[Sweep] charge %d: %v", charge.ID, err))
			continue
		}
		if err := s.chargeRepo.UpdateStatus(ctx, charge.ID, charge.Status); err != nil {
			logger.Error(fmt.Sprintf("[Sweep] charge %d: %v", charge.ID, err))
			continue
		}
		s.alertSvc.NotifyResident(ctx, charge.ResidentID, models.AlertTypeChargeOverdue,
			"Gasto común vencido",
			fmt.Sprintf("Tu gasto común de %s por $%.0f está vencido", charge.Period(), charge.TotalAmount))
	}

	// Overdue charges old enough become delinquent
	delinquentCutoff := now.AddDate(0, 0, -s.cfg.DelinquentAfter)
	overdue, err := s.chargeRepo.FindDueBefore(ctx, delinquentCutoff, []string{models.ChargeStatusOverdue})
	if err != nil {
		return err
	}
	for i := range overdue {
		charge := &overdue[i]
		fsm := statemachine.NewChargeFSM(charge)
		if err := fsm.Age(ctx); err != nil {
			logger.Error(fmt.Sprintf("[Sweep] charge %d: %v", charge.ID, err))
			continue
		}
		if err := s.chargeRepo.UpdateStatus(ctx, charge.ID, charge.Status); err != nil {
			logger.Error(fmt.Sprintf("[Sweep] charge %d: %v", charge.ID, err))
		}
	}

	if len(pending) > 0 || len(overdue) > 0 {
		logger.Info(fmt.Sprintf("[Sweep] %d charges expired, %d marked delinquent", len(pending), len(overdue)))
	}
	return nil
}
