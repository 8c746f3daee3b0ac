package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/pkg/logger"
)

// FineService manages sanctions issued to residents, including the
// automatic late-payment fines derived from overdue charges.
type FineService struct {
	fineRepo     repository.FineRepository
	chargeRepo   repository.ChargeRepository
	residentRepo repository.ResidentRepository
	auditSvc     *AuditService
	alertSvc     *AlertService
	cfg          *config.Config
}

// NewFineService creates a new fine service
func NewFineService(fineRepo repository.FineRepository, chargeRepo repository.ChargeRepository, residentRepo repository.ResidentRepository, auditSvc *AuditService, alertSvc *AlertService, cfg *config.Config) *FineService {
	return &FineService{
		fineRepo:     fineRepo,
		chargeRepo:   chargeRepo,
		residentRepo: residentRepo,
		auditSvc:     auditSvc,
		alertSvc:     alertSvc,
		cfg:          cfg,
	}
}

// CreateFineInput is the request payload for issuing a fine
type CreateFineInput struct {
	ResidentID  uint    `json:"residente_id" binding:"required"`
	Type        string  `json:"tipo" binding:"required"`
	Description string  `json:"descripcion" binding:"required"`
	Amount      float64 `json:"monto" binding:"required,gt=0"`
	IssueDate   string  `json:"fecha_emision"`
}

// Create issues a new fine to a resident
func (s *FineService) Create(ctx context.Context, input CreateFineInput) (*models.Fine, error) {
	resident, err := s.residentRepo.FindByID(ctx, input.ResidentID)
	if err != nil {
		return nil, ErrNotFound
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	issueDate := time.Now().Truncate(24 * time.Hour)
	if input.IssueDate != "" {
		issueDate, err = time.Parse("2006-01-02", input.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("fecha de emisión inválida: %w", err)
		}
	}

	fine := &models.Fine{
		ResidentID:    input.ResidentID,
		CondominiumID: resident.CondominiumID,
		Type:          input.Type,
		Description:   input.Description,
		Amount:        input.Amount,
		Status:        models.FineStatusPending,
		IssueDate:     issueDate,
	}

	if err := s.fineRepo.Create(ctx, fine); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &models.AuditEvent{
		EventType:     models.EventTypeFine,
		Detail:        fmt.Sprintf("Multa %s emitida: %s", fine.Type, fine.Description),
		Amount:        &fine.Amount,
		ResidentID:    &fine.ResidentID,
		CondominiumID: &fine.CondominiumID,
	})

	s.alertSvc.NotifyResident(ctx, fine.ResidentID, models.AlertTypeFineIssued,
		"Nueva multa",
		fmt.Sprintf("Se te aplicó una multa por $%.0f: %s", fine.Amount, fine.Description))

	return fine, nil
}

// GetByID returns one fine
func (s *FineService) GetByID(ctx context.Context, id uint) (*models.Fine, error) {
	fine, err := s.fineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return fine, nil
}

// List returns fines matching the query
func (s *FineService) List(ctx context.Context, query *repository.ListQuery) ([]models.Fine, int64, error) {
	return s.fineRepo.List(ctx, query)
}

// ProcessLatePayments issues a RETRASO_PAGO fine for every charge that has
// been overdue longer than the configured grace period and does not have
// one yet. Returns the number of fines issued.
func (s *FineService) ProcessLatePayments(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.LateFineGraceDays)
	charges, err := s.chargeRepo.FindDueBefore(ctx, cutoff,
		[]string{models.ChargeStatusOverdue, models.ChargeStatusDelinquent})
	if err != nil {
		return 0, err
	}

	issued := 0
	for i := range charges {
		charge := &charges[i]

		exists, err := s.fineRepo.ExistsLateFine(ctx, charge.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("[LateFines] charge %d: %v", charge.ID, err))
			continue
		}
		if exists {
			continue
		}

		chargeID := charge.ID
		fine := &models.Fine{
			ResidentID:      charge.ResidentID,
			CondominiumID:   charge.CondominiumID,
			Type:            models.FineTypeLatePayment,
			Description:     fmt.Sprintf("Multa por atraso en gasto común %s", charge.Period()),
			Amount:          s.cfg.LateFineAmount,
			Status:          models.FineStatusPending,
			IssueDate:       time.Now().Truncate(24 * time.Hour),
			RelatedChargeID: &chargeID,
		}

		if err := s.fineRepo.Create(ctx, fine); err != nil {
			logger.Error(fmt.Sprintf("[LateFines] charge %d: %v", charge.ID, err))
			continue
		}
		issued++

		s.auditSvc.Log(ctx, &models.AuditEvent{
			EventType:     models.EventTypeFine,
			Detail:        fmt.Sprintf("Multa por atraso emitida para gasto común %s", charge.Period()),
			Amount:        &fine.Amount,
			ResidentID:    &fine.ResidentID,
			CondominiumID: &fine.CondominiumID,
		})

		s.alertSvc.NotifyResident(ctx, fine.ResidentID, models.AlertTypeFineIssued,
			"Multa por atraso",
			fmt.Sprintf("Se te aplicó una multa por $%.0f por atraso en el gasto común de %s", fine.Amount, charge.Period()))
	}

	if issued > 0 {
		logger.Info(fmt.Sprintf("[LateFines] %d late-payment fines issued", issued))
	}
	return issued, nil
}
