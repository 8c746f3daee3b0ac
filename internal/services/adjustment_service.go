package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/internal/statemachine"
)

// AdjustmentService edits charge and fine amounts, condones fines, and
// reverses earlier adjustments by replaying the audit trail. Every change
// it makes is recorded as an EDICION event carrying the data needed to
// undo it.
type AdjustmentService struct {
	chargeRepo repository.ChargeRepository
	fineRepo   repository.FineRepository
	auditRepo  repository.AuditRepository
	auditSvc   *AuditService
	alertSvc   *AlertService

	// set by NewServices; nil in isolation
	kpi *KPIService
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(chargeRepo repository.ChargeRepository, fineRepo repository.FineRepository, auditRepo repository.AuditRepository, auditSvc *AuditService, alertSvc *AlertService) *AdjustmentService {
	return &AdjustmentService{
		chargeRepo: chargeRepo,
		fineRepo:   fineRepo,
		auditRepo:  auditRepo,
		auditSvc:   auditSvc,
		alertSvc:   alertSvc,
	}
}

// AdjustmentInput is the request payload for amount adjustments
type AdjustmentInput struct {
	NewAmount     float64 `json:"nuevo_monto"`
	Reason        string  `json:"motivo" binding:"required"`
	IsCondonation bool    `json:"es_condonacion"`
	UserID        uint    `json:"usuario_id" binding:"required"`
}

// ReversalInput is the request payload for reversing an adjustment. When
// EventID is zero the most recent reversible adjustment is targeted.
type ReversalInput struct {
	EventID uint   `json:"registro_id"`
	Reason  string `json:"motivo" binding:"required"`
	UserID  uint   `json:"usuario_id" binding:"required"`
}

// AdjustmentScope narrows FindLastAdjustment to a specific object
type AdjustmentScope struct {
	ObjectType string
	ObjectID   uint
}

// validate rejects a bad adjustment before anything is persisted
func (in *AdjustmentInput) validate() error {
	if strings.TrimSpace(in.Reason) == "" {
		return fmt.Errorf("%w: el motivo es obligatorio", ErrInvalidAmount)
	}
	if !in.IsCondonation && in.NewAmount < 0 {
		return fmt.Errorf("%w: el nuevo monto no puede ser negativo", ErrInvalidAmount)
	}
	return nil
}

// effectiveAmount is the amount actually applied: a condonation always
// zeroes the debt, regardless of any amount sent alongside.
func (in *AdjustmentInput) effectiveAmount() float64 {
	if in.IsCondonation {
		return 0
	}
	return in.NewAmount
}

// AdjustCharge changes the total of a common-expense charge, or condones
// it entirely, and records the edit in the audit log.
func (s *AdjustmentService) AdjustCharge(ctx context.Context, chargeID uint, input AdjustmentInput) (*models.Charge, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	charge, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !charge.MayAdjust() {
		return nil, fmt.Errorf("%w: el gasto ya está pagado", ErrInvalidState)
	}

	previousAmount := charge.TotalAmount
	previousStatus := charge.Status
	newAmount := input.effectiveAmount()

	charge.TotalAmount = newAmount
	if err := s.chargeRepo.Update(ctx, charge); err != nil {
		return nil, err
	}

	meta := models.AdjustmentMeta{
		ObjectType:     models.AuditObjectCharge,
		ChargeID:       &charge.ID,
		PreviousAmount: previousAmount,
		NewAmount:      newAmount,
		PreviousStatus: previousStatus,
		IsCondonation:  input.IsCondonation,
	}

	detail := fmt.Sprintf("Ajuste de gasto común %s: %s", charge.Period(), input.Reason)
	if input.IsCondonation {
		detail = fmt.Sprintf("Condonación de gasto común %s: %s", charge.Period(), input.Reason)
	}

	if _, err := s.auditSvc.LogAdjustment(ctx, detail, input.UserID, charge.ResidentID, &charge.CondominiumID, newAmount, meta); err != nil {
		return nil, fmt.Errorf("error al registrar el ajuste: %w", err)
	}

	s.alertSvc.NotifyResident(ctx, charge.ResidentID, models.AlertTypeChargeIssued,
		"Ajuste en tu gasto común",
		fmt.Sprintf("El gasto común de %s fue ajustado a $%.0f", charge.Period(), newAmount))
	s.invalidateKPIs(ctx, &charge.CondominiumID)

	return charge, nil
}

// AdjustFine changes a fine's amount or condones it. Condoned fines move
// to CONDONADA and keep the reason, so the statement can exclude them.
func (s *AdjustmentService) AdjustFine(ctx context.Context, fineID uint, input AdjustmentInput) (*models.Fine, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	fine, err := s.fineRepo.FindByID(ctx, fineID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !fine.MayAdjust() {
		return nil, fmt.Errorf("%w: la multa ya está %s", ErrInvalidState, strings.ToLower(fine.Status))
	}

	previousAmount := fine.Amount
	previousStatus := fine.Status
	newAmount := input.effectiveAmount()

	fine.Amount = newAmount
	if input.IsCondonation {
		fsm := statemachine.NewFineFSM(fine)
		if err := fsm.Condone(ctx); err != nil {
			return nil, ErrInvalidState
		}
		fine.CondonedReason = input.Reason
	}

	if err := s.fineRepo.Update(ctx, fine); err != nil {
		return nil, err
	}

	meta := models.AdjustmentMeta{
		ObjectType:     models.AuditObjectFine,
		FineID:         &fine.ID,
		PreviousAmount: previousAmount,
		NewAmount:      newAmount,
		PreviousStatus: previousStatus,
		IsCondonation:  input.IsCondonation,
	}

	detail := fmt.Sprintf("Ajuste de multa #%d: %s", fine.ID, input.Reason)
	if input.IsCondonation {
		detail = fmt.Sprintf("Condonación de multa #%d: %s", fine.ID, input.Reason)
	}

	if _, err := s.auditSvc.LogAdjustment(ctx, detail, input.UserID, fine.ResidentID, &fine.CondominiumID, newAmount, meta); err != nil {
		return nil, fmt.Errorf("error al registrar el ajuste: %w", err)
	}

	s.alertSvc.NotifyResident(ctx, fine.ResidentID, models.AlertTypeFineIssued,
		"Ajuste en tu multa",
		fmt.Sprintf("La multa #%d fue ajustada a $%.0f", fine.ID, newAmount))
	s.invalidateKPIs(ctx, &fine.CondominiumID)

	return fine, nil
}

// FindLastAdjustment returns a resident's most recent adjustment event
// that has not itself been reversed, optionally narrowed to one charge or
// fine. Reversal events seen on the way mark their targets as spent.
func (s *AdjustmentService) FindLastAdjustment(ctx context.Context, residentID uint, scope *AdjustmentScope) (*models.AuditEvent, *models.AdjustmentMeta, error) {
	events, err := s.auditRepo.FindEditEventsByResident(ctx, residentID, 0)
	if err != nil {
		return nil, nil, err
	}

	reversed := make(map[uint]bool)
	for i := range events {
		event := &events[i]
		meta, ok := models.ParseAdjustmentMeta(event.Metadata)
		if !ok {
			continue
		}

		if meta.IsReversal() {
			reversed[*meta.ReversedEventID] = true
			continue
		}
		if reversed[event.ID] {
			continue
		}
		if scope != nil && !metaMatchesScope(meta, scope) {
			continue
		}
		// An adjustment whose target was since deleted cannot be undone
		if !s.targetExists(ctx, meta) {
			continue
		}

		return event, &meta, nil
	}

	return nil, nil, ErrNoAdjustment
}

// targetExists reports whether the charge or fine an adjustment points at
// is still present.
func (s *AdjustmentService) targetExists(ctx context.Context, meta models.AdjustmentMeta) bool {
	switch meta.ObjectType {
	case models.AuditObjectCharge:
		_, err := s.chargeRepo.FindByID(ctx, *meta.ChargeID)
		return err == nil
	case models.AuditObjectFine:
		_, err := s.fineRepo.FindByID(ctx, *meta.FineID)
		return err == nil
	}
	return false
}

func metaMatchesScope(meta models.AdjustmentMeta, scope *AdjustmentScope) bool {
	switch scope.ObjectType {
	case models.AuditObjectCharge:
		return meta.TargetsCharge(scope.ObjectID)
	case models.AuditObjectFine:
		return meta.TargetsFine(scope.ObjectID)
	}
	return false
}

// Reverse undoes an adjustment: the target object gets back its previous
// amount and status, and a traceable EDICION event pointing at the undone
// one is appended. With a zero EventID the most recent reversible
// adjustment is used.
func (s *AdjustmentService) Reverse(ctx context.Context, residentID uint, input ReversalInput) (*models.AuditEvent, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", ErrInvalidAmount)
	}

	var (
		event *models.AuditEvent
		meta  *models.AdjustmentMeta
		err   error
	)

	if input.EventID != 0 {
		event, meta, err = s.findAdjustmentByID(ctx, residentID, input.EventID)
	} else {
		event, meta, err = s.FindLastAdjustment(ctx, residentID, nil)
	}
	if err != nil {
		return nil, err
	}

	return s.applyReversal(ctx, event, meta, input)
}

// ReverseCharge undoes the most recent unreversed adjustment of one
// specific charge, or the event named by input.EventID if it targets it.
func (s *AdjustmentService) ReverseCharge(ctx context.Context, chargeID uint, input ReversalInput) (*models.AuditEvent, error) {
	charge, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, ErrNotFound
	}
	scope := &AdjustmentScope{ObjectType: models.AuditObjectCharge, ObjectID: chargeID}
	return s.reverseScoped(ctx, charge.ResidentID, scope, input)
}

// ReverseFine is the fine-side counterpart of ReverseCharge.
func (s *AdjustmentService) ReverseFine(ctx context.Context, fineID uint, input ReversalInput) (*models.AuditEvent, error) {
	fine, err := s.fineRepo.FindByID(ctx, fineID)
	if err != nil {
		return nil, ErrNotFound
	}
	scope := &AdjustmentScope{ObjectType: models.AuditObjectFine, ObjectID: fineID}
	return s.reverseScoped(ctx, fine.ResidentID, scope, input)
}

func (s *AdjustmentService) reverseScoped(ctx context.Context, residentID uint, scope *AdjustmentScope, input ReversalInput) (*models.AuditEvent, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", ErrInvalidAmount)
	}

	var (
		event *models.AuditEvent
		meta  *models.AdjustmentMeta
		err   error
	)

	if input.EventID != 0 {
		event, meta, err = s.findAdjustmentByID(ctx, residentID, input.EventID)
		if err == nil && !metaMatchesScope(*meta, scope) {
			return nil, ErrNoAdjustment
		}
	} else {
		event, meta, err = s.FindLastAdjustment(ctx, residentID, scope)
	}
	if err != nil {
		return nil, err
	}

	return s.applyReversal(ctx, event, meta, input)
}

// applyReversal restores the target's previous amount and status and
// appends the traceability event.
func (s *AdjustmentService) applyReversal(ctx context.Context, event *models.AuditEvent, meta *models.AdjustmentMeta, input ReversalInput) (*models.AuditEvent, error) {
	var condominiumID *uint
	switch meta.ObjectType {
	case models.AuditObjectCharge:
		charge, err := s.chargeRepo.FindByID(ctx, *meta.ChargeID)
		if err != nil {
			return nil, ErrNotFound
		}
		charge.TotalAmount = meta.PreviousAmount
		if meta.PreviousStatus != "" {
			charge.Status = meta.PreviousStatus
		}
		if err := s.chargeRepo.Update(ctx, charge); err != nil {
			return nil, err
		}
		condominiumID = &charge.CondominiumID

	case models.AuditObjectFine:
		fine, err := s.fineRepo.FindByID(ctx, *meta.FineID)
		if err != nil {
			return nil, ErrNotFound
		}
		fine.Amount = meta.PreviousAmount
		if meta.PreviousStatus != "" {
			fine.Status = meta.PreviousStatus
		}
		fine.CondonedReason = ""
		if err := s.fineRepo.Update(ctx, fine); err != nil {
			return nil, err
		}
		condominiumID = &fine.CondominiumID
	}

	reversalMeta := models.AdjustmentMeta{
		ObjectType:      meta.ObjectType,
		ChargeID:        meta.ChargeID,
		FineID:          meta.FineID,
		PreviousAmount:  meta.NewAmount,
		NewAmount:       meta.PreviousAmount,
		PreviousStatus:  meta.PreviousStatus,
		IsCondonation:   false,
		ReversedEventID: &event.ID,
	}

	detail := fmt.Sprintf("Reversión de ajuste #%d: %s", event.ID, input.Reason)
	reversalEvent, err := s.auditSvc.LogAdjustment(ctx, detail, input.UserID, *event.ResidentID, condominiumID, meta.PreviousAmount, reversalMeta)
	if err != nil {
		return nil, fmt.Errorf("error al registrar la reversión: %w", err)
	}
	s.invalidateKPIs(ctx, condominiumID)

	return reversalEvent, nil
}

func (s *AdjustmentService) invalidateKPIs(ctx context.Context, condominiumID *uint) {
	if s.kpi != nil {
		s.kpi.InvalidateOverview(ctx, condominiumID)
	}
}

// findAdjustmentByID loads one specific adjustment event, verifying it
// belongs to the resident and has not already been reversed.
func (s *AdjustmentService) findAdjustmentByID(ctx context.Context, residentID, eventID uint) (*models.AuditEvent, *models.AdjustmentMeta, error) {
	event, err := s.auditRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, nil, ErrNoAdjustment
	}
	if event.EventType != models.EventTypeEdit || event.ResidentID == nil || *event.ResidentID != residentID {
		return nil, nil, ErrNoAdjustment
	}

	meta, ok := models.ParseAdjustmentMeta(event.Metadata)
	if !ok || meta.IsReversal() {
		return nil, nil, ErrNoAdjustment
	}

	// Scan newer events for a reversal that already spent this one
	events, err := s.auditRepo.FindEditEventsByResident(ctx, residentID, 0)
	if err != nil {
		return nil, nil, err
	}
	for i := range events {
		if m, ok := models.ParseAdjustmentMeta(events[i].Metadata); ok && m.IsReversal() && *m.ReversedEventID == eventID {
			return nil, nil, fmt.Errorf("%w: el ajuste ya fue revertido", ErrInvalidState)
		}
	}

	return event, &meta, nil
}
