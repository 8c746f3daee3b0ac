package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/pkg/logger"
)

// LedgerService synthesizes a resident's account statement out of charges,
// their itemized observations, standalone fines and approved payments.
type LedgerService struct {
	chargeRepo   repository.ChargeRepository
	fineRepo     repository.FineRepository
	paymentRepo  repository.PaymentRepository
	residentRepo repository.ResidentRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(chargeRepo repository.ChargeRepository, fineRepo repository.FineRepository, paymentRepo repository.PaymentRepository, residentRepo repository.ResidentRepository) *LedgerService {
	return &LedgerService{
		chargeRepo:   chargeRepo,
		fineRepo:     fineRepo,
		paymentRepo:  paymentRepo,
		residentRepo: residentRepo,
	}
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// BuildStatement assembles the full account statement for a resident. The
// three sources are fetched concurrently; if one of them fails the others
// are still returned and the failure is reported in SectionErrors.
func (s *LedgerService) BuildStatement(ctx context.Context, residentID uint) (*models.AccountStatement, error) {
	if _, err := s.residentRepo.FindByID(ctx, residentID); err != nil {
		return nil, ErrNotFound
	}

	var (
		wg       sync.WaitGroup
		charges  []models.Charge
		fines    []models.Fine
		payments []models.Payment

		chargesErr  error
		finesErr    error
		paymentsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		charges, chargesErr = s.chargeRepo.FindByResident(ctx, residentID)
	}()
	go func() {
		defer wg.Done()
		fines, finesErr = s.fineRepo.FindByResident(ctx, residentID)
	}()
	go func() {
		defer wg.Done()
		payments, paymentsErr = s.paymentRepo.FindApprovedByResident(ctx, residentID)
	}()
	wg.Wait()

	statement := &models.AccountStatement{
		ResidentID:  residentID,
		GeneratedAt: time.Now(),
	}

	if chargesErr != nil {
		logger.Error(fmt.Sprintf("[Ledger] failed to load charges for resident %d: %v", residentID, chargesErr))
		statement.SectionErrors = append(statement.SectionErrors, "no fue posible cargar los gastos comunes")
		charges = nil
	}
	if finesErr != nil {
		logger.Error(fmt.Sprintf("[Ledger] failed to load fines for resident %d: %v", residentID, finesErr))
		statement.SectionErrors = append(statement.SectionErrors, "no fue posible cargar las multas")
		fines = nil
	}
	if paymentsErr != nil {
		logger.Error(fmt.Sprintf("[Ledger] failed to load payments for resident %d: %v", residentID, paymentsErr))
		statement.SectionErrors = append(statement.SectionErrors, "no fue posible cargar los pagos")
		payments = nil
	}

	entries := s.synthesize(charges, fines, payments)
	statement.Entries = entries

	for _, e := range entries {
		if e.Direction == models.DirectionCredit {
			statement.TotalCredits += e.Amount
		} else {
			statement.TotalCharges += e.Amount
		}
	}
	statement.Balance = statement.TotalCharges - statement.TotalCredits

	statement.Aging = s.aging(charges, fines, time.Now())

	return statement, nil
}

// synthesize derives ledger entries from the three sources, newest first.
func (s *LedgerService) synthesize(charges []models.Charge, fines []models.Fine, payments []models.Payment) []models.LedgerEntry {
	entries := make([]models.LedgerEntry, 0, len(charges)+len(fines)+len(payments))

	for i := range charges {
		entries = append(entries, s.chargeEntries(&charges[i])...)
	}

	for i := range fines {
		fine := &fines[i]
		if fine.Status == models.FineStatusCondoned {
			continue
		}
		entries = append(entries, models.LedgerEntry{
			ID:          fmt.Sprintf("MULTA-%d", fine.ID),
			Date:        fine.IssueDate,
			Description: fine.Description,
			Direction:   models.DirectionCharge,
			Category:    models.CategoryFine,
			Amount:      fine.Amount,
			State:       fine.Status,
		})
	}

	for i := range payments {
		payment := &payments[i]
		entries = append(entries, models.LedgerEntry{
			ID:          fmt.Sprintf("PAGO-%d", payment.ID),
			Date:        payment.PaymentDate,
			Description: "Pago " + payment.MethodLabel(),
			Direction:   models.DirectionCredit,
			Category:    models.CategoryPayment,
			Amount:      payment.Amount,
			State:       payment.Status,
		})
	}

	// Newest first; SliceStable keeps source order for same-day entries
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries
}

// chargeEntries expands one charge into its base entry plus one entry per
// observation item.
func (s *LedgerService) chargeEntries(charge *models.Charge) []models.LedgerEntry {
	var entries []models.LedgerEntry

	base := charge.BaseAmount + charge.MaintenanceFee
	if base > 0 {
		monthName := "?"
		if charge.Month >= 1 && charge.Month <= 12 {
			monthName = monthNames[charge.Month-1]
		}
		entries = append(entries, models.LedgerEntry{
			ID:          fmt.Sprintf("GC-%d-BASE", charge.ID),
			Date:        charge.IssueDate,
			Description: fmt.Sprintf("Gasto común %s %d", monthName, charge.Year),
			Direction:   models.DirectionCharge,
			Category:    models.CategoryBaseCharge,
			Amount:      base,
			State:       charge.Status,
		})
	}

	for idx, obs := range charge.Observations {
		direction := models.DirectionCharge
		amount := obs.Amount
		if amount < 0 {
			// A negative observation is a credit in favor of the resident
			direction = models.DirectionCredit
			amount = -amount
		}

		entries = append(entries, models.LedgerEntry{
			ID:          fmt.Sprintf("GC-%d-OBS-%d", charge.ID, idx),
			Date:        s.observationDate(charge, obs),
			Description: obs.Description,
			Direction:   direction,
			Category:    observationCategory(obs.Type),
			Amount:      amount,
			State:       charge.Status,
		})
	}

	return entries
}

// observationDate parses an observation's own date, falling back to the
// charge's issue date when absent or unparseable. A bad date never aborts
// the statement build.
func (s *LedgerService) observationDate(charge *models.Charge, obs models.ObservationItem) time.Time {
	if obs.Date == "" {
		return charge.IssueDate
	}
	parsed, err := time.Parse("2006-01-02", obs.Date)
	if err != nil {
		logger.Warn(fmt.Sprintf("[Ledger] unparseable observation date %q on charge %d, using issue date", obs.Date, charge.ID))
		return charge.IssueDate
	}
	return parsed
}

// observationCategory maps an observation's type tag to a ledger category
func observationCategory(obsType string) string {
	t := strings.ToUpper(obsType)
	switch {
	case t == models.ObservationTypeReservation:
		return models.CategoryReservation
	case strings.Contains(t, "MULTA") || strings.Contains(t, "RUIDO"):
		return models.CategoryFine
	default:
		return models.CategoryOther
	}
}

// aging partitions the resident's open debt by days past the reference
// date: the due date for charges, the issue date for fines. Debt not yet
// past its reference date is excluded.
func (s *LedgerService) aging(charges []models.Charge, fines []models.Fine, now time.Time) models.AgingBuckets {
	var buckets models.AgingBuckets

	add := func(age int, amount float64) {
		switch {
		case age <= 0:
		case age <= 30:
			buckets.UpTo30Days += amount
		case age <= 60:
			buckets.UpTo60Days += amount
		default:
			buckets.Over60Days += amount
		}
	}

	for i := range charges {
		charge := &charges[i]
		if !charge.IsOpenDebt() {
			continue
		}
		add(charge.AgeDays(now), charge.TotalAmount)
	}

	for i := range fines {
		fine := &fines[i]
		if !fine.IsOpenDebt() {
			continue
		}
		age := int(now.Sub(fine.IssueDate).Hours() / 24)
		add(age, fine.Amount)
	}

	return buckets
}

// Balance returns just the resident's current balance, without the entry
// detail. Positive means the resident owes money.
func (s *LedgerService) Balance(ctx context.Context, residentID uint) (float64, error) {
	statement, err := s.BuildStatement(ctx, residentID)
	if err != nil {
		return 0, err
	}
	if len(statement.SectionErrors) > 0 {
		return 0, fmt.Errorf("estado de cuenta incompleto: %s", strings.Join(statement.SectionErrors, "; "))
	}
	return statement.Balance, nil
}
