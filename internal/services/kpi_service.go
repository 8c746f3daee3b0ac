package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/pkg/logger"
)

const (
	overviewCacheKey = "dashboard_overview"
	overviewCacheTTL = 15 * time.Minute
)

// KPIService aggregates the administration dashboard numbers. Results are
// cached in the database with a short TTL; a cache miss recomputes.
type KPIService struct {
	kpiRepo      repository.KPIRepository
	residentRepo repository.ResidentRepository
	chargeRepo   repository.ChargeRepository
	fineRepo     repository.FineRepository
	paymentRepo  repository.PaymentRepository
	cfg          *config.Config
}

// NewKPIService creates a new KPI service
func NewKPIService(kpiRepo repository.KPIRepository, residentRepo repository.ResidentRepository, chargeRepo repository.ChargeRepository, fineRepo repository.FineRepository, paymentRepo repository.PaymentRepository, cfg *config.Config) *KPIService {
	return &KPIService{
		kpiRepo:      kpiRepo,
		residentRepo: residentRepo,
		chargeRepo:   chargeRepo,
		fineRepo:     fineRepo,
		paymentRepo:  paymentRepo,
		cfg:          cfg,
	}
}

// Overview returns the dashboard headline numbers, from cache when fresh.
// An optional [from, to) emission window narrows billing and income sums;
// only the unwindowed overview is cached.
func (s *KPIService) Overview(ctx context.Context, condominiumID *uint, from, to *time.Time) (*models.DashboardOverview, error) {
	windowed := from != nil || to != nil
	if !windowed {
		if cached, err := s.kpiRepo.GetCache(ctx, overviewCacheKey, condominiumID); err == nil {
			var overview models.DashboardOverview
			if err := json.Unmarshal(cached.Data, &overview); err == nil {
				return &overview, nil
			}
		}
	}

	overview, err := s.computeOverview(ctx, condominiumID, from, to)
	if err != nil {
		return nil, err
	}

	if !windowed {
		if err := s.kpiRepo.SetCache(ctx, overviewCacheKey, condominiumID, overview, overviewCacheTTL); err != nil {
			logger.Warn(fmt.Sprintf("[KPI] failed to cache overview: %v", err))
		}
	}

	return overview, nil
}

func (s *KPIService) computeOverview(ctx context.Context, condominiumID *uint, from, to *time.Time) (*models.DashboardOverview, error) {
	var condoID uint
	if condominiumID != nil {
		condoID = *condominiumID
	}

	totalResidents, err := s.residentRepo.CountActive(ctx, condoID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	income, err := s.paymentRepo.SumApprovedBetween(ctx, condoID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	totalIncome, err := s.paymentRepo.SumApproved(ctx, condoID, from, to)
	if err != nil {
		return nil, err
	}

	pendingPayments, err := s.paymentRepo.CountPending(ctx, condoID)
	if err != nil {
		return nil, err
	}

	openCharges, err := s.chargeRepo.CountOpen(ctx, condoID)
	if err != nil {
		return nil, err
	}

	openFines, err := s.fineRepo.CountOpen(ctx, condoID)
	if err != nil {
		return nil, err
	}

	chargeDebt, err := s.chargeRepo.SumOpenDebt(ctx, condoID)
	if err != nil {
		return nil, err
	}

	fineDebt, err := s.fineRepo.SumOpenDebt(ctx, condoID)
	if err != nil {
		return nil, err
	}

	totalCharges, err := s.chargeRepo.CountIssuedBetween(ctx, condoID, from, to)
	if err != nil {
		return nil, err
	}

	unpaidCharges, err := s.chargeRepo.CountUnpaidIssuedBetween(ctx, condoID, from, to)
	if err != nil {
		return nil, err
	}

	chargesBilled, err := s.chargeRepo.SumIssuedBetween(ctx, condoID, from, to)
	if err != nil {
		return nil, err
	}

	finesBilled, err := s.fineRepo.SumIssuedBetween(ctx, condoID, from, to)
	if err != nil {
		return nil, err
	}

	series, err := s.kpiRepo.GetMonthlyIncome(ctx, condominiumID, now.Year())
	if err != nil {
		return nil, err
	}
	for i := range series {
		series[i].Estimated = math.Round(series[i].Actual * s.cfg.EstimateMultiplier)
	}

	return &models.DashboardOverview{
		TotalResidents:   int(totalResidents),
		TotalIncome:      totalIncome,
		IncomeThisMonth:  income,
		TotalBilled:      chargesBilled + finesBilled,
		PendingPayments:  int(pendingPayments),
		OpenCharges:      int(openCharges),
		OpenFines:        int(openFines),
		TotalDebt:        chargeDebt + fineDebt,
		DelinquencyIndex: delinquencyIndex(int(unpaidCharges), int(totalCharges)),
		CurrencySymbol:   "$",
		MonthlyIncome:    series,
	}, nil
}

// delinquencyIndex is the percentage of issued charges still unpaid,
// rounded to the nearest integer. Zero charges means index zero, never
// a division by zero.
func delinquencyIndex(unpaid, total int) int {
	if total <= 0 {
		return 0
	}
	idx := math.Round(100 * float64(unpaid) / float64(total))
	if math.IsNaN(idx) || math.IsInf(idx, 0) {
		return 0
	}
	return int(idx)
}

// DelinquencyReport returns per-resident open debt, largest debt first
func (s *KPIService) DelinquencyReport(ctx context.Context, condominiumID *uint) ([]models.DelinquencyRow, error) {
	return s.kpiRepo.GetDelinquencyRows(ctx, condominiumID)
}

// RefreshCache recomputes the overview for the whole portfolio and stores
// it. Meant to run on a schedule so dashboard hits stay warm.
func (s *KPIService) RefreshCache(ctx context.Context) error {
	overview, err := s.computeOverview(ctx, nil, nil, nil)
	if err != nil {
		return err
	}
	return s.kpiRepo.SetCache(ctx, overviewCacheKey, nil, overview, overviewCacheTTL)
}

// CleanExpiredCache drops stale cache rows
func (s *KPIService) CleanExpiredCache(ctx context.Context) error {
	return s.kpiRepo.CleanExpiredCache(ctx)
}

// InvalidateOverview drops the cached overview after a mutation that
// changes the numbers.
func (s *KPIService) InvalidateOverview(ctx context.Context, condominiumID *uint) {
	if err := s.kpiRepo.InvalidateCache(ctx, overviewCacheKey, condominiumID); err != nil {
		logger.Warn(fmt.Sprintf("[KPI] failed to invalidate overview cache: %v", err))
	}
}
