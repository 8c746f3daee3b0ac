package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

type mockKPIRepo struct {
	repository.KPIRepository
	mockGetCache           func(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error)
	mockGetDelinquencyRows func(ctx context.Context, condominiumID *uint) ([]models.DelinquencyRow, error)
	mockGetMonthlyIncome   func(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error)
	setCalls               int
}

func (m *mockKPIRepo) GetCache(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error) {
	return m.mockGetCache(ctx, key, condominiumID)
}

func (m *mockKPIRepo) SetCache(ctx context.Context, key string, condominiumID *uint, data interface{}, ttl time.Duration) error {
	m.setCalls++
	return nil
}

func (m *mockKPIRepo) GetDelinquencyRows(ctx context.Context, condominiumID *uint) ([]models.DelinquencyRow, error) {
	return m.mockGetDelinquencyRows(ctx, condominiumID)
}

func (m *mockKPIRepo) GetMonthlyIncome(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error) {
	return m.mockGetMonthlyIncome(ctx, condominiumID, year)
}

type countingResidentRepo struct {
	repository.ResidentRepository
	active int64
}

func (m *countingResidentRepo) CountActive(ctx context.Context, condominiumID uint) (int64, error) {
	return m.active, nil
}

type countingChargeRepo struct {
	repository.ChargeRepository
	open   int64
	debt   float64
	issued int64
	unpaid int64
	billed float64
}

func (m *countingChargeRepo) CountOpen(ctx context.Context, condominiumID uint) (int64, error) {
	return m.open, nil
}

func (m *countingChargeRepo) SumOpenDebt(ctx context.Context, condominiumID uint) (float64, error) {
	return m.debt, nil
}

func (m *countingChargeRepo) CountIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (int64, error) {
	return m.issued, nil
}

func (m *countingChargeRepo) CountUnpaidIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (int64, error) {
	return m.unpaid, nil
}

func (m *countingChargeRepo) SumIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error) {
	return m.billed, nil
}

type countingFineRepo struct {
	repository.FineRepository
	open   int64
	debt   float64
	billed float64
}

func (m *countingFineRepo) CountOpen(ctx context.Context, condominiumID uint) (int64, error) {
	return m.open, nil
}

func (m *countingFineRepo) SumOpenDebt(ctx context.Context, condominiumID uint) (float64, error) {
	return m.debt, nil
}

func (m *countingFineRepo) SumIssuedBetween(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error) {
	return m.billed, nil
}

type countingPaymentRepo struct {
	repository.PaymentRepository
	income   float64
	approved float64
	pending  int64
}

func (m *countingPaymentRepo) SumApprovedBetween(ctx context.Context, condominiumID uint, from, to time.Time) (float64, error) {
	return m.income, nil
}

func (m *countingPaymentRepo) SumApproved(ctx context.Context, condominiumID uint, from, to *time.Time) (float64, error) {
	return m.approved, nil
}

func (m *countingPaymentRepo) CountPending(ctx context.Context, condominiumID uint) (int64, error) {
	return m.pending, nil
}

func TestDelinquencyIndex(t *testing.T) {
	assert.Equal(t, 0, delinquencyIndex(5, 0))
	assert.Equal(t, 0, delinquencyIndex(0, 40))
	assert.Equal(t, 25, delinquencyIndex(10, 40))
	assert.Equal(t, 33, delinquencyIndex(1, 3))
	assert.Equal(t, 100, delinquencyIndex(40, 40))
}

func TestKPIService_Overview_ComputesAndCaches(t *testing.T) {
	kpiRepo := &mockKPIRepo{
		mockGetCache: func(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error) {
			return nil, errors.New("cache miss")
		},
		mockGetMonthlyIncome: func(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error) {
			return []models.MonthlyIncomePoint{{Label: "Ene", Actual: 100000}, {Label: "Feb", Actual: 0}}, nil
		},
	}

	cfg := &config.Config{EstimateMultiplier: 1.1}
	service := NewKPIService(kpiRepo,
		&countingResidentRepo{active: 10},
		&countingChargeRepo{open: 4, debt: 180000, issued: 20, unpaid: 4, billed: 900000},
		&countingFineRepo{open: 2, debt: 45000, billed: 60000},
		&countingPaymentRepo{income: 320000, approved: 1400000, pending: 3},
		cfg,
	)

	overview, err := service.Overview(context.Background(), nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 10, overview.TotalResidents)
	assert.Equal(t, 320000.0, overview.IncomeThisMonth)
	assert.Equal(t, 1400000.0, overview.TotalIncome)
	assert.Equal(t, 960000.0, overview.TotalBilled)
	assert.Equal(t, 3, overview.PendingPayments)
	assert.Equal(t, 225000.0, overview.TotalDebt)
	assert.Equal(t, 20, overview.DelinquencyIndex)
	assert.Equal(t, "$", overview.CurrencySymbol)

	// Estimated income is a fixed markup over the actual
	assert.Equal(t, 110000.0, overview.MonthlyIncome[0].Estimated)
	assert.Equal(t, 0.0, overview.MonthlyIncome[1].Estimated)

	assert.Equal(t, 1, kpiRepo.setCalls)
}

// The delinquency index follows charges, not residents: a single resident
// holding every unpaid charge still pushes the index to 100.
func TestKPIService_Overview_IndexCountsCharges(t *testing.T) {
	kpiRepo := &mockKPIRepo{
		mockGetCache: func(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error) {
			return nil, errors.New("cache miss")
		},
		mockGetMonthlyIncome: func(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error) {
			return nil, nil
		},
	}

	service := NewKPIService(kpiRepo,
		&countingResidentRepo{active: 4},
		&countingChargeRepo{open: 5, debt: 250000, issued: 5, unpaid: 5, billed: 250000},
		&countingFineRepo{},
		&countingPaymentRepo{},
		&config.Config{EstimateMultiplier: 1.1},
	)

	overview, err := service.Overview(context.Background(), nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 4, overview.TotalResidents)
	assert.Equal(t, 100, overview.DelinquencyIndex)
}

func TestKPIService_Overview_WindowedRequestSkipsCache(t *testing.T) {
	cacheReads := 0
	kpiRepo := &mockKPIRepo{
		mockGetCache: func(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error) {
			cacheReads++
			return nil, errors.New("cache miss")
		},
		mockGetMonthlyIncome: func(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error) {
			return nil, nil
		},
	}

	service := NewKPIService(kpiRepo,
		&countingResidentRepo{active: 4},
		&countingChargeRepo{issued: 8, unpaid: 2, billed: 400000},
		&countingFineRepo{billed: 25000},
		&countingPaymentRepo{approved: 300000},
		&config.Config{EstimateMultiplier: 1.1},
	)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	overview, err := service.Overview(context.Background(), nil, &from, &to)
	assert.NoError(t, err)
	assert.Equal(t, 425000.0, overview.TotalBilled)
	assert.Equal(t, 300000.0, overview.TotalIncome)
	assert.Equal(t, 25, overview.DelinquencyIndex)

	// Windowed overviews never touch the cache, in either direction
	assert.Zero(t, cacheReads)
	assert.Zero(t, kpiRepo.setCalls)
}

func TestKPIService_Overview_CacheHitSkipsCompute(t *testing.T) {
	cached := models.DashboardOverview{TotalResidents: 42, DelinquencyIndex: 7}
	data, _ := json.Marshal(cached)

	kpiRepo := &mockKPIRepo{
		mockGetCache: func(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error) {
			assert.Equal(t, "dashboard_overview", key)
			return &models.KPICache{CacheKey: key, Data: data}, nil
		},
	}

	service := NewKPIService(kpiRepo, nil, nil, nil, nil, &config.Config{EstimateMultiplier: 1.1})

	overview, err := service.Overview(context.Background(), nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 42, overview.TotalResidents)
	assert.Equal(t, 7, overview.DelinquencyIndex)
	assert.Zero(t, kpiRepo.setCalls)
}
