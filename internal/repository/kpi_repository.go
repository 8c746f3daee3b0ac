package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vecindia/condominio-api/internal/models"
	"gorm.io/gorm"
)

// KPIRepository defines the interface for dashboard aggregation queries
// and their DB-backed cache.
type KPIRepository interface {
	GetCache(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error)
	SetCache(ctx context.Context, key string, condominiumID *uint, data interface{}, ttl time.Duration) error
	InvalidateCache(ctx context.Context, key string, condominiumID *uint) error
	CleanExpiredCache(ctx context.Context) error

	// Aggregations for the dashboard
	GetMonthlyIncome(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error)
	GetDelinquencyRows(ctx context.Context, condominiumID *uint) ([]models.DelinquencyRow, error)
}

type kpiRepository struct {
	db *gorm.DB
}

// NewKPIRepository creates a new KPI repository
func NewKPIRepository(db *gorm.DB) KPIRepository {
	return &kpiRepository{db: db}
}

func (r *kpiRepository) GetCache(ctx context.Context, key string, condominiumID *uint) (*models.KPICache, error) {
	var cache models.KPICache
	db := r.db.WithContext(ctx).Where("cache_key = ?", key)
	if condominiumID != nil {
		db = db.Where("condominio_id = ?", *condominiumID)
	} else {
		db = db.Where("condominio_id IS NULL")
	}

	err := db.Where("expires_at > ?", time.Now()).First(&cache).Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *kpiRepository) SetCache(ctx context.Context, key string, condominiumID *uint, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	cache := models.KPICache{
		CacheKey:      key,
		CondominiumID: condominiumID,
		Data:          jsonData,
		ExpiresAt:     time.Now().Add(ttl),
	}

	// Upsert strategy
	var existing models.KPICache
	db := r.db.WithContext(ctx).Where("cache_key = ?", key)
	if condominiumID != nil {
		db = db.Where("condominio_id = ?", *condominiumID)
	} else {
		db = db.Where("condominio_id IS NULL")
	}

	err = db.First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"data":       jsonData,
			"expires_at": cache.ExpiresAt,
			"updated_at": time.Now(),
		}).Error
	}

	return r.db.WithContext(ctx).Create(&cache).Error
}

func (r *kpiRepository) InvalidateCache(ctx context.Context, key string, condominiumID *uint) error {
	db := r.db.WithContext(ctx).Where("cache_key = ?", key)
	if condominiumID != nil {
		db = db.Where("condominio_id = ?", *condominiumID)
	}
	return db.Delete(&models.KPICache{}).Error
}

func (r *kpiRepository) CleanExpiredCache(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.KPICache{}).Error
}

// GetMonthlyIncome returns approved payment totals by month for the given
// year, as twelve slots with zeros for months without income.
func (r *kpiRepository) GetMonthlyIncome(ctx context.Context, condominiumID *uint, year int) ([]models.MonthlyIncomePoint, error) {
	type row struct {
		Month int
		Total float64
	}
	var rows []row

	db := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("EXTRACT(MONTH FROM fecha_pago)::int AS month, COALESCE(SUM(monto), 0) AS total").
		Where("estado = ? AND EXTRACT(YEAR FROM fecha_pago) = ?", models.PaymentStatusApproved, year)
	if condominiumID != nil {
		db = db.Where("condominio_id = ?", *condominiumID)
	}
	if err := db.Group("month").Scan(&rows).Error; err != nil {
		return nil, err
	}

	labels := []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
	points := make([]models.MonthlyIncomePoint, 12)
	for i := range points {
		points[i].Label = labels[i]
	}
	for _, rw := range rows {
		if rw.Month >= 1 && rw.Month <= 12 {
			points[rw.Month-1].Actual = rw.Total
		}
	}
	return points, nil
}

// GetDelinquencyRows returns per-resident open debt totals, residents with
// no open debt excluded, ordered by total debt descending.
func (r *kpiRepository) GetDelinquencyRows(ctx context.Context, condominiumID *uint) ([]models.DelinquencyRow, error) {
	var rows []models.DelinquencyRow

	query := `
		SELECT
			res.id AS resident_id,
			res.nombre || ' ' || res.apellido AS resident_name,
			res.vivienda_numero AS unit,
			res.email AS email,
			COALESCE(g.cnt, 0) AS open_charges,
			COALESCE(m.cnt, 0) AS open_fines,
			COALESCE(g.total, 0) + COALESCE(m.total, 0) AS total_debt,
			GREATEST(COALESCE(g.oldest, 0), COALESCE(m.oldest, 0)) AS oldest_days
		FROM residentes res
		LEFT JOIN (
			SELECT residente_id, COUNT(*) AS cnt, SUM(monto_total) AS total,
				MAX(EXTRACT(DAY FROM NOW() - fecha_vencimiento))::int AS oldest
			FROM gastos_comunes
			WHERE estado IN ('PENDIENTE', 'VENCIDO', 'MOROSO')
			GROUP BY residente_id
		) g ON g.residente_id = res.id
		LEFT JOIN (
			SELECT residente_id, COUNT(*) AS cnt, SUM(monto) AS total,
				MAX(EXTRACT(DAY FROM NOW() - fecha_emision))::int AS oldest
			FROM multas
			WHERE estado = 'PENDIENTE'
			GROUP BY residente_id
		) m ON m.residente_id = res.id
		WHERE res.activo = true
			AND (COALESCE(g.total, 0) + COALESCE(m.total, 0)) > 0
	`
	args := []interface{}{}
	if condominiumID != nil {
		query += " AND res.condominio_id = ?"
		args = append(args, *condominiumID)
	}
	query += " ORDER BY total_debt DESC"

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}
