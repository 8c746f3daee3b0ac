package models

import (
	"encoding/json"
	"time"
)

// KPICache represents a cached dashboard aggregation result
type KPICache struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CacheKey      string          `gorm:"not null;index:idx_kpi_cache_key_condo" json:"cache_key"`
	CondominiumID *uint           `gorm:"column:condominio_id;index:idx_kpi_cache_key_condo" json:"condominio_id"`
	Data          json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	ExpiresAt     time.Time       `gorm:"not null;index" json:"expires_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for KPICache
func (KPICache) TableName() string {
	return "kpi_cache"
}

// DashboardOverview represents the administration dashboard's headline
// numbers and the twelve-month income series.
type DashboardOverview struct {
	TotalResidents   int                  `json:"total_residentes"`
	TotalIncome      float64              `json:"ingresos_totales"`
	IncomeThisMonth  float64              `json:"ingresos_mes"`
	TotalBilled      float64              `json:"total_facturado"`
	PendingPayments  int                  `json:"pagos_pendientes"`
	OpenCharges      int                  `json:"gastos_impagos"`
	OpenFines        int                  `json:"multas_impagas"`
	TotalDebt        float64              `json:"deuda_total"`
	DelinquencyIndex int                  `json:"indice_morosidad"`
	CurrencySymbol   string               `json:"simbolo_moneda"`
	MonthlyIncome    []MonthlyIncomePoint `json:"ingresos_mensuales"`
}

// MonthlyIncomePoint is one slot in the twelve-month income chart
type MonthlyIncomePoint struct {
	Label     string  `json:"label"`
	Actual    float64 `json:"real"`
	Estimated float64 `json:"estimado"`
}
