package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Charge status constants
const (
	ChargeStatusPending    = "PENDIENTE"
	ChargeStatusPaid       = "PAGADO"
	ChargeStatusOverdue    = "VENCIDO"
	ChargeStatusDelinquent = "MOROSO"
)

// Observation item type tags
const (
	ObservationTypeReservation = "RESERVA"
	ObservationTypeFine        = "MULTA"
	ObservationTypeOther       = "OTRO"
)

// ObservationItem is an itemized extra charge or credit attached to a
// periodic charge (a reservation fee, a fine folded into the bill, a
// reversal). A negative amount represents a credit.
type ObservationItem struct {
	Type        string  `json:"tipo"`
	Description string  `json:"descripcion"`
	Amount      float64 `json:"monto"`
	Date        string  `json:"fecha,omitempty"`
}

// ObservationList stores observation items as a JSONB column
type ObservationList []ObservationItem

// Value implements driver.Valuer for GORM
func (o ObservationList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for GORM
func (o *ObservationList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for ObservationList: %T", value)
	}
	return json.Unmarshal(data, o)
}

// Charge represents a resident's recurring common-expense bill (gasto común)
// for a given month/year.
type Charge struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ResidentID     uint            `gorm:"column:residente_id;not null;index" json:"residente_id"`
	CondominiumID  uint            `gorm:"column:condominio_id;not null;index" json:"condominio_id"`
	Month          int             `gorm:"column:mes;not null" json:"mes"`
	Year           int             `gorm:"column:anio;not null" json:"anio"`
	BaseAmount     float64         `gorm:"column:monto_base;type:decimal(10,2);not null" json:"monto_base"`
	MaintenanceFee float64         `gorm:"column:cuota_mantencion;type:decimal(10,2);default:0" json:"cuota_mantencion"`
	ServicesAmount float64         `gorm:"column:servicios;type:decimal(10,2);default:0" json:"servicios"`
	FinesAmount    float64         `gorm:"column:multas;type:decimal(10,2);default:0" json:"multas"`
	TotalAmount    float64         `gorm:"column:monto_total;type:decimal(10,2);not null" json:"monto_total"`
	Status         string          `gorm:"column:estado;default:PENDIENTE;not null;index" json:"estado"`
	IssueDate      time.Time       `gorm:"column:fecha_emision;type:date;not null" json:"fecha_emision"`
	DueDate        time.Time       `gorm:"column:fecha_vencimiento;type:date;not null;index" json:"fecha_vencimiento"`
	PaidAt         *time.Time      `gorm:"column:fecha_pago" json:"fecha_pago"`
	Observations   ObservationList `gorm:"column:observaciones;type:jsonb" json:"observaciones"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`

	// Associations
	Resident Resident `gorm:"foreignKey:ResidentID" json:"-"`
}

// TableName specifies the table name for Charge
func (Charge) TableName() string {
	return "gastos_comunes"
}

// IsOpenDebt returns true while the charge counts towards the resident's debt
func (c *Charge) IsOpenDebt() bool {
	switch c.Status {
	case ChargeStatusPending, ChargeStatusOverdue, ChargeStatusDelinquent:
		return true
	}
	return false
}

// ReferenceDate is the date delinquency age is measured from
func (c *Charge) ReferenceDate() time.Time {
	if !c.DueDate.IsZero() {
		return c.DueDate
	}
	return c.IssueDate
}

// AgeDays returns the number of whole days the charge has been past its
// reference date. Zero or negative means not yet due.
func (c *Charge) AgeDays(now time.Time) int {
	return int(now.Sub(c.ReferenceDate()).Hours() / 24)
}

// Period returns the billing period as "M/YYYY"
func (c *Charge) Period() string {
	return fmt.Sprintf("%d/%d", c.Month, c.Year)
}

// MayAdjust returns true if the charge amount can still be adjusted
func (c *Charge) MayAdjust() bool {
	return c.Status != ChargeStatusPaid
}
