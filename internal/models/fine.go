package models

import "time"

// Fine type constants
const (
	FineTypeLatePayment    = "RETRASO_PAGO"
	FineTypeInfrastructure = "INFRAESTRUCTURA"
	FineTypeNoise          = "RUIDO"
	FineTypePet            = "MASCOTA"
	FineTypeOther          = "OTRO"
)

// Fine status constants
const (
	FineStatusPending  = "PENDIENTE"
	FineStatusPaid     = "PAGADA"
	FineStatusCondoned = "CONDONADA"
)

// Fine represents a sanction issued to a resident, billed separately from
// the recurring common-expense charge.
type Fine struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ResidentID      uint       `gorm:"column:residente_id;not null;index" json:"residente_id"`
	CondominiumID   uint       `gorm:"column:condominio_id;not null;index" json:"condominio_id"`
	Type            string     `gorm:"column:tipo;not null" json:"tipo"`
	Description     string     `gorm:"column:descripcion;not null" json:"descripcion"`
	Amount          float64    `gorm:"column:monto;type:decimal(10,2);not null" json:"monto"`
	Status          string     `gorm:"column:estado;default:PENDIENTE;not null;index" json:"estado"`
	IssueDate       time.Time  `gorm:"column:fecha_emision;type:date;not null" json:"fecha_emision"`
	PaidAt          *time.Time `gorm:"column:fecha_pago" json:"fecha_pago"`
	CondonedReason  string     `gorm:"column:motivo_condonacion" json:"motivo_condonacion,omitempty"`
	RelatedChargeID *uint      `gorm:"column:gasto_comun_id" json:"gasto_comun_id,omitempty"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`

	// Associations
	Resident Resident `gorm:"foreignKey:ResidentID" json:"-"`
}

// TableName specifies the table name for Fine
func (Fine) TableName() string {
	return "multas"
}

// IsOpenDebt returns true while the fine counts towards the resident's debt
func (f *Fine) IsOpenDebt() bool {
	return f.Status == FineStatusPending
}

// MayAdjust returns true if the fine amount can still be adjusted
func (f *Fine) MayAdjust() bool {
	return f.Status == FineStatusPending
}

// MayCondone returns true if the fine can be forgiven
func (f *Fine) MayCondone() bool {
	return f.Status == FineStatusPending
}
