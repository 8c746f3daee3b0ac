package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment type constants: what the payment settles
const (
	PaymentTypeCharge      = "GASTO_COMUN"
	PaymentTypeFine        = "MULTA"
	PaymentTypeReservation = "RESERVA"
)

// Payment method constants
const (
	PaymentMethodTransfer = "TRANSFERENCIA"
	PaymentMethodCard     = "TARJETA"
	PaymentMethodCash     = "EFECTIVO"
	PaymentMethodWebpay   = "WEBPAY"
	PaymentMethodKhipu    = "KHIPU"
)

// Payment status constants
const (
	PaymentStatusPending  = "PENDIENTE"
	PaymentStatusApproved = "APROBADO"
	PaymentStatusRejected = "RECHAZADO"
	PaymentStatusReversed = "REVERSADO"
)

// Payment represents money received from a resident against a charge, a
// fine or a reservation.
type Payment struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	ResidentID        uint       `gorm:"column:residente_id;not null;index" json:"residente_id"`
	CondominiumID     uint       `gorm:"column:condominio_id;not null;index" json:"condominio_id"`
	Type              string     `gorm:"column:tipo;not null" json:"tipo"`
	ReferenceID       *uint      `gorm:"column:referencia_id" json:"referencia_id,omitempty"`
	Amount            float64    `gorm:"column:monto;type:decimal(10,2);not null" json:"monto"`
	Method            string     `gorm:"column:metodo;not null" json:"metodo"`
	Status            string     `gorm:"column:estado;default:PENDIENTE;not null;index" json:"estado"`
	TransactionNumber string     `gorm:"column:numero_transaccion;uniqueIndex;not null" json:"numero_transaccion"`
	PaymentDate       time.Time  `gorm:"column:fecha_pago;type:date;not null" json:"fecha_pago"`
	ApprovedAt        *time.Time `gorm:"column:fecha_aprobacion" json:"fecha_aprobacion,omitempty"`
	ApprovedByID      *uint      `gorm:"column:aprobado_por_id" json:"aprobado_por_id,omitempty"`
	Notes             string     `gorm:"column:notas" json:"notas,omitempty"`
	CreatedAt         time.Time  `json:"-"`
	UpdatedAt         time.Time  `json:"-"`

	// Associations
	Resident Resident `gorm:"foreignKey:ResidentID" json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "pagos"
}

// BeforeCreate assigns a transaction number if none was provided
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.TransactionNumber == "" {
		p.TransactionNumber = "TXN-" + uuid.New().String()
	}
	return nil
}

// MayApprove returns true if the payment is awaiting review
func (p *Payment) MayApprove() bool {
	return p.Status == PaymentStatusPending
}

// MayReject returns true if the payment is awaiting review
func (p *Payment) MayReject() bool {
	return p.Status == PaymentStatusPending
}

// MayReverse returns true if an approved payment can be undone
func (p *Payment) MayReverse() bool {
	return p.Status == PaymentStatusApproved
}

// IsSettled returns true if the payment counts towards the resident's credit
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentStatusApproved
}

// MethodLabel returns the human label used in ledger descriptions
func (p *Payment) MethodLabel() string {
	switch p.Method {
	case PaymentMethodTransfer:
		return "Transferencia"
	case PaymentMethodCard:
		return "Tarjeta"
	case PaymentMethodCash:
		return "Efectivo"
	case PaymentMethodWebpay:
		return "Webpay"
	case PaymentMethodKhipu:
		return "Khipu"
	}
	return p.Method
}
