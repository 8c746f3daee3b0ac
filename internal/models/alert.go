package models

import "time"

// Alert type constants
const (
	AlertTypeChargeIssued  = "GASTO_EMITIDO"
	AlertTypeChargeOverdue = "GASTO_VENCIDO"
	AlertTypeFineIssued    = "MULTA_EMITIDA"
	AlertTypePaymentStatus = "ESTADO_PAGO"
	AlertTypeAnnouncement  = "COMUNICADO"
	AlertTypeGeneral       = "GENERAL"
)

// Alert is an in-app notification shown to a user
type Alert struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	Type      string     `gorm:"column:tipo;not null" json:"tipo"`
	Title     string     `gorm:"column:titulo;not null" json:"titulo"`
	Message   string     `gorm:"column:mensaje;not null" json:"mensaje"`
	Read      bool       `gorm:"column:leida;default:false;index" json:"leida"`
	ReadAt    *time.Time `gorm:"column:fecha_lectura" json:"fecha_lectura,omitempty"`
	CreatedAt time.Time  `json:"fecha_creacion"`
}

// TableName specifies the table name for Alert
func (Alert) TableName() string {
	return "alertas"
}

// MarkRead flags the alert as read at the given time
func (a *Alert) MarkRead(now time.Time) {
	if a.Read {
		return
	}
	a.Read = true
	a.ReadAt = &now
}
