package models

import (
	"encoding/json"
	"time"
)

// Audit event type constants
const (
	EventTypePayment     = "PAGO"
	EventTypeEdit        = "EDICION"
	EventTypeFine        = "MULTA"
	EventTypeReservation = "RESERVA"
	EventTypeAlert       = "ALERTA"
	EventTypeLogin       = "LOGIN"
	EventTypeSystem      = "SISTEMA"
)

// Audit object type constants, used inside AdjustmentMeta
const (
	AuditObjectCharge = "GASTO"
	AuditObjectFine   = "MULTA"
)

// AuditEvent is an append-only record of something that happened in the
// system. Events are never updated or deleted; corrections are expressed
// as new events.
type AuditEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventType     string    `gorm:"column:tipo_evento;not null;index" json:"tipo_evento"`
	Detail        string    `gorm:"column:detalle;not null" json:"detalle"`
	Amount        *float64  `gorm:"column:monto;type:decimal(10,2)" json:"monto,omitempty"`
	UserID        *uint     `gorm:"column:usuario_id;index" json:"usuario_id,omitempty"`
	ResidentID    *uint     `gorm:"column:residente_id;index" json:"residente_id,omitempty"`
	CondominiumID *uint     `gorm:"column:condominio_id;index" json:"condominio_id,omitempty"`
	Metadata      string    `gorm:"column:datos_adicionales;type:text" json:"datos_adicionales,omitempty"`
	CreatedAt     time.Time `gorm:"column:fecha_creacion;index" json:"fecha_creacion"`
}

// TableName specifies the table name for AuditEvent
func (AuditEvent) TableName() string {
	return "registros"
}

// AdjustmentMeta is the structured payload stored in an EDICION event's
// metadata. It carries everything a later reversal needs to restore the
// adjusted object.
type AdjustmentMeta struct {
	ObjectType      string  `json:"tipo_objeto"`
	ChargeID        *uint   `json:"gasto_id,omitempty"`
	FineID          *uint   `json:"multa_id,omitempty"`
	PreviousAmount  float64 `json:"monto_anterior"`
	NewAmount       float64 `json:"monto_nuevo"`
	PreviousStatus  string  `json:"estado_anterior,omitempty"`
	IsCondonation   bool    `json:"es_condonacion"`
	ReversedEventID *uint   `json:"registro_id,omitempty"`
}

// Encode serializes the meta for storage in AuditEvent.Metadata
func (m AdjustmentMeta) Encode() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseAdjustmentMeta decodes an event's metadata into an AdjustmentMeta.
// The second return value is false when the metadata is empty or not a
// recognizable adjustment payload.
func ParseAdjustmentMeta(raw string) (AdjustmentMeta, bool) {
	var meta AdjustmentMeta
	if raw == "" {
		return meta, false
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return meta, false
	}
	// The registros table is shared with other event kinds; a payload is
	// only an adjustment when its type tag and matching target id agree.
	switch meta.ObjectType {
	case AuditObjectCharge:
		if meta.ChargeID == nil {
			return meta, false
		}
	case AuditObjectFine:
		if meta.FineID == nil {
			return meta, false
		}
	default:
		return meta, false
	}
	return meta, true
}

// TargetsCharge reports whether the adjustment touched the given charge
func (m AdjustmentMeta) TargetsCharge(chargeID uint) bool {
	return m.ObjectType == AuditObjectCharge && m.ChargeID != nil && *m.ChargeID == chargeID
}

// TargetsFine reports whether the adjustment touched the given fine
func (m AdjustmentMeta) TargetsFine(fineID uint) bool {
	return m.ObjectType == AuditObjectFine && m.FineID != nil && *m.FineID == fineID
}

// IsReversal reports whether this meta describes a reversal of an earlier
// adjustment rather than an adjustment itself.
func (m AdjustmentMeta) IsReversal() bool {
	return m.ReversedEventID != nil
}
