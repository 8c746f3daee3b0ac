package models

import (
	"time"
)

// Condominium represents a managed residential community
type Condominium struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:nombre;not null" json:"nombre"`
	Address   string    `gorm:"column:direccion" json:"direccion"`
	Commune   string    `gorm:"column:comuna" json:"comuna"`
	Active    bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"-"`

	// Associations
	Residents    []Resident    `gorm:"foreignKey:CondominiumID" json:"-"`
	CommonSpaces []CommonSpace `gorm:"foreignKey:CondominiumID" json:"espacios_comunes,omitempty"`
}

// TableName specifies the table name for Condominium
func (Condominium) TableName() string {
	return "condominios"
}

// CommonSpace represents a reservable shared area (quincho, sala, etc.)
type CommonSpace struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CondominiumID  uint      `gorm:"column:condominio_id;not null;index" json:"condominio_id"`
	Name           string    `gorm:"column:nombre;not null" json:"nombre"`
	ReservationFee float64   `gorm:"column:tarifa_reserva;type:decimal(10,2);default:0" json:"tarifa_reserva"`
	Capacity       int       `gorm:"column:capacidad" json:"capacidad"`
	Active         bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt      time.Time `json:"fecha_creacion"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName specifies the table name for CommonSpace
func (CommonSpace) TableName() string {
	return "espacios_comunes"
}
