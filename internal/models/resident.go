package models

import (
	"time"
)

// Resident links a user account to a housing unit in a condominium.
// All financial records (charges, fines, payments) are scoped by resident.
type Resident struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	CondominiumID uint      `gorm:"column:condominio_id;not null;index" json:"condominio_id"`
	FirstName     string    `gorm:"column:nombre" json:"nombre"`
	LastName      string    `gorm:"column:apellido" json:"apellido"`
	Email         string    `json:"email"`
	UnitNumber    string    `gorm:"column:vivienda_numero" json:"vivienda_numero"`
	Active        bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt     time.Time `json:"fecha_creacion"`
	UpdatedAt     time.Time `json:"-"`

	// Associations
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Condominium Condominium `gorm:"foreignKey:CondominiumID" json:"-"`
}

// TableName specifies the table name for Resident
func (Resident) TableName() string {
	return "residentes"
}

// FullName returns the display name for the resident
func (r *Resident) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
