package models

import "time"

// Reservation status constants
const (
	ReservationStatusPending   = "PENDIENTE"
	ReservationStatusConfirmed = "CONFIRMADA"
	ReservationStatusCancelled = "CANCELADA"
)

// Reservation is a resident's booking of a common space. Confirmed
// reservations with a fee end up as RESERVA observations on the
// resident's next charge.
type Reservation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ResidentID    uint      `gorm:"column:residente_id;not null;index" json:"residente_id"`
	CommonSpaceID uint      `gorm:"column:espacio_comun_id;not null;index" json:"espacio_comun_id"`
	Date          time.Time `gorm:"column:fecha_reserva;type:date;not null" json:"fecha_reserva"`
	StartHour     int       `gorm:"column:hora_inicio;not null" json:"hora_inicio"`
	EndHour       int       `gorm:"column:hora_fin;not null" json:"hora_fin"`
	Fee           float64   `gorm:"column:tarifa;type:decimal(10,2);default:0" json:"tarifa"`
	Status        string    `gorm:"column:estado;default:PENDIENTE;not null" json:"estado"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`

	// Associations
	CommonSpace CommonSpace `gorm:"foreignKey:CommonSpaceID" json:"-"`
}

// TableName specifies the table name for Reservation
func (Reservation) TableName() string {
	return "reservas"
}

// MayCancel returns true while the reservation can still be cancelled
func (r *Reservation) MayCancel() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// Overlaps reports whether two reservations of the same space collide
func (r *Reservation) Overlaps(other *Reservation) bool {
	if r.CommonSpaceID != other.CommonSpaceID || !r.Date.Equal(other.Date) {
		return false
	}
	return r.StartHour < other.EndHour && other.StartHour < r.EndHour
}
