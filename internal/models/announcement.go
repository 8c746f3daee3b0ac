package models

import "time"

// Announcement priority constants
const (
	AnnouncementPriorityNormal = "NORMAL"
	AnnouncementPriorityHigh   = "ALTA"
	AnnouncementPriorityUrgent = "URGENTE"
)

// Announcement is a notice published by the administration to all
// residents of a condominium.
type Announcement struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CondominiumID uint       `gorm:"column:condominio_id;not null;index" json:"condominio_id"`
	AuthorID      uint       `gorm:"column:autor_id;not null" json:"autor_id"`
	Title         string     `gorm:"column:titulo;not null" json:"titulo"`
	Body          string     `gorm:"column:contenido;type:text;not null" json:"contenido"`
	Priority      string     `gorm:"column:prioridad;default:NORMAL" json:"prioridad"`
	PublishedAt   time.Time  `gorm:"column:fecha_publicacion;not null;index" json:"fecha_publicacion"`
	ExpiresAt     *time.Time `gorm:"column:fecha_expiracion" json:"fecha_expiracion,omitempty"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

// TableName specifies the table name for Announcement
func (Announcement) TableName() string {
	return "comunicados"
}

// IsActive returns true while the announcement should be shown
func (a *Announcement) IsActive(now time.Time) bool {
	if a.PublishedAt.After(now) {
		return false
	}
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}
