package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can sign in to the portal
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	EncryptedPassword string     `gorm:"column:encrypted_password;not null" json:"-"`
	FirstName         string     `gorm:"column:nombre" json:"nombre"`
	LastName          string     `gorm:"column:apellido" json:"apellido"`
	Phone             string     `gorm:"column:telefono" json:"telefono"`
	Role              string     `gorm:"default:residente" json:"rol"`
	Active            bool       `gorm:"column:activo;default:true" json:"activo"`
	CondominiumID     *uint      `gorm:"column:condominio_id;index" json:"condominio_id"`
	DiscardedAt       *time.Time `gorm:"index" json:"-"`
	CreatedAt         time.Time  `json:"fecha_creacion"`
	UpdatedAt         time.Time  `json:"-"`

	// Associations
	Condominium *Condominium `gorm:"foreignKey:CondominiumID" json:"condominio,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "usuarios"
}

// Role constants
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleResident   = "residente"
)

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleResident
	}
	return nil
}

// IsAdmin returns true if user has admin or superadmin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsActive returns true if the account can sign in
func (u *User) IsActive() bool {
	return u.Active && u.DiscardedAt == nil
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"nombre"`
	LastName      string    `json:"apellido"`
	Phone         string    `json:"telefono"`
	Role          string    `json:"rol"`
	Active        bool      `json:"activo"`
	CondominiumID *uint     `json:"condominio_id"`
	CreatedAt     time.Time `json:"fecha_creacion"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		Role:          u.Role,
		Active:        u.Active,
		CondominiumID: u.CondominiumID,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents a JWT refresh token
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Token     string     `gorm:"uniqueIndex" json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for RefreshToken
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired returns true if the refresh token has expired
func (r *RefreshToken) IsExpired() bool {
	if r.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*r.ExpiresAt)
}
