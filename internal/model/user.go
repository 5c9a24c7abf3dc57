package model

import "time"

// Role values stored on User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered account. The admin account is created once at
// startup and cannot be registered through the API.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:10;not null;default:'user'"`
	Address      string    `json:"address" gorm:"size:250"`
	Pincode      string    `json:"pincode" gorm:"size:10"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:UserID"`
}
