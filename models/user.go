package models

import (
	"time"
)

// User is a member of staff who can log in.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username" validate:"required,max=100"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // bcrypt, never returned in JSON
	FullName     string    `gorm:"size:200" json:"fullName" validate:"max=200"`
	Role         UserRole  `gorm:"size:32;not null" json:"role" validate:"required"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
