package models

import (
	"strings"
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FirstName   string `gorm:"size:100;not null" json:"firstName" validate:"required,max=100"`
	LastName    string `gorm:"size:100;not null" json:"lastName" validate:"required,max=100"`
	PhoneNumber string `gorm:"size:20" json:"phoneNumber" validate:"max=20"`
	Email       string `gorm:"size:255" json:"email" validate:"omitempty,email,max=255"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}
