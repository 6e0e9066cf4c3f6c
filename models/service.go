package models

import (
	"time"
)

// Service is an extra the hotel sells on top of the room (breakfast, parking...).
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name" validate:"required,max=150"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(18,2)" json:"price" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
