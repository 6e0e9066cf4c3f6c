package models

import (
	"time"
)

// RoomCategory is a room tier: capacity and nightly rate.
type RoomCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string  `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description       string  `gorm:"type:text" json:"description"`
	Capacity          int     `json:"capacity" validate:"gte=0"`
	BasePricePerNight float64 `gorm:"column:base_price_per_night;type:decimal(18,2)" json:"basePricePerNight" validate:"gte=0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
