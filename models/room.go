package models

import (
	"time"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber string     `gorm:"column:room_number;uniqueIndex;size:10;not null" json:"roomNumber" validate:"required,max=10"`
	Floor      int        `gorm:"column:floor" json:"floor"`
	Status     RoomStatus `gorm:"column:status;size:32;not null;default:Free" json:"status"`

	RoomCategoryID uint         `gorm:"column:room_category_id;index;not null" json:"roomCategoryId" validate:"required"`
	RoomCategory   RoomCategory `gorm:"foreignKey:RoomCategoryID;references:ID;constraint:OnDelete:RESTRICT" json:"roomCategory,omitempty" validate:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
