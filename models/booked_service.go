package models

import (
	"time"
)

// BookedService is an extra Service ordered for a Booking.
type BookedService struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`
	DateProvided time.Time `gorm:"column:date_provided" json:"dateProvided"`

	BookingID uint `gorm:"column:booking_id;index;not null" json:"bookingId"`
	ServiceID uint `gorm:"column:service_id;index;not null" json:"serviceId"`

	Service Service `gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:RESTRICT" json:"service,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (bs BookedService) Total() float64 {
	return float64(bs.Quantity) * bs.Service.Price
}
