package models

import (
	"time"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CheckInDate  time.Time     `gorm:"column:check_in_date;not null;index" json:"checkInDate"`
	CheckOutDate time.Time     `gorm:"column:check_out_date;not null;index" json:"checkOutDate"`
	BookingDate  time.Time     `gorm:"column:booking_date" json:"bookingDate"`
	Status       BookingStatus `gorm:"column:status;size:32;not null" json:"status"`
	TotalPrice   float64       `gorm:"column:total_price;type:decimal(18,2)" json:"totalPrice"`

	GuestID uint `gorm:"column:guest_id;index;not null" json:"guestId"`
	RoomID  uint `gorm:"column:room_id;index;not null" json:"roomId"`

	Guest          Guest           `gorm:"foreignKey:GuestID;references:ID;constraint:OnDelete:RESTRICT" json:"guest,omitempty"`
	Room           Room            `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:RESTRICT" json:"room,omitempty"`
	BookedServices []BookedService `gorm:"foreignKey:BookingID" json:"bookedServices"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Overlaps reports whether the booking intersects the half-open range [in, out).
func (b Booking) Overlaps(in, out time.Time) bool {
	return b.CheckInDate.Before(out) && b.CheckOutDate.After(in)
}
