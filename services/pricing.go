package services

import (
	"time"

	"hotel-desk/models"
)

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights is the whole-day difference between the calendar dates of checkIn and
// checkOut, and 1 when the dates coincide but checkOut is still later.
func Nights(checkIn, checkOut time.Time) int {
	n := int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
	if n <= 0 && checkOut.After(checkIn) {
		return 1
	}
	if n < 0 {
		return 0
	}
	return n
}

func RoomTotal(checkIn, checkOut time.Time, category models.RoomCategory) float64 {
	return float64(Nights(checkIn, checkOut)) * category.BasePricePerNight
}

// Bill is the final invoice for a booking.
type Bill struct {
	BookingID     uint       `json:"bookingId"`
	Nights        int        `json:"nights"`
	RatePerNight  float64    `json:"ratePerNight"`
	RoomTotal     float64    `json:"roomTotal"`
	Lines         []BillLine `json:"lines"`
	ServicesTotal float64    `json:"servicesTotal"`
	Total         float64    `json:"total"`
}

type BillLine struct {
	Service  string  `json:"service"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
}

// BuildBill expects the booking with Room.RoomCategory and BookedServices.Service loaded.
func BuildBill(b models.Booking) Bill {
	cat := b.Room.RoomCategory
	bill := Bill{
		BookingID:    b.ID,
		Nights:       Nights(b.CheckInDate, b.CheckOutDate),
		RatePerNight: cat.BasePricePerNight,
		RoomTotal:    RoomTotal(b.CheckInDate, b.CheckOutDate, cat),
		Lines:        make([]BillLine, 0, len(b.BookedServices)),
	}
	for _, bs := range b.BookedServices {
		amount := bs.Total()
		bill.Lines = append(bill.Lines, BillLine{
			Service:  bs.Service.Name,
			Quantity: bs.Quantity,
			Price:    bs.Service.Price,
			Amount:   amount,
		})
		bill.ServicesTotal += amount
	}
	bill.Total = bill.RoomTotal + bill.ServicesTotal
	return bill
}
