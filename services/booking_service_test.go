package services

import (
	"testing"
	"time"

	"hotel-desk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableRooms_ExcludesOverlappingBookings(t *testing.T) {
	svc, _ := newTestBookingService(t)

	rooms, err := svc.AvailableRooms(bg, day(11), day(13), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "202"}, roomNumbers(rooms))
	assert.NotEmpty(t, rooms[0].RoomCategory.Name, "category should be preloaded")
}

func TestAvailableRooms_HalfOpenBoundaries(t *testing.T) {
	svc, _ := newTestBookingService(t)

	// booking 2 holds 201 for [day10, day17)
	before, err := svc.AvailableRooms(bg, day(8), day(10), 0, 0)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(before), "201")

	after, err := svc.AvailableRooms(bg, day(17), day(19), 0, 0)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(after), "201")

	inside, err := svc.AvailableRooms(bg, day(16), day(18), 0, 0)
	require.NoError(t, err)
	assert.NotContains(t, roomNumbers(inside), "201")
}

func TestAvailableRooms_IgnoresCancelledBookings(t *testing.T) {
	svc, _ := newTestBookingService(t)

	_, err := svc.Cancel(bg, 2)
	require.NoError(t, err)

	rooms, err := svc.AvailableRooms(bg, day(11), day(13), 0, 0)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(rooms), "201")
}

func TestAvailableRooms_ExcludesMaintenanceAndFiltersCategory(t *testing.T) {
	svc, db := newTestBookingService(t)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", 1).Update("status", models.RoomMaintenance).Error)

	rooms, err := svc.AvailableRooms(bg, day(1), day(3), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"102", "201", "202"}, roomNumbers(rooms))

	standard, err := svc.AvailableRooms(bg, day(1), day(3), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"102"}, roomNumbers(standard))
}

func TestAvailableRooms_RejectsInvalidRange(t *testing.T) {
	svc, _ := newTestBookingService(t)

	_, err := svc.AvailableRooms(bg, day(3), day(3), 0, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AvailableRooms(bg, day(3), day(1), 0, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAvailableRooms_EditingBookingKeepsOriginalRoom(t *testing.T) {
	svc, _ := newTestBookingService(t)

	// the booking's own stay does not block its room
	rooms, err := svc.AvailableRooms(bg, day(11), day(13), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "201", "202"}, roomNumbers(rooms))

	// filtered out by category, so it is put in front
	rooms, err = svc.AvailableRooms(bg, day(11), day(13), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"201", "101", "102"}, roomNumbers(rooms))
}

func TestAvailability_BookingScenario(t *testing.T) {
	svc, _ := newTestBookingService(t)

	b, err := svc.Create(bg, BookingInput{GuestID: 3, RoomID: 2, CheckInDate: day(30), CheckOutDate: day(35)})
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)

	during, err := svc.AvailableRooms(bg, day(31), day(33), 0, 0)
	require.NoError(t, err)
	assert.NotContains(t, roomNumbers(during), "102")

	later, err := svc.AvailableRooms(bg, day(36), day(38), 0, 0)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(later), "102")
}

func TestCreateBooking_ComputesPrice(t *testing.T) {
	svc, _ := newTestBookingService(t)

	b, err := svc.Create(bg, BookingInput{GuestID: 1, RoomID: 1, CheckInDate: day(1), CheckOutDate: day(4)})
	require.NoError(t, err)

	assert.Equal(t, 15000.0, b.TotalPrice)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, "Алиса", b.Guest.FirstName)
	assert.Equal(t, "101", b.Room.RoomNumber)
	assert.True(t, b.BookingDate.Equal(testNow))
}

func TestCreateBooking_Rejections(t *testing.T) {
	svc, db := newTestBookingService(t)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", 4).Update("status", models.RoomMaintenance).Error)

	tests := []struct {
		name    string
		in      BookingInput
		wantErr error
	}{
		{"no guest", BookingInput{RoomID: 1, CheckInDate: day(1), CheckOutDate: day(2)}, ErrValidation},
		{"no room", BookingInput{GuestID: 1, CheckInDate: day(1), CheckOutDate: day(2)}, ErrValidation},
		{"checkout before checkin", BookingInput{GuestID: 1, RoomID: 1, CheckInDate: day(3), CheckOutDate: day(2)}, ErrValidation},
		{"unknown guest", BookingInput{GuestID: 99, RoomID: 1, CheckInDate: day(1), CheckOutDate: day(2)}, ErrValidation},
		{"unknown room", BookingInput{GuestID: 1, RoomID: 99, CheckInDate: day(1), CheckOutDate: day(2)}, ErrValidation},
		{"overlapping booking", BookingInput{GuestID: 1, RoomID: 3, CheckInDate: day(15), CheckOutDate: day(20)}, ErrOperationNotPermitted},
		{"room in maintenance", BookingInput{GuestID: 1, RoomID: 4, CheckInDate: day(1), CheckOutDate: day(2)}, ErrOperationNotPermitted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(bg, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateBooking(t *testing.T) {
	svc, _ := newTestBookingService(t)

	b, err := svc.Update(bg, 2, BookingInput{GuestID: 2, RoomID: 3, CheckInDate: day(10), CheckOutDate: day(12)})
	require.NoError(t, err)
	assert.Equal(t, 24000.0, b.TotalPrice)
	assert.True(t, b.CheckOutDate.Equal(day(12)))

	_, err = svc.Cancel(bg, 2)
	require.NoError(t, err)
	_, err = svc.Update(bg, 2, BookingInput{GuestID: 2, RoomID: 3, CheckInDate: day(10), CheckOutDate: day(11)})
	assert.ErrorIs(t, err, ErrOperationNotPermitted)

	_, err = svc.Update(bg, 1, BookingInput{GuestID: 1, RoomID: 1, CheckInDate: day(-5), CheckOutDate: day(-2)})
	assert.ErrorIs(t, err, ErrOperationNotPermitted, "checked-in booking cannot move rooms")

	_, err = svc.Update(bg, 404, BookingInput{GuestID: 1, RoomID: 1, CheckInDate: day(1), CheckOutDate: day(2)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckIn(t *testing.T) {
	svc, db := newTestBookingService(t)

	_, err := svc.CheckIn(bg, 2)
	assert.ErrorIs(t, err, ErrOperationNotPermitted, "check-in date is in the future")
	assert.Equal(t, models.RoomFree, roomStatus(t, db, 3))

	svc.SetClock(func() time.Time { return day(10).Add(9 * time.Hour) })
	b, err := svc.CheckIn(bg, 2)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, b.Status)
	assert.Equal(t, models.RoomOccupied, roomStatus(t, db, 3))

	_, err = svc.CheckIn(bg, 2)
	assert.ErrorIs(t, err, ErrStateChanged)
}

func TestCheckIn_RequiresFreeOrCleaningRoom(t *testing.T) {
	svc, db := newTestBookingService(t)

	// room 102 is occupied by booking 1
	b, err := svc.Create(bg, BookingInput{GuestID: 3, RoomID: 2, CheckInDate: day(0), CheckOutDate: day(2)})
	require.NoError(t, err)
	_, err = svc.CheckIn(bg, b.ID)
	assert.ErrorIs(t, err, ErrOperationNotPermitted)

	// room 202 is being cleaned, which is fine
	b, err = svc.Create(bg, BookingInput{GuestID: 3, RoomID: 4, CheckInDate: day(0), CheckOutDate: day(1)})
	require.NoError(t, err)
	b, err = svc.CheckIn(bg, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, b.Status)
	assert.Equal(t, models.RoomOccupied, roomStatus(t, db, 4))
}

func TestCheckOut(t *testing.T) {
	svc, db := newTestBookingService(t)

	b, err := svc.CheckOut(bg, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, b.Status)
	assert.Equal(t, models.RoomCleaning, roomStatus(t, db, 2))

	_, err = svc.CheckOut(bg, 2)
	assert.ErrorIs(t, err, ErrStateChanged)

	_, err = svc.CheckOut(bg, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	svc, db := newTestBookingService(t)

	b, err := svc.Cancel(bg, 2)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.Equal(t, models.RoomFree, roomStatus(t, db, 3), "confirmed booking leaves the room alone")

	_, err = svc.Cancel(bg, 2)
	assert.ErrorIs(t, err, ErrOperationNotPermitted)
}

func TestCancel_CheckedInFreesRoomForCleaning(t *testing.T) {
	svc, db := newTestBookingService(t)

	_, err := svc.Cancel(bg, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoomCleaning, roomStatus(t, db, 2))
}

func TestCancel_CheckedOutRejected(t *testing.T) {
	svc, _ := newTestBookingService(t)

	_, err := svc.CheckOut(bg, 1)
	require.NoError(t, err)

	_, err = svc.Cancel(bg, 1)
	assert.ErrorIs(t, err, ErrOperationNotPermitted)
}

func TestHistory_RecordsTransitions(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := WithActor(bg, "reception")

	_, err := svc.CheckOut(ctx, 1)
	require.NoError(t, err)

	entries, err := svc.History(bg, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "checked_out", entries[0].Action)
	assert.Equal(t, "reception", entries[0].Actor)
	assert.Contains(t, string(entries[0].Details), `"to":"CheckedOut"`)
	assert.Contains(t, string(entries[0].Details), `"roomTo":"Cleaning"`)

	_, err = svc.History(bg, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBill(t *testing.T) {
	svc, _ := newTestBookingService(t)

	// 3 nights of Standard plus one breakfast
	bill, err := svc.Bill(bg, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, bill.Nights)
	assert.Equal(t, 15000.0, bill.RoomTotal)
	assert.Equal(t, 350.0, bill.ServicesTotal)
	assert.Equal(t, 15350.0, bill.Total)
}

func TestDeleteBooking_RemovesBookedServices(t *testing.T) {
	svc, db := newTestBookingService(t)

	require.NoError(t, svc.Delete(bg, 1))

	var n int64
	require.NoError(t, db.Model(&models.BookedService{}).Where("booking_id = ?", 1).Count(&n).Error)
	assert.Zero(t, n)

	_, err := svc.GetByID(bg, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(bg, 1), ErrNotFound)
}

func TestListForDateRange(t *testing.T) {
	svc, _ := newTestBookingService(t)

	list, err := svc.ListForDateRange(bg, day(-3), day(0))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].ID)

	all, err := svc.List(bg)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
