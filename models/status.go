package models

// RoomStatus is the housekeeping state of a room.
type RoomStatus string

const (
	RoomFree        RoomStatus = "Free"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomFree, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
// CheckedOut and Cancelled are terminal.
type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "CheckedIn"
	BookingCheckedOut BookingStatus = "CheckedOut"
	BookingCancelled  BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type UserRole string

const (
	RoleAdministrator UserRole = "Administrator"
	RoleReceptionist  UserRole = "Receptionist"
)

func (r UserRole) Valid() bool {
	return r == RoleAdministrator || r == RoleReceptionist
}
