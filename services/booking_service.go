package services

import (
	"context"
	"errors"
	"time"

	"hotel-desk/metrics"
	"hotel-desk/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const bookingEntity = "booking"

type BookingService struct {
	DB  *gorm.DB
	Log *zerolog.Logger
	now func() time.Time
}

func NewBookingService(db *gorm.DB, log *zerolog.Logger) *BookingService {
	return &BookingService{DB: db, Log: log, now: time.Now}
}

// SetClock replaces the clock used for "today" and booking timestamps.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

type BookingInput struct {
	GuestID      uint
	RoomID       uint
	CheckInDate  time.Time
	CheckOutDate time.Time
}

func normTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func checkRange(in, out time.Time) error {
	if in.IsZero() || out.IsZero() {
		return validationf("check-in and check-out dates are required")
	}
	if !out.After(in) {
		return validationf("check-out date must be after check-in date")
	}
	return nil
}

func (in BookingInput) validate() error {
	if in.GuestID == 0 {
		return validationf("a guest must be selected")
	}
	if in.RoomID == 0 {
		return validationf("a room must be selected")
	}
	return checkRange(in.CheckInDate, in.CheckOutDate)
}

// occupiedRoomIDs selects the rooms holding a non-cancelled booking that overlaps [in, out).
func occupiedRoomIDs(db *gorm.DB, in, out time.Time, excludeBookingID uint) *gorm.DB {
	q := db.Model(&models.Booking{}).
		Distinct("room_id").
		Where("status <> ? AND check_in_date < ? AND check_out_date > ?", models.BookingCancelled, out, in)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	return q
}

// AvailableRooms lists rooms with no overlapping non-cancelled booking, excluding rooms under
// maintenance, ordered by number. categoryID 0 means any category. When editingBookingID is set,
// that booking is ignored and its room is prepended if it would otherwise be missing.
func (s *BookingService) AvailableRooms(ctx context.Context, in, out time.Time, categoryID, editingBookingID uint) ([]models.Room, error) {
	if err := checkRange(in, out); err != nil {
		return nil, err
	}
	in, out = normTime(in), normTime(out)
	db := s.DB.WithContext(ctx)

	q := db.Preload("RoomCategory").
		Where("id NOT IN (?)", occupiedRoomIDs(db, in, out, editingBookingID)).
		Where("status <> ?", models.RoomMaintenance)
	if categoryID != 0 {
		q = q.Where("room_category_id = ?", categoryID)
	}

	var rooms []models.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, dbError("query available rooms", err)
	}
	metrics.IncAvailabilityQuery()

	if editingBookingID == 0 {
		return rooms, nil
	}

	var editing models.Booking
	if err := db.Select("id", "room_id").First(&editing, editingBookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rooms, nil
		}
		return nil, dbError("load edited booking", err)
	}
	for _, r := range rooms {
		if r.ID == editing.RoomID {
			return rooms, nil
		}
	}
	var original models.Room
	if err := db.Preload("RoomCategory").First(&original, editing.RoomID).Error; err != nil {
		return nil, dbError("load original room", err)
	}
	return append([]models.Room{original}, rooms...), nil
}

// ensureBookable loads the room and rejects it when another live booking overlaps the range.
func ensureBookable(tx *gorm.DB, roomID uint, in, out time.Time, excludeBookingID uint, checkMaintenance bool) (models.Room, error) {
	var room models.Room
	if err := tx.Preload("RoomCategory").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, validationf("room %d does not exist", roomID)
		}
		return room, dbError("load room", err)
	}
	if checkMaintenance && room.Status == models.RoomMaintenance {
		return room, notPermittedf("room %s is under maintenance", room.RoomNumber)
	}

	var conflicts int64
	q := tx.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ? AND check_in_date < ? AND check_out_date > ?",
			roomID, models.BookingCancelled, out, in)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&conflicts).Error; err != nil {
		return room, dbError("check room conflicts", err)
	}
	if conflicts > 0 {
		return room, notPermittedf("room %s is already booked for the selected dates", room.RoomNumber)
	}
	return room, nil
}

func guestExists(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&models.Guest{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return dbError("load guest", err)
	}
	if n == 0 {
		return validationf("guest %d does not exist", id)
	}
	return nil
}

// Create stores a Confirmed booking. The total price is computed from the room's category.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ci, co := normTime(in.CheckInDate), normTime(in.CheckOutDate)

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := guestExists(tx, in.GuestID); err != nil {
			return err
		}
		room, err := ensureBookable(tx, in.RoomID, ci, co, 0, true)
		if err != nil {
			return err
		}

		booking = models.Booking{
			CheckInDate:  ci,
			CheckOutDate: co,
			BookingDate:  normTime(s.now()),
			Status:       models.BookingConfirmed,
			TotalPrice:   RoomTotal(ci, co, room.RoomCategory),
			GuestID:      in.GuestID,
			RoomID:       in.RoomID,
		}
		if err := tx.Omit(clause.Associations).Create(&booking).Error; err != nil {
			return dbError("create booking", err)
		}
		return record(ctx, tx, bookingEntity, booking.ID, "created", map[string]any{
			"room":       room.RoomNumber,
			"checkIn":    ci,
			"checkOut":   co,
			"totalPrice": booking.TotalPrice,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.Log.Info().Uint("booking_id", booking.ID).Uint("room_id", booking.RoomID).
		Time("check_in", ci).Time("check_out", co).Msg("booking created")
	return s.GetByID(ctx, booking.ID)
}

// GetByID loads the booking with guest, room and category, and booked services with their service.
func (s *BookingService) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomCategory").
		Preload("BookedServices.Service").
		First(&b, id).Error
	if err != nil {
		return nil, dbError("load booking", err)
	}
	return &b, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomCategory").
		Order("check_in_date DESC, id DESC").
		Find(&bookings).Error
	return bookings, dbError("list bookings", err)
}

// ListForDateRange returns bookings of any status that overlap [start, end).
func (s *BookingService) ListForDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomCategory").
		Where("check_in_date < ? AND check_out_date > ?", normTime(end), normTime(start)).
		Order("check_in_date ASC, id ASC").
		Find(&bookings).Error
	return bookings, dbError("list bookings for range", err)
}

// Update changes guest, room and dates of a live booking and recomputes its price.
func (s *BookingService) Update(ctx context.Context, id uint, in BookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ci, co := normTime(in.CheckInDate), normTime(in.CheckOutDate)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, id).Error; err != nil {
			return dbError("load booking", err)
		}
		if current.Status.Terminal() {
			return notPermittedf("booking %d is %s and can no longer be edited", id, current.Status)
		}
		roomChanged := current.RoomID != in.RoomID
		if roomChanged && current.Status == models.BookingCheckedIn {
			return notPermittedf("the room of a checked-in booking cannot be changed")
		}
		if err := guestExists(tx, in.GuestID); err != nil {
			return err
		}
		room, err := ensureBookable(tx, in.RoomID, ci, co, id, roomChanged)
		if err != nil {
			return err
		}

		total := RoomTotal(ci, co, room.RoomCategory)
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", id, current.Status).
			Updates(map[string]any{
				"guest_id":       in.GuestID,
				"room_id":        in.RoomID,
				"check_in_date":  ci,
				"check_out_date": co,
				"total_price":    total,
			})
		if res.Error != nil {
			return dbError("update booking", res.Error)
		}
		if res.RowsAffected == 0 {
			return stateChangedf("booking %d was modified by another user", id)
		}
		return record(ctx, tx, bookingEntity, id, "updated", map[string]any{
			"room":       room.RoomNumber,
			"checkIn":    ci,
			"checkOut":   co,
			"totalPrice": total,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the booking together with its booked services.
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, id).Error; err != nil {
			return dbError("load booking", err)
		}
		if err := tx.Where("booking_id = ?", id).Delete(&models.BookedService{}).Error; err != nil {
			return dbError("delete booked services", err)
		}
		if err := tx.Delete(&models.Booking{}, id).Error; err != nil {
			return dbError("delete booking", err)
		}
		return record(ctx, tx, bookingEntity, id, "deleted", map[string]any{"status": b.Status})
	})
	if err != nil {
		return err
	}
	s.Log.Info().Uint("booking_id", id).Msg("booking deleted")
	return nil
}

// transitionFunc checks preconditions against freshly loaded rows and returns the next
// booking status and room status ("" leaves the room untouched).
type transitionFunc func(b *models.Booking, room *models.Room) (models.BookingStatus, models.RoomStatus, error)

func (s *BookingService) transition(ctx context.Context, id uint, action string, fn transitionFunc) (*models.Booking, error) {
	var from, to models.BookingStatus

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("booking %d not found, it may have been deleted", id)
			}
			return dbError("load booking", err)
		}
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, b.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("room %d of booking %d not found", b.RoomID, id)
			}
			return dbError("load room", err)
		}

		next, roomNext, err := fn(&b, &room)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", b.ID, b.Status).
			Update("status", next)
		if res.Error != nil {
			return dbError("update booking status", res.Error)
		}
		if res.RowsAffected == 0 {
			return stateChangedf("booking %d was modified by another user", b.ID)
		}

		details := map[string]any{"from": b.Status, "to": next}
		if roomNext != "" && roomNext != room.Status {
			res := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", room.ID, room.Status).
				Update("status", roomNext)
			if res.Error != nil {
				return dbError("update room status", res.Error)
			}
			if res.RowsAffected == 0 {
				return stateChangedf("room %s was modified by another user", room.RoomNumber)
			}
			details["room"] = room.RoomNumber
			details["roomFrom"] = room.Status
			details["roomTo"] = roomNext
		}

		from, to = b.Status, next
		return record(ctx, tx, bookingEntity, b.ID, action, details)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(string(to))
	s.Log.Info().Uint("booking_id", id).Str("from", string(from)).Str("to", string(to)).Msg("booking status changed")
	return s.GetByID(ctx, id)
}

// CheckIn moves a Confirmed booking to CheckedIn once its check-in date has come and
// marks a Free or Cleaning room Occupied.
func (s *BookingService) CheckIn(ctx context.Context, id uint) (*models.Booking, error) {
	today := DateOnly(s.now())
	return s.transition(ctx, id, "checked_in", func(b *models.Booking, room *models.Room) (models.BookingStatus, models.RoomStatus, error) {
		if b.Status != models.BookingConfirmed {
			return "", "", stateChangedf("booking %d is %s, only confirmed bookings can be checked in", b.ID, b.Status)
		}
		if DateOnly(b.CheckInDate).After(today) {
			return "", "", notPermittedf("check-in is not possible before %s", b.CheckInDate.Format("2006-01-02"))
		}
		if room.Status != models.RoomFree && room.Status != models.RoomCleaning {
			return "", "", notPermittedf("room %s is not free (status: %s)", room.RoomNumber, room.Status)
		}
		return models.BookingCheckedIn, models.RoomOccupied, nil
	})
}

// CheckOut closes a CheckedIn booking and sends its room to Cleaning.
func (s *BookingService) CheckOut(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, "checked_out", func(b *models.Booking, room *models.Room) (models.BookingStatus, models.RoomStatus, error) {
		if b.Status != models.BookingCheckedIn {
			return "", "", stateChangedf("booking %d is %s, only checked-in bookings can be checked out", b.ID, b.Status)
		}
		return models.BookingCheckedOut, models.RoomCleaning, nil
	})
}

// Cancel cancels a live booking. Cancelling a checked-in booking frees an occupied room for cleaning.
func (s *BookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, "cancelled", func(b *models.Booking, room *models.Room) (models.BookingStatus, models.RoomStatus, error) {
		if b.Status.Terminal() {
			return "", "", notPermittedf("booking %d is already %s", b.ID, b.Status)
		}
		if b.Status == models.BookingCheckedIn && room.Status == models.RoomOccupied {
			return models.BookingCancelled, models.RoomCleaning, nil
		}
		return models.BookingCancelled, "", nil
	})
}

// Bill returns the final invoice: room total plus every booked service.
func (s *BookingService) Bill(ctx context.Context, id uint) (*Bill, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bill := BuildBill(*b)
	return &bill, nil
}

// History lists the audit entries recorded for the booking.
func (s *BookingService) History(ctx context.Context, id uint) ([]models.AuditEntry, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return NewAuditService(s.DB).History(ctx, bookingEntity, id)
}
