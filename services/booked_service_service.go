package services

import (
	"context"
	"errors"
	"time"

	"hotel-desk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookedServiceInput struct {
	ServiceID    uint
	Quantity     int
	DateProvided time.Time
}

type BookedServiceService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewBookedServiceService(db *gorm.DB) *BookedServiceService {
	return &BookedServiceService{DB: db, now: time.Now}
}

func (s *BookedServiceService) normalize(tx *gorm.DB, in *BookedServiceInput) error {
	if in.ServiceID == 0 {
		return validationf("a service must be selected")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return validationf("quantity must be positive")
	}
	if in.DateProvided.IsZero() {
		in.DateProvided = s.now()
	}
	in.DateProvided = normTime(in.DateProvided)

	var n int64
	if err := tx.Model(&models.Service{}).Where("id = ?", in.ServiceID).Count(&n).Error; err != nil {
		return dbError("load service", err)
	}
	if n == 0 {
		return validationf("service %d does not exist", in.ServiceID)
	}
	return nil
}

// liveBooking rejects changes to the services of a missing or cancelled booking.
func liveBooking(tx *gorm.DB, bookingID uint) error {
	var b models.Booking
	if err := tx.First(&b, bookingID).Error; err != nil {
		return dbError("load booking", err)
	}
	if b.Status == models.BookingCancelled {
		return notPermittedf("booking %d is cancelled", bookingID)
	}
	return nil
}

// Add orders a service for a booking. Cancelled bookings take no new services.
func (s *BookedServiceService) Add(ctx context.Context, bookingID uint, in BookedServiceInput) (*models.BookedService, error) {
	var bs models.BookedService
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := liveBooking(tx, bookingID); err != nil {
			return err
		}
		if err := s.normalize(tx, &in); err != nil {
			return err
		}
		bs = models.BookedService{
			BookingID:    bookingID,
			ServiceID:    in.ServiceID,
			Quantity:     in.Quantity,
			DateProvided: in.DateProvided,
		}
		if err := tx.Omit(clause.Associations).Create(&bs).Error; err != nil {
			return dbError("create booked service", err)
		}
		return record(ctx, tx, bookingEntity, bookingID, "service_added", map[string]any{
			"serviceId": in.ServiceID,
			"quantity":  in.Quantity,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, bs.ID)
}

func (s *BookedServiceService) GetByID(ctx context.Context, id uint) (*models.BookedService, error) {
	var bs models.BookedService
	if err := s.DB.WithContext(ctx).Preload("Service").First(&bs, id).Error; err != nil {
		return nil, dbError("load booked service", err)
	}
	return &bs, nil
}

func (s *BookedServiceService) ListByBooking(ctx context.Context, bookingID uint) ([]models.BookedService, error) {
	db := s.DB.WithContext(ctx)
	if err := db.First(&models.Booking{}, bookingID).Error; err != nil {
		return nil, dbError("load booking", err)
	}
	var list []models.BookedService
	err := db.Preload("Service").
		Where("booking_id = ?", bookingID).
		Order("date_provided ASC, id ASC").
		Find(&list).Error
	return list, dbError("list booked services", err)
}

func (s *BookedServiceService) Update(ctx context.Context, id uint, in BookedServiceInput) (*models.BookedService, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.BookedService
		if err := tx.First(&current, id).Error; err != nil {
			return dbError("load booked service", err)
		}
		if err := liveBooking(tx, current.BookingID); err != nil {
			return err
		}
		if err := s.normalize(tx, &in); err != nil {
			return err
		}
		return dbError("update booked service", tx.Model(&current).
			Select("service_id", "quantity", "date_provided").
			Updates(models.BookedService{
				ServiceID:    in.ServiceID,
				Quantity:     in.Quantity,
				DateProvided: in.DateProvided,
			}).Error)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *BookedServiceService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bs models.BookedService
		if err := tx.First(&bs, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("booked service %d not found", id)
			}
			return dbError("load booked service", err)
		}
		if err := liveBooking(tx, bs.BookingID); err != nil {
			return err
		}
		if err := tx.Delete(&models.BookedService{}, id).Error; err != nil {
			return dbError("delete booked service", err)
		}
		return record(ctx, tx, bookingEntity, bs.BookingID, "service_removed", map[string]any{
			"serviceId": bs.ServiceID,
			"quantity":  bs.Quantity,
		})
	})
}
