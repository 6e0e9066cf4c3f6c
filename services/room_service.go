package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-desk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) prepare(tx *gorm.DB, room *models.Room, selfID uint) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.Status == "" {
		room.Status = models.RoomFree
	}
	if err := validateStruct(room); err != nil {
		return err
	}
	if !room.Status.Valid() {
		return validationf("unknown room status %q", room.Status)
	}

	var n int64
	if err := tx.Model(&models.RoomCategory{}).Where("id = ?", room.RoomCategoryID).Count(&n).Error; err != nil {
		return dbError("load room category", err)
	}
	if n == 0 {
		return validationf("room category %d does not exist", room.RoomCategoryID)
	}

	if err := tx.Model(&models.Room{}).
		Where("room_number = ? AND id <> ?", room.RoomNumber, selfID).
		Count(&n).Error; err != nil {
		return dbError("check room number", err)
	}
	if n > 0 {
		return &DomainError{Kind: ErrConflict, Reason: fmt.Sprintf("room number %s already exists", room.RoomNumber)}
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	room.ID = 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.prepare(tx, room, 0); err != nil {
			return err
		}
		return dbError("create room", tx.Omit(clause.Associations).Create(room).Error)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, room.ID)
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomCategory").First(&room, id).Error; err != nil {
		return nil, dbError("load room", err)
	}
	return &room, nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.WithContext(ctx).Preload("RoomCategory").Order("room_number ASC").Find(&rooms).Error
	return rooms, dbError("list rooms", err)
}

func (s *RoomService) Update(ctx context.Context, id uint, room *models.Room) (*models.Room, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Room{}, id).Error; err != nil {
			return dbError("load room", err)
		}
		if err := s.prepare(tx, room, id); err != nil {
			return err
		}
		return dbError("update room", tx.Model(&models.Room{ID: id}).
			Select("room_number", "floor", "status", "room_category_id").
			Updates(room).Error)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// UpdateStatus sets the housekeeping status directly, e.g. Cleaning -> Free.
func (s *RoomService) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) (*models.Room, error) {
	if !status.Valid() {
		return nil, validationf("unknown room status %q", status)
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			return dbError("load room", err)
		}
		if room.Status == status {
			return nil
		}
		if err := tx.Model(&room).Update("status", status).Error; err != nil {
			return dbError("update room status", err)
		}
		return record(ctx, tx, "room", id, "status_changed", map[string]any{"from": room.Status, "to": status})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete refuses to remove a room that any booking references.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("room %d not found", id)
			}
			return dbError("load room", err)
		}
		var bookings int64
		if err := tx.Model(&models.Booking{}).Where("room_id = ?", id).Count(&bookings).Error; err != nil {
			return dbError("count bookings", err)
		}
		if bookings > 0 {
			return notPermittedf("room %s cannot be deleted while it has bookings", room.RoomNumber)
		}
		return dbError("delete room", tx.Delete(&models.Room{}, id).Error)
	})
}
