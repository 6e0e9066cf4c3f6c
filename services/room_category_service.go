package services

import (
	"context"
	"strings"

	"hotel-desk/models"

	"gorm.io/gorm"
)

type RoomCategoryService struct {
	DB *gorm.DB
}

func NewRoomCategoryService(db *gorm.DB) *RoomCategoryService {
	return &RoomCategoryService{DB: db}
}

func (s *RoomCategoryService) Create(ctx context.Context, c *models.RoomCategory) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := validateStruct(c); err != nil {
		return err
	}
	c.ID = 0
	return dbError("create room category", s.DB.WithContext(ctx).Create(c).Error)
}

func (s *RoomCategoryService) GetByID(ctx context.Context, id uint) (*models.RoomCategory, error) {
	var c models.RoomCategory
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, dbError("load room category", err)
	}
	return &c, nil
}

func (s *RoomCategoryService) List(ctx context.Context) ([]models.RoomCategory, error) {
	var categories []models.RoomCategory
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, dbError("list room categories", err)
}

func (s *RoomCategoryService) Update(ctx context.Context, id uint, c *models.RoomCategory) (*models.RoomCategory, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := validateStruct(c); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	err := db.Model(&models.RoomCategory{ID: id}).
		Select("name", "description", "capacity", "base_price_per_night").
		Updates(c).Error
	if err != nil {
		return nil, dbError("update room category", err)
	}
	return s.GetByID(ctx, id)
}

// Delete refuses to remove a category that rooms still reference.
func (s *RoomCategoryService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.RoomCategory
		if err := tx.First(&c, id).Error; err != nil {
			return dbError("load room category", err)
		}
		var rooms int64
		if err := tx.Model(&models.Room{}).Where("room_category_id = ?", id).Count(&rooms).Error; err != nil {
			return dbError("count rooms", err)
		}
		if rooms > 0 {
			return notPermittedf("category %q cannot be deleted while %d room(s) use it", c.Name, rooms)
		}
		return dbError("delete room category", tx.Delete(&models.RoomCategory{}, id).Error)
	})
}
