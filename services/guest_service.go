package services

import (
	"context"
	"strings"

	"hotel-desk/models"

	"github.com/fiam/gounidecode/unidecode"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func trimGuest(g *models.Guest) {
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	g.PhoneNumber = strings.TrimSpace(g.PhoneNumber)
	g.Email = strings.TrimSpace(g.Email)
}

func (s *GuestService) Create(ctx context.Context, g *models.Guest) error {
	trimGuest(g)
	if err := validateStruct(g); err != nil {
		return err
	}
	g.ID = 0
	return dbError("create guest", s.DB.WithContext(ctx).Omit(clause.Associations).Create(g).Error)
}

func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var g models.Guest
	if err := s.DB.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, dbError("load guest", err)
	}
	return &g, nil
}

func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&guests).Error
	return guests, dbError("list guests", err)
}

// fold lowercases s and transliterates it to ASCII, so "alisa" matches "Алиса".
func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// Search matches term against first, last and full name, ignoring case and script.
// An empty term returns every guest.
func (s *GuestService) Search(ctx context.Context, term string) ([]models.Guest, error) {
	guests, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return guests, nil
	}

	needle := fold(term)
	rawNeedle := strings.ToLower(term)
	out := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		full := g.FullName()
		if strings.Contains(strings.ToLower(full), rawNeedle) ||
			strings.Contains(fold(g.FirstName), needle) ||
			strings.Contains(fold(g.LastName), needle) ||
			strings.Contains(fold(full), needle) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *GuestService) Update(ctx context.Context, id uint, g *models.Guest) (*models.Guest, error) {
	trimGuest(g)
	if err := validateStruct(g); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Model(&models.Guest{ID: id}).
		Select("first_name", "last_name", "phone_number", "email").
		Updates(g).Error
	if err != nil {
		return nil, dbError("update guest", err)
	}
	return s.GetByID(ctx, id)
}

// Delete refuses to remove a guest who has bookings.
func (s *GuestService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.Guest
		if err := tx.First(&g, id).Error; err != nil {
			return dbError("load guest", err)
		}
		var bookings int64
		if err := tx.Model(&models.Booking{}).Where("guest_id = ?", id).Count(&bookings).Error; err != nil {
			return dbError("count bookings", err)
		}
		if bookings > 0 {
			return notPermittedf("guest %s cannot be deleted while they have bookings", g.FullName())
		}
		return dbError("delete guest", tx.Delete(&models.Guest{}, id).Error)
	})
}
