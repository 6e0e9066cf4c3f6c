package services

import (
	"context"
	"strings"

	"hotel-desk/models"

	"gorm.io/gorm"
)

// ServiceCatalog manages the extras (models.Service) that can be booked.
type ServiceCatalog struct {
	DB *gorm.DB
}

func NewServiceCatalog(db *gorm.DB) *ServiceCatalog {
	return &ServiceCatalog{DB: db}
}

func (s *ServiceCatalog) Create(ctx context.Context, svc *models.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validateStruct(svc); err != nil {
		return err
	}
	svc.ID = 0
	return dbError("create service", s.DB.WithContext(ctx).Create(svc).Error)
}

func (s *ServiceCatalog) GetByID(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := s.DB.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, dbError("load service", err)
	}
	return &svc, nil
}

func (s *ServiceCatalog) List(ctx context.Context) ([]models.Service, error) {
	var list []models.Service
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, dbError("list services", err)
}

func (s *ServiceCatalog) Update(ctx context.Context, id uint, svc *models.Service) (*models.Service, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validateStruct(svc); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Model(&models.Service{ID: id}).
		Select("name", "description", "price").
		Updates(svc).Error
	if err != nil {
		return nil, dbError("update service", err)
	}
	return s.GetByID(ctx, id)
}

// Delete refuses to remove a service that has been booked.
func (s *ServiceCatalog) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, id).Error; err != nil {
			return dbError("load service", err)
		}
		var booked int64
		if err := tx.Model(&models.BookedService{}).Where("service_id = ?", id).Count(&booked).Error; err != nil {
			return dbError("count booked services", err)
		}
		if booked > 0 {
			return notPermittedf("service %q cannot be deleted because it has been ordered", svc.Name)
		}
		return dbError("delete service", tx.Delete(&models.Service{}, id).Error)
	})
}
