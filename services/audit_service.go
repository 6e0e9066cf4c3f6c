package services

import (
	"context"
	"encoding/json"
	"fmt"

	"hotel-desk/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type actorKey struct{}

// WithActor tags ctx with the username that audit entries are attributed to.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

func actorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return "system"
}

type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// record writes one entry using tx, so it commits or rolls back with the change it describes.
func record(ctx context.Context, tx *gorm.DB, entity string, id uint, action string, details map[string]any) error {
	entry := models.AuditEntry{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Actor:    actorFrom(ctx),
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	return tx.Create(&entry).Error
}

// History lists the entries for one entity, oldest first.
func (s *AuditService) History(ctx context.Context, entity string, id uint) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.DB.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, id).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, dbError("list audit entries", err)
}
