package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntry records a state change made through the API.
type AuditEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Entity    string         `gorm:"size:64;index:idx_audit_entity" json:"entity"`
	EntityID  uint           `gorm:"index:idx_audit_entity" json:"entityId"`
	Action    string         `gorm:"size:64" json:"action"`
	Actor     string         `gorm:"size:100" json:"actor"`
	Details   datatypes.JSON `json:"details,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}
