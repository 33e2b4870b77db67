package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit entry.
type ActivityLog struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	UserID      *uint             `json:"user_id" gorm:"index"`
	Username    string            `json:"username" gorm:"size:100"`
	Action      string            `json:"action" gorm:"size:64;not null"`
	Description string            `json:"description" gorm:"type:text"`
	Category    string            `json:"category" gorm:"size:50;index"`
	RelatedID   *uint             `json:"related_id"`
	RelatedType string            `json:"related_type" gorm:"size:50"`
	IPAddress   string            `json:"ip_address" gorm:"size:64"`
	UserAgent   string            `json:"user_agent" gorm:"size:255"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at" gorm:"index"`
}
