package model

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification targets one user, one role, or everybody when both are nil.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      *uint            `json:"user_id" gorm:"index"`
	Role        *Role            `json:"role" gorm:"size:20;index"`
	Title       string           `json:"title" gorm:"size:191;not null"`
	Message     string           `json:"message" gorm:"type:text"`
	Type        NotificationType `json:"type" gorm:"size:20;not null;default:info"`
	Category    string           `json:"category" gorm:"size:50;index"`
	SenderID    *uint            `json:"sender_id"`
	RelatedID   *uint            `json:"related_id"`
	RelatedType string           `json:"related_type" gorm:"size:50"`
	Read        bool             `json:"read" gorm:"column:is_read;default:false;index"`
	ReadAt      *time.Time       `json:"read_at"`
	CreatedAt   time.Time        `json:"created_at"`
}
