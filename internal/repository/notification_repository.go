package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

// Recipient identifies whose notifications a query sees.
type Recipient struct {
	UserID uint
	Role   model.Role
}

// visible matches rows addressed to the user, to the user's role, or to everyone.
func (rc Recipient) visible(q *gorm.DB) *gorm.DB {
	return q.Where("(user_id = ? OR role = ? OR (user_id IS NULL AND role IS NULL))", rc.UserID, rc.Role)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, rc Recipient, unreadOnly bool, page Page) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, rc Recipient) (int64, error)
	// MarkRead flips one visible notification. It reports false when the
	// notification does not exist or is not visible to rc.
	MarkRead(ctx context.Context, id uint, rc Recipient, at time.Time) (bool, error)
	// MarkAllRead flips every unread row addressed to the user and, when
	// includeRole is set, every unread row addressed to the user's role.
	MarkAllRead(ctx context.Context, rc Recipient, includeRole bool, at time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return storeError(r.db.WithContext(ctx).Create(n).Error, "notification", "notifications: create failed")
}

func (r *notificationRepository) List(ctx context.Context, rc Recipient, unreadOnly bool, page Page) ([]model.Notification, int64, error) {
	q := rc.visible(r.db.WithContext(ctx).Model(&model.Notification{}))
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, "notification", "notifications: count failed")
	}
	var list []model.Notification
	if err := page.apply(q).Order("created_at desc").Order("id desc").Find(&list).Error; err != nil {
		return nil, 0, storeError(err, "notification", "notifications: list failed")
	}
	return list, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, rc Recipient) (int64, error) {
	var total int64
	err := rc.visible(r.db.WithContext(ctx).Model(&model.Notification{})).
		Where("is_read = ?", false).
		Count(&total).Error
	return total, storeError(err, "notification", "notifications: count unread failed")
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint, rc Recipient, at time.Time) (bool, error) {
	var n model.Notification
	err := rc.visible(r.db.WithContext(ctx).Where("id = ?", id)).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(err, "notification", "notifications: find failed")
	}
	if n.Read {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&n).Updates(map[string]any{"is_read": true, "read_at": at}).Error
	if err != nil {
		return false, storeError(err, "notification", "notifications: mark read failed")
	}
	return true, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, rc Recipient, includeRole bool, at time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Notification{}).Where("is_read = ?", false)
	if includeRole {
		q = q.Where("(user_id = ? OR role = ?)", rc.UserID, rc.Role)
	} else {
		q = q.Where("user_id = ?", rc.UserID)
	}
	res := q.Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return 0, storeError(res.Error, "notification", "notifications: mark all read failed")
	}
	return res.RowsAffected, nil
}
