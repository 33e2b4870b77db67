package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

type ActivityFilter struct {
	UserID    *uint
	Category  string
	Action    string
	Since     *time.Time
	Until     *time.Time
	Page
}

type ActivityRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, f ActivityFilter) ([]model.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db}
}

func (r *activityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	return storeError(r.db.WithContext(ctx).Create(entry).Error, "activity log", "activity_logs: create failed")
}

func (r *activityRepository) List(ctx context.Context, f ActivityFilter) ([]model.ActivityLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	if f.Until != nil {
		q = q.Where("created_at < ?", *f.Until)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, "activity log", "activity_logs: count failed")
	}
	var list []model.ActivityLog
	if err := f.Page.apply(q).Order("created_at desc").Order("id desc").Find(&list).Error; err != nil {
		return nil, 0, storeError(err, "activity log", "activity_logs: list failed")
	}
	return list, total, nil
}
