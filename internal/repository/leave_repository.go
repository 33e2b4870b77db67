package repository

import (
	"context"

	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

type LeaveFilter struct {
	EmployeeID *uint
	Status     string
	Type       string
	StartDate  string
	EndDate    string
	Page
}

type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	FindByID(ctx context.Context, id uint) (*model.LeaveRequest, error)
	List(ctx context.Context, f LeaveFilter) ([]model.LeaveRequest, int64, error)
	// UpdatePending applies fields only while the request is still pending and
	// reports whether it did.
	UpdatePending(ctx context.Context, id uint, fields map[string]any) (bool, error)
	// HardDelete removes the row permanently.
	HardDelete(ctx context.Context, id uint) (bool, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return storeError(r.db.WithContext(ctx).Create(leave).Error, "leave request", "leave_requests: create failed")
}

func (r *leaveRepository) FindByID(ctx context.Context, id uint) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	if err := r.db.WithContext(ctx).Preload("Employee", func(db *gorm.DB) *gorm.DB {
		// The owner may have been soft-deleted since submitting.
		return db.Unscoped()
	}).First(&leave, id).Error; err != nil {
		return nil, storeError(err, "leave request", "leave_requests: find failed")
	}
	return &leave, nil
}

func (r *leaveRepository) List(ctx context.Context, f LeaveFilter) ([]model.LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	// Date filters select requests overlapping the window.
	if f.StartDate != "" {
		q = q.Where("end_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("start_date <= ?", f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, "leave request", "leave_requests: count failed")
	}
	var list []model.LeaveRequest
	err := f.Page.apply(q).
		Preload("Employee").
		Order("created_at desc").Order("id desc").
		Find(&list).Error
	if err != nil {
		return nil, 0, storeError(err, "leave request", "leave_requests: list failed")
	}
	return list, total, nil
}

func (r *leaveRepository) UpdatePending(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).
		Where("id = ? AND status = ?", id, model.LeavePending).
		Updates(fields)
	if res.Error != nil {
		return false, storeError(res.Error, "leave request", "leave_requests: update failed")
	}
	return res.RowsAffected == 1, nil
}

func (r *leaveRepository) HardDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Delete(&model.LeaveRequest{}, id)
	if res.Error != nil {
		return false, storeError(res.Error, "leave request", "leave_requests: delete failed")
	}
	return res.RowsAffected == 1, nil
}
