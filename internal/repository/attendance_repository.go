package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

type AttendanceFilter struct {
	EmployeeID *uint
	StartDate  string
	EndDate    string
	Status     string
	Page
}

type AttendanceRepository interface {
	// Create inserts a new record. A second record for the same (employee, date)
	// fails with ErrConflict.
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	// FindForDay returns nil, nil when the employee has no record on date.
	FindForDay(ctx context.Context, employeeID uint, date string) (*model.AttendanceRecord, error)
	FindByID(ctx context.Context, id uint) (*model.AttendanceRecord, error)
	// FillClockIn stamps a placeholder row that has no clock-in yet.
	// It reports false when another request got there first.
	FillClockIn(ctx context.Context, id uint, fields map[string]any) (bool, error)
	// CloseSession stamps clock-out on a row that is still open.
	CloseSession(ctx context.Context, id uint, fields map[string]any) (bool, error)
	List(ctx context.Context, f AttendanceFilter) ([]model.AttendanceRecord, int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	return storeError(r.db.WithContext(ctx).Create(rec).Error, "attendance", "attendance: create failed")
}

func (r *attendanceRepository) FindForDay(ctx context.Context, employeeID uint, date string) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := r.db.WithContext(ctx).Where("employee_id = ? AND date = ?", employeeID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, "attendance", "attendance: find for day failed")
	}
	return &rec, nil
}

func (r *attendanceRepository) FindByID(ctx context.Context, id uint) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, storeError(err, "attendance record", "attendance: find failed")
	}
	return &rec, nil
}

func (r *attendanceRepository) FillClockIn(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("id = ? AND clock_in IS NULL", id).
		Updates(fields)
	if res.Error != nil {
		return false, storeError(res.Error, "attendance", "attendance: clock-in update failed")
	}
	return res.RowsAffected == 1, nil
}

func (r *attendanceRepository) CloseSession(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("id = ? AND clock_in IS NOT NULL AND clock_out IS NULL", id).
		Updates(fields)
	if res.Error != nil {
		return false, storeError(res.Error, "attendance", "attendance: clock-out update failed")
	}
	return res.RowsAffected == 1, nil
}

func (r *attendanceRepository) List(ctx context.Context, f AttendanceFilter) ([]model.AttendanceRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceRecord{})
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, "attendance", "attendance: count failed")
	}
	var list []model.AttendanceRecord
	err := f.Page.apply(q).
		Preload("Employee").
		Order("date desc").Order("clock_in desc").
		Find(&list).Error
	if err != nil {
		return nil, 0, storeError(err, "attendance", "attendance: list failed")
	}
	return list, total, nil
}
