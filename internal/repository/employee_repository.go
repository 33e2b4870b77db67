package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

type EmployeeFilter struct {
	Search     string
	Department string
	Page
}

type EmployeeRepository interface {
	// CreateWithUser inserts the login account and the employee in one transaction.
	CreateWithUser(ctx context.Context, user *model.User, employee *model.Employee) error
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Employee, error)
	List(ctx context.Context, f EmployeeFilter) ([]model.Employee, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	// Delete removes the employee together with its login account.
	Delete(ctx context.Context, id uint) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) CreateWithUser(ctx context.Context, user *model.User, employee *model.Employee) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		employee.UserID = &user.ID
		return tx.Create(employee).Error
	})
	return storeError(err, "employee", "employees: create failed")
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var emp model.Employee
	if err := r.db.WithContext(ctx).Preload("User").First(&emp, id).Error; err != nil {
		return nil, storeError(err, "employee", "employees: find failed")
	}
	return &emp, nil
}

func (r *employeeRepository) FindByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	var emp model.Employee
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&emp).Error; err != nil {
		return nil, storeError(err, "employee", "employees: find by user failed")
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, f EmployeeFilter) ([]model.Employee, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Employee{})
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(employee_code) LIKE ? OR LOWER(department) LIKE ?", like, like, like)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, "employee", "employees: count failed")
	}
	var list []model.Employee
	if err := f.Page.apply(q).Preload("User").Order("name asc").Find(&list).Error; err != nil {
		return nil, 0, storeError(err, "employee", "employees: list failed")
	}
	return list, total, nil
}

func (r *employeeRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return storeError(res.Error, "employee", "employees: update failed")
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound("employee not found")
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp model.Employee
		if err := tx.First(&emp, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&emp).Error; err != nil {
			return err
		}
		if emp.UserID != nil {
			return tx.Delete(&model.User{}, *emp.UserID).Error
		}
		return nil
	})
	return storeError(err, "employee", "employees: delete failed")
}
