package repository

import (
	"context"

	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

type TaskFilter struct {
	AssignedTo *uint
	Status     string
	Priority   string
	Page
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context, f TaskFilter) ([]model.Task, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return storeError(r.db.WithContext(ctx).Create(task).Error, "task", "tasks: create failed")
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Assignee").First(&task, id).Error; err != nil {
		return nil, storeError(err, "task", "tasks: find failed")
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, f TaskFilter) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, "task", "tasks: count failed")
	}
	var list []model.Task
	if err := f.Page.apply(q).Preload("Assignee").Order("created_at desc").Find(&list).Error; err != nil {
		return nil, 0, storeError(err, "task", "tasks: list failed")
	}
	return list, total, nil
}

func (r *taskRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return storeError(res.Error, "task", "tasks: update failed")
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound("task not found")
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return storeError(res.Error, "task", "tasks: delete failed")
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound("task not found")
	}
	return nil
}
