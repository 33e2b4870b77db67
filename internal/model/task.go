package model

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	gorm.Model
	Title       string       `json:"title" gorm:"size:191;not null"`
	Description string       `json:"description" gorm:"type:text"`
	AssignedTo  uint         `json:"assigned_to" gorm:"not null;index"` // employee id
	AssignedBy  uint         `json:"assigned_by" gorm:"not null"`       // user id
	Priority    TaskPriority `json:"priority" gorm:"size:20;not null;default:medium"`
	Status      TaskStatus   `json:"status" gorm:"size:20;not null;default:pending;index"`
	DueDate     *string      `json:"due_date" gorm:"size:10"`
	CompletedAt *time.Time   `json:"completed_at"`

	Assignee *Employee `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
}
