package model

import (
	"time"

	"gorm.io/gorm"
)

type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
	LeaveCasual LeaveType = "casual"
	LeaveOther  LeaveType = "other"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveUnpaid, LeaveCasual, LeaveOther:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveApproved || s == LeaveRejected || s == LeaveCancelled
}

func (s LeaveStatus) Valid() bool {
	return s == LeavePending || s.Terminal()
}

type LeaveRequest struct {
	gorm.Model
	EmployeeID uint        `json:"employee_id" gorm:"not null;index"`
	Type       LeaveType   `json:"type" gorm:"size:20;not null"`
	StartDate  string      `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate    string      `json:"end_date" gorm:"size:10;not null"`
	Days       int         `json:"days" gorm:"not null"`
	Reason     string      `json:"reason" gorm:"type:text"`
	Status     LeaveStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	ReviewedBy *uint       `json:"reviewed_by"`
	ReviewedAt *time.Time  `json:"reviewed_at"`
	Comments   string      `json:"comments" gorm:"type:text"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
