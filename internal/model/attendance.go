package model

import (
	"time"

	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent  AttendanceStatus = "present"
	AttendanceLate     AttendanceStatus = "late"
	AttendanceHalfDay  AttendanceStatus = "half_day"
	AttendanceAbsent   AttendanceStatus = "absent"
	AttendanceOvertime AttendanceStatus = "overtime"
)

// AttendanceRecord is one employee's session for one calendar day.
// (employee_id, date) is unique at the storage level.
type AttendanceRecord struct {
	gorm.Model
	EmployeeID uint             `json:"employee_id" gorm:"not null;uniqueIndex:idx_attendance_employee_date,priority:1"`
	Date       string           `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_employee_date,priority:2;index"` // YYYY-MM-DD
	ClockIn    *time.Time       `json:"clock_in"`
	ClockOut   *time.Time       `json:"clock_out"`
	TotalHours float64          `json:"total_hours" gorm:"not null;default:0"`
	Status     AttendanceStatus `json:"status" gorm:"size:20;not null;default:present"`
	Location   string           `json:"location" gorm:"size:191"`
	Device     string           `json:"device" gorm:"size:255"`
	IPAddress  string           `json:"ip_address" gorm:"size:64"`
	Notes      string           `json:"notes"`
	// Flagged marks a clock-out whose raw duration was negative and got clamped.
	Flagged bool `json:"flagged" gorm:"default:false"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// Session states reported by the status endpoint.
const (
	SessionNotClockedIn = "not_clocked_in"
	SessionClockedIn    = "clocked_in"
	SessionClockedOut   = "clocked_out"
)

// SessionState derives the session state from a (possibly nil) record.
func (a *AttendanceRecord) SessionState() string {
	switch {
	case a == nil || a.ClockIn == nil:
		return SessionNotClockedIn
	case a.ClockOut == nil:
		return SessionClockedIn
	default:
		return SessionClockedOut
	}
}
