package fanout

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/model"
)

// Kind names a workflow transition.
type Kind string

const (
	AttendanceClockIn      Kind = "attendance.clock_in"
	AttendanceClockOut     Kind = "attendance.clock_out"
	AttendanceMarkedAbsent Kind = "attendance.marked_absent"

	LeaveSubmitted Kind = "leave.submitted"
	LeaveUpdated   Kind = "leave.updated"
	LeaveApproved  Kind = "leave.approved"
	LeaveRejected  Kind = "leave.rejected"
	LeaveCancelled Kind = "leave.cancelled"
	LeaveDeleted   Kind = "leave.deleted"

	TaskAssigned      Kind = "task.assigned"
	TaskUpdated       Kind = "task.updated"
	TaskStatusChanged Kind = "task.status_changed"
	TaskCompleted     Kind = "task.completed"
	TaskDeleted       Kind = "task.deleted"

	EmployeeCreated Kind = "employee.created"
	EmployeeUpdated Kind = "employee.updated"
	EmployeeDeleted Kind = "employee.deleted"

	AuthLogin           Kind = "auth.login"
	AuthPasswordChanged Kind = "auth.password_changed"
)

// Category groups kinds for notifications and the audit log.
func (k Kind) Category() string {
	category, _, _ := strings.Cut(string(k), ".")
	return category
}

// Event is published after a mutation commits. Only the fields relevant to
// Kind are set. Employee is the employee owning the affected record.
type Event struct {
	ID         string
	Kind       Kind
	At         time.Time
	Actor      *access.Caller
	Employee   *model.Employee
	Leave      *model.LeaveRequest
	Task       *model.Task
	Attendance *model.AttendanceRecord
	// Previous holds the status before the transition, when there is one.
	Previous string
}

// NewEvent stamps a fresh id on an event of kind k.
func NewEvent(k Kind, actor *access.Caller, at time.Time) Event {
	return Event{ID: uuid.NewString(), Kind: k, At: at, Actor: actor}
}
