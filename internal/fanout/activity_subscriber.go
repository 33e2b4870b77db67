package fanout

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

// ActivitySubscriber appends one audit entry per event.
type ActivitySubscriber struct {
	repo repository.ActivityRepository
}

func NewActivitySubscriber(repo repository.ActivityRepository) *ActivitySubscriber {
	return &ActivitySubscriber{repo: repo}
}

func (s *ActivitySubscriber) Handle(ctx context.Context, ev Event) error {
	entry := &model.ActivityLog{
		Action:    string(ev.Kind),
		Category:  ev.Kind.Category(),
		Metadata:  datatypes.JSONMap{"event_id": ev.ID},
		CreatedAt: ev.At,
	}
	if ev.Actor != nil {
		uid := ev.Actor.UserID
		entry.UserID = &uid
		entry.Username = ev.Actor.Username
		entry.IPAddress = ev.Actor.IP
		entry.UserAgent = ev.Actor.UserAgent
		entry.Metadata["role"] = string(ev.Actor.Role)
	}
	if ev.Previous != "" {
		entry.Metadata["previous_status"] = ev.Previous
	}

	describe(ev, entry)

	if err := s.repo.Create(ctx, entry); err != nil {
		return errors.Wrapf(err, "log activity %s", ev.Kind)
	}
	return nil
}

func describe(ev Event, e *model.ActivityLog) {
	who := "system"
	if ev.Actor != nil && ev.Actor.Username != "" {
		who = ev.Actor.Username
	}

	switch {
	case ev.Leave != nil:
		l := ev.Leave
		relate(e, "leave_request", l.ID)
		e.Metadata["employee_id"] = l.EmployeeID
		e.Metadata["type"] = string(l.Type)
		e.Metadata["status"] = string(l.Status)
		e.Metadata["days"] = l.Days
		e.Description = fmt.Sprintf("%s %s leave request #%d (%s to %s)", who, leaveVerb(ev.Kind), l.ID, l.StartDate, l.EndDate)

	case ev.Task != nil:
		t := ev.Task
		relate(e, "task", t.ID)
		e.Metadata["assigned_to"] = t.AssignedTo
		e.Metadata["status"] = string(t.Status)
		e.Metadata["priority"] = string(t.Priority)
		e.Description = fmt.Sprintf("%s %s task #%d: %s", who, taskVerb(ev.Kind), t.ID, t.Title)

	case ev.Attendance != nil:
		a := ev.Attendance
		relate(e, "attendance", a.ID)
		e.Metadata["employee_id"] = a.EmployeeID
		e.Metadata["date"] = a.Date
		e.Metadata["status"] = string(a.Status)
		switch ev.Kind {
		case AttendanceClockIn:
			e.Description = fmt.Sprintf("%s clocked in on %s (%s)", who, a.Date, a.Status)
			if a.Location != "" {
				e.Metadata["location"] = a.Location
			}
		case AttendanceClockOut:
			e.Description = fmt.Sprintf("%s clocked out on %s after %.2f hours", who, a.Date, a.TotalHours)
			e.Metadata["total_hours"] = a.TotalHours
			if a.Flagged {
				e.Metadata["flagged"] = true
			}
		default:
			e.Description = fmt.Sprintf("%s marked employee #%d absent on %s", who, a.EmployeeID, a.Date)
		}

	case ev.Employee != nil:
		emp := ev.Employee
		relate(e, "employee", emp.ID)
		e.Metadata["employee_code"] = emp.EmployeeCode
		e.Description = fmt.Sprintf("%s %s employee %s (%s)", who, employeeVerb(ev.Kind), emp.Name, emp.EmployeeCode)

	default:
		switch ev.Kind {
		case AuthLogin:
			e.Description = who + " logged in"
		case AuthPasswordChanged:
			e.Description = who + " changed their password"
		default:
			e.Description = fmt.Sprintf("%s triggered %s", who, ev.Kind)
		}
		if ev.Actor != nil {
			relate(e, "user", ev.Actor.UserID)
		}
	}
}

func relate(e *model.ActivityLog, typ string, id uint) {
	e.RelatedType = typ
	if id != 0 {
		rid := id
		e.RelatedID = &rid
	}
}

func leaveVerb(k Kind) string {
	switch k {
	case LeaveSubmitted:
		return "submitted"
	case LeaveUpdated:
		return "updated"
	case LeaveApproved:
		return "approved"
	case LeaveRejected:
		return "rejected"
	case LeaveCancelled:
		return "cancelled"
	case LeaveDeleted:
		return "deleted"
	}
	return "changed"
}

func taskVerb(k Kind) string {
	switch k {
	case TaskAssigned:
		return "assigned"
	case TaskUpdated:
		return "updated"
	case TaskStatusChanged:
		return "changed the status of"
	case TaskCompleted:
		return "completed"
	case TaskDeleted:
		return "deleted"
	}
	return "changed"
}

func employeeVerb(k Kind) string {
	switch k {
	case EmployeeCreated:
		return "created"
	case EmployeeUpdated:
		return "updated"
	case EmployeeDeleted:
		return "deleted"
	}
	return "changed"
}
