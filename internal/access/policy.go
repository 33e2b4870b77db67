package access

import (
	"employee-management-backend/internal/model"
)

// Caller is the authenticated principal of a request.
type Caller struct {
	UserID     uint
	Username   string
	Role       model.Role
	EmployeeID *uint
	IP         string
	UserAgent  string
}

// OwnsEmployee reports whether the caller's linked employee record is id.
func (c *Caller) OwnsEmployee(id uint) bool {
	return c != nil && c.EmployeeID != nil && *c.EmployeeID == id
}

type Action string

const (
	AttendanceClock      Action = "attendance.clock"
	AttendanceView       Action = "attendance.view"
	AttendanceMarkAbsent Action = "attendance.mark_absent"

	LeaveSubmit Action = "leave.submit"
	LeaveUpdate Action = "leave.update"
	LeaveView   Action = "leave.view"
	LeaveReview Action = "leave.review"
	LeaveCancel Action = "leave.cancel"
	LeaveDelete Action = "leave.delete"

	TaskManage Action = "task.manage"
	TaskView   Action = "task.view"
	TaskStatus Action = "task.status"

	EmployeeManage Action = "employee.manage"
	EmployeeView   Action = "employee.view"
	EmployeeUpdate Action = "employee.update"

	NotificationRead Action = "notification.read"
	ActivityView     Action = "activity.view"
)

// Scope is how far a role reaches for one action.
type Scope int

const (
	ScopeNone Scope = iota
	// ScopeSelf limits the action to records owned by the caller's employee.
	ScopeSelf
	ScopeAny
)

type rule map[model.Role]Scope

var (
	adminOnly   = rule{model.RoleAdmin: ScopeAny, model.RoleHR: ScopeAny}
	adminOrSelf = rule{model.RoleAdmin: ScopeAny, model.RoleHR: ScopeAny, model.RoleEmployee: ScopeSelf}
	selfOnly    = rule{model.RoleAdmin: ScopeSelf, model.RoleHR: ScopeSelf, model.RoleEmployee: ScopeSelf}
)

var defaultRules = map[Action]rule{
	AttendanceClock:      selfOnly,
	AttendanceView:       adminOrSelf,
	AttendanceMarkAbsent: adminOnly,

	LeaveSubmit: adminOrSelf,
	LeaveUpdate: adminOrSelf,
	LeaveView:   adminOrSelf,
	LeaveReview: adminOnly,
	LeaveCancel: selfOnly,
	LeaveDelete: adminOnly,

	TaskManage: adminOnly,
	TaskView:   adminOrSelf,
	TaskStatus: adminOrSelf,

	EmployeeManage: adminOnly,
	EmployeeView:   adminOrSelf,
	EmployeeUpdate: adminOrSelf,

	// Notification visibility is resolved by recipient, not by employee.
	NotificationRead: selfOnly,
	ActivityView:     adminOnly,
}

// Policy is the single role-based authorization check every usecase calls
// before touching the store.
type Policy struct {
	rules map[Action]rule
}

func NewPolicy() *Policy {
	return &Policy{rules: defaultRules}
}

// Scope returns the reach of caller for action.
func (p *Policy) Scope(caller *Caller, action Action) (Scope, error) {
	if caller == nil || caller.UserID == 0 {
		return ScopeNone, model.ErrUnauthorized("authentication required")
	}
	s := p.rules[action][caller.Role]
	if s == ScopeNone {
		return ScopeNone, model.ErrForbidden("you are not allowed to perform this action")
	}
	return s, nil
}

// Authorize checks caller against action. ownerID is the employee owning the
// target record; nil means the caller acts on its own collection.
func (p *Policy) Authorize(caller *Caller, action Action, ownerID *uint) error {
	s, err := p.Scope(caller, action)
	if err != nil {
		return err
	}
	if s == ScopeAny || ownerID == nil {
		if s == ScopeSelf && caller.EmployeeID == nil && needsEmployee(action) {
			return model.ErrForbidden("no employee record is linked to this account")
		}
		return nil
	}
	if !caller.OwnsEmployee(*ownerID) {
		return model.ErrForbidden("you can only access your own records")
	}
	return nil
}

func needsEmployee(action Action) bool {
	return action != NotificationRead
}
