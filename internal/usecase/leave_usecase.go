package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

type SubmitLeaveInput struct {
	// EmployeeID lets admin/hr file on behalf of an employee. Employees leave it empty.
	EmployeeID *uint  `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

type LeavePatch struct {
	Type      *string `json:"type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Reason    *string `json:"reason"`
}

type LeaveUsecase struct {
	repo      repository.LeaveRepository
	employees repository.EmployeeRepository
	policy    *access.Policy
	events    fanout.Publisher
	now       func() time.Time
}

func NewLeaveUsecase(
	repo repository.LeaveRepository,
	employees repository.EmployeeRepository,
	policy *access.Policy,
	events fanout.Publisher,
) *LeaveUsecase {
	return &LeaveUsecase{repo: repo, employees: employees, policy: policy, events: events, now: time.Now}
}

// leaveFields validates a leave request and returns its day count.
func leaveFields(typ, start, end, reason string) (int, error) {
	switch {
	case strings.TrimSpace(typ) == "":
		return 0, model.ErrValidation("type is required")
	case strings.TrimSpace(start) == "":
		return 0, model.ErrValidation("start_date is required")
	case strings.TrimSpace(end) == "":
		return 0, model.ErrValidation("end_date is required")
	case strings.TrimSpace(reason) == "":
		return 0, model.ErrValidation("reason is required")
	}
	if !model.LeaveType(typ).Valid() {
		return 0, model.ErrValidation(fmt.Sprintf("unknown leave type '%s'", typ))
	}
	s, err := parseDate("start_date", start)
	if err != nil {
		return 0, err
	}
	e, err := parseDate("end_date", end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, model.ErrValidation("end_date must not be before start_date")
	}
	return inclusiveDays(s, e), nil
}

// Submit files a pending leave request and notifies admin and hr.
func (u *LeaveUsecase) Submit(ctx context.Context, caller *access.Caller, in SubmitLeaveInput) (*model.LeaveRequest, error) {
	if _, err := u.policy.Scope(caller, access.LeaveSubmit); err != nil {
		return nil, err
	}
	owner := in.EmployeeID
	if owner == nil {
		owner = caller.EmployeeID
	}
	if owner == nil {
		return nil, model.ErrValidation("employee_id is required")
	}
	if err := u.policy.Authorize(caller, access.LeaveSubmit, owner); err != nil {
		return nil, err
	}

	days, err := leaveFields(in.Type, in.StartDate, in.EndDate, in.Reason)
	if err != nil {
		return nil, err
	}

	emp, err := u.employees.FindByID(ctx, *owner)
	if err != nil {
		return nil, err
	}

	leave := &model.LeaveRequest{
		EmployeeID: emp.ID,
		Type:       model.LeaveType(in.Type),
		StartDate:  strings.TrimSpace(in.StartDate),
		EndDate:    strings.TrimSpace(in.EndDate),
		Days:       days,
		Reason:     strings.TrimSpace(in.Reason),
		Status:     model.LeavePending,
	}
	if err = u.repo.Create(ctx, leave); err != nil {
		return nil, err
	}

	u.publish(ctx, fanout.LeaveSubmitted, caller, leave, emp, "")
	return leave, nil
}

// Get returns one request visible to the caller.
func (u *LeaveUsecase) Get(ctx context.Context, caller *access.Caller, id uint) (*model.LeaveRequest, error) {
	return u.load(ctx, caller, access.LeaveView, id)
}

// load checks the role before the lookup and the ownership after it.
func (u *LeaveUsecase) load(ctx context.Context, caller *access.Caller, action access.Action, id uint) (*model.LeaveRequest, error) {
	if _, err := u.policy.Scope(caller, action); err != nil {
		return nil, err
	}
	leave, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.policy.Authorize(caller, action, &leave.EmployeeID); err != nil {
		return nil, err
	}
	return leave, nil
}

// Update edits a pending request and recomputes its day count.
func (u *LeaveUsecase) Update(ctx context.Context, caller *access.Caller, id uint, patch LeavePatch) (*model.LeaveRequest, error) {
	leave, err := u.load(ctx, caller, access.LeaveUpdate, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != model.LeavePending {
		return nil, notPending(leave)
	}

	typ, start, end, reason := string(leave.Type), leave.StartDate, leave.EndDate, leave.Reason
	if patch.Type != nil {
		typ = *patch.Type
	}
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if patch.Reason != nil {
		reason = *patch.Reason
	}
	days, err := leaveFields(typ, start, end, reason)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"type":       typ,
		"start_date": strings.TrimSpace(start),
		"end_date":   strings.TrimSpace(end),
		"reason":     strings.TrimSpace(reason),
		"days":       days,
	}
	if leave, err = u.transition(ctx, id, fields); err != nil {
		return nil, err
	}
	u.publish(ctx, fanout.LeaveUpdated, caller, leave, leave.Employee, string(model.LeavePending))
	return leave, nil
}

// Approve accepts a pending request. Only admin and hr may review.
func (u *LeaveUsecase) Approve(ctx context.Context, caller *access.Caller, id uint, comments string) (*model.LeaveRequest, error) {
	return u.review(ctx, caller, id, comments, model.LeaveApproved, fanout.LeaveApproved)
}

// Reject declines a pending request. Only admin and hr may review.
func (u *LeaveUsecase) Reject(ctx context.Context, caller *access.Caller, id uint, comments string) (*model.LeaveRequest, error) {
	return u.review(ctx, caller, id, comments, model.LeaveRejected, fanout.LeaveRejected)
}

func (u *LeaveUsecase) review(ctx context.Context, caller *access.Caller, id uint, comments string, to model.LeaveStatus, kind fanout.Kind) (*model.LeaveRequest, error) {
	if err := u.policy.Authorize(caller, access.LeaveReview, nil); err != nil {
		return nil, err
	}
	leave, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != model.LeavePending {
		return nil, notPending(leave)
	}

	now := u.now()
	fields := map[string]any{
		"status":      to,
		"reviewed_by": caller.UserID,
		"reviewed_at": now,
		"comments":    strings.TrimSpace(comments),
	}
	if leave, err = u.transition(ctx, id, fields); err != nil {
		return nil, err
	}
	u.publish(ctx, kind, caller, leave, leave.Employee, string(model.LeavePending))
	return leave, nil
}

// Cancel withdraws the caller's own pending request. The row is kept.
func (u *LeaveUsecase) Cancel(ctx context.Context, caller *access.Caller, id uint) (*model.LeaveRequest, error) {
	leave, err := u.load(ctx, caller, access.LeaveCancel, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != model.LeavePending {
		return nil, notPending(leave)
	}
	if leave, err = u.transition(ctx, id, map[string]any{"status": model.LeaveCancelled}); err != nil {
		return nil, err
	}
	u.publish(ctx, fanout.LeaveCancelled, caller, leave, leave.Employee, string(model.LeavePending))
	return leave, nil
}

// Delete removes a request permanently, whatever its status.
func (u *LeaveUsecase) Delete(ctx context.Context, caller *access.Caller, id uint) error {
	if err := u.policy.Authorize(caller, access.LeaveDelete, nil); err != nil {
		return err
	}
	leave, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := u.repo.HardDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFound("leave request not found")
	}
	u.publish(ctx, fanout.LeaveDeleted, caller, leave, leave.Employee, string(leave.Status))
	return nil
}

// List returns requests newest first. Employees only see their own.
func (u *LeaveUsecase) List(ctx context.Context, caller *access.Caller, f repository.LeaveFilter) ([]model.LeaveRequest, int64, error) {
	scope, err := u.policy.Scope(caller, access.LeaveView)
	if err != nil {
		return nil, 0, err
	}
	if scope == access.ScopeSelf {
		if caller.EmployeeID == nil {
			return nil, 0, model.ErrForbidden("no employee record is linked to this account")
		}
		own := *caller.EmployeeID
		f.EmployeeID = &own
	}
	if f.Status != "" && !model.LeaveStatus(f.Status).Valid() {
		return nil, 0, model.ErrValidation(fmt.Sprintf("unknown status '%s'", f.Status))
	}
	if f.Type != "" && !model.LeaveType(f.Type).Valid() {
		return nil, 0, model.ErrValidation(fmt.Sprintf("unknown leave type '%s'", f.Type))
	}
	if err = optionalDate("start_date", f.StartDate); err != nil {
		return nil, 0, err
	}
	if err = optionalDate("end_date", f.EndDate); err != nil {
		return nil, 0, err
	}
	return u.repo.List(ctx, f)
}

// transition applies fields while the request is pending. Losing a race
// surfaces as InvalidState, a vanished row as NotFound.
func (u *LeaveUsecase) transition(ctx context.Context, id uint, fields map[string]any) (*model.LeaveRequest, error) {
	ok, err := u.repo.UpdatePending(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	leave, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notPending(leave)
	}
	return leave, nil
}

func notPending(leave *model.LeaveRequest) error {
	return model.ErrInvalidState(fmt.Sprintf("leave request is %s, only pending requests can be changed", leave.Status))
}

func (u *LeaveUsecase) publish(ctx context.Context, kind fanout.Kind, caller *access.Caller, leave *model.LeaveRequest, emp *model.Employee, previous string) {
	ev := fanout.NewEvent(kind, caller, u.now())
	ev.Leave = leave
	ev.Employee = emp
	ev.Previous = previous
	u.events.Publish(ctx, ev)
}
