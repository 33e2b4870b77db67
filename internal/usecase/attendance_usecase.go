package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"employee-management-backend/config"
	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

type ClockInInput struct {
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type ClockOutInput struct {
	Notes string `json:"notes"`
}

// SessionStatus describes today's attendance session of the caller.
type SessionStatus struct {
	Status           string                 `json:"status"`
	Date             string                 `json:"date"`
	ClockIn          *time.Time             `json:"clock_in"`
	ClockOut         *time.Time             `json:"clock_out"`
	TotalHours       float64                `json:"total_hours"`
	AttendanceStatus model.AttendanceStatus `json:"attendance_status,omitempty"`
}

type AttendanceUsecase struct {
	repo      repository.AttendanceRepository
	employees repository.EmployeeRepository
	policy    *access.Policy
	events    fanout.Publisher
	cfg       config.AttendanceConfig
	now       func() time.Time
}

func NewAttendanceUsecase(
	repo repository.AttendanceRepository,
	employees repository.EmployeeRepository,
	policy *access.Policy,
	events fanout.Publisher,
	cfg config.AttendanceConfig,
) *AttendanceUsecase {
	return &AttendanceUsecase{
		repo:      repo,
		employees: employees,
		policy:    policy,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (u *AttendanceUsecase) today() (time.Time, string) {
	now := u.now().In(u.cfg.Location())
	return now, now.Format(dateLayout)
}

// ClockIn opens today's session for the caller's employee record.
func (u *AttendanceUsecase) ClockIn(ctx context.Context, caller *access.Caller, in ClockInInput) (*model.AttendanceRecord, error) {
	if err := u.policy.Authorize(caller, access.AttendanceClock, nil); err != nil {
		return nil, err
	}
	employeeID := *caller.EmployeeID
	if _, err := u.employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	now, date := u.today()

	status := model.AttendancePresent
	if now.After(u.cfg.StartOfDay(now)) {
		status = model.AttendanceLate
	}

	existing, err := u.repo.FindForDay(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		rec := &model.AttendanceRecord{
			EmployeeID: employeeID,
			Date:       date,
			ClockIn:    &now,
			Status:     status,
			Location:   in.Location,
			Device:     caller.UserAgent,
			IPAddress:  caller.IP,
			Notes:      in.Notes,
		}
		err = u.repo.Create(ctx, rec)
		if err == nil {
			u.publishAttendance(ctx, fanout.AttendanceClockIn, caller, now, rec)
			return rec, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
		// A concurrent request inserted the row first. It may still be a placeholder.
		if existing, err = u.repo.FindForDay(ctx, employeeID, date); err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, model.ErrAlreadyClockedIn
		}
	}
	if existing.ClockIn != nil {
		return nil, model.ErrAlreadyClockedIn
	}

	fields := map[string]any{
		"clock_in":   now,
		"status":     status,
		"location":   in.Location,
		"device":     caller.UserAgent,
		"ip_address": caller.IP,
	}
	if in.Notes != "" {
		fields["notes"] = in.Notes
	}
	ok, err := u.repo.FillClockIn(ctx, existing.ID, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAlreadyClockedIn
	}
	rec, err := u.repo.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	u.publishAttendance(ctx, fanout.AttendanceClockIn, caller, now, rec)
	return rec, nil
}

// ClockOut closes today's session and classifies the worked hours.
func (u *AttendanceUsecase) ClockOut(ctx context.Context, caller *access.Caller, in ClockOutInput) (*model.AttendanceRecord, error) {
	if err := u.policy.Authorize(caller, access.AttendanceClock, nil); err != nil {
		return nil, err
	}
	employeeID := *caller.EmployeeID
	now, date := u.today()

	rec, err := u.repo.FindForDay(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.ClockIn == nil {
		return nil, model.ErrNotClockedIn
	}
	if rec.ClockOut != nil {
		return nil, model.ErrAlreadyClockedOut
	}

	hours, flagged := workedHours(*rec.ClockIn, now)
	if flagged {
		log.WithFields(log.Fields{
			"employee_id": employeeID,
			"date":        date,
			"clock_in":    rec.ClockIn,
			"clock_out":   now,
		}).Warn("clock-out precedes clock-in, total hours clamped to zero")
	}

	fields := map[string]any{
		"clock_out":   now,
		"total_hours": hours,
		"flagged":     flagged,
		"status":      u.classify(rec.Status, hours, flagged),
	}
	if in.Notes != "" {
		fields["notes"] = in.Notes
	}
	ok, err := u.repo.CloseSession(ctx, rec.ID, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAlreadyClockedOut
	}

	if rec, err = u.repo.FindByID(ctx, rec.ID); err != nil {
		return nil, err
	}
	u.publishAttendance(ctx, fanout.AttendanceClockOut, caller, now, rec)
	return rec, nil
}

// workedHours returns the elapsed hours rounded to two decimals. A negative
// span is clamped to zero and flagged.
func workedHours(in, out time.Time) (float64, bool) {
	seconds := decimal.NewFromFloat(out.Sub(in).Seconds())
	hours := seconds.Div(decimal.NewFromInt(3600)).Round(2)
	if hours.IsNegative() {
		return 0, true
	}
	return hours.InexactFloat64(), false
}

func (u *AttendanceUsecase) classify(current model.AttendanceStatus, hours float64, flagged bool) model.AttendanceStatus {
	switch {
	case flagged:
		return current
	case u.cfg.HalfDayHours > 0 && hours < u.cfg.HalfDayHours:
		return model.AttendanceHalfDay
	case u.cfg.OvertimeHours > 0 && hours > u.cfg.OvertimeHours:
		return model.AttendanceOvertime
	}
	return current
}

// GetStatus reports the caller's session state for today.
func (u *AttendanceUsecase) GetStatus(ctx context.Context, caller *access.Caller) (*SessionStatus, error) {
	if err := u.policy.Authorize(caller, access.AttendanceClock, nil); err != nil {
		return nil, err
	}
	_, date := u.today()
	rec, err := u.repo.FindForDay(ctx, *caller.EmployeeID, date)
	if err != nil {
		return nil, err
	}

	st := &SessionStatus{Status: rec.SessionState(), Date: date}
	if rec != nil {
		st.ClockIn = rec.ClockIn
		st.ClockOut = rec.ClockOut
		st.TotalHours = rec.TotalHours
		st.AttendanceStatus = rec.Status
	}
	return st, nil
}

// List returns attendance rows. Employees only ever see their own.
func (u *AttendanceUsecase) List(ctx context.Context, caller *access.Caller, f repository.AttendanceFilter) ([]model.AttendanceRecord, int64, error) {
	scope, err := u.policy.Scope(caller, access.AttendanceView)
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
	if err = optionalDate("start_date", f.StartDate); err != nil {
		return nil, 0, err
	}
	if err = optionalDate("end_date", f.EndDate); err != nil {
		return nil, 0, err
	}
	return u.repo.List(ctx, f)
}

type MarkAbsentInput struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

// MarkAbsent records an absent placeholder. A later clock-in that day reuses it.
func (u *AttendanceUsecase) MarkAbsent(ctx context.Context, caller *access.Caller, in MarkAbsentInput) (*model.AttendanceRecord, error) {
	if err := u.policy.Authorize(caller, access.AttendanceMarkAbsent, &in.EmployeeID); err != nil {
		return nil, err
	}
	if in.EmployeeID == 0 {
		return nil, model.ErrValidation("employee_id is required")
	}
	now, date := u.today()
	if in.Date != "" {
		d, err := parseDate("date", in.Date)
		if err != nil {
			return nil, err
		}
		date = d.Format(dateLayout)
	}

	emp, err := u.employees.FindByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	rec := &model.AttendanceRecord{
		EmployeeID: emp.ID,
		Date:       date,
		Status:     model.AttendanceAbsent,
		Notes:      in.Notes,
	}
	if err = u.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, model.ErrInvalidState("attendance already recorded for this day")
		}
		return nil, err
	}

	ev := fanout.NewEvent(fanout.AttendanceMarkedAbsent, caller, now)
	ev.Attendance = rec
	ev.Employee = emp
	u.events.Publish(ctx, ev)
	return rec, nil
}

func (u *AttendanceUsecase) publishAttendance(ctx context.Context, kind fanout.Kind, caller *access.Caller, at time.Time, rec *model.AttendanceRecord) {
	ev := fanout.NewEvent(kind, caller, at)
	ev.Attendance = rec
	u.events.Publish(ctx, ev)
}
