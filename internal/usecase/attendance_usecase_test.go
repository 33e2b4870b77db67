package usecase

import (
	"sync"
	"testing"
	"time"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

func TestClockInLateThenClockOut(t *testing.T) {
	f := newFixture(t)

	f.at(9, 15)
	rec, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{Location: "HQ"})
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if rec.Status != model.AttendanceLate {
		t.Fatalf("expected late, got %s", rec.Status)
	}
	if rec.Date != "2024-03-01" || rec.EmployeeID != f.e1Emp.ID {
		t.Fatalf("unexpected record %+v", rec)
	}

	f.at(17, 15)
	rec, err = f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{Notes: "done"})
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if rec.TotalHours != 8.00 {
		t.Fatalf("expected 8.00 hours, got %v", rec.TotalHours)
	}
	if rec.Status != model.AttendanceLate {
		t.Fatalf("8 hours should keep the clock-in status, got %s", rec.Status)
	}
	if rec.Flagged {
		t.Fatal("record should not be flagged")
	}
}

func TestClockInOnTime(t *testing.T) {
	f := newFixture(t)
	f.at(9, 0)
	rec, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{})
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if rec.Status != model.AttendancePresent {
		t.Fatalf("expected present at the threshold, got %s", rec.Status)
	}
}

func TestClockInTwice(t *testing.T) {
	f := newFixture(t)
	f.at(8, 30)
	if _, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	_, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{})
	expectKind(t, err, model.KindAlreadyClockedIn)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	f := newFixture(t)
	f.at(17, 0)
	_, err := f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{})
	expectKind(t, err, model.KindNotClockedIn)
}

func TestClockOutTwice(t *testing.T) {
	f := newFixture(t)
	f.at(9, 0)
	if _, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	f.at(17, 0)
	if _, err := f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{}); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	_, err := f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{})
	expectKind(t, err, model.KindAlreadyClockedOut)
}

func TestClockOutClassification(t *testing.T) {
	tests := []struct {
		name       string
		inH, inM   int
		outH, outM int
		hours      float64
		status     model.AttendanceStatus
	}{
		{"half day", 9, 0, 12, 20, 3.33, model.AttendanceHalfDay},
		{"regular", 8, 30, 17, 0, 8.5, model.AttendancePresent},
		{"overtime", 8, 0, 18, 30, 10.5, model.AttendanceOvertime},
		{"exactly nine hours", 8, 0, 17, 0, 9, model.AttendancePresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.at(tt.inH, tt.inM)
			if _, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
				t.Fatalf("clock in: %v", err)
			}
			f.at(tt.outH, tt.outM)
			rec, err := f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{})
			if err != nil {
				t.Fatalf("clock out: %v", err)
			}
			if rec.TotalHours != tt.hours || rec.Status != tt.status {
				t.Fatalf("expected %v/%s, got %v/%s", tt.hours, tt.status, rec.TotalHours, rec.Status)
			}
		})
	}
}

func TestWorkedHoursRounding(t *testing.T) {
	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	hours, flagged := workedHours(in, in.Add(3*time.Hour+20*time.Minute+10*time.Second))
	if hours != 3.34 || flagged {
		t.Fatalf("expected 3.34, got %v (flagged=%v)", hours, flagged)
	}

	hours, flagged = workedHours(in, in.Add(-30*time.Minute))
	if hours != 0 || !flagged {
		t.Fatalf("negative span should clamp to 0 and flag, got %v (flagged=%v)", hours, flagged)
	}
}

func TestClockOutClockSkewIsFlagged(t *testing.T) {
	f := newFixture(t)
	f.at(10, 0)
	if _, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	f.at(9, 30)
	rec, err := f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{})
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if rec.TotalHours != 0 || !rec.Flagged {
		t.Fatalf("expected clamped and flagged record, got %+v", rec)
	}
	if rec.Status != model.AttendanceLate {
		t.Fatalf("flagged record keeps its status, got %s", rec.Status)
	}
}

func TestConcurrentClockIn(t *testing.T) {
	f := newFixture(t)
	f.at(8, 45)

	const workers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		ok     int
		others []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			others = append(others, err)
		}()
	}
	wg.Wait()

	if ok != 1 {
		t.Fatalf("expected exactly one successful clock-in, got %d", ok)
	}
	for _, err := range others {
		expectKind(t, err, model.KindAlreadyClockedIn)
	}
	if n := f.count(t, &model.AttendanceRecord{}, "employee_id = ? AND date = ?", f.e1Emp.ID, "2024-03-01"); n != 1 {
		t.Fatalf("expected one record, got %d", n)
	}
}

func TestMarkAbsentPlaceholderIsReused(t *testing.T) {
	f := newFixture(t)
	f.at(7, 0)

	placeholder, err := f.attendance.MarkAbsent(f.ctx, f.hr, MarkAbsentInput{EmployeeID: f.e1Emp.ID})
	if err != nil {
		t.Fatalf("mark absent: %v", err)
	}
	if placeholder.Status != model.AttendanceAbsent || placeholder.ClockIn != nil {
		t.Fatalf("unexpected placeholder %+v", placeholder)
	}

	_, err = f.attendance.MarkAbsent(f.ctx, f.hr, MarkAbsentInput{EmployeeID: f.e1Emp.ID})
	expectKind(t, err, model.KindInvalidState)

	f.at(9, 5)
	rec, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{})
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if rec.ID != placeholder.ID || rec.Status != model.AttendanceLate || rec.ClockIn == nil {
		t.Fatalf("expected placeholder %d to be reused, got %+v", placeholder.ID, rec)
	}
	if n := f.count(t, &model.AttendanceRecord{}, "employee_id = ?", f.e1Emp.ID); n != 1 {
		t.Fatalf("expected one record, got %d", n)
	}
}

func TestMarkAbsentRequiresPrivilege(t *testing.T) {
	f := newFixture(t)
	_, err := f.attendance.MarkAbsent(f.ctx, f.e1, MarkAbsentInput{EmployeeID: f.e1Emp.ID})
	expectKind(t, err, model.KindForbidden)

	_, err = f.attendance.MarkAbsent(f.ctx, f.admin, MarkAbsentInput{EmployeeID: 999})
	expectKind(t, err, model.KindNotFound)
}

func TestGetStatus(t *testing.T) {
	f := newFixture(t)
	f.at(8, 0)

	st, err := f.attendance.GetStatus(f.ctx, f.e1)
	if err != nil || st.Status != model.SessionNotClockedIn {
		t.Fatalf("expected not_clocked_in, got %+v (%v)", st, err)
	}
	if _, err = f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	st, _ = f.attendance.GetStatus(f.ctx, f.e1)
	if st.Status != model.SessionClockedIn || st.ClockIn == nil || st.AttendanceStatus != model.AttendancePresent {
		t.Fatalf("expected clocked_in, got %+v", st)
	}
	f.at(16, 0)
	if _, err = f.attendance.ClockOut(f.ctx, f.e1, ClockOutInput{}); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	st, _ = f.attendance.GetStatus(f.ctx, f.e1)
	if st.Status != model.SessionClockedOut || st.TotalHours != 8 {
		t.Fatalf("expected clocked_out with 8 hours, got %+v", st)
	}
}

func TestClockInWithoutEmployeeRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.attendance.ClockIn(f.ctx, f.admin, ClockInInput{})
	expectKind(t, err, model.KindForbidden)
	_, err = f.attendance.ClockIn(f.ctx, nil, ClockInInput{})
	expectKind(t, err, model.KindUnauthorized)
}

func TestClockInForDeletedEmployee(t *testing.T) {
	f := newFixture(t)
	if err := f.employeeRepo.Delete(f.ctx, f.e1Emp.ID); err != nil {
		t.Fatalf("delete employee: %v", err)
	}
	_, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{})
	expectKind(t, err, model.KindNotFound)
	if n := f.count(t, &model.AttendanceRecord{}, ""); n != 0 {
		t.Fatalf("no attendance row may be written, got %d", n)
	}
}

func TestListAttendanceScopesEmployees(t *testing.T) {
	f := newFixture(t)
	f.at(9, 0)
	if _, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
		t.Fatalf("clock in e1: %v", err)
	}
	if _, err := f.attendance.ClockIn(f.ctx, f.e2, ClockInInput{}); err != nil {
		t.Fatalf("clock in e2: %v", err)
	}

	other := f.e2Emp.ID
	rows, count, err := f.attendance.List(f.ctx, f.e1, repository.AttendanceFilter{EmployeeID: &other})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 1 || len(rows) != 1 || rows[0].EmployeeID != f.e1Emp.ID {
		t.Fatalf("employee list leaked foreign rows: %+v", rows)
	}

	rows, count, err = f.attendance.List(f.ctx, f.hr, repository.AttendanceFilter{})
	if err != nil || count != 2 || len(rows) != 2 {
		t.Fatalf("hr should see all rows, got %d (%v)", count, err)
	}

	_, _, err = f.attendance.List(f.ctx, f.hr, repository.AttendanceFilter{StartDate: "01/03/2024"})
	expectKind(t, err, model.KindValidation)
}

func TestClockInIsLoggedWithoutNotification(t *testing.T) {
	f := newFixture(t)
	f.at(9, 0)
	if _, err := f.attendance.ClockIn(f.ctx, f.e1, ClockInInput{}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if n := f.count(t, &model.Notification{}, ""); n != 0 {
		t.Fatalf("clock-in must not notify, got %d notifications", n)
	}
	if n := f.count(t, &model.ActivityLog{}, "action = ?", "attendance.clock_in"); n != 1 {
		t.Fatalf("expected one activity entry, got %d", n)
	}
}
