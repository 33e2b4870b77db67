package access

import (
	"testing"

	"employee-management-backend/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func TestAuthorize(t *testing.T) {
	p := NewPolicy()
	admin := &Caller{UserID: 1, Role: model.RoleAdmin, EmployeeID: uintPtr(10)}
	hr := &Caller{UserID: 2, Role: model.RoleHR}
	emp := &Caller{UserID: 3, Role: model.RoleEmployee, EmployeeID: uintPtr(30)}
	unlinked := &Caller{UserID: 4, Role: model.RoleEmployee}

	tests := []struct {
		name   string
		caller *Caller
		action Action
		owner  *uint
		want   model.ErrorKind
	}{
		{"nil caller", nil, LeaveView, nil, model.KindUnauthorized},
		{"zero user", &Caller{Role: model.RoleAdmin}, LeaveView, nil, model.KindUnauthorized},
		{"admin reviews", admin, LeaveReview, uintPtr(30), ""},
		{"hr reviews", hr, LeaveReview, uintPtr(30), ""},
		{"employee reviews own leave", emp, LeaveReview, uintPtr(30), model.KindForbidden},
		{"employee views own leave", emp, LeaveView, uintPtr(30), ""},
		{"employee views other leave", emp, LeaveView, uintPtr(31), model.KindForbidden},
		{"employee cancels own leave", emp, LeaveCancel, uintPtr(30), ""},
		{"admin cancels other leave", admin, LeaveCancel, uintPtr(30), model.KindForbidden},
		{"admin cancels own leave", admin, LeaveCancel, uintPtr(10), ""},
		{"employee deletes leave", emp, LeaveDelete, uintPtr(30), model.KindForbidden},
		{"employee clocks in", emp, AttendanceClock, nil, ""},
		{"unlinked employee clocks in", unlinked, AttendanceClock, nil, model.KindForbidden},
		{"hr without employee clocks in", hr, AttendanceClock, nil, model.KindForbidden},
		{"employee marks absent", emp, AttendanceMarkAbsent, uintPtr(30), model.KindForbidden},
		{"employee updates assigned task", emp, TaskStatus, uintPtr(30), ""},
		{"employee updates foreign task", emp, TaskStatus, uintPtr(31), model.KindForbidden},
		{"employee creates task", emp, TaskManage, nil, model.KindForbidden},
		{"unlinked employee reads notifications", unlinked, NotificationRead, nil, ""},
		{"employee views activity", emp, ActivityView, nil, model.KindForbidden},
		{"hr views activity", hr, ActivityView, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Authorize(tt.caller, tt.action, tt.owner)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !model.IsKind(err, tt.want) {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestScope(t *testing.T) {
	p := NewPolicy()

	s, err := p.Scope(&Caller{UserID: 1, Role: model.RoleHR}, AttendanceView)
	if err != nil || s != ScopeAny {
		t.Fatalf("hr attendance view: got %v, %v", s, err)
	}
	s, err = p.Scope(&Caller{UserID: 2, Role: model.RoleEmployee}, AttendanceView)
	if err != nil || s != ScopeSelf {
		t.Fatalf("employee attendance view: got %v, %v", s, err)
	}
	if _, err = p.Scope(&Caller{UserID: 3, Role: "guest"}, AttendanceView); !model.IsKind(err, model.KindForbidden) {
		t.Fatalf("unknown role: got %v", err)
	}
}
