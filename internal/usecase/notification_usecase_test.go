package usecase

import (
	"testing"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

func TestNotificationVisibilityAndMarkRead(t *testing.T) {
	f := newFixture(t)
	leave := f.submit(t, "2024-03-04", "2024-03-05")
	if _, err := f.leave.Approve(f.ctx, f.admin, leave.ID, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	hrRows, _, err := f.notifications.List(f.ctx, f.hr, false, repository.Page{})
	if err != nil || len(hrRows) != 1 || hrRows[0].Role == nil || *hrRows[0].Role != model.RoleHR {
		t.Fatalf("hr should see only the hr notification, got %+v (%v)", hrRows, err)
	}

	e1Rows, _, _ := f.notifications.List(f.ctx, f.e1, false, repository.Page{})
	if len(e1Rows) != 1 || e1Rows[0].UserID == nil || *e1Rows[0].UserID != f.e1.UserID {
		t.Fatalf("e1 should see the approval only, got %+v", e1Rows)
	}

	err = f.notifications.MarkRead(f.ctx, f.e1, hrRows[0].ID)
	expectKind(t, err, model.KindNotFound)
	err = f.notifications.MarkRead(f.ctx, f.e2, e1Rows[0].ID)
	expectKind(t, err, model.KindNotFound)

	if err = f.notifications.MarkRead(f.ctx, f.e1, e1Rows[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	unread, _ := f.notifications.UnreadCount(f.ctx, f.e1)
	if unread != 0 {
		t.Fatalf("expected no unread notifications, got %d", unread)
	}
}

func TestMarkAllRead(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "2024-03-04", "2024-03-05")
	f.submit(t, "2024-03-11", "2024-03-12")

	unread, err := f.notifications.UnreadCount(f.ctx, f.hr)
	if err != nil || unread != 2 {
		t.Fatalf("expected 2 unread for hr, got %d (%v)", unread, err)
	}

	n, err := f.notifications.MarkAllRead(f.ctx, f.e1)
	if err != nil || n != 0 {
		t.Fatalf("employee must not clear role rows, got %d (%v)", n, err)
	}

	n, err = f.notifications.MarkAllRead(f.ctx, f.hr)
	if err != nil || n != 2 {
		t.Fatalf("hr should mark 2 rows, got %d (%v)", n, err)
	}
	if unread, _ = f.notifications.UnreadCount(f.ctx, f.admin); unread != 2 {
		t.Fatalf("admin rows must stay unread, got %d", unread)
	}
}
