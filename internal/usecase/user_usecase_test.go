package usecase

import (
	"testing"

	"employee-management-backend/internal/model"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)

	res, err := f.users.Login(f.ctx, "e1", testPassword, "10.0.0.2", "curl")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.User.ID != f.e1.UserID || res.Employee == nil || res.Employee.ID != f.e1Emp.ID {
		t.Fatalf("unexpected result %+v", res)
	}
	if n := f.count(t, &model.ActivityLog{}, "action = ? AND ip_address = ?", "auth.login", "10.0.0.2"); n != 1 {
		t.Fatalf("login should be audited, got %d", n)
	}

	_, err = f.users.Login(f.ctx, "e1", "wrong", "", "")
	expectKind(t, err, model.KindUnauthorized)
	_, err = f.users.Login(f.ctx, "ghost", testPassword, "", "")
	expectKind(t, err, model.KindUnauthorized)
	_, err = f.users.Login(f.ctx, "", "", "", "")
	expectKind(t, err, model.KindValidation)

	res, err = f.users.Login(f.ctx, "admin", testPassword, "", "")
	if err != nil || res.Employee != nil {
		t.Fatalf("admin has no employee record, got %+v (%v)", res, err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)

	err := f.users.ChangePassword(f.ctx, f.e1, "wrong", "newsecret")
	expectKind(t, err, model.KindValidation)
	err = f.users.ChangePassword(f.ctx, f.e1, testPassword, "abc")
	expectKind(t, err, model.KindValidation)

	if err = f.users.ChangePassword(f.ctx, f.e1, testPassword, "newsecret"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err = f.users.Login(f.ctx, "e1", "newsecret", "", ""); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	_, err = f.users.Login(f.ctx, "e1", testPassword, "", "")
	expectKind(t, err, model.KindUnauthorized)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	p, err := f.users.Me(f.ctx, f.e1)
	if err != nil || p.User.Username != "e1" || p.Employee == nil {
		t.Fatalf("unexpected profile %+v (%v)", p, err)
	}
	_, err = f.users.Me(f.ctx, nil)
	expectKind(t, err, model.KindUnauthorized)
}
