package usecase

import (
	"testing"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

func TestCreateEmployeeWithAccount(t *testing.T) {
	f := newFixture(t)

	emp, err := f.employees.Create(f.ctx, f.hr, CreateEmployeeInput{
		EmployeeCode: "EMP-100",
		Name:         "New Hire",
		Email:        "new@example.com",
		Department:   "Sales",
		HireDate:     "2024-02-01",
		Username:     "newhire",
		Password:     "welcome1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if emp.UserID == nil || emp.User == nil || emp.User.Role != model.RoleEmployee {
		t.Fatalf("expected a linked employee account, got %+v", emp)
	}

	res, err := f.users.Login(f.ctx, "newhire", "welcome1", "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Employee == nil || res.Employee.ID != emp.ID || res.Token == "" {
		t.Fatalf("unexpected login result %+v", res)
	}

	_, err = f.employees.Create(f.ctx, f.hr, CreateEmployeeInput{EmployeeCode: "EMP-100", Name: "Dup", Username: "dup", Password: "welcome1"})
	expectKind(t, err, model.KindValidation)

	_, err = f.employees.Create(f.ctx, f.hr, CreateEmployeeInput{EmployeeCode: "EMP-101", Name: "Boss", Username: "boss", Password: "welcome1", Role: "admin"})
	expectKind(t, err, model.KindForbidden)

	_, err = f.employees.Create(f.ctx, f.e1, CreateEmployeeInput{EmployeeCode: "EMP-102", Name: "X", Username: "x", Password: "welcome1"})
	expectKind(t, err, model.KindForbidden)
}

func TestEmployeeSelfUpdate(t *testing.T) {
	f := newFixture(t)

	emp, err := f.employees.Update(f.ctx, f.e1, f.e1Emp.ID, EmployeePatch{Phone: strPtr("0800"), Address: strPtr("Main St 1")})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if emp.Phone != "0800" || emp.Address != "Main St 1" {
		t.Fatalf("unexpected employee %+v", emp)
	}

	_, err = f.employees.Update(f.ctx, f.e1, f.e1Emp.ID, EmployeePatch{Position: strPtr("CTO")})
	expectKind(t, err, model.KindForbidden)
	_, err = f.employees.Update(f.ctx, f.e1, f.e2Emp.ID, EmployeePatch{Phone: strPtr("1")})
	expectKind(t, err, model.KindForbidden)

	emp, err = f.employees.Update(f.ctx, f.hr, f.e1Emp.ID, EmployeePatch{Position: strPtr("Lead")})
	if err != nil || emp.Position != "Lead" {
		t.Fatalf("hr update: %+v (%v)", emp, err)
	}
}

func TestDeleteEmployeeRemovesAccount(t *testing.T) {
	f := newFixture(t)

	if err := f.employees.Delete(f.ctx, f.admin, f.e2Emp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := f.employees.Get(f.ctx, f.admin, f.e2Emp.ID)
	expectKind(t, err, model.KindNotFound)

	_, err = f.users.Login(f.ctx, "e2", testPassword, "", "")
	expectKind(t, err, model.KindUnauthorized)
}

func TestListEmployees(t *testing.T) {
	f := newFixture(t)

	rows, count, err := f.employees.List(f.ctx, f.hr, repository.EmployeeFilter{Search: "emp-00"})
	if err != nil || count != 2 || len(rows) != 2 {
		t.Fatalf("expected two matches, got %d (%v)", count, err)
	}
	_, _, err = f.employees.List(f.ctx, f.e1, repository.EmployeeFilter{})
	expectKind(t, err, model.KindForbidden)

	if _, err = f.employees.Get(f.ctx, f.e1, f.e1Emp.ID); err != nil {
		t.Fatalf("own profile: %v", err)
	}
	_, err = f.employees.Get(f.ctx, f.e1, f.e2Emp.ID)
	expectKind(t, err, model.KindForbidden)
}
