package database

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/testutil"
)

func TestSeedAllIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	opts := SeedOptions{Password: "admin123", Cost: bcrypt.MinCost}

	for i := 0; i < 2; i++ {
		if err := SeedAll(db, opts); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	var users, employees int64
	db.Model(&model.User{}).Count(&users)
	db.Model(&model.Employee{}).Count(&employees)
	if users != 3 || employees != 2 {
		t.Fatalf("expected 3 users and 2 employees, got %d and %d", users, employees)
	}

	var emp model.Employee
	if err := db.Preload("User").Where("employee_code = ?", "EMP-0002").First(&emp).Error; err != nil {
		t.Fatalf("load employee: %v", err)
	}
	if emp.User == nil || emp.User.Role != model.RoleEmployee {
		t.Fatalf("employee not linked to its account: %+v", emp.User)
	}
}

func TestSeedAllResetPasswords(t *testing.T) {
	db := testutil.NewDB(t)
	if err := SeedAll(db, SeedOptions{Password: "first-pass", Cost: bcrypt.MinCost}); err != nil {
		t.Fatal(err)
	}
	if err := SeedAll(db, SeedOptions{Password: "second-pass", Cost: bcrypt.MinCost, ResetPasswords: true}); err != nil {
		t.Fatal(err)
	}

	var admin model.User
	db.Where("username = ?", "admin").First(&admin)
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("second-pass")) != nil {
		t.Fatal("password was not reset")
	}
}

func TestSeedAllRequiresPassword(t *testing.T) {
	db := testutil.NewDB(t)
	if err := SeedAll(db, SeedOptions{}); err == nil {
		t.Fatal("expected error for empty password")
	}
}
