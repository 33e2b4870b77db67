package usecase

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"employee-management-backend/config"
	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
	"employee-management-backend/internal/testutil"
)

const testPassword = "secret123"

type fixture struct {
	db  *gorm.DB
	ctx context.Context

	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository

	attendance    *AttendanceUsecase
	leave         *LeaveUsecase
	tasks         *TaskUsecase
	employees     *EmployeeUsecase
	notifications *NotificationUsecase
	activity      *ActivityUsecase
	users         *UserUsecase

	admin, hr, e1, e2 *access.Caller
	e1Emp, e2Emp      *model.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	attCfg := config.AttendanceConfig{WorkStart: "09:00", HalfDayHours: 4, OvertimeHours: 9, Timezone: "UTC"}
	if err := attCfg.Validate(); err != nil {
		t.Fatalf("attendance config: %v", err)
	}

	policy := access.NewPolicy()
	bus := fanout.NewBus()
	bus.Subscribe("notifications", fanout.NewNotificationSubscriber(repository.NewNotificationRepository(db)))
	bus.Subscribe("activity", fanout.NewActivitySubscriber(repository.NewActivityRepository(db)))

	employeeRepo := repository.NewEmployeeRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokens := access.NewTokenIssuer(config.AuthConfig{JWTSecret: "test", TokenTTL: time.Hour})

	f := &fixture{
		db:            db,
		ctx:           context.Background(),
		employeeRepo:  employeeRepo,
		userRepo:      userRepo,
		attendance:    NewAttendanceUsecase(repository.NewAttendanceRepository(db), employeeRepo, policy, bus, attCfg),
		leave:         NewLeaveUsecase(repository.NewLeaveRepository(db), employeeRepo, policy, bus),
		tasks:         NewTaskUsecase(repository.NewTaskRepository(db), employeeRepo, policy, bus),
		employees:     NewEmployeeUsecase(employeeRepo, policy, bus),
		notifications: NewNotificationUsecase(repository.NewNotificationRepository(db), policy),
		activity:      NewActivityUsecase(repository.NewActivityRepository(db), policy),
		users:         NewUserUsecase(userRepo, employeeRepo, tokens, bus),
	}

	f.admin = f.seedUser(t, "admin", model.RoleAdmin)
	f.hr = f.seedUser(t, "hr", model.RoleHR)
	f.e1, f.e1Emp = f.seedEmployee(t, "e1", "EMP-001", "E1")
	f.e2, f.e2Emp = f.seedEmployee(t, "e2", "EMP-002", "E2")
	return f
}

func hash(t *testing.T) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func (f *fixture) seedUser(t *testing.T, username string, role model.Role) *access.Caller {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: hash(t), Role: role, IsActive: true}
	if err := f.userRepo.Create(f.ctx, u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return &access.Caller{UserID: u.ID, Username: username, Role: role}
}

func (f *fixture) seedEmployee(t *testing.T, username, code, name string) (*access.Caller, *model.Employee) {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: hash(t), Role: model.RoleEmployee, IsActive: true}
	emp := &model.Employee{EmployeeCode: code, Name: name, Email: username + "@example.com", Department: "Engineering"}
	if err := f.employeeRepo.CreateWithUser(f.ctx, u, emp); err != nil {
		t.Fatalf("seed employee %s: %v", code, err)
	}
	id := emp.ID
	return &access.Caller{UserID: u.ID, Username: username, Role: model.RoleEmployee, EmployeeID: &id}, emp
}

// at fixes every usecase clock to 2024-03-01 hh:mm UTC.
func (f *fixture) at(hh, mm int) {
	now := func() time.Time { return time.Date(2024, 3, 1, hh, mm, 0, 0, time.UTC) }
	f.attendance.now = now
	f.leave.now = now
	f.tasks.now = now
	f.notifications.now = now
}

func expectKind(t *testing.T, err error, kind model.ErrorKind) {
	t.Helper()
	if !model.IsKind(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}

func (f *fixture) count(t *testing.T, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
