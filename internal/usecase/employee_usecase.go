package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

const minPasswordLength = 6

type CreateEmployeeInput struct {
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	HireDate     string `json:"hire_date"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
}

type EmployeePatch struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	HireDate   *string `json:"hire_date"`
}

// selfOnly reports whether the patch only touches the fields an employee may edit on their own profile.
func (p EmployeePatch) selfOnly() bool {
	return p.Name == nil && p.Email == nil && p.Department == nil && p.Position == nil && p.HireDate == nil
}

type EmployeeUsecase struct {
	repo   repository.EmployeeRepository
	policy *access.Policy
	events fanout.Publisher
	now    func() time.Time
}

func NewEmployeeUsecase(repo repository.EmployeeRepository, policy *access.Policy, events fanout.Publisher) *EmployeeUsecase {
	return &EmployeeUsecase{repo: repo, policy: policy, events: events, now: time.Now}
}

// Create stores the employee together with its login account.
func (u *EmployeeUsecase) Create(ctx context.Context, caller *access.Caller, in CreateEmployeeInput) (*model.Employee, error) {
	if err := u.policy.Authorize(caller, access.EmployeeManage, nil); err != nil {
		return nil, err
	}
	switch {
	case strings.TrimSpace(in.EmployeeCode) == "":
		return nil, model.ErrValidation("employee_code is required")
	case strings.TrimSpace(in.Name) == "":
		return nil, model.ErrValidation("name is required")
	case strings.TrimSpace(in.Username) == "":
		return nil, model.ErrValidation("username is required")
	case len(in.Password) < minPasswordLength:
		return nil, model.ErrValidation("password must be at least 6 characters")
	}
	role := model.RoleEmployee
	if in.Role != "" {
		role = model.Role(in.Role)
		if !role.Valid() {
			return nil, model.ErrValidation("role must be one of admin, hr, employee")
		}
	}
	if role == model.RoleAdmin && caller.Role != model.RoleAdmin {
		return nil, model.ErrForbidden("only admins can create admin accounts")
	}
	if err := optionalDate("hire_date", in.HireDate); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &model.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	emp := &model.Employee{
		EmployeeCode: strings.TrimSpace(in.EmployeeCode),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		Address:      in.Address,
		Department:   in.Department,
		Position:     in.Position,
		HireDate:     in.HireDate,
	}
	if err = u.repo.CreateWithUser(ctx, user, emp); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, model.ErrValidation("employee code or username already exists")
		}
		return nil, err
	}
	emp.User = user

	u.publish(ctx, fanout.EmployeeCreated, caller, emp)
	return emp, nil
}

func (u *EmployeeUsecase) Get(ctx context.Context, caller *access.Caller, id uint) (*model.Employee, error) {
	if err := u.policy.Authorize(caller, access.EmployeeView, &id); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, id)
}

func (u *EmployeeUsecase) List(ctx context.Context, caller *access.Caller, f repository.EmployeeFilter) ([]model.Employee, int64, error) {
	if err := u.policy.Authorize(caller, access.EmployeeManage, nil); err != nil {
		return nil, 0, err
	}
	return u.repo.List(ctx, f)
}

// Update lets admin/hr change any field. Employees may only change their own phone and address.
func (u *EmployeeUsecase) Update(ctx context.Context, caller *access.Caller, id uint, patch EmployeePatch) (*model.Employee, error) {
	scope, err := u.policy.Scope(caller, access.EmployeeUpdate)
	if err != nil {
		return nil, err
	}
	if err = u.policy.Authorize(caller, access.EmployeeUpdate, &id); err != nil {
		return nil, err
	}
	if scope == access.ScopeSelf && !patch.selfOnly() {
		return nil, model.ErrForbidden("employees may only update their phone and address")
	}

	fields := map[string]any{}
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, model.ErrValidation("name must not be empty")
	}
	if patch.HireDate != nil {
		if err = optionalDate("hire_date", *patch.HireDate); err != nil {
			return nil, err
		}
	}
	set("name", patch.Name)
	set("email", patch.Email)
	set("phone", patch.Phone)
	set("address", patch.Address)
	set("department", patch.Department)
	set("position", patch.Position)
	set("hire_date", patch.HireDate)

	if len(fields) > 0 {
		if err = u.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	emp, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		u.publish(ctx, fanout.EmployeeUpdated, caller, emp)
	}
	return emp, nil
}

// Delete removes the employee and its login account.
func (u *EmployeeUsecase) Delete(ctx context.Context, caller *access.Caller, id uint) error {
	if err := u.policy.Authorize(caller, access.EmployeeManage, nil); err != nil {
		return err
	}
	emp, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.OwnsEmployee(emp.ID) {
		return model.ErrInvalidState("you cannot delete your own employee record")
	}
	if err = u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.publish(ctx, fanout.EmployeeDeleted, caller, emp)
	return nil
}

func (u *EmployeeUsecase) publish(ctx context.Context, kind fanout.Kind, caller *access.Caller, emp *model.Employee) {
	ev := fanout.NewEvent(kind, caller, u.now())
	ev.Employee = emp
	u.events.Publish(ctx, ev)
}
