package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

// Profile is the account of the caller with its employee record, if any.
type Profile struct {
	User     *model.User     `json:"user"`
	Employee *model.Employee `json:"employee"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Profile
}

type UserUsecase struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
	tokens    *access.TokenIssuer
	events    fanout.Publisher
	now       func() time.Time
}

func NewUserUsecase(
	users repository.UserRepository,
	employees repository.EmployeeRepository,
	tokens *access.TokenIssuer,
	events fanout.Publisher,
) *UserUsecase {
	return &UserUsecase{users: users, employees: employees, tokens: tokens, events: events, now: time.Now}
}

var errBadCredentials = model.ErrUnauthorized("invalid username or password")

// Login verifies the credentials and issues an access token. ip and userAgent
// are only recorded in the audit log.
func (u *UserUsecase) Login(ctx context.Context, username, password, ip, userAgent string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, model.ErrValidation("username and password are required")
	}

	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if model.IsKind(err, model.KindNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.WithField("username", user.Username).Debug("password mismatch")
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, model.ErrUnauthorized("account is disabled")
	}

	emp, err := u.linkedEmployee(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	var employeeID *uint
	if emp != nil {
		id := emp.ID
		employeeID = &id
	}

	token, exp, err := u.tokens.Issue(user, employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	caller := &access.Caller{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: employeeID,
		IP:         ip,
		UserAgent:  userAgent,
	}
	u.events.Publish(ctx, fanout.NewEvent(fanout.AuthLogin, caller, u.now()))

	return &LoginResult{Token: token, ExpiresAt: exp, Profile: Profile{User: user, Employee: emp}}, nil
}

// Me returns the caller's account and employee record.
func (u *UserUsecase) Me(ctx context.Context, caller *access.Caller) (*Profile, error) {
	if caller == nil {
		return nil, model.ErrUnauthorized("authentication required")
	}
	user, err := u.users.FindByID(ctx, caller.UserID)
	if err != nil {
		if model.IsKind(err, model.KindNotFound) {
			return nil, model.ErrUnauthorized("account no longer exists")
		}
		return nil, err
	}
	emp, err := u.linkedEmployee(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Employee: emp}, nil
}

func (u *UserUsecase) ChangePassword(ctx context.Context, caller *access.Caller, oldPassword, newPassword string) error {
	if caller == nil {
		return model.ErrUnauthorized("authentication required")
	}
	if len(newPassword) < minPasswordLength {
		return model.ErrValidation("new password must be at least 6 characters")
	}
	user, err := u.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return model.ErrValidation("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if err = u.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	u.events.Publish(ctx, fanout.NewEvent(fanout.AuthPasswordChanged, caller, u.now()))
	return nil
}

func (u *UserUsecase) linkedEmployee(ctx context.Context, userID uint) (*model.Employee, error) {
	emp, err := u.employees.FindByUserID(ctx, userID)
	if model.IsKind(err, model.KindNotFound) {
		return nil, nil
	}
	return emp, err
}
