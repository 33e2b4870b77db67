package database

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

// SeedOptions controls the accounts created by SeedAll.
type SeedOptions struct {
	// Password is set on every seeded account.
	Password string
	// ResetPasswords overwrites the password of accounts that already exist.
	ResetPasswords bool
	// Cost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	Cost int
}

type seedAccount struct {
	username string
	email    string
	role     model.Role
	employee *model.Employee
}

var seedAccounts = []seedAccount{
	{username: "admin", email: "admin@example.com", role: model.RoleAdmin},
	{
		username: "hr",
		email:    "hr@example.com",
		role:     model.RoleHR,
		employee: &model.Employee{
			EmployeeCode: "EMP-0001",
			Name:         "Hana Resources",
			Department:   "Human Resources",
			Position:     "HR Officer",
		},
	},
	{
		username: "employee",
		email:    "employee@example.com",
		role:     model.RoleEmployee,
		employee: &model.Employee{
			EmployeeCode: "EMP-0002",
			Name:         "Budi Santoso",
			Department:   "Engineering",
			Position:     "Software Engineer",
		},
	},
}

// SeedAll creates the default admin, hr and employee accounts. It is idempotent.
func SeedAll(db *gorm.DB, opts SeedOptions) error {
	if opts.Password == "" {
		return errors.New("seed: password must not be empty")
	}
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), cost)
	if err != nil {
		return errors.Wrap(err, "seed: hash password")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, acc := range seedAccounts {
			if err := seedOne(tx, acc, string(hashed), opts.ResetPasswords); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedOne(tx *gorm.DB, acc seedAccount, hash string, reset bool) error {
	var user model.User
	err := tx.Where("username = ?", acc.username).First(&user).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{
			Username:     acc.username,
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
			IsActive:     true,
		}
		if err = tx.Create(&user).Error; err != nil {
			return errors.Wrapf(err, "seed user %s", acc.username)
		}
		created = true
	case err != nil:
		return errors.Wrapf(err, "find user %s", acc.username)
	case reset:
		if err = tx.Model(&user).Update("password_hash", hash).Error; err != nil {
			return errors.Wrapf(err, "reset password for %s", acc.username)
		}
	}
	log.WithFields(log.Fields{"username": acc.username, "created": created}).Info("seeded account")

	if acc.employee == nil {
		return nil
	}
	emp := *acc.employee
	emp.Email = acc.email
	emp.UserID = &user.ID
	if err = tx.Where(model.Employee{EmployeeCode: emp.EmployeeCode}).FirstOrCreate(&emp).Error; err != nil {
		return errors.Wrapf(err, "seed employee %s", emp.EmployeeCode)
	}
	return nil
}
