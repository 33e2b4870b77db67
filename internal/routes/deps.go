package routes

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"employee-management-backend/config"
	"employee-management-backend/internal/access"
	"employee-management-backend/internal/fanout"
	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/repository"
)

// Deps is the object graph shared by every route group.
type Deps struct {
	DB     *gorm.DB
	Config config.Config
	Policy *access.Policy
	Tokens *access.TokenIssuer
	Bus    *fanout.Bus

	Users         repository.UserRepository
	Employees     repository.EmployeeRepository
	Attendance    repository.AttendanceRepository
	Leaves        repository.LeaveRepository
	Tasks         repository.TaskRepository
	Notifications repository.NotificationRepository
	Activity      repository.ActivityRepository
}

// NewDeps builds repositories, the access policy and the event bus.
// cfg must already be validated.
func NewDeps(db *gorm.DB, cfg config.Config) *Deps {
	d := &Deps{
		DB:            db,
		Config:        cfg,
		Policy:        access.NewPolicy(),
		Tokens:        access.NewTokenIssuer(cfg.Auth),
		Bus:           fanout.NewBus(),
		Users:         repository.NewUserRepository(db),
		Employees:     repository.NewEmployeeRepository(db),
		Attendance:    repository.NewAttendanceRepository(db),
		Leaves:        repository.NewLeaveRepository(db),
		Tasks:         repository.NewTaskRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Activity:      repository.NewActivityRepository(db),
	}

	d.Bus.Subscribe("notifications", fanout.NewNotificationSubscriber(d.Notifications))
	d.Bus.Subscribe("activity", fanout.NewActivitySubscriber(d.Activity))
	if mail := fanout.NewMailSubscriber(cfg.Mail); mail != nil {
		d.Bus.Subscribe("mail", mail)
		log.WithField("host", cfg.Mail.Host).Info("mail notifications enabled")
	}
	return d
}

// auth is the bearer-token middleware every protected group uses.
func (d *Deps) auth() fiber.Handler {
	return middleware.Auth(d.Tokens, d.Users, d.Employees)
}
