package fanout

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

const (
	relatedLeave = "leave_request"
	relatedTask  = "task"
)

// NotificationSubscriber turns workflow events into Notification rows.
type NotificationSubscriber struct {
	repo repository.NotificationRepository
}

func NewNotificationSubscriber(repo repository.NotificationRepository) *NotificationSubscriber {
	return &NotificationSubscriber{repo: repo}
}

func (s *NotificationSubscriber) Handle(ctx context.Context, ev Event) error {
	for _, n := range s.build(ev) {
		if err := s.repo.Create(ctx, n); err != nil {
			return errors.Wrapf(err, "notify %s", ev.Kind)
		}
	}
	return nil
}

func (s *NotificationSubscriber) build(ev Event) []*model.Notification {
	switch ev.Kind {
	case LeaveSubmitted:
		if ev.Leave == nil {
			return nil
		}
		l := ev.Leave
		msg := fmt.Sprintf("%s submitted a %s leave request for %d day(s) from %s to %s",
			employeeName(ev.Employee), l.Type, l.Days, l.StartDate, l.EndDate)
		return toRoles(ev, "New Leave Request", msg, model.NotificationInfo, relatedLeave, l.ID)

	case LeaveCancelled:
		if ev.Leave == nil {
			return nil
		}
		l := ev.Leave
		msg := fmt.Sprintf("%s cancelled the %s leave request from %s to %s",
			employeeName(ev.Employee), l.Type, l.StartDate, l.EndDate)
		return toRoles(ev, "Leave Request Cancelled", msg, model.NotificationInfo, relatedLeave, l.ID)

	case LeaveApproved, LeaveRejected:
		if ev.Leave == nil {
			return nil
		}
		l := ev.Leave
		title, verb, typ := "Leave Request Approved", "approved", model.NotificationSuccess
		if ev.Kind == LeaveRejected {
			title, verb, typ = "Leave Request Rejected", "rejected", model.NotificationWarning
		}
		msg := fmt.Sprintf("Your %s leave request from %s to %s has been %s", l.Type, l.StartDate, l.EndDate, verb)
		if l.Comments != "" {
			msg += ": " + l.Comments
		}
		return toUser(ev, ownerUserID(ev), title, msg, typ, relatedLeave, l.ID)

	case TaskAssigned:
		if ev.Task == nil {
			return nil
		}
		msg := fmt.Sprintf("You have been assigned a new task: %s", ev.Task.Title)
		if ev.Task.DueDate != nil {
			msg += " (due " + *ev.Task.DueDate + ")"
		}
		return toUser(ev, ownerUserID(ev), "New Task Assigned", msg, model.NotificationInfo, relatedTask, ev.Task.ID)

	case TaskCompleted:
		if ev.Task == nil {
			return nil
		}
		assigner := ev.Task.AssignedBy
		msg := fmt.Sprintf("%s completed the task: %s", employeeName(ev.Employee), ev.Task.Title)
		return toUser(ev, &assigner, "Task Completed", msg, model.NotificationSuccess, relatedTask, ev.Task.ID)
	}
	return nil
}

func toRoles(ev Event, title, msg string, typ model.NotificationType, relatedType string, relatedID uint) []*model.Notification {
	out := make([]*model.Notification, 0, 2)
	for _, role := range []model.Role{model.RoleAdmin, model.RoleHR} {
		n := newNotification(ev, title, msg, typ, relatedType, relatedID)
		r := role
		n.Role = &r
		out = append(out, n)
	}
	return out
}

func toUser(ev Event, userID *uint, title, msg string, typ model.NotificationType, relatedType string, relatedID uint) []*model.Notification {
	if userID == nil || *userID == 0 {
		log.WithFields(log.Fields{"event": ev.Kind, "related_id": relatedID}).
			Warn("recipient has no login account, notification skipped")
		return nil
	}
	n := newNotification(ev, title, msg, typ, relatedType, relatedID)
	uid := *userID
	n.UserID = &uid
	return []*model.Notification{n}
}

func newNotification(ev Event, title, msg string, typ model.NotificationType, relatedType string, relatedID uint) *model.Notification {
	n := &model.Notification{
		Title:       title,
		Message:     msg,
		Type:        typ,
		Category:    ev.Kind.Category(),
		RelatedType: relatedType,
		CreatedAt:   ev.At,
	}
	if relatedID != 0 {
		id := relatedID
		n.RelatedID = &id
	}
	if ev.Actor != nil {
		sender := ev.Actor.UserID
		n.SenderID = &sender
	}
	return n
}

func ownerUserID(ev Event) *uint {
	if ev.Employee == nil {
		return nil
	}
	return ev.Employee.UserID
}

func employeeName(e *model.Employee) string {
	if e == nil || e.Name == "" {
		return "An employee"
	}
	return e.Name
}
