package fanout

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"employee-management-backend/config"
)

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailSubscriber e-mails employees the outcome of their leave requests.
type MailSubscriber struct {
	sender Sender
	from   string
}

// NewMailSubscriber returns nil when mail delivery is disabled.
func NewMailSubscriber(cfg config.MailConfig) *MailSubscriber {
	if !cfg.Enabled {
		return nil
	}
	return &MailSubscriber{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func NewMailSubscriberWithSender(sender Sender, from string) *MailSubscriber {
	return &MailSubscriber{sender: sender, from: from}
}

func (s *MailSubscriber) Handle(ctx context.Context, ev Event) error {
	if ev.Kind != LeaveApproved && ev.Kind != LeaveRejected {
		return nil
	}
	if ev.Leave == nil || ev.Employee == nil || ev.Employee.Email == "" {
		log.WithField("event_id", ev.ID).Debug("no e-mail address for leave decision, skipping")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l := ev.Leave
	decision := "approved"
	if ev.Kind == LeaveRejected {
		decision = "rejected"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", ev.Employee.Email, ev.Employee.Name)
	m.SetHeader("Subject", fmt.Sprintf("Your leave request has been %s", decision))

	body := fmt.Sprintf("Hello %s,\n\nYour %s leave request from %s to %s (%d day(s)) has been %s.\n",
		ev.Employee.Name, l.Type, l.StartDate, l.EndDate, l.Days, decision)
	if l.Comments != "" {
		body += "\nComments: " + l.Comments + "\n"
	}
	m.SetBody("text/plain", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return errors.Wrapf(err, "send leave %s mail to %s", decision, ev.Employee.Email)
	}
	return nil
}
