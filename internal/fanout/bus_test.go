package fanout

import (
	"context"
	"errors"
	"testing"
	"time"

	"employee-management-backend/internal/access"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe("first", SubscriberFunc(func(ctx context.Context, ev Event) error {
		got = append(got, "first:"+string(ev.Kind))
		return nil
	}))
	bus.Subscribe("failing", SubscriberFunc(func(ctx context.Context, ev Event) error {
		return errors.New("boom")
	}))
	bus.Subscribe("panicking", SubscriberFunc(func(ctx context.Context, ev Event) error {
		panic("unexpected")
	}))
	bus.Subscribe("last", SubscriberFunc(func(ctx context.Context, ev Event) error {
		got = append(got, "last:"+string(ev.Kind))
		return nil
	}))

	bus.Publish(context.Background(), NewEvent(LeaveSubmitted, &access.Caller{UserID: 1}, time.Now()))

	if len(got) != 2 || got[0] != "first:leave.submitted" || got[1] != "last:leave.submitted" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestNewEventHasUniqueID(t *testing.T) {
	a := NewEvent(TaskAssigned, nil, time.Now())
	b := NewEvent(TaskAssigned, nil, time.Now())
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
}

func TestKindCategory(t *testing.T) {
	if c := LeaveApproved.Category(); c != "leave" {
		t.Fatalf("expected leave, got %s", c)
	}
	if c := AttendanceClockIn.Category(); c != "attendance" {
		t.Fatalf("expected attendance, got %s", c)
	}
}
