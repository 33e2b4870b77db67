package fanout

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Subscriber consumes events. Errors are logged by the bus and never reach
// the publisher.
type Subscriber interface {
	Handle(ctx context.Context, ev Event) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, ev Event) error

func (f SubscriberFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

type namedSubscriber struct {
	name string
	sub  Subscriber
}

// Publisher is what workflow code depends on.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Bus delivers every event to every subscriber, in subscription order, on the
// publishing goroutine. There are no retries.
type Bus struct {
	mu   sync.RWMutex
	subs []namedSubscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(name string, s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, namedSubscriber{name: name, sub: s})
}

func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.mu.RLock()
	subs := make([]namedSubscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := deliver(ctx, s.sub, ev); err != nil {
			log.WithFields(log.Fields{
				"subscriber": s.name,
				"event":      ev.Kind,
				"event_id":   ev.ID,
			}).WithError(err).Error("fan-out delivery failed")
		}
	}
}

func deliver(ctx context.Context, s Subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
	}()
	return s.Handle(ctx, ev)
}
