package event_bus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event carries a payload of any type together with the context of the operation that published it.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{ctx: ctx, Type: eventType, Timestamp: time.Now(), Data: data}
}

// Context is the publisher's context. Subscribers run inside the publishing call and use it for their own work.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is an Event whose payload was asserted to T.
type EventT[T any] struct {
	Event
	Data T
}

type subscription struct {
	id        uint64
	eventType EventType
	handle    func(Event) error
}

// EventBus dispatches events synchronously to subscribers in the order they subscribed.
type EventBus struct {
	mu            sync.RWMutex
	subscriptions []subscription
	nextID        uint64
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers h for eventType and returns a function that removes it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	id := eb.nextID
	eb.subscriptions = append(eb.subscriptions, subscription{id: id, eventType: eventType, handle: h})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		eb.subscriptions = slices.DeleteFunc(eb.subscriptions, func(s subscription) bool { return s.id == id })
	}
}

// SubscribeTyped registers h for events whose payload is a T. Events with another payload type are ignored.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: ignoring %s with payload %T", eventType, e.Data)
			return nil
		}
		return h(EventT[T]{Event: e, Data: payload})
	})
}

// Publish runs every subscriber of e.Type. A failing or panicking subscriber does not stop the others;
// their errors are returned together. Remaining subscribers are skipped once the context is done.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	var targets []subscription
	for _, s := range eb.subscriptions {
		if s.eventType == e.Type {
			targets = append(targets, s)
		}
	}
	eb.mu.RUnlock()

	var errs []error
	for _, s := range targets {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}
		if err := deliver(s, e); err != nil {
			log.Errorf("EventBus: subscriber %d failed on %s: %v", s.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func deliver(s subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber %d panicked: %v", s.id, r)
		}
	}()
	return s.handle(e)
}
