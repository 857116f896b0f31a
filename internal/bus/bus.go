// Package bus provides the in-process notification bus.
//
// Any component may publish a notification; every observer subscribed at the
// time of the broadcast receives it synchronously, in subscription order.
// Nothing is buffered or replayed.
package bus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/jmylchreest/edgeui/internal/metrics"
	"github.com/jmylchreest/edgeui/internal/model"
)

// Observer receives notifications from the bus.
type Observer interface {
	// Observe handles a single notification. A returned error is logged by the
	// bus and does not affect delivery to other observers.
	Observe(n model.Notification) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(n model.Notification) error

// Observe calls f(n).
func (f ObserverFunc) Observe(n model.Notification) error {
	return f(n)
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus      *Bus
	id       uint64
	observer Observer
	active   atomic.Bool
	cleanup  func()
}

// Unsubscribe removes the observer from the bus. It is safe to call more than
// once and from inside an observer callback.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active.CompareAndSwap(true, false) {
		return
	}
	s.bus.remove(s.id)
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Active reports whether the subscription still receives notifications.
func (s *Subscription) Active() bool {
	return s != nil && s.active.Load()
}

// Bus fans notifications out to subscribed observers.
type Bus struct {
	mu     sync.Mutex
	subs   []*Subscription
	nextID uint64
	logger *slog.Logger
}

// New creates an empty Bus. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:   make([]*Subscription, 0),
		logger: logger,
	}
}

// Subscribe registers o for all notifications published from now on.
func (b *Bus) Subscribe(o Observer) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{bus: b, id: b.nextID, observer: o}
	sub.active.Store(true)
	b.subs = append(b.subs, sub)
	metrics.Subscribers.Inc()

	return sub
}

// Notify delivers n to every active observer in subscription order and
// returns once all of them have been called. With no observers the
// notification is dropped.
func (b *Bus) Notify(n model.Notification) {
	// Snapshot so observers can subscribe, unsubscribe or publish re-entrantly.
	b.mu.Lock()
	snapshot := make([]*Subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	metrics.NotificationsPublished.WithLabelValues(string(n.Type)).Inc()

	for _, sub := range snapshot {
		// Skip observers unsubscribed earlier in this broadcast
		if !sub.active.Load() {
			continue
		}
		b.deliver(sub, n)
	}
}

// Count returns the number of live subscriptions.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// deliver calls one observer, isolating errors and panics.
func (b *Bus) deliver(sub *Subscription, n model.Notification) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ObserverFailures.WithLabelValues("panic").Inc()
			b.logger.Warn("notification observer panicked",
				"subscription", sub.id,
				"type", n.Type,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := sub.observer.Observe(n); err != nil {
		metrics.ObserverFailures.WithLabelValues("error").Inc()
		b.logger.Warn("notification observer failed",
			"subscription", sub.id,
			"type", n.Type,
			"error", err,
		)
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			metrics.Subscribers.Dec()
			return
		}
	}
}
