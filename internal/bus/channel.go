package bus

import (
	"sync"

	"github.com/jmylchreest/edgeui/internal/metrics"
	"github.com/jmylchreest/edgeui/internal/model"
)

// DefaultChannelBuffer is the buffer size used when SubscribeChan gets a size < 1.
const DefaultChannelBuffer = 16

// chanObserver forwards notifications into a buffered channel without
// blocking the broadcast.
type chanObserver struct {
	mu     sync.Mutex
	ch     chan model.Notification
	closed bool
}

func (c *chanObserver) Observe(n model.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.ch <- n:
	default:
		// Receiver is behind
		metrics.ObserverDrops.Inc()
	}
	return nil
}

func (c *chanObserver) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}

// SubscribeChan subscribes a channel-backed observer for consumers running on
// their own goroutine. The channel is closed when the subscription is
// cancelled. Notifications that arrive while the buffer is full are dropped.
func (b *Bus) SubscribeChan(buffer int) (*Subscription, <-chan model.Notification) {
	if buffer < 1 {
		buffer = DefaultChannelBuffer
	}

	obs := &chanObserver{ch: make(chan model.Notification, buffer)}
	sub := b.Subscribe(obs)
	sub.cleanup = obs.close

	return sub, obs.ch
}
