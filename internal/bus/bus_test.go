package bus

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/edgeui/internal/model"
)

// recorder collects every notification it observes.
type recorder struct {
	got []model.Notification
}

func (r *recorder) Observe(n model.Notification) error {
	r.got = append(r.got, n)
	return nil
}

func (r *recorder) messages() []string {
	out := make([]string, len(r.got))
	for i, n := range r.got {
		out[i] = n.Message
	}
	return out
}

func note(msg string) model.Notification {
	return model.Notification{Type: model.TypeInfo, Message: msg}
}

func TestBus_NotifyWithoutObservers(t *testing.T) {
	b := New(nil)
	assert.NotPanics(t, func() {
		b.Notify(note("dropped"))
	})
	assert.Equal(t, 0, b.Count())
}

func TestBus_OnlyCurrentSubscribersReceive(t *testing.T) {
	b := New(nil)

	before := &recorder{}
	b.Subscribe(before)

	b.Notify(model.Notification{Type: model.TypeSuccess, Message: "saved"})

	after := &recorder{}
	b.Subscribe(after)

	require.Len(t, before.got, 1)
	assert.Equal(t, model.TypeSuccess, before.got[0].Type)
	assert.Equal(t, "saved", before.got[0].Message)
	assert.Empty(t, after.got, "late subscriber must not see earlier notifications")
}

func TestBus_SubscriptionOrder(t *testing.T) {
	b := New(nil)

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		b.Subscribe(ObserverFunc(func(model.Notification) error {
			order = append(order, name)
			return nil
		}))
	}

	b.Notify(note("x"))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_EmissionOrder(t *testing.T) {
	b := New(nil)
	r := &recorder{}
	b.Subscribe(r)

	for i := 0; i < 5; i++ {
		b.Notify(note(fmt.Sprintf("m%d", i)))
	}

	assert.Equal(t, []string{"m0", "m1", "m2", "m3", "m4"}, r.messages())
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New(nil)
	r := &recorder{}
	sub := b.Subscribe(r)
	assert.True(t, sub.Active())

	b.Notify(note("one"))
	sub.Unsubscribe()
	b.Notify(note("two"))

	assert.Equal(t, []string{"one"}, r.messages())
	assert.False(t, sub.Active())
	assert.Equal(t, 0, b.Count())

	// Idempotent
	assert.NotPanics(t, sub.Unsubscribe)
}

func TestBus_ObserverErrorIsIsolated(t *testing.T) {
	b := New(nil)

	b.Subscribe(ObserverFunc(func(model.Notification) error {
		return errors.New("render failed")
	}))
	r := &recorder{}
	b.Subscribe(r)

	b.Notify(note("still delivered"))
	assert.Equal(t, []string{"still delivered"}, r.messages())
}

func TestBus_ObserverPanicIsIsolated(t *testing.T) {
	b := New(nil)

	b.Subscribe(ObserverFunc(func(model.Notification) error {
		panic("boom")
	}))
	r := &recorder{}
	b.Subscribe(r)

	assert.NotPanics(t, func() {
		b.Notify(note("survives"))
	})
	assert.Equal(t, []string{"survives"}, r.messages())
}

func TestBus_UnsubscribeDuringBroadcast(t *testing.T) {
	b := New(nil)

	var second *Subscription
	r2 := &recorder{}

	// First observer cancels the second mid-broadcast
	b.Subscribe(ObserverFunc(func(model.Notification) error {
		second.Unsubscribe()
		return nil
	}))
	second = b.Subscribe(r2)

	b.Notify(note("x"))
	assert.Empty(t, r2.got, "observer removed earlier in the broadcast must be skipped")
	assert.Equal(t, 1, b.Count())
}

func TestBus_SelfUnsubscribeCompletesCurrentCall(t *testing.T) {
	b := New(nil)

	var sub *Subscription
	calls := 0
	sub = b.Subscribe(ObserverFunc(func(model.Notification) error {
		calls++
		sub.Unsubscribe()
		return nil
	}))

	b.Notify(note("a"))
	b.Notify(note("b"))
	assert.Equal(t, 1, calls)
}

func TestBus_ReentrantNotify(t *testing.T) {
	b := New(nil)
	r := &recorder{}

	b.Subscribe(ObserverFunc(func(n model.Notification) error {
		if n.Message == "outer" {
			b.Notify(note("inner"))
		}
		return nil
	}))
	b.Subscribe(r)

	b.Notify(note("outer"))
	assert.ElementsMatch(t, []string{"outer", "inner"}, r.messages())
}

func TestBus_SubscribeChan(t *testing.T) {
	b := New(nil)
	sub, ch := b.SubscribeChan(2)

	b.Notify(note("a"))
	b.Notify(note("b"))
	b.Notify(note("c")) // buffer full, dropped

	assert.Equal(t, "a", (<-ch).Message)
	assert.Equal(t, "b", (<-ch).Message)

	sub.Unsubscribe()
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")

	assert.NotPanics(t, func() {
		b.Notify(note("after close"))
	})
}
