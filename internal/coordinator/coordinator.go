// Package coordinator is the session and notification coordinator shared by
// every feature area of the client. It owns the notification bus, the
// credential store and the locale controller, and is constructed explicitly
// at the composition root.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmylchreest/edgeui/internal/bus"
	"github.com/jmylchreest/edgeui/internal/credential"
	"github.com/jmylchreest/edgeui/internal/kv"
	"github.com/jmylchreest/edgeui/internal/locale"
	"github.com/jmylchreest/edgeui/internal/model"
)

// Options are the collaborators injected into a Coordinator.
type Options struct {
	Translator locale.Translator
	Formatter  locale.Formatter
	Storage    kv.Store

	// Fallback defaults to model.DefaultLocale.
	Fallback model.Locale
	// TokenTTL is the lifetime of stored tokens (0 = until removed).
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// Coordinator exposes notify/subscribe, token access and locale selection.
type Coordinator struct {
	bus     *bus.Bus
	creds   *credential.Store
	locales *locale.Controller
	storage kv.Store
	logger  *slog.Logger
}

// New wires a Coordinator from opts.
func New(opts Options) (*Coordinator, error) {
	if opts.Translator == nil {
		return nil, errors.New("coordinator: translator is required")
	}
	if opts.Formatter == nil {
		return nil, errors.New("coordinator: formatter is required")
	}
	if opts.Storage == nil {
		return nil, errors.New("coordinator: storage is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = model.DefaultLocale
	}

	lc, err := locale.New(opts.Translator, opts.Formatter, fallback, logger)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	return &Coordinator{
		bus: bus.New(logger),
		creds: credential.NewStore(opts.Storage,
			credential.WithTTL(opts.TokenTTL),
			credential.WithLogger(logger),
		),
		locales: lc,
		storage: opts.Storage,
		logger:  logger,
	}, nil
}

// Notify broadcasts n to all current subscribers.
func (c *Coordinator) Notify(n model.Notification) {
	c.bus.Notify(n)
}

// Subscribe registers o for future notifications.
func (c *Coordinator) Subscribe(o bus.Observer) *bus.Subscription {
	return c.bus.Subscribe(o)
}

// SubscribeChan registers a channel-backed observer.
func (c *Coordinator) SubscribeChan(buffer int) (*bus.Subscription, <-chan model.Notification) {
	return c.bus.SubscribeChan(buffer)
}

// Token returns the stored session token; ok is false when there is none.
func (c *Coordinator) Token(ctx context.Context) (string, bool, error) {
	return c.creds.Token(ctx)
}

// SetToken stores the session token.
func (c *Coordinator) SetToken(ctx context.Context, token string) error {
	return c.creds.SetToken(ctx, token)
}

// RemoveToken deletes the session token.
func (c *Coordinator) RemoveToken(ctx context.Context) error {
	return c.creds.RemoveToken(ctx)
}

// SetLocale switches translation and formatting to id.
func (c *Coordinator) SetLocale(id string) error {
	return c.locales.SetLocale(id)
}

// Locale returns the active locale.
func (c *Coordinator) Locale() model.Locale {
	return c.locales.Current()
}

// HandleError reports err to the user as an error notification. It is the
// optional uncaught-error sink; the composition root decides whether to use
// it.
func (c *Coordinator) HandleError(err error) {
	if err == nil {
		return
	}
	c.logger.Error("unhandled error", "error", err)
	c.bus.Notify(model.ErrorNotification(err))
}

// Recover converts a panic into an error notification. Use it deferred:
//
//	defer coord.Recover()
func (c *Coordinator) Recover() {
	if r := recover(); r != nil {
		c.HandleError(panicError(r))
	}
}

// Guard runs fn and reports its failure through HandleError. A panic in fn
// is recovered and returned as an error.
func (c *Coordinator) Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
			c.HandleError(err)
		}
	}()

	if err = fn(); err != nil {
		c.HandleError(err)
	}
	return err
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// Close releases the storage collaborator if it holds resources.
func (c *Coordinator) Close() error {
	if closer, ok := c.storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
