// Package locale keeps the translation engine and the formatting engine on
// the same active locale.
package locale

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/edgeui/internal/metrics"
	"github.com/jmylchreest/edgeui/internal/model"
)

// Translator is the translation collaborator. Resource loading is its own
// business and may happen lazily after Use returns.
type Translator interface {
	// AddLocales declares the locales the application supports.
	AddLocales(locales []model.Locale)

	// SetFallback declares the locale used when a translation is missing.
	SetFallback(l model.Locale)

	// Use makes l the active translation language.
	Use(l model.Locale)
}

// Formatter is the locale-sensitive date and number formatting collaborator.
type Formatter interface {
	SetLocale(l model.Locale)
}

// ErrUnsupportedLocale is returned by SetLocale for identifiers outside
// model.SupportedLocales.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Controller switches both collaborators as one change.
type Controller struct {
	mu         sync.Mutex
	translator Translator
	formatter  Formatter
	current    model.Locale
	fallback   model.Locale
	logger     *slog.Logger
}

// New declares the supported locales and fallback to t and activates the
// fallback on both collaborators.
func New(t Translator, f Formatter, fallback model.Locale, logger *slog.Logger) (*Controller, error) {
	if !fallback.Valid() {
		return nil, fmt.Errorf("%w: fallback %q", ErrUnsupportedLocale, fallback)
	}
	if logger == nil {
		logger = slog.Default()
	}

	t.AddLocales(model.SupportedLocales)
	t.SetFallback(fallback)

	c := &Controller{
		translator: t,
		formatter:  f,
		fallback:   fallback,
		logger:     logger,
	}
	c.apply(fallback)

	return c, nil
}

// SetLocale validates id and switches both collaborators to it. An unknown
// id is rejected and leaves the active locale untouched.
func (c *Controller) SetLocale(id string) error {
	l, err := model.ParseLocale(id)
	if err != nil {
		metrics.LocaleSwitches.WithLabelValues("invalid", "rejected").Inc()
		return fmt.Errorf("%w: %w", ErrUnsupportedLocale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.current
	c.apply(l)
	metrics.LocaleSwitches.WithLabelValues(string(l), "accepted").Inc()
	c.logger.Debug("locale switched", "from", previous, "to", l)

	return nil
}

// Current returns the active locale.
func (c *Controller) Current() model.Locale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Fallback returns the locale declared as translation fallback.
func (c *Controller) Fallback() model.Locale {
	return c.fallback
}

// apply must be called with c.mu held (or before c is shared).
func (c *Controller) apply(l model.Locale) {
	c.translator.Use(l)
	c.formatter.SetLocale(l)
	c.current = l
}
