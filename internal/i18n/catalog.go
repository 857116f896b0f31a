// Package i18n implements the translation collaborator: YAML message
// catalogs keyed by dotted paths, loaded lazily per locale, with lookup
// falling back to the declared fallback locale and finally to the key.
package i18n

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/edgeui/internal/model"
)

// Catalog holds translations for the supported locales.
type Catalog struct {
	mu        sync.RWMutex
	dir       string // optional override directory
	supported map[model.Locale]bool
	fallback  model.Locale
	active    model.Locale
	messages  map[model.Locale]map[string]string
	logger    *slog.Logger
}

// NewCatalog creates a Catalog. Files named <locale>.yaml in dir (if dir is
// not empty) take precedence over the bundled catalogs.
func NewCatalog(dir string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		dir:       dir,
		supported: make(map[model.Locale]bool),
		messages:  make(map[model.Locale]map[string]string),
		logger:    logger,
	}
}

// AddLocales declares supported locales.
func (c *Catalog) AddLocales(locales []model.Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range locales {
		c.supported[l] = true
	}
}

// SetFallback declares the fallback locale.
func (c *Catalog) SetFallback(l model.Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = l
}

// Use activates l. Its messages are loaded on first use; a load failure is
// logged and lookups fall back.
func (c *Catalog) Use(l model.Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.supported) > 0 && !c.supported[l] {
		c.logger.Warn("activating undeclared locale", "locale", l)
	}
	c.active = l
	c.ensureLoaded(l)
	if c.fallback != "" {
		c.ensureLoaded(c.fallback)
	}
}

// Active returns the active locale.
func (c *Catalog) Active() model.Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// T translates key in the active locale. With args the message is used as a
// printf format, rendered with the active locale's number conventions.
func (c *Catalog) T(key string, args ...any) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tmpl, l, ok := c.lookup(key)
	if !ok {
		// Unknown everywhere: show the key so nothing is silently swallowed
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return message.NewPrinter(Tag(l)).Sprintf(tmpl, args...)
}

// Has reports whether key resolves in the active or fallback locale.
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, _, ok := c.lookup(key)
	return ok
}

// lookup must be called with c.mu held.
func (c *Catalog) lookup(key string) (string, model.Locale, bool) {
	if msg, ok := c.messages[c.active][key]; ok {
		return msg, c.active, true
	}
	if msg, ok := c.messages[c.fallback][key]; ok {
		return msg, c.fallback, true
	}
	return "", c.active, false
}

// ensureLoaded must be called with c.mu held for writing.
func (c *Catalog) ensureLoaded(l model.Locale) {
	if _, ok := c.messages[l]; ok {
		return
	}

	msgs, err := c.load(l)
	if err != nil {
		c.logger.Warn("failed to load translations", "locale", l, "error", err)
		msgs = map[string]string{}
	}
	c.messages[l] = msgs
	c.logger.Debug("translations loaded", "locale", l, "count", len(msgs))
}

// load reads the override file if present, otherwise the bundled catalog.
func (c *Catalog) load(l model.Locale) (map[string]string, error) {
	var data []byte

	if c.dir != "" {
		path := filepath.Join(c.dir, string(l)+".yaml")
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = b
		case errors.Is(err, os.ErrNotExist):
			// Use bundled catalog
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if data == nil {
		b, ok := getEmbeddedCatalog(string(l))
		if !ok {
			return nil, fmt.Errorf("no catalog for locale %q", l)
		}
		data = b
	}

	return Parse(data)
}

// Parse decodes a YAML catalog and flattens nested maps into dotted keys:
//
//	session:
//	  ended: Session ended
//
// becomes "session.ended".
func Parse(data []byte) (map[string]string, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make(map[string]string)
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
			// Empty entries are skipped
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Tag maps a client locale to a BCP 47 language tag. The client uses "cz"
// for Czech; the language code is "cs".
func Tag(l model.Locale) language.Tag {
	switch l {
	case model.LocaleDE:
		return language.German
	case model.LocaleEN:
		return language.English
	case model.LocaleCZ:
		return language.Czech
	default:
		return language.Und
	}
}
