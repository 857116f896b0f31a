package model

import (
	"errors"
	"fmt"
	"strings"
)

// Locale identifies both the translation language and the regional formatting
// conventions of the client.
type Locale string

// Supported locales.
const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
	LocaleCZ Locale = "cz"
)

// DefaultLocale is used at startup and as the translation fallback.
const DefaultLocale = LocaleDE

// SupportedLocales is the only declaration of the locale set. Validation and
// the translator's supported-locale list are both derived from it.
var SupportedLocales = []Locale{LocaleDE, LocaleEN, LocaleCZ}

// ErrUnknownLocale is returned when an identifier is outside SupportedLocales.
var ErrUnknownLocale = errors.New("unknown locale")

// ParseLocale validates id against SupportedLocales.
// Surrounding whitespace and case are ignored; nothing is coerced to the default.
func ParseLocale(id string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(id)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownLocale, id, strings.Join(LocaleStrings(), ", "))
	}
	return l, nil
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	for _, s := range SupportedLocales {
		if s == l {
			return true
		}
	}
	return false
}

func (l Locale) String() string {
	return string(l)
}

// LocaleStrings returns SupportedLocales as plain strings.
func LocaleStrings() []string {
	out := make([]string, len(SupportedLocales))
	for i, l := range SupportedLocales {
		out[i] = string(l)
	}
	return out
}
