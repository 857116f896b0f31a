// Package format implements the locale-sensitive date and number formatting
// collaborator.
package format

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jmylchreest/edgeui/internal/i18n"
	"github.com/jmylchreest/edgeui/internal/model"
)

// conventions holds the per-locale rendering rules.
type conventions struct {
	date       string
	dateTime   string
	agoLabel   string
	aheadLabel string
	magnitudes []humanize.RelTimeMagnitude
}

var localeConventions = map[model.Locale]conventions{
	model.LocaleDE: {
		date:       "02.01.2006",
		dateTime:   "02.01.2006 15:04",
		agoLabel:   "vor",
		aheadLabel: "in",
		magnitudes: []humanize.RelTimeMagnitude{
			{D: time.Second, Format: "jetzt", DivBy: time.Second},
			{D: 2 * time.Second, Format: "%s 1 Sekunde", DivBy: 1},
			{D: time.Minute, Format: "%s %d Sekunden", DivBy: time.Second},
			{D: 2 * time.Minute, Format: "%s 1 Minute", DivBy: 1},
			{D: time.Hour, Format: "%s %d Minuten", DivBy: time.Minute},
			{D: 2 * time.Hour, Format: "%s 1 Stunde", DivBy: 1},
			{D: humanize.Day, Format: "%s %d Stunden", DivBy: time.Hour},
			{D: 2 * humanize.Day, Format: "%s 1 Tag", DivBy: 1},
			{D: humanize.Week, Format: "%s %d Tagen", DivBy: humanize.Day},
			{D: 2 * humanize.Week, Format: "%s 1 Woche", DivBy: 1},
			{D: humanize.Month, Format: "%s %d Wochen", DivBy: humanize.Week},
			{D: 2 * humanize.Month, Format: "%s 1 Monat", DivBy: 1},
			{D: humanize.Year, Format: "%s %d Monaten", DivBy: humanize.Month},
			{D: 2 * humanize.Year, Format: "%s 1 Jahr", DivBy: 1},
			{D: humanize.LongTime, Format: "%s %d Jahren", DivBy: humanize.Year},
		},
	},
	model.LocaleEN: {
		date:       "01/02/2006",
		dateTime:   "01/02/2006 3:04 PM",
		agoLabel:   "ago",
		aheadLabel: "from now",
		magnitudes: []humanize.RelTimeMagnitude{
			{D: time.Second, Format: "now", DivBy: time.Second},
			{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
			{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
			{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
			{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
			{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
			{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
			{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
			{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
			{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
			{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
			{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
			{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
			{D: 2 * humanize.Year, Format: "1 year %s", DivBy: 1},
			{D: humanize.LongTime, Format: "%d years %s", DivBy: humanize.Year},
		},
	},
	model.LocaleCZ: {
		date:       "2. 1. 2006",
		dateTime:   "2. 1. 2006 15:04",
		agoLabel:   "před",
		aheadLabel: "za",
		magnitudes: []humanize.RelTimeMagnitude{
			{D: time.Second, Format: "nyní", DivBy: time.Second},
			{D: time.Minute, Format: "%s %d s", DivBy: time.Second},
			{D: time.Hour, Format: "%s %d min", DivBy: time.Minute},
			{D: humanize.Day, Format: "%s %d h", DivBy: time.Hour},
			{D: humanize.Month, Format: "%s %d d", DivBy: humanize.Day},
			{D: humanize.Year, Format: "%s %d měs.", DivBy: humanize.Month},
			{D: humanize.LongTime, Format: "%s %d r.", DivBy: humanize.Year},
		},
	},
}

// Engine renders dates and numbers for the active locale.
type Engine struct {
	mu      sync.RWMutex
	locale  model.Locale
	conv    conventions
	printer *message.Printer
	now     func() time.Time
}

// NewEngine creates an Engine set to l.
func NewEngine(l model.Locale) *Engine {
	e := &Engine{now: time.Now}
	e.SetLocale(l)
	return e
}

// SetLocale switches the formatting conventions. Unknown locales fall back to
// model.DefaultLocale conventions.
func (e *Engine) SetLocale(l model.Locale) {
	conv, ok := localeConventions[l]
	if !ok {
		conv = localeConventions[model.DefaultLocale]
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.locale = l
	e.conv = conv
	e.printer = message.NewPrinter(i18n.Tag(l))
}

// Locale returns the active locale.
func (e *Engine) Locale() model.Locale {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locale
}

// Number formats n with locale digit grouping.
func (e *Engine) Number(n int64) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.printer.Sprintf("%d", n)
}

// Decimal formats f with the given number of fraction digits.
func (e *Engine) Decimal(f float64, digits int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))
}

// Date formats the calendar date of t.
func (e *Engine) Date(t time.Time) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return t.Format(e.conv.date)
}

// DateTime formats the date and wall-clock time of t.
func (e *Engine) DateTime(t time.Time) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return t.Format(e.conv.dateTime)
}

// Relative describes t relative to now ("5 minutes ago", "vor 5 Minuten").
func (e *Engine) Relative(t time.Time) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return humanize.CustomRelTime(t, e.now(), e.conv.agoLabel, e.conv.aheadLabel, e.conv.magnitudes)
}

// Bytes formats a byte count with SI units.
func (e *Engine) Bytes(n uint64) string {
	return humanize.Bytes(n)
}
