// Package output renders notifications for terminals and pipes.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/edgeui/internal/bus"
	"github.com/jmylchreest/edgeui/internal/model"
)

// Formatter writes a single notification.
type Formatter interface {
	Format(w io.Writer, n model.Notification) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Color bool                               // Style the type label with lipgloss
	Label func(model.NotificationType) string // Localized type label (default: type name)
	Time  func(time.Time) string             // Localized timestamp (default: omitted)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// Observer returns a bus observer that writes every notification to w.
func Observer(w io.Writer, f Formatter) bus.Observer {
	return bus.ObserverFunc(func(n model.Notification) error {
		return f.Format(w, n)
	})
}
