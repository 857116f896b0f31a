package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/edgeui/internal/model"
)

var typeStyles = map[model.NotificationType]lipgloss.Style{
	model.TypeSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	model.TypeError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	model.TypeWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	model.TypeInfo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
}

// PlainFormatter writes "[Label] message" lines, optionally prefixed with a
// timestamp.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes n as one line. Newlines in the message are flattened.
func (f *PlainFormatter) Format(w io.Writer, n model.Notification) error {
	var sb strings.Builder

	if f.opts.Time != nil && !n.CreatedAt.IsZero() {
		sb.WriteString(f.opts.Time(n.CreatedAt))
		sb.WriteString(" ")
	}

	label := string(n.Type)
	if f.opts.Label != nil {
		label = f.opts.Label(n.Type)
	}
	label = "[" + label + "]"
	if style, ok := typeStyles[n.Type]; ok && f.opts.Color {
		label = style.Render(label)
	}
	sb.WriteString(label)

	sb.WriteString(" ")
	sb.WriteString(strings.Join(strings.Fields(n.Message), " "))
	sb.WriteString("\n")

	_, err := fmt.Fprint(w, sb.String())
	return err
}
