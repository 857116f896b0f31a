package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/edgeui/internal/bus"
	"github.com/jmylchreest/edgeui/internal/model"
)

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, FormatterOptions{}))
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, FormatterOptions{}))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("unknown", FormatterOptions{}))
}

func TestPlainFormatter(t *testing.T) {
	tests := []struct {
		name string
		opts FormatterOptions
		n    model.Notification
		want string
	}{
		{
			name: "bare",
			n:    model.Notification{Type: model.TypeSuccess, Message: "saved"},
			want: "[success] saved\n",
		},
		{
			name: "flattens whitespace",
			n:    model.Notification{Type: model.TypeInfo, Message: "line one\n  line two"},
			want: "[info] line one line two\n",
		},
		{
			name: "localized label and time",
			opts: FormatterOptions{
				Label: func(t model.NotificationType) string { return strings.ToUpper(string(t)) },
				Time:  func(t time.Time) string { return t.UTC().Format("15:04") },
			},
			n: model.Notification{
				Type:      model.TypeError,
				Message:   "offline",
				CreatedAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
			},
			want: "09:30 [ERROR] offline\n",
		},
		{
			name: "time skipped when unset",
			opts: FormatterOptions{Time: func(time.Time) string { return "never" }},
			n:    model.Notification{Type: model.TypeWarning, Message: "hot"},
			want: "[warning] hot\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewPlainFormatter(tt.opts).Format(&buf, tt.n))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPlainFormatter_ColorKeepsText(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(FormatterOptions{Color: true})
	require.NoError(t, f.Format(&buf, model.Notification{Type: model.TypeError, Message: "boom"}))

	assert.Contains(t, buf.String(), "[error]")
	assert.Contains(t, buf.String(), "boom")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	n := model.Notification{ID: "01HZX", Type: model.TypeInfo, Message: "hello"}
	require.NoError(t, NewJSONFormatter().Format(&buf, n))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "info", decoded["type"])
	assert.Equal(t, "hello", decoded["message"])
	assert.Equal(t, "01HZX", decoded["id"])
	_, hasCreated := decoded["created_at"]
	assert.False(t, hasCreated, "zero created_at is omitted")
}

func TestObserver(t *testing.T) {
	var buf bytes.Buffer
	b := bus.New(nil)
	b.Subscribe(Observer(&buf, NewPlainFormatter(FormatterOptions{})))

	b.Notify(model.Notification{Type: model.TypeSuccess, Message: "one"})
	b.Notify(model.Notification{Type: model.TypeInfo, Message: "two"})

	assert.Equal(t, "[success] one\n[info] two\n", buf.String())
}
