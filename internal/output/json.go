package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/edgeui/internal/model"
)

// JSONFormatter writes one JSON object per line.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes n as a single JSON line.
func (f *JSONFormatter) Format(w io.Writer, n model.Notification) error {
	return json.NewEncoder(w).Encode(n)
}
