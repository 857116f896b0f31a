// Package input reads notifications from external sources.
package input

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/jmylchreest/edgeui/internal/model"
)

// LineReader reads one JSON notification per line, e.g. from stdin:
//
//	{"type": "warning", "message": "battery below 10%"}
type LineReader struct {
	reader io.Reader
	logger *slog.Logger
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader, logger *slog.Logger) *LineReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &LineReader{reader: r, logger: logger}
}

// lineEntry is the accepted input format. Type may be omitted (info).
type lineEntry struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Run calls emit for every valid line until EOF or ctx is done. Malformed or
// invalid lines are logged and skipped. Returns the number of lines emitted.
func (r *LineReader) Run(ctx context.Context, emit func(model.Notification)) (int, error) {
	scanner := bufio.NewScanner(r.reader)
	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	count := 0
	lineNum := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		lineNum++

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		n, err := parseLine(line)
		if err != nil {
			r.logger.Warn("skipping notification line", "line", lineNum, "error", err)
			continue
		}

		emit(n)
		count++
	}

	if err := scanner.Err(); err != nil {
		return count, &Error{Source: "lines", Message: "failed to read input", Err: err}
	}
	return count, nil
}

func parseLine(line []byte) (model.Notification, error) {
	var entry lineEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return model.Notification{}, &Error{Source: "lines", Message: "invalid JSON", Err: err}
	}

	typ := model.TypeInfo
	if entry.Type != "" {
		parsed, err := model.ParseNotificationType(entry.Type)
		if err != nil {
			return model.Notification{}, err
		}
		typ = parsed
	}

	n, err := model.NewNotification(typ, entry.Message)
	if err != nil {
		n = model.Notification{CreatedAt: time.Now(), Type: typ, Message: entry.Message}
	}
	if err := n.Validate(); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// Error represents an input-related error.
type Error struct {
	Source  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
