// Package model defines the core value types shared by edgeui components.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// NotificationType classifies a notification for presentation.
type NotificationType string

// Notification types, mirroring the toast levels of the web client.
const (
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
	TypeWarning NotificationType = "warning"
	TypeInfo    NotificationType = "info"
)

// NotificationTypes lists every valid type in display order.
var NotificationTypes = []NotificationType{TypeSuccess, TypeError, TypeWarning, TypeInfo}

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	default:
		return false
	}
}

// ParseNotificationType converts a user-supplied string into a NotificationType.
// Matching is case-insensitive; unknown values return ErrInvalidType.
func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Notification is a short-lived, user-facing message.
// It is a value type: once handed to the bus it is never mutated.
type Notification struct {
	// Optional metadata (zero values are valid)
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`

	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

// Validation errors.
var (
	ErrInvalidType  = errors.New("notification type must be success, error, warning or info")
	ErrEmptyMessage = errors.New("notification message cannot be empty")
)

// NewNotification creates a Notification with a generated ULID and creation time.
func NewNotification(t NotificationType, message string) (Notification, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return Notification{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return Notification{
		ID:        id.String(),
		CreatedAt: now,
		Type:      t,
		Message:   message,
	}, nil
}

// ErrorNotification builds an error notification from err.
// The ID is left empty if ULID generation fails; the message is what matters.
func ErrorNotification(err error) Notification {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	n, genErr := NewNotification(TypeError, msg)
	if genErr != nil {
		return Notification{CreatedAt: time.Now(), Type: TypeError, Message: msg}
	}
	return n
}

// Validate checks that the notification has a known type and a message.
func (n Notification) Validate() error {
	if !n.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// String renders the notification as "type: message".
func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.Type, n.Message)
}
