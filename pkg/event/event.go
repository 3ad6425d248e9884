// Package event defines the diagnostic event model shared by the
// instrumentation pipeline and the reporting client.
//
// An Event is a mutable record. It is built by the capture path, passed
// through the registered event processors of the current scope, and then
// handed to the Capturer for transport. This package does not serialize
// or transmit events; that belongs to the reporting client.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level classifies the severity of an event.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// RedactionReason states why a value was replaced by a RedactedValue.
type RedactionReason string

const (
	// ReasonSizeLimit marks a body that exceeded the configured size budget.
	ReasonSizeLimit RedactionReason = "size-limit"

	// ReasonRawUnparsed marks bytes that were present but not structured
	// (unparseable bodies and file upload contents).
	ReasonRawUnparsed RedactionReason = "raw-unparsed"

	// ReasonUnreadableFile marks an upload whose size could not be determined.
	ReasonUnreadableFile RedactionReason = "unreadable-file"
)

// RedactedValue stands in for data that was elided for size or PII reasons.
// It carries only the original length and the reason, never the raw bytes.
type RedactedValue struct {
	Placeholder string          `json:"placeholder"`
	Length      int64           `json:"length"`
	Reason      RedactionReason `json:"reason"`
}

// Redacted builds a RedactedValue with an empty placeholder.
func Redacted(reason RedactionReason, length int64) *RedactedValue {
	return &RedactedValue{Placeholder: "", Length: length, Reason: reason}
}

// RequestInfo is the redaction-aware payload extracted from a request.
// Data is either a parsed structure (map, JSON value) or a *RedactedValue.
type RequestInfo struct {
	Cookies map[string]string `json:"cookies,omitempty"`
	Data    any               `json:"data,omitempty"`
}

// User identifies the authenticated principal of a request.
// All fields are optional; only fields the host's auth layer resolved
// are populated.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u User) IsEmpty() bool {
	return u == User{}
}

// Mechanism records how an error reached the capture path.
// Handled is true when the host framework converted the error into an
// HTTP response itself, false when it escaped the application entirely.
type Mechanism struct {
	Type    string `json:"type"`
	Handled bool   `json:"handled"`
}

// ExceptionInfo describes a captured error.
type ExceptionInfo struct {
	// Type is the dynamic Go type of the error value.
	Type string `json:"type"`

	// Value is the error message.
	Value string `json:"value"`
}

// Breadcrumb is a trail entry recorded on the scope before an event.
type Breadcrumb struct {
	Timestamp time.Time      `json:"timestamp"`
	Category  string         `json:"category,omitempty"`
	Message   string         `json:"message,omitempty"`
	Level     Level          `json:"level,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Event is one diagnostic report. Processors mutate it in place (or return
// a replacement) before it reaches the Capturer.
type Event struct {
	EventID     string         `json:"event_id"`
	Timestamp   time.Time      `json:"timestamp"`
	Level       Level          `json:"level"`
	Transaction string         `json:"transaction,omitempty"`
	Request     *RequestInfo   `json:"request,omitempty"`
	Exception   *ExceptionInfo `json:"exception,omitempty"`
	Mechanism   *Mechanism     `json:"mechanism,omitempty"`
	User        *User          `json:"user,omitempty"`
	Tags        map[string]string
	Breadcrumbs []Breadcrumb
	Extra       map[string]any
}

// New creates an empty event with a fresh ID and timestamp.
func New(level Level) *Event {
	return &Event{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Level:     level,
	}
}

// FromError builds an error-level event describing err.
func FromError(err error) *Event {
	ev := New(LevelError)
	ev.Exception = &ExceptionInfo{
		Type:  fmt.Sprintf("%T", err),
		Value: err.Error(),
	}
	return ev
}

// SetTag sets a tag on the event, allocating the tag map on first use.
func (e *Event) SetTag(key, value string) {
	if e.Tags == nil {
		e.Tags = make(map[string]string)
	}
	e.Tags[key] = value
}

// Processor receives an event about to be reported and returns the
// (possibly mutated) event. Returning nil is treated as a processor
// failure and does not prevent delivery of the original event.
type Processor func(*Event) *Event

// Capturer is the outbound capability of the reporting client.
// Implementations own serialization and transport.
type Capturer interface {
	Capture(ctx context.Context, ev *Event)
}
