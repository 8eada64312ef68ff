package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Event types written to the session log.
const (
	EventSessionStart = "session_start"
	EventCreate       = "create"
	EventReject       = "reject"
	EventToggle       = "toggle"
	EventDelete       = "delete"
	EventClear        = "clear"
	EventQuery        = "query"
	EventSessionEnd   = "session_end"
)

// Event represents a single operation in a session.
type Event struct {
	// Type is the event type: session_start, create, reject, toggle,
	// delete, clear, query, session_end
	Type string `json:"type"`

	// Timestamp is when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// TaskID identifies the task (for create, toggle, delete)
	TaskID string `json:"task_id,omitempty"`

	// Text is the task text (for create) or the rejected input (for reject)
	Text string `json:"text,omitempty"`

	// Filter, Search and Sort describe the view (for query events)
	Filter string `json:"filter,omitempty"`
	Search string `json:"search,omitempty"`
	Sort   string `json:"sort,omitempty"`

	// Count carries a result size: tasks in a view, tasks cleared,
	// tasks seeded at session start
	Count int `json:"count,omitempty"`

	// Error is the failure message (for reject)
	Error string `json:"error,omitempty"`
}

// EventWriter writes session events.
type EventWriter interface {
	Write(event Event) error
}

// StreamEventWriter writes events as JSON lines to an io.Writer.
type StreamEventWriter struct {
	w io.Writer
}

// NewStreamEventWriter creates a new event writer that writes to an io.Writer.
func NewStreamEventWriter(w io.Writer) *StreamEventWriter {
	return &StreamEventWriter{w: w}
}

// Write writes an event to the underlying writer.
func (s *StreamEventWriter) Write(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	data = append(data, '\n')
	_, err = s.w.Write(data)
	return err
}

// MultiEventWriter writes to multiple event writers.
type MultiEventWriter struct {
	writers []EventWriter
}

// NewMultiEventWriter creates a new multi-event writer.
func NewMultiEventWriter(writers ...EventWriter) *MultiEventWriter {
	return &MultiEventWriter{writers: writers}
}

// Write writes the event to all underlying writers.
func (m *MultiEventWriter) Write(event Event) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multi-writer errors: %v", errs)
	}
	return nil
}

// NullEventWriter is a no-op event writer.
type NullEventWriter struct{}

// Write does nothing.
func (NullEventWriter) Write(event Event) error {
	return nil
}

type lockedEventWriter struct {
	mu     sync.Mutex
	writer EventWriter
}

func (l *lockedEventWriter) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Write(event)
}

// Normalize wraps a writer so it is safe for concurrent use; a nil
// writer becomes a no-op.
func Normalize(writer EventWriter) EventWriter {
	if writer == nil {
		return NullEventWriter{}
	}
	return &lockedEventWriter{writer: writer}
}
