package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// TestConsoleEventWriter_Write tests the Write method with various event types.
func TestConsoleEventWriter_Write(t *testing.T) {
	tests := []struct {
		name       string
		event      Event
		wantLevel  string
		wantMsg    string
		wantFields []string
	}{
		{
			name: "reject event",
			event: Event{
				Type:      EventReject,
				Timestamp: time.Now().UTC(),
				Error:     "text: must not be empty",
			},
			wantLevel:  "WARN",
			wantMsg:    "Input rejected",
			wantFields: []string{"error"},
		},
		{
			name: "create event",
			event: Event{
				Type:      EventCreate,
				Timestamp: time.Now().UTC(),
				TaskID:    "t1",
				Text:      "Buy milk",
			},
			wantLevel:  "INFO",
			wantMsg:    "Task created",
			wantFields: []string{"task_id", "text"},
		},
		{
			name: "query event",
			event: Event{
				Type:      EventQuery,
				Timestamp: time.Now().UTC(),
				Filter:    "active",
				Sort:      "priority",
				Count:     4,
			},
			wantLevel:  "DEBU",
			wantMsg:    "View rendered",
			wantFields: []string{"filter", "sort", "count"},
		},
		{
			name: "clear event",
			event: Event{
				Type:      EventClear,
				Timestamp: time.Now().UTC(),
				Count:     2,
			},
			wantLevel: "INFO",
			wantMsg:   "Cleared 2 completed",
		},
		{
			name: "session start",
			event: Event{
				Type:      EventSessionStart,
				Timestamp: time.Now().UTC(),
			},
			wantLevel: "INFO",
			wantMsg:   "Session started",
		},
		{
			name: "unknown event type",
			event: Event{
				Type:      "unknown_type",
				Timestamp: time.Now().UTC(),
			},
			wantLevel: "DEBU",
			wantMsg:   "unknown_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writer := NewTestConsoleEventWriter(&buf)

			if err := writer.Write(tt.event); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("Expected output to contain level %q, got: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, tt.wantMsg) {
				t.Errorf("Expected output to contain message %q, got: %s", tt.wantMsg, output)
			}
			for _, field := range tt.wantFields {
				if !strings.Contains(output, field) {
					t.Errorf("Expected output to contain field %q, got: %s", field, output)
				}
			}
		})
	}
}

// TestParseLevel tests the ParseLevel function.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"fatal", "fatal", log.FatalLevel},
		{"unknown defaults to info", "unknown", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.level)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

// TestParseFormatter tests the ParseFormatter function.
func TestParseFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   log.Formatter
	}{
		{"json", "json", log.JSONFormatter},
		{"logfmt", "logfmt", log.LogfmtFormatter},
		{"text", "text", log.TextFormatter},
		{"unknown defaults to text", "unknown", log.TextFormatter},
		{"empty defaults to text", "", log.TextFormatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFormatter(tt.format)
			if got != tt.want {
				t.Errorf("ParseFormatter(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

// TestNewConsoleEventWriterFromConfig tests creation from config strings.
func TestNewConsoleEventWriterFromConfig(t *testing.T) {
	writer := NewConsoleEventWriterFromConfig("debug", "json", true, false, "test")
	if writer == nil {
		t.Fatal("NewConsoleEventWriterFromConfig() returned nil")
	}
	if writer.logger == nil {
		t.Fatal("NewConsoleEventWriterFromConfig() logger is nil")
	}
}

// TestDefaultConsoleOptions tests the default options.
func TestDefaultConsoleOptions(t *testing.T) {
	opts := DefaultConsoleOptions()

	if opts.Level != log.InfoLevel {
		t.Errorf("Level = %v, want %v", opts.Level, log.InfoLevel)
	}
	if opts.Formatter != log.TextFormatter {
		t.Errorf("Formatter = %v, want %v", opts.Formatter, log.TextFormatter)
	}
	if opts.ReportTimestamp {
		t.Error("ReportTimestamp = true, want false")
	}
	if opts.ReportCaller {
		t.Error("ReportCaller = true, want false")
	}
	if opts.Prefix != "todo" {
		t.Errorf("Prefix = %q, want \"todo\"", opts.Prefix)
	}
}

// TestNewConsoleEventWriterWithLogger tests creating a writer with a custom logger.
func TestNewConsoleEventWriterWithLogger(t *testing.T) {
	customLogger := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.DebugLevel,
	})
	writer := NewConsoleEventWriterWithLogger(customLogger)

	if writer == nil {
		t.Fatal("NewConsoleEventWriterWithLogger() returned nil")
	}
	if writer.logger != customLogger {
		t.Error("NewConsoleEventWriterWithLogger() did not use the provided logger")
	}
}
