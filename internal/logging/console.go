package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleOptions holds configuration for console logging.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console logging.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "todo",
	}
}

// ConsoleEventWriter implements EventWriter using charmbracelet/log for
// colorful, leveled, human-readable console output.
type ConsoleEventWriter struct {
	logger *log.Logger
}

// NewConsoleEventWriter creates a new console event writer with the given options.
// Output goes to stderr so the rendered view owns stdout.
func NewConsoleEventWriter(opts ConsoleOptions) *ConsoleEventWriter {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
	return &ConsoleEventWriter{logger: logger}
}

// NewConsoleEventWriterWithLogger creates a new console event writer with a custom logger.
// This is useful for testing or when you want to redirect output.
func NewConsoleEventWriterWithLogger(logger *log.Logger) *ConsoleEventWriter {
	return &ConsoleEventWriter{logger: logger}
}

// Write writes an event to the console using charmbracelet/log.
func (c *ConsoleEventWriter) Write(event Event) error {
	msg := formatMessage(event)
	fields := extractFields(event)

	switch event.Type {
	case EventReject:
		c.logger.Warn(msg, fields...)
	case EventCreate, EventToggle, EventDelete, EventClear:
		c.logger.Info(msg, fields...)
	case EventSessionStart, EventSessionEnd:
		c.logger.Info(msg, fields...)
	case EventQuery:
		c.logger.Debug(msg, fields...)
	default:
		c.logger.Debug(msg, fields...)
	}
	return nil
}

// extractFields extracts structured fields from an Event for charmbracelet/log.
func extractFields(event Event) []any {
	var fields []any
	if event.TaskID != "" {
		fields = append(fields, "task_id", event.TaskID)
	}
	if event.Text != "" {
		fields = append(fields, "text", event.Text)
	}
	if event.Filter != "" {
		fields = append(fields, "filter", event.Filter)
	}
	if event.Search != "" {
		fields = append(fields, "search", event.Search)
	}
	if event.Sort != "" {
		fields = append(fields, "sort", event.Sort)
	}
	if event.Count != 0 {
		fields = append(fields, "count", event.Count)
	}
	if event.Error != "" {
		fields = append(fields, "error", event.Error)
	}
	return fields
}

// formatMessage formats a log message from an Event.
func formatMessage(event Event) string {
	switch event.Type {
	case EventSessionStart:
		return "Session started"
	case EventSessionEnd:
		return "Session ended"
	case EventCreate:
		return "Task created"
	case EventReject:
		return "Input rejected"
	case EventToggle:
		return "Task toggled"
	case EventDelete:
		return "Task deleted"
	case EventClear:
		return fmt.Sprintf("Cleared %d completed", event.Count)
	case EventQuery:
		return "View rendered"
	default:
		return event.Type
	}
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// NewConsoleEventWriterFromConfig creates a ConsoleEventWriter from string
// configuration values. This is useful when loading config from TOML or
// environment variables.
func NewConsoleEventWriterFromConfig(level, format string, timestamps, caller bool, prefix string) *ConsoleEventWriter {
	opts := ConsoleOptions{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: timestamps,
		ReportCaller:    caller,
		Prefix:          prefix,
	}
	return NewConsoleEventWriter(opts)
}

// NewTestConsoleEventWriter creates a console event writer that writes to a
// specific writer for testing purposes. It uses minimal formatting for easier
// test assertions.
func NewTestConsoleEventWriter(w io.Writer) *ConsoleEventWriter {
	logger := log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	return &ConsoleEventWriter{logger: logger}
}
