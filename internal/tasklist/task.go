package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/zaim-abbasi/to-do-application/internal/utils"
)

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Defaults applied by Add when a draft leaves the field empty.
const (
	DefaultPriority = PriorityMedium
	DefaultCategory = "general"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the sort rank for p. Lower rank sorts first, so high
// priority tasks order before medium before low. Unknown values rank last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority parses a priority from user input. Input is trimmed and
// lowercased; an empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPriority, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (expected low, medium, or high)", s)
	}
	return p, nil
}

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Matches reports whether the task passes the filter. The zero value
// behaves like FilterAll.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseFilter parses a filter from user input. Input is trimmed and
// lowercased; an empty string yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("invalid filter %q (expected all, active, or completed)", s)
}

// SortKey selects the ordering of a view.
type SortKey string

const (
	// SortNone keeps insertion order.
	SortNone     SortKey = ""
	SortPriority SortKey = "priority"
	SortDate     SortKey = "date"
)

// ParseSortKey parses a sort key from user input. Input is trimmed and
// lowercased; "" and "none" yield SortNone.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case SortNone, "none":
		return SortNone, nil
	case SortPriority, SortDate:
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key %q (expected priority, date, or none)", s)
}

// Task represents a single item in the list.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	Category  string     `json:"category"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Draft carries the raw input fields for one task before validation.
// TagsRaw is the unparsed comma-separated tag input.
type Draft struct {
	Text     string
	Priority Priority
	Category string
	DueDate  *time.Time
	Notes    string
	TagsRaw  string
}

// ValidationError reports a rejected draft field.
type ValidationError struct {
	Field string // draft field that failed validation
	Err   error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseTags splits a comma-separated tag input, trims each entry, and
// drops empties. The result never contains an empty string.
func ParseTags(raw string) []string {
	return utils.SplitAndTrim(raw, ",")
}

// ParseDueDate parses an optional YYYY-MM-DD date. Empty input yields nil.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", s)
	}
	return &d, nil
}
