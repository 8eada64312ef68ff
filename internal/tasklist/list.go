package tasklist

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// List is an insertion-ordered collection of tasks. The zero value is
// ready to use. A List has a single writer and is not safe for
// concurrent use.
type List struct {
	tasks []Task
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Query describes one derived read: a completion filter, a
// case-insensitive search string, and a sort key.
type Query struct {
	Filter Filter
	Search string
	Sort   SortKey
}

// Add validates the draft and appends a new task with a fresh unique id.
// The stored text is the trimmed draft text; empty priority and category
// fall back to DefaultPriority and DefaultCategory; TagsRaw is split on
// commas with entries trimmed and empties dropped.
//
// A draft with empty text or an unknown priority is rejected with a
// *ValidationError and the collection is left unchanged.
func (l *List) Add(d Draft) (Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return Task{}, &ValidationError{Field: "text", Err: errors.New("must not be empty")}
	}

	priority := d.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return Task{}, &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("%q is not one of low, medium, high", string(d.Priority)),
		}
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = DefaultCategory
	}

	now := time.Now().UTC()
	task := Task{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		Priority:  priority,
		Category:  category,
		Notes:     d.Notes,
		Tags:      ParseTags(d.TagsRaw),
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if d.DueDate != nil {
		due := *d.DueDate
		task.DueDate = &due
	}

	l.tasks = append(l.tasks, task)
	return task, nil
}

// Toggle flips the completed flag of the task with the given id and
// reports whether a task matched. An unknown id is a no-op, not an error.
func (l *List) Toggle(id string) bool {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Completed = !l.tasks[i].Completed
			now := time.Now().UTC()
			l.tasks[i].UpdatedAt = &now
			return true
		}
	}
	return false
}

// Delete removes the task with the given id, preserving the order of the
// remaining tasks, and reports whether a task matched. An unknown id is a
// no-op, not an error.
func (l *List) Delete(id string) bool {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// View returns the tasks matching the query, in the query's order. It is
// a pure read: the collection is never mutated, and the result is a copy.
//
// The pipeline is filter, then search, then sort. Search keeps a task
// when the query is a case-insensitive substring of its text or of any
// tag. Priority sort is stable with high before medium before low. Date
// sort is stable ascending with undated tasks after all dated ones.
func (l *List) View(q Query) []Task {
	out := make([]Task, 0, len(l.tasks))
	search := strings.ToLower(q.Search)
	for _, t := range l.tasks {
		if !q.Filter.Matches(t) {
			continue
		}
		if !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return lessByDueDate(out[i], out[j])
		})
	}

	return out
}

// matchesSearch reports whether the lowercased query matches the task's
// text or any tag. An empty query matches everything.
func matchesSearch(t Task, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Text), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// lessByDueDate orders dated tasks ascending and places undated tasks
// after every dated one.
func lessByDueDate(a, b Task) bool {
	if a.DueDate == nil {
		return false
	}
	if b.DueDate == nil {
		return true
	}
	return a.DueDate.Before(*b.DueDate)
}

// Get returns a copy of the task with the given id.
func (l *List) Get(id string) (Task, bool) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return l.tasks[i], true
		}
	}
	return Task{}, false
}

// Tasks returns a snapshot of the collection in insertion order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	return len(l.tasks)
}

// Counts returns the number of active and completed tasks.
func (l *List) Counts() (active, completed int) {
	for i := range l.tasks {
		if l.tasks[i].Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}
