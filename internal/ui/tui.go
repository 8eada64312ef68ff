// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaim-abbasi/to-do-application/internal/logging"
	"github.com/zaim-abbasi/to-do-application/internal/tasklist"
)

// Option configures the interactive session.
type Option func(*uiConfig)

// uiConfig holds the session configuration.
type uiConfig struct {
	filter          tasklist.Filter
	sort            tasklist.SortKey
	defaultPriority tasklist.Priority
	defaultCategory string
	events          logging.EventWriter
}

// WithFilter sets the initial completion filter.
func WithFilter(f tasklist.Filter) Option {
	return func(c *uiConfig) {
		c.filter = f
	}
}

// WithSort sets the initial sort key.
func WithSort(s tasklist.SortKey) Option {
	return func(c *uiConfig) {
		c.sort = s
	}
}

// WithDefaults sets the priority and category the add form is
// pre-filled with.
func WithDefaults(priority tasklist.Priority, category string) Option {
	return func(c *uiConfig) {
		c.defaultPriority = priority
		c.defaultCategory = category
	}
}

// WithEvents sets the writer that receives one event per operation.
func WithEvents(w logging.EventWriter) Option {
	return func(c *uiConfig) {
		c.events = w
	}
}

// Run starts the interactive session on list and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, list *tasklist.List, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, NewModel(list, opts...))
}

// runProgram runs a bubbletea program with the given model.
func runProgram(ctx context.Context, model Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// IsTTY checks if the given file is a terminal.
func IsTTY(output *os.File) bool {
	info, err := output.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// mode selects which screen handles input.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
	modeConfirm
	modeHelp
)

// confirmKind selects what a pending y/n confirmation applies to.
type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmClear
)

// Model is the bubbletea model for the task view. All state lives in the
// value; Update returns the modified copy.
type Model struct {
	list   *tasklist.List
	events logging.EventWriter

	mode   mode
	cursor int
	tasks  []tasklist.Task

	filter tasklist.Filter
	sort   tasklist.SortKey
	search string

	form        addForm
	searchInput textinput.Model

	confirm      confirmKind
	pendingID    string
	pendingText  string
	pendingCount int

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel builds the initial model over list.
func NewModel(list *tasklist.List, opts ...Option) Model {
	c := &uiConfig{
		filter:          tasklist.FilterAll,
		sort:            tasklist.SortNone,
		defaultPriority: tasklist.DefaultPriority,
		defaultCategory: tasklist.DefaultCategory,
	}
	for _, opt := range opts {
		opt(c)
	}

	search := textinput.New()
	search.Placeholder = "text or tag"
	search.Prompt = "search: "
	search.CharLimit = 128
	search.Width = 40

	m := Model{
		list:        list,
		events:      logging.Normalize(c.events),
		filter:      c.filter,
		sort:        c.sort,
		form:        newAddForm(c.defaultPriority, c.defaultCategory),
		searchInput: search,
	}
	return m.refresh()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// updateList handles keys on the main list screen.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "a":
		m.mode = modeAdd
		m.status = ""
		var cmd tea.Cmd
		m.form, cmd = m.form.reset()
		return m, cmd
	case " ", "x":
		m = m.toggleCurrent()
	case "d":
		if task, ok := m.currentTask(); ok {
			m.mode = modeConfirm
			m.confirm = confirmDelete
			m.pendingID = task.ID
			m.pendingText = task.Text
		}
	case "c":
		_, completed := m.list.Counts()
		if completed == 0 {
			m.status = "no completed tasks to clear"
			m.statusErr = false
			break
		}
		m.mode = modeConfirm
		m.confirm = confirmClear
		m.pendingCount = completed
	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()
	case "f":
		m.filter = nextFilter(m.filter)
		m = m.refresh()
	case "1":
		m.filter = tasklist.FilterAll
		m = m.refresh()
	case "2":
		m.filter = tasklist.FilterActive
		m = m.refresh()
	case "3":
		m.filter = tasklist.FilterCompleted
		m = m.refresh()
	case "s":
		m.sort = nextSort(m.sort)
		m = m.refresh()
	case "h", "?":
		m.mode = modeHelp
	}
	return m, nil
}

// updateAdd handles keys while the add form is open.
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.status = ""
		m.statusErr = false
		return m, nil
	case "tab", "down":
		var cmd tea.Cmd
		m.form, cmd = m.form.next()
		return m, cmd
	case "shift+tab", "up":
		var cmd tea.Cmd
		m.form, cmd = m.form.prev()
		return m, cmd
	case "enter":
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submitForm validates the form and appends the task. Rejected input
// keeps the form open with its values intact so the user can fix it.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	draft, err := m.form.draft()
	if err != nil {
		return m.rejectInput(err), nil
	}
	task, err := m.list.Add(draft)
	if err != nil {
		return m.rejectInput(err), nil
	}

	m.logEvent(logging.Event{Type: logging.EventCreate, TaskID: task.ID, Text: task.Text})
	m.mode = modeList
	m.status = fmt.Sprintf("added %q", task.Text)
	m.statusErr = false
	var cmd tea.Cmd
	m.form, cmd = m.form.reset()
	m = m.refresh()
	if idx := indexOfTask(m.tasks, task.ID); idx >= 0 {
		m.cursor = idx
	}
	return m, cmd
}

// rejectInput reports a validation failure without leaving the form.
func (m Model) rejectInput(err error) Model {
	m.status = err.Error()
	m.statusErr = true
	m.logEvent(logging.Event{
		Type:  logging.EventReject,
		Text:  m.form.value(fieldText),
		Error: err.Error(),
	})
	return m
}

// updateSearch handles keys while the search prompt is open.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.search = strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.mode = modeList
		m = m.refresh()
		if m.search == "" {
			m.status = "search cleared"
		} else {
			m.status = fmt.Sprintf("%d result(s) for %q", len(m.tasks), m.search)
		}
		m.statusErr = false
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// updateConfirm handles the y/n prompt for delete and clear.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "enter":
		return m.confirmAccepted()
	case "n", "esc":
		m.mode = modeList
		m.status = "cancelled"
		m.statusErr = false
		m.pendingID = ""
		m.pendingText = ""
		m.pendingCount = 0
	}
	return m, nil
}

// confirmAccepted performs the pending destructive operation.
func (m Model) confirmAccepted() (tea.Model, tea.Cmd) {
	switch m.confirm {
	case confirmDelete:
		if m.list.Delete(m.pendingID) {
			m.logEvent(logging.Event{Type: logging.EventDelete, TaskID: m.pendingID, Text: m.pendingText})
			m.status = fmt.Sprintf("deleted %q", m.pendingText)
		} else {
			m.status = "task already gone"
		}
	case confirmClear:
		removed := m.clearCompleted()
		m.logEvent(logging.Event{Type: logging.EventClear, Count: removed})
		m.status = fmt.Sprintf("cleared %d completed task(s)", removed)
	}
	m.statusErr = false
	m.pendingID = ""
	m.pendingText = ""
	m.pendingCount = 0
	m.mode = modeList
	m = m.refresh()
	return m, nil
}

// clearCompleted deletes every completed task and returns how many went.
func (m Model) clearCompleted() int {
	removed := 0
	for _, task := range m.list.Tasks() {
		if task.Completed && m.list.Delete(task.ID) {
			removed++
		}
	}
	return removed
}

// updateHelp closes the help screen on any key.
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.mode = modeList
	return m, nil
}

// toggleCurrent flips the task under the cursor and keeps the cursor on
// it if it stays visible.
func (m Model) toggleCurrent() Model {
	task, ok := m.currentTask()
	if !ok {
		return m
	}
	if !m.list.Toggle(task.ID) {
		return m
	}
	m.logEvent(logging.Event{Type: logging.EventToggle, TaskID: task.ID, Text: task.Text})
	if task.Completed {
		m.status = fmt.Sprintf("reopened %q", task.Text)
	} else {
		m.status = fmt.Sprintf("completed %q", task.Text)
	}
	m.statusErr = false
	m = m.refresh()
	if idx := indexOfTask(m.tasks, task.ID); idx >= 0 {
		m.cursor = idx
	}
	return m
}

// refresh recomputes the visible tasks from the current query state.
func (m Model) refresh() Model {
	m.tasks = m.list.View(tasklist.Query{Filter: m.filter, Search: m.search, Sort: m.sort})
	m.cursor = clampCursor(m.cursor, len(m.tasks))
	m.logEvent(logging.Event{
		Type:   logging.EventQuery,
		Filter: string(m.filter),
		Search: m.search,
		Sort:   string(m.sort),
		Count:  len(m.tasks),
	})
	return m
}

// logEvent stamps and writes an event. Write failures are dropped; the
// alternate screen owns the terminal, so there is nowhere to report them.
func (m Model) logEvent(event logging.Event) {
	event.Timestamp = time.Now().UTC()
	_ = m.events.Write(event)
}

// currentTask returns the task under the cursor.
func (m Model) currentTask() (tasklist.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return tasklist.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// clampCursor keeps cursor within [0, n).
func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// nextFilter cycles all, active, completed.
func nextFilter(f tasklist.Filter) tasklist.Filter {
	switch f {
	case tasklist.FilterAll:
		return tasklist.FilterActive
	case tasklist.FilterActive:
		return tasklist.FilterCompleted
	default:
		return tasklist.FilterAll
	}
}

// nextSort cycles insertion order, priority, due date.
func nextSort(s tasklist.SortKey) tasklist.SortKey {
	switch s {
	case tasklist.SortNone:
		return tasklist.SortPriority
	case tasklist.SortPriority:
		return tasklist.SortDate
	default:
		return tasklist.SortNone
	}
}

// indexOfTask returns the position of id in tasks, or -1.
func indexOfTask(tasks []tasklist.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
