package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaim-abbasi/to-do-application/internal/logging"
	"github.com/zaim-abbasi/to-do-application/internal/tasklist"
)

// pressKey sends a single key to the model and returns the updated copy.
func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	model, _ := pressKeyCmd(t, m, key)
	return model
}

// pressKeyCmd is pressKey but also returns the command, for tests that
// care about quit.
func pressKeyCmd(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

// typeText feeds text into the focused input as one rune batch.
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return pressKey(t, m, text)
}

// seededList builds a list with a known set of tasks.
func seededList(t *testing.T) *tasklist.List {
	t.Helper()
	list := tasklist.New()
	drafts := []tasklist.Draft{
		{Text: "Buy milk", Priority: tasklist.PriorityLow, Category: "errands", TagsRaw: "shopping"},
		{Text: "Write report", Priority: tasklist.PriorityHigh, Category: "work", TagsRaw: "quarterly, writing"},
		{Text: "Water plants", Category: "home"},
	}
	for _, d := range drafts {
		if _, err := list.Add(d); err != nil {
			t.Fatalf("Add(%q) failed: %v", d.Text, err)
		}
	}
	return list
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		n      int
		want   int
	}{
		{"empty list pins to zero", 5, 0, 0},
		{"negative pins to zero", -1, 3, 0},
		{"past end pins to last", 7, 3, 2},
		{"in range unchanged", 1, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampCursor(tt.cursor, tt.n); got != tt.want {
				t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cursor, tt.n, got, tt.want)
			}
		})
	}
}

func TestNextFilterCycles(t *testing.T) {
	f := tasklist.FilterAll
	want := []tasklist.Filter{tasklist.FilterActive, tasklist.FilterCompleted, tasklist.FilterAll}
	for i, w := range want {
		f = nextFilter(f)
		if f != w {
			t.Fatalf("step %d: got %q, want %q", i, f, w)
		}
	}
}

func TestNextSortCycles(t *testing.T) {
	s := tasklist.SortNone
	want := []tasklist.SortKey{tasklist.SortPriority, tasklist.SortDate, tasklist.SortNone}
	for i, w := range want {
		s = nextSort(s)
		if s != w {
			t.Fatalf("step %d: got %q, want %q", i, s, w)
		}
	}
}

func TestModelNavigationClampsCursor(t *testing.T) {
	m := NewModel(seededList(t))

	m = pressKey(t, m, "k")
	if m.cursor != 0 {
		t.Errorf("k at top moved cursor to %d, want 0", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m = pressKey(t, m, "j")
	}
	if m.cursor != 2 {
		t.Errorf("j past bottom left cursor at %d, want 2", m.cursor)
	}
	m = pressKey(t, m, "up")
	if m.cursor != 1 {
		t.Errorf("up moved cursor to %d, want 1", m.cursor)
	}
}

func TestModelToggle(t *testing.T) {
	list := seededList(t)
	m := NewModel(list)

	m = pressKey(t, m, "x")
	task, ok := list.Get(m.tasks[0].ID)
	if !ok || !task.Completed {
		t.Fatalf("toggle did not complete the first task")
	}
	if !strings.Contains(m.status, "completed") {
		t.Errorf("status = %q, want mention of completed", m.status)
	}

	m = pressKey(t, m, " ")
	task, _ = list.Get(task.ID)
	if task.Completed {
		t.Errorf("second toggle did not reopen the task")
	}
	if !strings.Contains(m.status, "reopened") {
		t.Errorf("status = %q, want mention of reopened", m.status)
	}
}

func TestModelToggleOnEmptyListIsNoOp(t *testing.T) {
	m := NewModel(tasklist.New())
	m = pressKey(t, m, "x")
	if m.status != "" {
		t.Errorf("toggle on empty list set status %q", m.status)
	}
}

func TestModelDeleteFlow(t *testing.T) {
	t.Run("n cancels", func(t *testing.T) {
		list := seededList(t)
		m := NewModel(list)

		m = pressKey(t, m, "d")
		if m.mode != modeConfirm {
			t.Fatalf("d did not open the confirm prompt")
		}
		if !strings.Contains(m.confirmPrompt(), "Buy milk") {
			t.Errorf("prompt = %q, want the task text", m.confirmPrompt())
		}
		m = pressKey(t, m, "n")
		if m.mode != modeList {
			t.Errorf("n did not return to the list")
		}
		if list.Len() != 3 {
			t.Errorf("cancelled delete changed the list: len = %d, want 3", list.Len())
		}
	})

	t.Run("y deletes", func(t *testing.T) {
		list := seededList(t)
		m := NewModel(list)

		m = pressKey(t, m, "d")
		m = pressKey(t, m, "y")
		if list.Len() != 2 {
			t.Fatalf("len = %d after delete, want 2", list.Len())
		}
		if _, ok := list.Get(m.pendingID); ok {
			t.Errorf("pending id survived the delete")
		}
		if !strings.Contains(m.status, "deleted") {
			t.Errorf("status = %q, want mention of deleted", m.status)
		}
	})

	t.Run("d on empty list is a no-op", func(t *testing.T) {
		m := NewModel(tasklist.New())
		m = pressKey(t, m, "d")
		if m.mode != modeList {
			t.Errorf("d on empty list opened the confirm prompt")
		}
	})
}

func TestModelClearCompleted(t *testing.T) {
	list := seededList(t)
	m := NewModel(list)
	m = pressKey(t, m, "x") // complete the first task

	m = pressKey(t, m, "c")
	if m.mode != modeConfirm || m.pendingCount != 1 {
		t.Fatalf("c did not ask about 1 completed task (mode=%v count=%d)", m.mode, m.pendingCount)
	}
	m = pressKey(t, m, "y")
	if list.Len() != 2 {
		t.Fatalf("len = %d after clear, want 2", list.Len())
	}
	_, completed := list.Counts()
	if completed != 0 {
		t.Errorf("%d completed tasks survived the clear", completed)
	}
}

func TestModelClearWithNothingCompleted(t *testing.T) {
	m := NewModel(seededList(t))
	m = pressKey(t, m, "c")
	if m.mode != modeList {
		t.Errorf("c with nothing completed opened the confirm prompt")
	}
	if !strings.Contains(m.status, "no completed") {
		t.Errorf("status = %q, want explanation", m.status)
	}
}

func TestModelAddFlow(t *testing.T) {
	list := tasklist.New()
	m := NewModel(list)

	m = pressKey(t, m, "a")
	if m.mode != modeAdd {
		t.Fatalf("a did not open the add form")
	}
	m = typeText(t, m, "Call the bank")
	m = pressKey(t, m, "enter")

	if m.mode != modeList {
		t.Fatalf("submit did not return to the list (status %q)", m.status)
	}
	if list.Len() != 1 {
		t.Fatalf("len = %d after add, want 1", list.Len())
	}
	task := list.Tasks()[0]
	if task.Text != "Call the bank" {
		t.Errorf("text = %q, want %q", task.Text, "Call the bank")
	}
	if task.Priority != tasklist.DefaultPriority {
		t.Errorf("priority = %q, want default %q", task.Priority, tasklist.DefaultPriority)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (on the new task)", m.cursor)
	}
	if !strings.Contains(m.status, "added") {
		t.Errorf("status = %q, want mention of added", m.status)
	}
}

func TestModelAddRejectsBlankText(t *testing.T) {
	list := tasklist.New()
	m := NewModel(list)

	m = pressKey(t, m, "a")
	m = typeText(t, m, "   ")
	m = pressKey(t, m, "enter")

	if m.mode != modeAdd {
		t.Fatalf("rejected submit left the form")
	}
	if list.Len() != 0 {
		t.Fatalf("rejected draft reached the list")
	}
	if !m.statusErr || !strings.Contains(m.status, "text") {
		t.Errorf("status = %q, want a text field error", m.status)
	}
}

func TestModelAddRejectsBadDueDate(t *testing.T) {
	list := tasklist.New()
	m := NewModel(list)

	m = pressKey(t, m, "a")
	m = typeText(t, m, "Renew passport")
	for i := 0; i < 3; i++ {
		m = pressKey(t, m, "tab") // move to the due field
	}
	m = typeText(t, m, "soon")
	m = pressKey(t, m, "enter")

	if m.mode != modeAdd {
		t.Fatalf("rejected submit left the form")
	}
	if list.Len() != 0 {
		t.Fatalf("rejected draft reached the list")
	}
	if !strings.Contains(m.status, "due date") {
		t.Errorf("status = %q, want a due date error", m.status)
	}
	if got := m.form.value(fieldDue); got != "soon" {
		t.Errorf("due field = %q after rejection, want the typed value kept", got)
	}
	if got := m.form.value(fieldText); got != "Renew passport" {
		t.Errorf("text field = %q after rejection, want the typed value kept", got)
	}
}

func TestModelAddEscCancels(t *testing.T) {
	list := tasklist.New()
	m := NewModel(list)

	m = pressKey(t, m, "a")
	m = typeText(t, m, "never mind")
	m = pressKey(t, m, "esc")

	if m.mode != modeList {
		t.Errorf("esc did not close the form")
	}
	if list.Len() != 0 {
		t.Errorf("cancelled form reached the list")
	}
}

func TestModelSearchFlow(t *testing.T) {
	m := NewModel(seededList(t))

	m = pressKey(t, m, "/")
	if m.mode != modeSearch {
		t.Fatalf("/ did not open the search prompt")
	}
	m = typeText(t, m, "milk")
	m = pressKey(t, m, "enter")

	if m.mode != modeList {
		t.Fatalf("enter did not apply the search")
	}
	if len(m.tasks) != 1 || m.tasks[0].Text != "Buy milk" {
		t.Fatalf("search %q matched %d tasks, want just Buy milk", m.search, len(m.tasks))
	}

	// Tags match too.
	m = pressKey(t, m, "/")
	m.searchInput.SetValue("")
	m = typeText(t, m, "WRITING")
	m = pressKey(t, m, "enter")
	if len(m.tasks) != 1 || m.tasks[0].Text != "Write report" {
		t.Fatalf("tag search matched %d tasks, want just Write report", len(m.tasks))
	}

	// Esc keeps the previous search.
	m = pressKey(t, m, "/")
	m = typeText(t, m, "garbage")
	m = pressKey(t, m, "esc")
	if !strings.EqualFold(m.search, "writing") {
		t.Errorf("esc replaced the search with %q", m.search)
	}
}

func TestModelFilterKeys(t *testing.T) {
	list := seededList(t)
	m := NewModel(list)
	m = pressKey(t, m, "x") // complete Buy milk

	m = pressKey(t, m, "2")
	if m.filter != tasklist.FilterActive || len(m.tasks) != 2 {
		t.Errorf("2 showed %d tasks under %q, want 2 active", len(m.tasks), m.filter)
	}
	m = pressKey(t, m, "3")
	if m.filter != tasklist.FilterCompleted || len(m.tasks) != 1 {
		t.Errorf("3 showed %d tasks under %q, want 1 completed", len(m.tasks), m.filter)
	}
	m = pressKey(t, m, "1")
	if m.filter != tasklist.FilterAll || len(m.tasks) != 3 {
		t.Errorf("1 showed %d tasks under %q, want all 3", len(m.tasks), m.filter)
	}
	m = pressKey(t, m, "f")
	if m.filter != tasklist.FilterActive {
		t.Errorf("f cycled to %q, want active", m.filter)
	}
}

func TestModelSortKey(t *testing.T) {
	m := NewModel(seededList(t))

	m = pressKey(t, m, "s")
	if m.sort != tasklist.SortPriority {
		t.Fatalf("s cycled to %q, want priority", m.sort)
	}
	if m.tasks[0].Text != "Write report" {
		t.Errorf("priority sort put %q first, want the high priority task", m.tasks[0].Text)
	}

	m = pressKey(t, m, "s")
	if m.sort != tasklist.SortDate {
		t.Fatalf("s cycled to %q, want date", m.sort)
	}

	m = pressKey(t, m, "s")
	if m.sort != tasklist.SortNone {
		t.Fatalf("s cycled to %q, want insertion order", m.sort)
	}
	if m.tasks[0].Text != "Buy milk" {
		t.Errorf("insertion order put %q first, want Buy milk", m.tasks[0].Text)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(seededList(t))
	m = pressKey(t, m, "?")
	if m.mode != modeHelp {
		t.Fatalf("? did not open help")
	}
	m = pressKey(t, m, "j")
	if m.mode != modeList {
		t.Errorf("key press did not close help")
	}
	if m.cursor != 0 {
		t.Errorf("key that closed help also moved the cursor")
	}
}

func TestModelQuitKeys(t *testing.T) {
	m := NewModel(seededList(t))
	for _, key := range []string{"q", "ctrl+c"} {
		if _, cmd := pressKeyCmd(t, m, key); cmd == nil {
			t.Errorf("%s did not quit", key)
		}
	}
}

func TestModelWritesEvents(t *testing.T) {
	var buf bytes.Buffer
	list := tasklist.New()
	m := NewModel(list, WithEvents(logging.NewStreamEventWriter(&buf)))

	m = pressKey(t, m, "a")
	m = typeText(t, m, "Ship the release")
	m = pressKey(t, m, "enter")
	m = pressKey(t, m, "x")
	m = pressKey(t, m, "a")
	m = pressKey(t, m, "enter") // blank text, rejected

	types := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var event logging.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("log line %q is not valid JSON: %v", line, err)
		}
		types[event.Type]++
	}
	for _, want := range []string{logging.EventQuery, logging.EventCreate, logging.EventToggle, logging.EventReject} {
		if types[want] == 0 {
			t.Errorf("no %s event written (got %v)", want, types)
		}
	}
}

func TestModelInitialStateFromOptions(t *testing.T) {
	list := seededList(t)
	list.Toggle(list.Tasks()[0].ID)

	m := NewModel(list,
		WithFilter(tasklist.FilterActive),
		WithSort(tasklist.SortPriority),
		WithDefaults(tasklist.PriorityHigh, "inbox"),
	)
	if len(m.tasks) != 2 {
		t.Errorf("initial view has %d tasks, want 2 active", len(m.tasks))
	}
	if m.tasks[0].Text != "Write report" {
		t.Errorf("initial sort put %q first, want the high priority task", m.tasks[0].Text)
	}
	if got := m.form.value(fieldPriority); got != "high" {
		t.Errorf("form priority prefill = %q, want %q", got, "high")
	}
	if got := m.form.value(fieldCategory); got != "inbox" {
		t.Errorf("form category prefill = %q, want %q", got, "inbox")
	}
}
