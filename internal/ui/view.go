package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaim-abbasi/to-do-application/internal/tasklist"
	"github.com/zaim-abbasi/to-do-application/internal/utils"
)

var (
	// titleStyle renders the application name in the top bar.
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	// sectionStyle renders screen headings.
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	// indicatorStyle renders the filter, sort, and search line.
	indicatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	// dimStyle renders secondary text like counts and overflow markers.
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// cursorStyle renders the selection marker.
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	// doneStyle renders completed task text.
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Strikethrough(true)

	// priorityHighStyle renders high priority markers.
	priorityHighStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	// priorityMediumStyle renders medium priority markers.
	priorityMediumStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	// priorityLowStyle renders low priority markers.
	priorityLowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	// dueStyle renders due dates.
	dueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	// categoryStyle renders the category badge.
	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("37"))

	// tagStyle renders tag badges.
	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	// statusStyle renders informational status messages.
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// statusErrStyle renders rejected input and confirmation prompts.
	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// labelStyle renders unfocused form labels.
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// focusedLabelStyle renders the focused form label.
	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	// footerStyle renders the key hint line.
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	m.writeHeader(&b)
	switch m.mode {
	case modeAdd:
		b.WriteString(m.form.view())
	case modeHelp:
		m.writeHelp(&b)
	default:
		m.writeTasks(&b)
	}
	m.writeStatus(&b)
	m.writeFooter(&b)
	return b.String()
}

// writeHeader writes the title bar, the counts, and the view indicators.
func (m Model) writeHeader(b *strings.Builder) {
	active, completed := m.list.Counts()
	b.WriteString(titleStyle.Render("todo"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d active / %d done", active, completed)))
	b.WriteString("\n")

	line := fmt.Sprintf("filter:%s", m.filter)
	if m.sort != tasklist.SortNone {
		line += fmt.Sprintf("  sort:%s", m.sort)
	}
	if m.search != "" {
		line += fmt.Sprintf("  search:%q", m.search)
	}
	b.WriteString(indicatorStyle.Render(line))
	b.WriteString("\n\n")
}

// writeTasks writes the visible window of the task list.
func (m Model) writeTasks(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render("  " + m.emptyMessage()))
		b.WriteString("\n")
		return
	}

	start, end := viewWindow(len(m.tasks), m.cursor, m.listHeight())
	if start > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d above", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderTask(m.tasks[i], i == m.cursor))
		b.WriteString("\n")
	}
	if end < len(m.tasks) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d below", len(m.tasks)-end)))
		b.WriteString("\n")
	}
}

// emptyMessage explains why nothing is listed.
func (m Model) emptyMessage() string {
	if m.list.Len() == 0 {
		return "no tasks yet. press a to add one."
	}
	if m.search != "" {
		return fmt.Sprintf("nothing matches %q", m.search)
	}
	return fmt.Sprintf("no %s tasks", m.filter)
}

// renderTask renders one task line: cursor, checkbox, priority, text,
// then due date, category, and tags.
func (m Model) renderTask(task tasklist.Task, selected bool) string {
	var b strings.Builder
	if selected {
		b.WriteString(cursorStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}
	if task.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(priorityStyle(task.Priority).Render(fmt.Sprintf("%-6s", task.Priority)))
	b.WriteString(" ")
	text := utils.Truncate(task.Text, m.textWidth())
	if task.Completed {
		b.WriteString(doneStyle.Render(text))
	} else {
		b.WriteString(text)
	}
	if task.DueDate != nil {
		b.WriteString(" ")
		b.WriteString(dueStyle.Render("due " + task.DueDate.Format(time.DateOnly)))
	}
	if task.Category != "" {
		b.WriteString(" ")
		b.WriteString(categoryStyle.Render("@" + task.Category))
	}
	for _, tag := range task.Tags {
		b.WriteString(" ")
		b.WriteString(tagStyle.Render("#" + tag))
	}
	return b.String()
}

// textWidth bounds task text so the metadata after it stays visible.
func (m Model) textWidth() int {
	if m.width == 0 {
		return 60
	}
	w := m.width - 16
	if w < 20 {
		return 20
	}
	return w
}

// priorityStyle returns the style for a priority marker.
func priorityStyle(p tasklist.Priority) lipgloss.Style {
	switch p {
	case tasklist.PriorityHigh:
		return priorityHighStyle
	case tasklist.PriorityLow:
		return priorityLowStyle
	default:
		return priorityMediumStyle
	}
}

// writeStatus writes the line below the list: the search prompt, the
// pending confirmation, or the last status message.
func (m Model) writeStatus(b *strings.Builder) {
	b.WriteString("\n")
	switch {
	case m.mode == modeSearch:
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	case m.mode == modeConfirm:
		b.WriteString(statusErrStyle.Render(m.confirmPrompt()))
		b.WriteString("\n")
	case m.status != "":
		style := statusStyle
		if m.statusErr {
			style = statusErrStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
}

// confirmPrompt phrases the pending y/n question.
func (m Model) confirmPrompt() string {
	if m.confirm == confirmClear {
		return fmt.Sprintf("clear %d completed task(s)? (y/n)", m.pendingCount)
	}
	return fmt.Sprintf("delete %q? (y/n)", m.pendingText)
}

// writeHelp writes the full key reference.
func (m Model) writeHelp(b *strings.Builder) {
	rows := []struct {
		key  string
		desc string
	}{
		{"j / down", "move down"},
		{"k / up", "move up"},
		{"a", "add a task"},
		{"space / x", "toggle done"},
		{"d", "delete the selected task"},
		{"c", "clear completed tasks"},
		{"/", "search text and tags"},
		{"f", "cycle filter"},
		{"1 / 2 / 3", "filter all / active / completed"},
		{"s", "cycle sort (insertion, priority, due date)"},
		{"h / ?", "toggle this help"},
		{"q", "quit"},
	}
	b.WriteString(sectionStyle.Render("keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%-12s", row.key)))
		b.WriteString(" ")
		b.WriteString(row.desc)
		b.WriteString("\n")
	}
}

// writeFooter writes the key hints for the active mode.
func (m Model) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footerHint()))
	b.WriteString("\n")
}

func (m Model) footerHint() string {
	switch m.mode {
	case modeAdd:
		return "tab next field | enter save | esc cancel"
	case modeSearch:
		return "enter apply | esc cancel"
	case modeConfirm:
		return "y confirm | n cancel"
	case modeHelp:
		return "press any key to close"
	default:
		return "a add | space done | d delete | / search | f filter | s sort | ? help | q quit"
	}
}

// listHeight is how many task rows fit between header and footer.
func (m Model) listHeight() int {
	if m.height == 0 {
		return 20
	}
	h := m.height - 7
	if h < 3 {
		return 3
	}
	return h
}

// viewWindow returns the half-open row range to draw so the cursor stays
// near the middle once the list outgrows the screen.
func viewWindow(n, cursor, height int) (start, end int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start = cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
