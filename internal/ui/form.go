package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaim-abbasi/to-do-application/internal/tasklist"
)

// Form field indices, in focus order.
const (
	fieldText = iota
	fieldPriority
	fieldCategory
	fieldDue
	fieldNotes
	fieldTags
	fieldCount
)

// fieldLabels are the form labels, indexed by field.
var fieldLabels = [fieldCount]string{"text", "priority", "category", "due", "notes", "tags"}

// addForm is the new-task entry form. One input per field; focus moves
// between them with tab and shift+tab.
type addForm struct {
	inputs []textinput.Model
	focus  int

	defaultPriority tasklist.Priority
	defaultCategory string
}

// newAddForm builds the form. The priority and category fields are
// pre-filled with the given defaults on every reset.
func newAddForm(priority tasklist.Priority, category string) addForm {
	f := addForm{
		inputs:          make([]textinput.Model, fieldCount),
		defaultPriority: priority,
		defaultCategory: category,
	}
	for i := range f.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 256
		input.Width = 40
		f.inputs[i] = input
	}
	f.inputs[fieldText].Placeholder = "what needs doing"
	f.inputs[fieldPriority].Placeholder = "low / medium / high"
	f.inputs[fieldCategory].Placeholder = tasklist.DefaultCategory
	f.inputs[fieldDue].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldNotes].Placeholder = "optional notes"
	f.inputs[fieldTags].Placeholder = "comma, separated, tags"

	f, _ = f.reset()
	return f
}

// reset clears the form, restores the defaults, and focuses the text field.
func (f addForm) reset() (addForm, tea.Cmd) {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[fieldPriority].SetValue(string(f.defaultPriority))
	f.inputs[fieldCategory].SetValue(f.defaultCategory)
	f.focus = fieldText
	cmd := f.inputs[fieldText].Focus()
	return f, cmd
}

// next moves focus to the following field, wrapping around.
func (f addForm) next() (addForm, tea.Cmd) {
	return f.focusField((f.focus + 1) % fieldCount)
}

// prev moves focus to the preceding field, wrapping around.
func (f addForm) prev() (addForm, tea.Cmd) {
	return f.focusField((f.focus + fieldCount - 1) % fieldCount)
}

func (f addForm) focusField(index int) (addForm, tea.Cmd) {
	f.inputs[f.focus].Blur()
	f.focus = index
	cmd := f.inputs[f.focus].Focus()
	return f, cmd
}

// update forwards msg to the focused input.
func (f addForm) update(msg tea.Msg) (addForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// draft converts the form values into a task draft. Priority and due
// date parse failures come back as errors; emptiness of the text field
// is left to the list so the rule lives in one place.
func (f addForm) draft() (tasklist.Draft, error) {
	priority, err := tasklist.ParsePriority(f.value(fieldPriority))
	if err != nil {
		return tasklist.Draft{}, err
	}
	due, err := tasklist.ParseDueDate(f.value(fieldDue))
	if err != nil {
		return tasklist.Draft{}, err
	}
	return tasklist.Draft{
		Text:     f.value(fieldText),
		Priority: priority,
		Category: f.value(fieldCategory),
		DueDate:  due,
		Notes:    f.value(fieldNotes),
		TagsRaw:  f.value(fieldTags),
	}, nil
}

// value returns the trimmed content of the given field.
func (f addForm) value(index int) string {
	return strings.TrimSpace(f.inputs[index].Value())
}

// view renders the form with the focused label highlighted.
func (f addForm) view() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("new task"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%10s", fieldLabels[i])))
		b.WriteString("  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}
