package views

import (
	"strconv"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	editFieldTitle = iota
	editFieldAuthor
	editFieldYear
	editFieldImage
	editFieldCount
)

var editFieldLabels = [editFieldCount]string{"Title", "Author", "Year", "Cover path"}

// editForm is the inline metadata editor on the detail view.
type editForm struct {
	inputs  [editFieldCount]textinput.Model
	focused int
	err     string
}

func newEditForm(book library.Book) editForm {
	var f editForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Prompt = ""
		f.inputs[i] = ti
	}

	f.inputs[editFieldTitle].SetValue(book.Title)
	f.inputs[editFieldAuthor].SetValue(book.Author)
	if book.Year > 0 {
		f.inputs[editFieldYear].SetValue(strconv.Itoa(book.Year))
	}
	f.inputs[editFieldImage].SetValue(book.ImagePath)
	f.inputs[editFieldTitle].Focus()
	return f
}

// values builds the submitted form. Whitespace-only fields are blank.
func (f editForm) values() library.BookForm {
	return library.BookForm{
		Title:     strings.TrimSpace(f.inputs[editFieldTitle].Value()),
		Author:    strings.TrimSpace(f.inputs[editFieldAuthor].Value()),
		Year:      strings.TrimSpace(f.inputs[editFieldYear].Value()),
		ImagePath: strings.TrimSpace(f.inputs[editFieldImage].Value()),
	}
}

func (f editForm) validate() string {
	v := f.values()
	if v.Title == "" {
		return "Title is required"
	}
	if v.Author == "" {
		return "Author is required"
	}
	if v.Year != "" {
		if _, err := strconv.Atoi(v.Year); err != nil {
			return "Year must be a number"
		}
	}
	return ""
}

func (f *editForm) focusField(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focused = i
	return f.inputs[i].Focus()
}

func (f editForm) view() string {
	var b strings.Builder
	b.WriteString(" " + tui.StyleHeader.Render("Edit book") + "\n\n")
	for i, input := range f.inputs {
		label := editFieldLabels[i]
		style := tui.StyleHelp
		if i == f.focused {
			style = tui.StyleHighlight
		}
		b.WriteString(" " + style.Render(padLabel(label, 11)) + " " + input.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n " + tui.StyleError.Render(f.err) + "\n")
	}
	b.WriteString("\n " + tui.StyleHelp.Render("tab next field · enter save · esc cancel") + "\n")
	return b.String()
}

func padLabel(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func (m DetailModel) handleEditKey(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = detailViewing
		return m, nil

	case "tab", "down":
		cmd := m.form.focusField((m.form.focused + 1) % editFieldCount)
		return m, cmd

	case "shift+tab", "up":
		cmd := m.form.focusField((m.form.focused + editFieldCount - 1) % editFieldCount)
		return m, cmd

	case "enter":
		if errMsg := m.form.validate(); errMsg != "" {
			m.form.err = errMsg
			return m, nil
		}
		m.form.err = ""
		return m, m.updateBookCmd(m.form.values())
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
	return m, cmd
}
