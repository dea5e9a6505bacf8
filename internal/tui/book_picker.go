package tui

import (
	"fmt"

	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui/delegate"
	"github.com/blackwell-systems/bookctl/internal/tui/picker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// NewBookList builds a list.Model of books with the standard delegate.
func NewBookList(books []library.Book, title string) list.Model {
	l := list.New(NewBookItems(books), delegate.New(RenderBookItem), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp
	return l
}

type bookPickerModel struct {
	base *picker.Base
}

func (m bookPickerModel) Init() tea.Cmd {
	return nil
}

func (m bookPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.base.SetError(fmt.Errorf("canceled by user"))
		return m, tea.Quit
	}
	return m, m.base.Update(msg)
}

func (m bookPickerModel) View() string {
	return m.base.View()
}

// RunBookPicker shows an interactive picker over the given books and
// returns the chosen one.
func RunBookPicker(books []library.Book, title string) (library.Book, error) {
	if len(books) == 0 {
		return library.Book{}, fmt.Errorf("no books to pick from")
	}

	keys := NewPickerKeys()
	var chosen library.Book

	l := NewBookList(books, title)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select}
	}

	base := picker.New(picker.Config{
		List:       l,
		QuitKeys:   keys.Quit,
		SelectKeys: keys.Select,
		OnSelect: func(item list.Item) bool {
			if bi, ok := item.(BookItem); ok {
				chosen = bi.Book
			}
			return true
		},
	})

	p := tea.NewProgram(bookPickerModel{base: base}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return library.Book{}, err
	}
	if base.Error() != nil {
		return library.Book{}, base.Error()
	}
	return chosen, nil
}
