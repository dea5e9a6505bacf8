package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/blackwell-systems/bookctl/internal/tui/delegate"
	"github.com/blackwell-systems/bookctl/internal/tui/multiselect"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// favPhase tracks the favourites workflow
type favPhase int

const (
	favLoading    favPhase = iota
	favPicking             // list shown, space selects
	favConfirming          // remove-selected or clear-all confirmation
	favProcessing          // removals in flight
)

type favListMsg struct {
	books []library.Book
	err   error
}

type favRemovedMsg struct {
	bookID int64
	err    error
}

type favClearedMsg struct {
	message string
	err     error
}

// FavouritesModel lists favourite books and supports bulk removal.
type FavouritesModel struct {
	gw    *library.Gateway
	phase favPhase
	ms    multiselect.Model

	books    []library.Book
	clearAll bool // confirming clear-all rather than remove-selected
	queue    []library.Book
	removed  int
	failed   int
	status   string
	width    int
	height   int
}

// NewFavouritesModel creates the favourites view. The list loads on Init.
func NewFavouritesModel(gw *library.Gateway) FavouritesModel {
	l := list.New(nil, delegate.New(tui.RenderBookItem), 0, 0)
	l.Title = "Favourites"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = tui.StyleHeader

	return FavouritesModel{
		gw:    gw,
		phase: favLoading,
		ms:    multiselect.New(l),
	}
}

func (m FavouritesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m FavouritesModel) loadCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		books, err := gw.Favourites(context.Background())
		return favListMsg{books: books, err: err}
	}
}

func (m FavouritesModel) removeCmd(b library.Book) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		_, err := gw.ToggleFavourite(context.Background(), b.ID, true)
		return favRemovedMsg{bookID: b.ID, err: err}
	}
}

func (m FavouritesModel) clearAllCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		message, err := gw.ClearAllFavourites(context.Background())
		return favClearedMsg{message: message, err: err}
	}
}

func (m FavouritesModel) Update(msg tea.Msg) (FavouritesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ms.List.SetSize(msg.Width-2, msg.Height-6)
		return m, nil

	case favListMsg:
		if msg.err != nil {
			m.phase = favPicking
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.books = msg.books
		items := make([]list.Item, len(msg.books))
		for i, b := range msg.books {
			// Pointers so the multiselect can flip selection in place.
			items[i] = &tui.BookItem{Book: b, Favourite: true}
		}
		m.ms.List.SetItems(items)
		m.ms.ClearSelection()
		m.phase = favPicking
		return m, nil

	case favRemovedMsg:
		if msg.err != nil {
			m.failed++
		} else {
			m.removed++
		}
		return m.advanceQueue()

	case favClearedMsg:
		if msg.err != nil {
			m.phase = favPicking
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.phase = favLoading
		m.status = msg.message
		return m, m.loadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == favPicking {
		var cmd tea.Cmd
		m.ms, cmd = m.ms.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FavouritesModel) handleKey(msg tea.KeyMsg) (FavouritesModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, func() tea.Msg { return QuitAppMsg{} }
	}

	switch m.phase {
	case favPicking:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return NavigateMsg{Target: "hub"} }

		case " ":
			m.ms.Toggle()
			return m, nil

		case "x":
			if m.ms.SelectedCount() == 0 {
				m.status = "Nothing selected"
				return m, nil
			}
			m.clearAll = false
			m.phase = favConfirming
			return m, nil

		case "C":
			if len(m.books) == 0 {
				return m, nil
			}
			m.clearAll = true
			m.phase = favConfirming
			return m, nil

		case "enter":
			if item, ok := m.ms.List.SelectedItem().(*tui.BookItem); ok {
				req := DetailRequest{Book: item.Book, ReturnTo: "favourites"}
				return m, func() tea.Msg {
					return NavigateMsg{Target: "detail", Data: req}
				}
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.ms, cmd = m.ms.Update(msg)
		return m, cmd

	case favConfirming:
		switch msg.String() {
		case "y", "Y":
			if m.clearAll {
				m.phase = favProcessing
				return m, m.clearAllCmd()
			}
			m.queue = m.selectedBooks()
			m.removed, m.failed = 0, 0
			m.phase = favProcessing
			return m.advanceQueue()
		case "n", "N", "esc", "q":
			m.phase = favPicking
			return m, nil
		}
	}

	return m, nil
}

// selectedBooks maps the multiselect keys back to books.
func (m FavouritesModel) selectedBooks() []library.Book {
	selected := make(map[string]bool, m.ms.SelectedCount())
	for _, k := range m.ms.SelectedKeys() {
		selected[k] = true
	}
	var books []library.Book
	for _, b := range m.books {
		if selected[tui.ItemKey(b)] {
			books = append(books, b)
		}
	}
	return books
}

// advanceQueue removes the next queued book, or reloads when done.
func (m FavouritesModel) advanceQueue() (FavouritesModel, tea.Cmd) {
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return m, m.removeCmd(next)
	}

	m.status = fmt.Sprintf("Removed %d favourite(s)", m.removed)
	if m.failed > 0 {
		m.status += fmt.Sprintf(", %d failed", m.failed)
	}
	m.phase = favLoading
	return m, m.loadCmd()
}

func (m FavouritesModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch m.phase {
	case favLoading:
		b.WriteString(" Loading favourites…\n")

	case favConfirming:
		b.WriteString(" " + tui.StyleHeader.Render("Confirm") + "\n\n")
		if m.clearAll {
			b.WriteString(fmt.Sprintf(" Remove all %d favourite(s)?\n", len(m.books)))
		} else {
			b.WriteString(fmt.Sprintf(" Remove %d selected favourite(s)?\n", m.ms.SelectedCount()))
		}
		b.WriteString("\n " + tui.StyleHelp.Render("y confirm · n cancel") + "\n")

	case favProcessing:
		b.WriteString(" Removing…\n")

	default:
		if len(m.ms.List.Items()) == 0 {
			b.WriteString(" " + tui.StyleHelp.Render("No favourites yet.") + "\n")
		} else {
			b.WriteString(m.ms.View() + "\n")
		}
		b.WriteString("\n " + tui.StyleHelp.Render("space select · x remove selected · C clear all · enter open · q back") + "\n")
	}

	if m.status != "" {
		b.WriteString(" " + tui.StyleAccent.Render(m.status) + "\n")
	}
	return b.String()
}
