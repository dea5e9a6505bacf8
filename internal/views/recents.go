package views

import (
	"context"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/blackwell-systems/bookctl/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type recentsPhase int

const (
	recentsLoading recentsPhase = iota
	recentsListing
	recentsConfirming
)

type recentsListMsg struct {
	books []library.Book
	err   error
}

type recentsClearedMsg struct {
	message string
	err     error
}

// RecentsModel shows recently-read books, most recent first.
type RecentsModel struct {
	gw     *library.Gateway
	phase  recentsPhase
	list   list.Model
	status string
	width  int
	height int
}

// NewRecentsModel creates the recents view. The list loads on Init.
func NewRecentsModel(gw *library.Gateway) RecentsModel {
	l := list.New(nil, delegate.New(tui.RenderBookItem), 0, 0)
	l.Title = "Recently read"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = tui.StyleHeader

	return RecentsModel{gw: gw, phase: recentsLoading, list: l}
}

func (m RecentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecentsModel) loadCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		books, err := gw.Recents(context.Background())
		return recentsListMsg{books: books, err: err}
	}
}

func (m RecentsModel) clearCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		message, err := gw.ClearAllRecents(context.Background())
		return recentsClearedMsg{message: message, err: err}
	}
}

func (m RecentsModel) Update(msg tea.Msg) (RecentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-5)
		return m, nil

	case recentsListMsg:
		m.phase = recentsListing
		if msg.err != nil {
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.list.SetItems(tui.NewBookItems(msg.books))
		return m, nil

	case recentsClearedMsg:
		if msg.err != nil {
			m.phase = recentsListing
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.phase = recentsLoading
		m.status = msg.message
		return m, m.loadCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, func() tea.Msg { return QuitAppMsg{} }
		}

		switch m.phase {
		case recentsListing:
			switch msg.String() {
			case "q", "esc":
				return m, func() tea.Msg { return NavigateMsg{Target: "hub"} }
			case "C":
				if len(m.list.Items()) > 0 {
					m.phase = recentsConfirming
				}
				return m, nil
			case "enter":
				if item, ok := m.list.SelectedItem().(tui.BookItem); ok {
					req := DetailRequest{Book: item.Book, ReturnTo: "recents"}
					return m, func() tea.Msg {
						return NavigateMsg{Target: "detail", Data: req}
					}
				}
				return m, nil
			}

		case recentsConfirming:
			switch msg.String() {
			case "y", "Y":
				m.phase = recentsLoading
				return m, m.clearCmd()
			case "n", "N", "esc", "q":
				m.phase = recentsListing
				return m, nil
			}
			return m, nil
		}
	}

	if m.phase == recentsListing {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m RecentsModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch m.phase {
	case recentsLoading:
		b.WriteString(" Loading…\n")

	case recentsConfirming:
		b.WriteString(" " + tui.StyleHeader.Render("Confirm") + "\n\n")
		b.WriteString(" Clear all recently-read entries?\n")
		b.WriteString("\n " + tui.StyleHelp.Render("y confirm · n cancel") + "\n")

	default:
		if len(m.list.Items()) == 0 {
			b.WriteString(" " + tui.StyleHelp.Render("Nothing read recently.") + "\n")
		} else {
			b.WriteString(m.list.View() + "\n")
		}
		b.WriteString("\n " + tui.StyleHelp.Render("enter open · C clear all · q back") + "\n")
	}

	if m.status != "" {
		b.WriteString(" " + tui.StyleAccent.Render(m.status) + "\n")
	}
	return b.String()
}
