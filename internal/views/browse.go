package views

import (
	"context"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/config"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/blackwell-systems/bookctl/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// browseBooksMsg carries search results, tagged with the query that
// produced them so stale responses can be dropped.
type browseBooksMsg struct {
	query string
	books []library.Book
	err   error
}

// browseRecentsMsg carries the recently-read rail contents.
type browseRecentsMsg struct {
	books []library.Book
	err   error
}

type browseKeys struct {
	back   key.Binding
	search key.Binding
	open   key.Binding
}

var browseKeyMap = browseKeys{
	back: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "back to menu"),
	),
	search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open detail"),
	),
}

// BrowseModel is the search-and-browse view with a recently-read rail.
type BrowseModel struct {
	gw *library.Gateway
	ui config.UIConfig

	list    list.Model
	input   textinput.Model
	spin    spinner.Model
	loading bool
	query   string
	recents []library.Book
	status  string
	width   int
	height  int
}

// NewBrowseModel creates the browse view. Results load on Init.
func NewBrowseModel(gw *library.Gateway, ui config.UIConfig) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "title…"
	ti.Prompt = "Search: "
	ti.CharLimit = 120

	l := list.New(nil, delegate.New(tui.RenderBookItem), 0, 0)
	l.Title = "Library"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = tui.StyleHeader

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return BrowseModel{
		gw:      gw,
		ui:      ui,
		list:    l,
		input:   ti,
		spin:    sp,
		loading: true,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.searchCmd(""), m.recentsCmd())
}

func (m BrowseModel) searchCmd(query string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		books, err := gw.Search(context.Background(), query)
		return browseBooksMsg{query: query, books: books, err: err}
	}
}

func (m BrowseModel) recentsCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		books, err := gw.Recents(context.Background())
		return browseRecentsMsg{books: books, err: err}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-8)
		m.input.Width = msg.Width - 12
		return m, nil

	case browseBooksMsg:
		// Only the latest query's results may land.
		if msg.query != m.query {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.status = ""
		m.list.SetItems(tui.NewBookItems(msg.books))
		return m, nil

	case browseRecentsMsg:
		// The rail is optional; a failure just leaves it empty.
		if msg.err == nil {
			m.recents = msg.books
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				m.input.Blur()
				m.query = strings.TrimSpace(m.input.Value())
				m.loading = true
				return m, tea.Batch(m.spin.Tick, m.searchCmd(m.query))
			case "esc":
				m.input.Blur()
				return m, nil
			case "ctrl+c":
				return m, func() tea.Msg { return QuitAppMsg{} }
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch {
		case msg.String() == "ctrl+c":
			return m, func() tea.Msg { return QuitAppMsg{} }

		case key.Matches(msg, browseKeyMap.back):
			return m, func() tea.Msg { return NavigateMsg{Target: "hub"} }

		case key.Matches(msg, browseKeyMap.search):
			m.input.Focus()
			return m, textinput.Blink

		case key.Matches(msg, browseKeyMap.open):
			if item, ok := m.list.SelectedItem().(tui.BookItem); ok {
				req := DetailRequest{Book: item.Book, ReturnTo: "browse"}
				return m, func() tea.Msg {
					return NavigateMsg{Target: "detail", Data: req}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + m.input.View() + "\n\n")

	if m.loading {
		b.WriteString(" " + m.spin.View() + " Loading…\n")
	} else if m.status != "" {
		b.WriteString(" " + tui.StyleError.Render(m.status) + "\n")
	} else if len(m.list.Items()) == 0 {
		b.WriteString(" " + tui.StyleHelp.Render("No books found.") + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	// Narrow viewports drop the rail and keep the list readable.
	if !m.ui.Compact(m.width) {
		b.WriteString("\n" + m.renderRecentsRail() + "\n")
	}
	b.WriteString(" " + tui.StyleHelp.Render("/ search · enter open · q back") + "\n")
	return b.String()
}

// renderRecentsRail renders recently-read titles on a single line,
// truncated to the window width.
func (m BrowseModel) renderRecentsRail() string {
	if len(m.recents) == 0 {
		return ""
	}

	titles := make([]string, 0, len(m.recents))
	for _, bk := range m.recents {
		titles = append(titles, bk.Title)
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	label := tui.StyleHeader.Render("Recently read: ")
	rail := tui.StyleAccent.Render(strings.Join(titles, " · "))
	return " " + xansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, label, rail), width-2, "…")
}
