package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/blackwell-systems/bookctl/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one entry in the hub menu.
type MenuItem struct {
	Key   string
	Title string
	Desc  string
}

// FilterValue implements list.Item
func (i MenuItem) FilterValue() string {
	return i.Title + " " + i.Desc
}

func menuItems() []MenuItem {
	return []MenuItem{
		{Key: "browse", Title: "Browse library", Desc: "Search books and open details"},
		{Key: "favourites", Title: "Favourites", Desc: "View and manage favourite books"},
		{Key: "recents", Title: "Recently read", Desc: "Books you opened recently"},
		{Key: "scan", Title: "Scan library", Desc: "Rescan the server's book folder"},
		{Key: "theme", Title: "Toggle dark mode", Desc: "Switch between dark and light"},
		{Key: "quit", Title: "Quit", Desc: ""},
	}
}

type hubKeys struct {
	quit       key.Binding
	selectItem key.Binding
	theme      key.Binding
}

var hubKeyMap = hubKeys{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	selectItem: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "dark/light"),
	),
}

// HubModel is the top-level menu.
type HubModel struct {
	list     list.Model
	username string
	width    int
	height   int
}

// NewHubModel creates a new hub menu.
func NewHubModel(username string) HubModel {
	items := make([]list.Item, 0, len(menuItems()))
	for _, it := range menuItems() {
		items = append(items, it)
	}

	d := delegate.New(renderHubMenuItem)
	l := list.New(items, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = tui.StyleHelp
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{hubKeyMap.selectItem, hubKeyMap.theme}
	}

	return HubModel{
		list:     l,
		username: username,
	}
}

func (m HubModel) Init() tea.Cmd {
	return nil
}

func (m HubModel) Update(msg tea.Msg) (HubModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, hubKeyMap.quit):
			return m, func() tea.Msg { return QuitAppMsg{} }

		case key.Matches(msg, hubKeyMap.theme):
			return m, func() tea.Msg { return ToggleThemeMsg{} }

		case key.Matches(msg, hubKeyMap.selectItem):
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				switch item.Key {
				case "quit":
					return m, func() tea.Msg { return QuitAppMsg{} }
				case "theme":
					return m, func() tea.Msg { return ToggleThemeMsg{} }
				default:
					target := item.Key
					return m, func() tea.Msg { return NavigateMsg{Target: target} }
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m HubModel) View() string {
	greeting := "bookctl"
	if m.username != "" {
		greeting = fmt.Sprintf("bookctl — signed in as %s", m.username)
	}
	header := tui.StyleHeader.Render(greeting)
	return lipgloss.JoinVertical(lipgloss.Left, "", " "+header, "", m.list.View())
}

func renderHubMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MenuItem)
	if !ok {
		return
	}

	cursor := "  "
	titleStyle := tui.StyleNormal
	if index == m.Index() {
		cursor = tui.StyleHighlight.Render("›") + " "
		titleStyle = tui.StyleHighlight
	}

	line := cursor + titleStyle.Render(mi.Title)
	if mi.Desc != "" {
		line += strings.Repeat(" ", max(1, 22-len(mi.Title))) + tui.StyleHelp.Render(mi.Desc)
	}
	_, _ = fmt.Fprint(w, line)
}
