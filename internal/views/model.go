package views

import (
	"github.com/blackwell-systems/bookctl/internal/config"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/metadata"
	"github.com/blackwell-systems/bookctl/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// View represents the current active view
type View string

const (
	ViewHub        View = "hub"
	ViewBrowse     View = "browse"
	ViewFavourites View = "favourites"
	ViewRecents    View = "recents"
	ViewDetail     View = "detail"
	ViewScan       View = "scan"
)

// Deps carries the shared dependencies every view draws from.
type Deps struct {
	Gateway  *library.Gateway
	Volumes  *metadata.VolumesClient
	Config   *config.Config
	Username string
}

// Model is the top-level TUI orchestrator that manages view switching
type Model struct {
	deps        Deps
	currentView View
	width       int
	height      int

	hub        HubModel
	browse     BrowseModel
	favourites FavouritesModel
	recents    RecentsModel
	scan       ScanModel
	detail     DetailModel
}

// New creates the orchestrator starting at the hub.
func New(deps Deps) Model {
	return NewAtView(deps, ViewHub)
}

// NewAtView creates the orchestrator starting at the given view.
func NewAtView(deps Deps, view View) Model {
	tui.ApplyTheme(deps.Config.UI.DarkMode)
	m := Model{deps: deps, currentView: view}

	switch view {
	case ViewBrowse:
		m.browse = NewBrowseModel(deps.Gateway, deps.Config.UI)
	case ViewFavourites:
		m.favourites = NewFavouritesModel(deps.Gateway)
	case ViewRecents:
		m.recents = NewRecentsModel(deps.Gateway)
	case ViewScan:
		m.scan = NewScanModel(deps.Gateway)
	default:
		m.currentView = ViewHub
		m.hub = NewHubModel(deps.Username)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	switch m.currentView {
	case ViewBrowse:
		return m.browse.Init()
	case ViewFavourites:
		return m.favourites.Init()
	case ViewRecents:
		return m.recents.Init()
	case ViewScan:
		return m.scan.Init()
	default:
		return m.hub.Init()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateCurrentView(msg)

	case NavigateMsg:
		return m.handleNavigation(msg)

	case QuitAppMsg:
		if m.currentView == ViewDetail {
			m.detail.teardown()
		}
		return m, tea.Quit

	case ToggleThemeMsg:
		m.deps.Config.UI.DarkMode = !m.deps.Config.UI.DarkMode
		tui.ApplyTheme(m.deps.Config.UI.DarkMode)
		// Persist across sessions; a failed write only costs the setting.
		_ = config.Save(m.deps.Config)
		return m, nil

	default:
		return m.updateCurrentView(msg)
	}
}

func (m Model) View() string {
	switch m.currentView {
	case ViewHub:
		return m.hub.View()
	case ViewBrowse:
		return m.browse.View()
	case ViewFavourites:
		return m.favourites.View()
	case ViewRecents:
		return m.recents.View()
	case ViewDetail:
		return m.detail.View()
	case ViewScan:
		return m.scan.View()
	default:
		return ""
	}
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHub:
		m.hub, cmd = m.hub.Update(msg)
	case ViewBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case ViewFavourites:
		m.favourites, cmd = m.favourites.Update(msg)
	case ViewRecents:
		m.recents, cmd = m.recents.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewScan:
		m.scan, cmd = m.scan.Update(msg)
	}

	return m, cmd
}

func (m Model) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	// A detail view owns a debounced writer; flush it before it goes away.
	if m.currentView == ViewDetail && msg.Target != string(ViewDetail) {
		m.detail.teardown()
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	switch msg.Target {
	case "browse":
		m.currentView = ViewBrowse
		m.browse = NewBrowseModel(m.deps.Gateway, m.deps.Config.UI)
		var cmd tea.Cmd
		m.browse, cmd = m.browse.Update(size)
		return m, tea.Batch(m.browse.Init(), cmd)

	case "favourites":
		m.currentView = ViewFavourites
		m.favourites = NewFavouritesModel(m.deps.Gateway)
		var cmd tea.Cmd
		m.favourites, cmd = m.favourites.Update(size)
		return m, tea.Batch(m.favourites.Init(), cmd)

	case "recents":
		m.currentView = ViewRecents
		m.recents = NewRecentsModel(m.deps.Gateway)
		var cmd tea.Cmd
		m.recents, cmd = m.recents.Update(size)
		return m, tea.Batch(m.recents.Init(), cmd)

	case "scan":
		m.currentView = ViewScan
		m.scan = NewScanModel(m.deps.Gateway)
		var cmd tea.Cmd
		m.scan, cmd = m.scan.Update(size)
		return m, tea.Batch(m.scan.Init(), cmd)

	case "detail":
		req, ok := msg.Data.(DetailRequest)
		if !ok {
			return m, nil
		}
		if m.currentView == ViewDetail {
			m.detail.teardown()
		}
		m.currentView = ViewDetail
		m.detail = NewDetailModel(m.deps.Gateway, m.deps.Volumes, req.Book, req.ReturnTo)
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(size)
		return m, tea.Batch(m.detail.Init(), cmd)

	case "hub":
		m.currentView = ViewHub
		m.hub = NewHubModel(m.deps.Username)
		var cmd tea.Cmd
		m.hub, cmd = m.hub.Update(size)
		return m, tea.Batch(m.hub.Init(), cmd)

	default:
		return m, nil
	}
}
