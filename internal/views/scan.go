package views

import (
	"context"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type scanPhase int

const (
	scanInput scanPhase = iota
	scanRunning
	scanDone
)

type scanDoneMsg struct {
	message string
	err     error
}

// ScanModel prompts for an optional folder and triggers a server rescan.
type ScanModel struct {
	gw      *library.Gateway
	phase   scanPhase
	input   textinput.Model
	spin    spinner.Model
	message string
	failed  bool
	width   int
	height  int
}

// NewScanModel creates the scan view.
func NewScanModel(gw *library.Gateway) ScanModel {
	ti := textinput.New()
	ti.Placeholder = "leave empty for the configured folder"
	ti.Prompt = "Folder: "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ScanModel{gw: gw, phase: scanInput, input: ti, spin: sp}
}

func (m ScanModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ScanModel) scanCmd(folder string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		message, err := gw.Scan(context.Background(), folder)
		return scanDoneMsg{message: message, err: err}
	}
}

func (m ScanModel) Update(msg tea.Msg) (ScanModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 12
		return m, nil

	case scanDoneMsg:
		m.phase = scanDone
		if msg.err != nil {
			m.failed = true
			m.message = api.DetailMessage(msg.err)
		} else {
			m.message = msg.message
			if m.message == "" {
				m.message = "Scan complete"
			}
		}
		return m, nil

	case spinner.TickMsg:
		if m.phase != scanRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, func() tea.Msg { return QuitAppMsg{} }
		}

		switch m.phase {
		case scanInput:
			switch msg.String() {
			case "esc":
				return m, func() tea.Msg { return NavigateMsg{Target: "hub"} }
			case "enter":
				m.phase = scanRunning
				folder := strings.TrimSpace(m.input.Value())
				return m, tea.Batch(m.spin.Tick, m.scanCmd(folder))
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case scanDone:
			return m, func() tea.Msg { return NavigateMsg{Target: "hub"} }
		}
	}

	return m, nil
}

func (m ScanModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + tui.StyleHeader.Render("Scan library") + "\n\n")

	switch m.phase {
	case scanInput:
		b.WriteString(" " + m.input.View() + "\n")
		b.WriteString("\n " + tui.StyleHelp.Render("enter scan · esc back") + "\n")

	case scanRunning:
		b.WriteString(" " + m.spin.View() + " Scanning…\n")

	case scanDone:
		if m.failed {
			b.WriteString(" " + tui.StyleError.Render(m.message) + "\n")
		} else {
			b.WriteString(" " + tui.StyleSuccess.Render(m.message) + "\n")
		}
		b.WriteString("\n " + tui.StyleHelp.Render("any key to return") + "\n")
	}
	return b.String()
}
