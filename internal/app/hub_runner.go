package app

import (
	"fmt"

	"github.com/blackwell-systems/bookctl/internal/metadata"
	"github.com/blackwell-systems/bookctl/internal/views"
	tea "github.com/charmbracelet/bubbletea"
)

// runTUI launches the interactive interface at the given view.
func runTUI(startView string) error {
	if !sess.LoggedIn() {
		fmt.Println("Not signed in.")
		fmt.Println()
		fmt.Println("Run 'bookctl login' first, or 'bookctl register' to create an account.")
		return nil
	}

	// The TUI runs its own confirmation screens; a stdin prompt inside
	// the alt screen would deadlock.
	tuiGW := *gw
	tuiGW.Confirm = nil

	deps := views.Deps{
		Gateway:  &tuiGW,
		Volumes:  metadata.NewVolumesClient(),
		Config:   cfg,
		Username: sess.Username,
	}

	m := views.NewAtView(deps, views.View(startView))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
