package views

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m DetailModel) View() string {
	if m.pageErr != "" {
		return "\n " + tui.StyleError.Render(m.pageErr) + "\n\n " +
			tui.StyleHelp.Render("q back") + "\n"
	}

	switch m.mode {
	case detailEditing:
		return "\n" + m.form.view()
	case detailNoting:
		return m.renderNoteEditor()
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString("\n " + tui.StyleHeader.Render(m.book.Title) + "\n")

	meta := m.book.Author
	if m.book.Year > 0 {
		meta = fmt.Sprintf("%s · %d", meta, m.book.Year)
	}
	b.WriteString(" " + tui.StyleAccent.Render(meta) + "\n")
	b.WriteString(" " + m.renderFavouriteLine() + "\n\n")

	b.WriteString(" " + tui.StyleHeader.Render("Summary") + "\n")
	if m.summaryLoading {
		b.WriteString(" " + tui.StyleHelp.Render("Loading…") + "\n")
	} else {
		wrap := lipgloss.NewStyle().Width(width - 4)
		b.WriteString(" " + wrap.Render(m.summary) + "\n")
	}

	b.WriteString("\n " + m.renderAuthorRail(width) + "\n")

	if m.status != "" {
		b.WriteString("\n " + tui.StyleAccent.Render(m.status) + "\n")
	}

	help := "f favourite · e edit · n note · o read · tab more-by-author · q back"
	b.WriteString("\n " + tui.StyleHelp.Render(help) + "\n")
	return b.String()
}

// renderFavouriteLine shows the confirmed favourite state. While the
// status is unknown or a toggle is in flight it stays neutral.
func (m DetailModel) renderFavouriteLine() string {
	switch {
	case m.favPending:
		return tui.StyleHelp.Render("♥ …")
	case !m.favKnown:
		return tui.StyleHelp.Render("♡")
	case m.favourite:
		return tui.StyleSuccess.Render("♥ Favourited")
	default:
		return tui.StyleHelp.Render("♡ Not favourited")
	}
}

// renderAuthorRail renders the more-by-this-author strip. The current
// book never appears in it.
func (m DetailModel) renderAuthorRail(width int) string {
	if m.book.Author == "" {
		return ""
	}
	header := tui.StyleHeader.Render("More by " + m.book.Author)

	switch {
	case m.authorLoading:
		return header + "\n " + tui.StyleHelp.Render("Loading…")
	case m.authorErr != "":
		return header + "\n " + tui.StyleError.Render(m.authorErr)
	case len(m.authorBooks) == 0:
		return header + "\n " + tui.StyleHelp.Render("No other books by this author.")
	}

	parts := make([]string, 0, len(m.authorBooks))
	for i, b := range m.authorBooks {
		title := xansi.Truncate(b.Title, 28, "…")
		switch {
		case m.authorFocus && i == m.authorCursor:
			parts = append(parts, tui.StyleHighlight.Render("› "+title))
		default:
			parts = append(parts, tui.StyleNormal.Render(title))
		}
	}

	rail := strings.Join(parts, tui.StyleHelp.Render("  │  "))
	return header + "\n " + xansi.Truncate(rail, width-4, "…")
}

func (m DetailModel) renderNoteEditor() string {
	var b strings.Builder
	b.WriteString("\n " + tui.StyleHeader.Render("Note — "+m.book.Title) + "\n\n")
	b.WriteString(m.note.View() + "\n")
	b.WriteString("\n " + tui.StyleHelp.Render("esc save and close · empty note deletes") + "\n")
	return b.String()
}
