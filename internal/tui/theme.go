package tui

import "github.com/charmbracelet/lipgloss"

// Palette is a named set of colors for one theme variant.
type Palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
}

// DarkPalette is the default theme.
var DarkPalette = Palette{
	Text:      lipgloss.Color("#FFFFFF"),
	Muted:     lipgloss.Color("#808080"),
	Accent:    lipgloss.Color("#00D7D7"),
	Highlight: lipgloss.Color("#FFD700"),
	Success:   lipgloss.Color("#00D700"),
	Error:     lipgloss.Color("#FF5F5F"),
}

// LightPalette is used when dark mode is switched off.
var LightPalette = Palette{
	Text:      lipgloss.Color("#262626"),
	Muted:     lipgloss.Color("#767676"),
	Accent:    lipgloss.Color("#00AFAF"),
	Highlight: lipgloss.Color("#D7AF00"),
	Success:   lipgloss.Color("#00AF00"),
	Error:     lipgloss.Color("#D70000"),
}

// Reusable styles, rebuilt by ApplyTheme.
var (
	// StyleNormal is the base style for regular text
	StyleNormal lipgloss.Style

	// StyleHighlight is for selected items
	StyleHighlight lipgloss.Style

	// StyleAccent is for metadata and secondary emphasis
	StyleAccent lipgloss.Style

	// StyleSuccess is for favourite markers and success lines
	StyleSuccess lipgloss.Style

	// StyleError is for section and page errors
	StyleError lipgloss.Style

	// StyleHelp is for help text and hints
	StyleHelp lipgloss.Style

	// StyleHeader is for section headers
	StyleHeader lipgloss.Style

	// StyleBorder is for borders and separators
	StyleBorder lipgloss.Style
)

func init() {
	ApplyTheme(true)
}

// ApplyTheme rebuilds the shared styles from the dark or light palette.
// Views pick the change up on their next render.
func ApplyTheme(dark bool) {
	p := DarkPalette
	if !dark {
		p = LightPalette
	}

	StyleNormal = lipgloss.NewStyle().Foreground(p.Text)
	StyleHighlight = lipgloss.NewStyle().Foreground(p.Highlight).Bold(true)
	StyleAccent = lipgloss.NewStyle().Foreground(p.Accent)
	StyleSuccess = lipgloss.NewStyle().Foreground(p.Success)
	StyleError = lipgloss.NewStyle().Foreground(p.Error)
	StyleHelp = lipgloss.NewStyle().Foreground(p.Muted)
	StyleHeader = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	StyleBorder = lipgloss.NewStyle().
		Foreground(p.Muted).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted)
}
