package views

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target string      // The target view ("browse", "detail", "hub", etc.)
	Data   interface{} // Optional data to pass to the target view
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}

// ToggleThemeMsg is emitted when the user flips dark mode
type ToggleThemeMsg struct{}
