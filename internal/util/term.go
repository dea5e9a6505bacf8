package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY reports whether stdout is attached to a terminal. Piped or
// redirected output turns the interactive surfaces off.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// InitColor disables colored output when asked to or when stdout is not
// a terminal. It never re-enables color that something else turned off.
func InitColor(noColor bool) {
	color.NoColor = color.NoColor || noColor || !IsTTY()
}
