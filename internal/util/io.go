package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Confirm asks a yes/no question on w and reads the answer from r.
// Anything other than y/yes declines.
func Confirm(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ConfirmStdin asks a yes/no question on the terminal.
func ConfirmStdin(prompt string) bool {
	return Confirm(os.Stdin, os.Stdout, prompt)
}

// OpenInBrowser hands a URL to the system opener. The command is started,
// not waited on.
func OpenInBrowser(url string) error {
	var cmdName string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmdName = "open"
		args = []string{url}
	case "windows":
		cmdName = "cmd"
		args = []string{"/c", "start", "", url}
	default: // linux, freebsd, etc.
		cmdName = "xdg-open"
		args = []string{url}
	}

	c := exec.Command(cmdName, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening %q with %q: %w", url, cmdName, err)
	}
	return nil
}
