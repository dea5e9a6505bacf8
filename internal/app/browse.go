package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the library interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runTUI("browse")
			}
			// Piped output degrades to a plain listing.
			return printSearch(cmd, "")
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [title]",
		Short: "Search books by title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			return printSearch(cmd, title)
		},
	}
}

func printSearch(cmd *cobra.Command, title string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	books, err := gw.Search(cmd.Context(), title)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("No books found.")
		return nil
	}

	printBookTable(books)
	return nil
}

func printBookTable(books []library.Book) {
	for _, b := range books {
		year := ""
		if b.Year > 0 {
			year = fmt.Sprintf("%d", b.Year)
		}
		fmt.Printf("%6d  %-48s %-28s %s\n",
			b.ID, truncate(b.Title, 48), color.CyanString(truncate(b.Author, 28)), year)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// findBook resolves a title query to a single book. With a TTY and more
// than one match the user picks; otherwise the first match wins.
func findBook(cmd *cobra.Command, query string) (library.Book, error) {
	books, err := gw.Search(cmd.Context(), query)
	if err != nil {
		return library.Book{}, err
	}
	if len(books) == 0 {
		return library.Book{}, fmt.Errorf("no books match %q", query)
	}
	if len(books) == 1 || !tui.ShouldUseTUI(cmd) {
		return books[0], nil
	}
	return tui.RunBookPicker(books, fmt.Sprintf("Books matching %q", query))
}

func bookLabel(b library.Book) string {
	label := b.Title
	if b.Author != "" {
		label += " — " + b.Author
	}
	return strings.TrimSpace(label)
}
