package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/charmbracelet/bubbles/list"
)

// BookItem represents a book in a list.
type BookItem struct {
	Book      library.Book
	Favourite bool
	selected  bool // For multi-select mode
}

// FilterValue returns the string used for filtering and as the selection key.
// The ID keeps books with identical titles apart.
func (b BookItem) FilterValue() string {
	return fmt.Sprintf("%d %s %s", b.Book.ID, b.Book.Title, b.Book.Author)
}

// IsSelected implements multiselect.SelectableItem
func (b BookItem) IsSelected() bool {
	return b.selected
}

// SetSelected implements multiselect.SelectableItem
func (b *BookItem) SetSelected(selected bool) {
	b.selected = selected
}

// NewBookItems wraps books for list display.
func NewBookItems(books []library.Book) []list.Item {
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = BookItem{Book: b}
	}
	return items
}

// ItemKey returns the selection key NewBookItems produced for a book,
// for mapping multiselect keys back to books.
func ItemKey(b library.Book) string {
	return BookItem{Book: b}.FilterValue()
}

// Column width constraints
const (
	minTitleWidth  = 12
	maxTitleWidth  = 52
	minAuthorWidth = 8
	maxAuthorWidth = 28
	yearWidth      = 4
	favWidth       = 1
	columnGap      = 1
)

// computeColumnWidths distributes available width across the book columns.
func computeColumnWidths(totalWidth int) (titleW, authorW int) {
	prefix := 4 // cursor or checkbox prefix
	gaps := columnGap * 3
	usable := totalWidth - prefix - gaps - yearWidth - favWidth
	if usable < minTitleWidth+minAuthorWidth {
		return minTitleWidth, minAuthorWidth
	}
	titleW = usable * 60 / 100
	if titleW > maxTitleWidth {
		titleW = maxTitleWidth
	}
	authorW = usable - titleW
	if authorW > maxAuthorWidth {
		authorW = maxAuthorWidth
	}
	if titleW < minTitleWidth {
		titleW = minTitleWidth
	}
	if authorW < minAuthorWidth {
		authorW = minAuthorWidth
	}
	return
}

// padOrTruncate pads s to exactly width visible chars, truncating with "…"
// if necessary. Uses rune count so multi-byte characters align correctly.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	n := len(runes)
	if n > width {
		if width <= 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	if n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// RenderBookItem renders a book row with fixed-width columns.
// Usable directly as a delegate.RenderFunc.
func RenderBookItem(w io.Writer, m list.Model, index int, item list.Item) {
	var bookItem BookItem
	switch it := item.(type) {
	case BookItem:
		bookItem = it
	case *BookItem:
		bookItem = *it
	default:
		return
	}

	listWidth := m.Width()
	if listWidth <= 0 {
		listWidth = 80
	}
	titleW, authorW := computeColumnWidths(listWidth)
	gap := strings.Repeat(" ", columnGap)

	isCursor := index == m.Index()
	prefix := "  "
	if isCursor {
		prefix = StyleHighlight.Render("›") + " "
	}
	if bookItem.selected {
		prefix = StyleSuccess.Render("✓") + " "
	}

	titleCol := padOrTruncate(bookItem.Book.Title, titleW)
	authorCol := padOrTruncate(bookItem.Book.Author, authorW)

	yearStr := ""
	if bookItem.Book.Year > 0 {
		yearStr = strconv.Itoa(bookItem.Book.Year)
	}
	yearCol := padOrTruncate(yearStr, yearWidth)

	favCol := " "
	if bookItem.Favourite {
		favCol = StyleSuccess.Render("♥")
	}

	var line string
	if isCursor {
		line = prefix + StyleHighlight.Render(titleCol) + gap +
			StyleAccent.Render(authorCol) + gap +
			StyleHighlight.Render(yearCol) + gap + favCol
	} else {
		line = prefix + StyleNormal.Render(titleCol) + gap +
			StyleHelp.Render(authorCol) + gap +
			StyleHelp.Render(yearCol) + gap + favCol
	}
	_, _ = fmt.Fprint(w, line)
}
