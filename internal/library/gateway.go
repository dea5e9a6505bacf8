package library

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/api"
)

// ErrAborted is returned by destructive operations when the user declines
// the confirmation prompt. No request is issued in that case.
var ErrAborted = errors.New("aborted by user")

// Gateway is the set of named remote operations against the book-library
// server. Each operation is a thin validated wrapper over the API client.
type Gateway struct {
	api *api.Client

	// Confirm obtains a yes/no answer before a destructive operation.
	// Nil means proceed without asking (used by the TUI flows, which run
	// their own confirmation screens).
	Confirm func(prompt string) bool
}

// NewGateway creates a Gateway over the given API client.
func NewGateway(c *api.Client) *Gateway {
	return &Gateway{api: c}
}

// Search fetches books matching a title, or all books when title is empty.
func (g *Gateway) Search(ctx context.Context, title string) ([]Book, error) {
	path := "/books/search"
	if title != "" {
		path += "?title=" + url.QueryEscape(title)
	}
	var resp struct {
		Books []Book `json:"books"`
	}
	if err := g.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// ByAuthor fetches all books by the given author.
func (g *Gateway) ByAuthor(ctx context.Context, author string) ([]Book, error) {
	var resp struct {
		Books []Book `json:"books"`
	}
	path := "/books/filter?author=" + url.QueryEscape(author)
	if err := g.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// Recents fetches the user's recently read books, most recent first.
func (g *Gateway) Recents(ctx context.Context) ([]Book, error) {
	var resp struct {
		RecentBooks []Book `json:"recent_books"`
	}
	if err := g.api.Get(ctx, "/recents", &resp); err != nil {
		return nil, err
	}
	return resp.RecentBooks, nil
}

// Favourites fetches the user's favourite books.
func (g *Gateway) Favourites(ctx context.Context) ([]Book, error) {
	var resp struct {
		FavouriteBooks []Book `json:"favourite_books"`
	}
	if err := g.api.Get(ctx, "/favourites", &resp); err != nil {
		return nil, err
	}
	return resp.FavouriteBooks, nil
}

// IsFavourite reports whether the book is in the user's favourites.
func (g *Gateway) IsFavourite(ctx context.Context, bookID int64) (bool, error) {
	var resp struct {
		IsFavourite bool `json:"is_favourite"`
	}
	path := fmt.Sprintf("/favourites/%d", bookID)
	if err := g.api.Get(ctx, path, &resp); err != nil {
		return false, err
	}
	return resp.IsFavourite, nil
}

// ToggleFavourite adds the book to favourites when it is not currently one
// and removes it when it is. Returns the new favourite state.
func (g *Gateway) ToggleFavourite(ctx context.Context, bookID int64, currentlyFavourite bool) (bool, error) {
	if bookID == 0 {
		return currentlyFavourite, errors.New("book ID is required")
	}
	if currentlyFavourite {
		if err := g.api.Delete(ctx, fmt.Sprintf("/favourites/%d", bookID), nil); err != nil {
			return currentlyFavourite, err
		}
		return false, nil
	}
	body := map[string]int64{"book_id": bookID}
	if err := g.api.Post(ctx, "/favourites", body, nil); err != nil {
		return currentlyFavourite, err
	}
	return true, nil
}

// UpdateBook submits the editable fields for a book. The identifier and
// read link are carried through unchanged; a blank year is omitted.
func (g *Gateway) UpdateBook(ctx context.Context, book Book, form BookForm) error {
	if book.ID == 0 {
		return errors.New("book not found")
	}

	payload := map[string]interface{}{
		"book_id":   book.ID,
		"book_link": book.BookLink,
		"title":     form.Title,
		"author":    form.Author,
	}
	if form.Year != "" {
		year, err := strconv.Atoi(form.Year)
		if err != nil {
			return fmt.Errorf("invalid year %q", form.Year)
		}
		payload["year"] = year
	}
	if form.ImagePath != "" {
		payload["image_path"] = form.ImagePath
	}

	return g.api.Post(ctx, "/books/update", payload, nil)
}

// ReadLink returns the absolute URL for a book's file. Relative links
// are resolved against the server base.
func (g *Gateway) ReadLink(b Book) string {
	if b.BookLink == "" || strings.Contains(b.BookLink, "://") {
		return b.BookLink
	}
	link := b.BookLink
	if link[0] != '/' {
		link = "/" + link
	}
	return g.api.BaseURL() + link
}

// Note fetches the stored note for a book. A missing note is an empty
// string, not an error.
func (g *Gateway) Note(ctx context.Context, bookID int64) (string, error) {
	var resp Note
	err := g.api.Get(ctx, fmt.Sprintf("/notes/%d", bookID), &resp)
	if errors.Is(err, api.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return resp.Note, nil
}

// UpsertNote persists the text verbatim as the book's note, returning the
// stored record.
func (g *Gateway) UpsertNote(ctx context.Context, bookID int64, text string) (Note, error) {
	if bookID == 0 {
		return Note{}, errors.New("book ID is required")
	}
	body := map[string]interface{}{"book_id": bookID, "note": text}
	var stored Note
	if err := g.api.Post(ctx, "/notes", body, &stored); err != nil {
		return Note{}, err
	}
	return stored, nil
}

// DeleteNote removes the book's note. Deleting a note that does not exist
// is success from the caller's perspective.
func (g *Gateway) DeleteNote(ctx context.Context, bookID int64) error {
	err := g.api.Delete(ctx, fmt.Sprintf("/notes/%d", bookID), nil)
	if errors.Is(err, api.ErrNotFound) {
		return nil
	}
	return err
}

// AddRecent records that the user opened the book. Best-effort: callers
// must not surface a failure to the user.
func (g *Gateway) AddRecent(ctx context.Context, bookID int64) error {
	body := map[string]int64{"book_id": bookID}
	return g.api.Post(ctx, "/recents", body, nil)
}

// Scan triggers a server-side rescan of the library, optionally scoped to
// a folder. Returns the server's status message.
func (g *Gateway) Scan(ctx context.Context, folder string) (string, error) {
	path := "/scan"
	if folder != "" {
		path += "?folder=" + url.QueryEscape(folder)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := g.api.Get(ctx, path, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ClearAllRecents removes every recent-read entry after confirmation.
func (g *Gateway) ClearAllRecents(ctx context.Context) (string, error) {
	if !g.confirm("Are you sure you want to clear all recent books?") {
		return "", ErrAborted
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := g.api.Delete(ctx, "/clear_all", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ClearAllFavourites removes every favourite after confirmation.
func (g *Gateway) ClearAllFavourites(ctx context.Context) (string, error) {
	if !g.confirm("Are you sure you want to clear all favourite books?") {
		return "", ErrAborted
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := g.api.Delete(ctx, "/remove_all_favourites", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (g *Gateway) confirm(prompt string) bool {
	if g.Confirm == nil {
		return true
	}
	return g.Confirm(prompt)
}
