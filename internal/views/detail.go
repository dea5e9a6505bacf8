package views

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/metadata"
	"github.com/blackwell-systems/bookctl/internal/util"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailRequest asks the orchestrator to open a book's detail view.
type DetailRequest struct {
	Book     library.Book
	ReturnTo string
}

// detailMode tracks which surface of the detail view is active
type detailMode int

const (
	detailViewing detailMode = iota
	detailEditing
	detailNoting
)

// Each fetch result is tagged with the book ID it was fetched for.
// Results for a book the view no longer shows are dropped.
type favouriteStatusMsg struct {
	bookID    int64
	favourite bool
	err       error
}

type authorBooksMsg struct {
	bookID int64
	books  []library.Book
	err    error
}

type summaryMsg struct {
	bookID int64
	text   string
}

type favouriteToggledMsg struct {
	bookID    int64
	favourite bool
	err       error
}

type bookUpdatedMsg struct {
	bookID int64
	form   library.BookForm
	err    error
}

type noteDeletedMsg struct {
	bookID int64
	err    error
}

type bookOpenedMsg struct {
	bookID int64
	err    error
}

// DetailModel is the book detail view. It fans out three independent
// fetches on entry (favourite status, other books by the author, and the
// note-or-description summary) and keeps their failures isolated: one
// broken section never blanks the rest of the page.
type DetailModel struct {
	gw       *library.Gateway
	resolver *metadata.Resolver
	noteSave *metadata.Debouncer

	book     library.Book
	returnTo string
	width    int
	height   int

	// Favourite section. State only changes after the server confirms.
	favKnown   bool
	favourite  bool
	favPending bool

	// More-by-author section
	authorBooks   []library.Book
	authorLoading bool
	authorErr     string
	authorCursor  int
	authorFocus   bool

	// Summary section
	summary        string
	summaryLoading bool

	pageErr string
	status  string

	mode detailMode
	form editForm
	note textarea.Model
}

// NewDetailModel creates the detail view for one book. Fetches start on
// Init. Call teardown before discarding the model.
func NewDetailModel(gw *library.Gateway, volumes *metadata.VolumesClient, book library.Book, returnTo string) DetailModel {
	resolver := metadata.NewResolver(gw, volumes, func(bookID int64, text string) {
		// Write-back of a discovered description, off the UI loop.
		_, _ = gw.UpsertNote(context.Background(), bookID, text)
	})

	ta := textarea.New()
	ta.Placeholder = "Write a note…"
	ta.CharLimit = 4000

	if returnTo == "" {
		returnTo = "browse"
	}

	return DetailModel{
		gw:             gw,
		resolver:       resolver,
		noteSave:       metadata.NewDebouncer(metadata.DefaultSaveDelay),
		book:           book,
		returnTo:       returnTo,
		authorLoading:  true,
		summaryLoading: true,
		note:           ta,
	}
}

func (m DetailModel) Init() tea.Cmd {
	return tea.Batch(m.fetchFavourite(), m.fetchAuthorBooks(), m.fetchSummary())
}

// teardown flushes the pending note write and cancels the resolver's
// debounced write-back. Must run before the model is discarded.
func (m DetailModel) teardown() {
	if m.noteSave != nil {
		m.noteSave.Flush()
		m.noteSave.Close()
	}
	if m.resolver != nil {
		m.resolver.Close()
	}
}

func (m DetailModel) fetchFavourite() tea.Cmd {
	gw, id := m.gw, m.book.ID
	return func() tea.Msg {
		fav, err := gw.IsFavourite(context.Background(), id)
		return favouriteStatusMsg{bookID: id, favourite: fav, err: err}
	}
}

func (m DetailModel) fetchAuthorBooks() tea.Cmd {
	gw, id, author := m.gw, m.book.ID, m.book.Author
	if author == "" {
		return func() tea.Msg { return authorBooksMsg{bookID: id} }
	}
	return func() tea.Msg {
		books, err := gw.ByAuthor(context.Background(), author)
		if err != nil {
			return authorBooksMsg{bookID: id, err: err}
		}
		return authorBooksMsg{bookID: id, books: library.OtherBooksByAuthor(books, id)}
	}
}

func (m DetailModel) fetchSummary() tea.Cmd {
	resolver, id, title := m.resolver, m.book.ID, m.book.Title
	return func() tea.Msg {
		return summaryMsg{bookID: id, text: resolver.Resolve(context.Background(), id, title)}
	}
}

func (m DetailModel) toggleFavouriteCmd() tea.Cmd {
	gw, id, current := m.gw, m.book.ID, m.favourite
	return func() tea.Msg {
		fav, err := gw.ToggleFavourite(context.Background(), id, current)
		return favouriteToggledMsg{bookID: id, favourite: fav, err: err}
	}
}

func (m DetailModel) updateBookCmd(form library.BookForm) tea.Cmd {
	gw, book := m.gw, m.book
	return func() tea.Msg {
		err := gw.UpdateBook(context.Background(), book, form)
		return bookUpdatedMsg{bookID: book.ID, form: form, err: err}
	}
}

func (m DetailModel) deleteNoteCmd() tea.Cmd {
	gw, id := m.gw, m.book.ID
	return func() tea.Msg {
		return noteDeletedMsg{bookID: id, err: gw.DeleteNote(context.Background(), id)}
	}
}

func (m DetailModel) openBookCmd() tea.Cmd {
	gw, id, link := m.gw, m.book.ID, m.gw.ReadLink(m.book)
	return func() tea.Msg {
		// Recording the read is best-effort; opening still proceeds.
		_ = gw.AddRecent(context.Background(), id)
		return bookOpenedMsg{bookID: id, err: util.OpenInBrowser(link)}
	}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.SetWidth(msg.Width - 6)
		m.note.SetHeight(8)
		return m, nil

	case favouriteStatusMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				m.pageErr = signInMessage
			}
			// Otherwise the heart stays in its unknown state.
			return m, nil
		}
		m.favKnown = true
		m.favourite = msg.favourite
		return m, nil

	case authorBooksMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		m.authorLoading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				m.pageErr = signInMessage
			}
			m.authorErr = api.DetailMessage(msg.err)
			return m, nil
		}
		m.authorBooks = msg.books
		if m.authorCursor >= len(m.authorBooks) {
			m.authorCursor = 0
		}
		return m, nil

	case summaryMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		m.summaryLoading = false
		m.summary = msg.text
		return m, nil

	case favouriteToggledMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		m.favPending = false
		if msg.err != nil {
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.favKnown = true
		m.favourite = msg.favourite
		return m, nil

	case bookUpdatedMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		if msg.err != nil {
			m.form.err = api.DetailMessage(msg.err)
			return m, nil
		}
		m.applyForm(msg.form)
		m.mode = detailViewing
		m.status = "Saved"
		// The author may have changed; refresh the rail.
		m.authorLoading = true
		m.authorErr = ""
		return m, m.fetchAuthorBooks()

	case noteDeletedMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		if msg.err != nil {
			m.status = api.DetailMessage(msg.err)
			return m, nil
		}
		m.status = "Note deleted"
		return m, nil

	case bookOpenedMsg:
		if msg.bookID != m.book.ID {
			return m, nil
		}
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "Opened in browser"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

const signInMessage = "Session expired. Run 'bookctl login' and try again."

// applyForm merges confirmed edits into the displayed book.
func (m *DetailModel) applyForm(form library.BookForm) {
	m.book.Title = form.Title
	m.book.Author = form.Author
	if form.Year != "" {
		if year, err := strconv.Atoi(form.Year); err == nil {
			m.book.Year = year
		}
	}
	if form.ImagePath != "" {
		m.book.ImagePath = form.ImagePath
	}
}

func (m DetailModel) handleKey(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, func() tea.Msg { return QuitAppMsg{} }
	}

	switch m.mode {
	case detailEditing:
		return m.handleEditKey(msg)
	case detailNoting:
		return m.handleNoteKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		target := m.returnTo
		return m, func() tea.Msg { return NavigateMsg{Target: target} }

	case "f":
		// Ignored until the current state is known and no toggle is in
		// flight; the heart only flips once the server confirms.
		if !m.favKnown || m.favPending || m.pageErr != "" {
			return m, nil
		}
		m.favPending = true
		m.status = ""
		return m, m.toggleFavouriteCmd()

	case "e":
		if m.pageErr != "" {
			return m, nil
		}
		m.mode = detailEditing
		m.form = newEditForm(m.book)
		return m, textinput.Blink

	case "n":
		if m.pageErr != "" || m.summaryLoading {
			return m, nil
		}
		m.mode = detailNoting
		if m.summary == metadata.Placeholder {
			m.note.SetValue("")
		} else {
			m.note.SetValue(m.summary)
		}
		m.note.Focus()
		return m, textarea.Blink

	case "o":
		if m.book.BookLink == "" {
			m.status = "No file linked for this book"
			return m, nil
		}
		return m, m.openBookCmd()

	case "tab":
		if len(m.authorBooks) > 0 {
			m.authorFocus = !m.authorFocus
		}
		return m, nil

	case "left", "h":
		if m.authorFocus && m.authorCursor > 0 {
			m.authorCursor--
		}
		return m, nil

	case "right", "l":
		if m.authorFocus && m.authorCursor < len(m.authorBooks)-1 {
			m.authorCursor++
		}
		return m, nil

	case "enter":
		if m.authorFocus && m.authorCursor < len(m.authorBooks) {
			req := DetailRequest{Book: m.authorBooks[m.authorCursor], ReturnTo: m.returnTo}
			return m, func() tea.Msg {
				return NavigateMsg{Target: "detail", Data: req}
			}
		}
		return m, nil
	}

	return m, nil
}

func (m DetailModel) handleNoteKey(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = detailViewing
		m.note.Blur()

		text := strings.TrimSpace(m.note.Value())
		if text == "" {
			// An emptied note is deleted; the summary falls back to the
			// placeholder rather than an empty block.
			m.noteSave.Stop()
			m.summary = metadata.Placeholder
			return m, m.deleteNoteCmd()
		}
		m.summary = text
		m.noteSave.Flush()
		m.status = "Note saved"
		return m, nil
	}

	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)

	// Persist after the typing pause; only the latest text is written.
	if text := strings.TrimSpace(m.note.Value()); text != "" {
		gw, id := m.gw, m.book.ID
		m.noteSave.Trigger(func() {
			_, _ = gw.UpsertNote(context.Background(), id, text)
		})
	}
	return m, cmd
}
