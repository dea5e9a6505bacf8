package metadata

import (
	"context"
	"strings"
	"time"
)

// Placeholder is shown when no note or fallback description could be
// determined. It is never submitted back to the server as a real note.
const Placeholder = "No note available"

// DefaultSaveDelay is the quiet period before a discovered description is
// written back as a note.
const DefaultSaveDelay = 3 * time.Second

// NoteSource reads the stored note for a book. A missing note is reported
// as an empty string.
type NoteSource interface {
	Note(ctx context.Context, bookID int64) (string, error)
}

// SaveFunc persists a note text for a book. Called from the debounce
// timer, outside the caller's goroutine.
type SaveFunc func(bookID int64, text string)

// Resolver produces a human-readable summary for a book: the stored note
// when one exists, otherwise a description looked up from the external
// metadata service. A discovered description is written back as a note
// after a debounce delay, so rapid repeated resolutions cause one write.
//
// One Resolver belongs to one detail-view instance; call Close when the
// view is torn down.
type Resolver struct {
	notes    NoteSource
	volumes  *VolumesClient
	save     SaveFunc
	debounce *Debouncer
}

// NewResolver creates a Resolver. save may be nil when write-back is not
// wanted.
func NewResolver(notes NoteSource, volumes *VolumesClient, save SaveFunc) *Resolver {
	return NewResolverWithDelay(notes, volumes, save, DefaultSaveDelay)
}

// NewResolverWithDelay creates a Resolver with a custom write-back delay.
func NewResolverWithDelay(notes NoteSource, volumes *VolumesClient, save SaveFunc, delay time.Duration) *Resolver {
	return &Resolver{
		notes:    notes,
		volumes:  volumes,
		save:     save,
		debounce: NewDebouncer(delay),
	}
}

// Resolve returns the summary for a book. External-service failures never
// surface: the worst case is the placeholder text with no write-back.
func (r *Resolver) Resolve(ctx context.Context, bookID int64, title string) string {
	note, noteErr := r.notes.Note(ctx, bookID)
	if noteErr == nil && strings.TrimSpace(note) != "" {
		return note
	}

	description, err := r.volumes.Description(ctx, title)
	if err != nil || description == "" {
		return Placeholder
	}

	// A failed note lookup still degrades to the fallback text for
	// display, but the note may exist on the server; writing back then
	// would overwrite it. Only a confirmed-empty note gets a write-back.
	if noteErr == nil && description != Placeholder {
		r.ScheduleSave(bookID, description)
	}
	return description
}

// ScheduleSave queues a debounced note write-back. A newer call for the
// same view supersedes any pending one.
func (r *Resolver) ScheduleSave(bookID int64, text string) {
	if r.save == nil {
		return
	}
	r.debounce.Trigger(func() { r.save(bookID, text) })
}

// PendingSave reports whether a write-back is scheduled.
func (r *Resolver) PendingSave() bool {
	return r.debounce.Pending()
}

// FlushSave runs a pending write-back immediately. Tests use this to
// avoid waiting out the delay.
func (r *Resolver) FlushSave() {
	r.debounce.Flush()
}

// Close cancels any pending write-back and rejects new ones, so a
// Resolve still in flight when the view goes away cannot schedule a
// stale write. Must be called when the owning view is torn down.
func (r *Resolver) Close() {
	r.debounce.Close()
}
