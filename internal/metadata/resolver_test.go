package metadata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/bookctl/internal/metadata"
)

// fakeNotes serves stored notes from a map; missing entries are empty.
type fakeNotes struct {
	notes map[int64]string
	err   error
}

func (f *fakeNotes) Note(ctx context.Context, bookID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.notes[bookID], nil
}

// savedNotes records write-backs.
type savedNotes struct {
	mu    sync.Mutex
	calls []struct {
		BookID int64
		Text   string
	}
}

func (s *savedNotes) save(bookID int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, struct {
		BookID int64
		Text   string
	}{bookID, text})
}

func (s *savedNotes) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newVolumesServer(t *testing.T, body string, status int) (*metadata.VolumesClient, *[]string) {
	t.Helper()
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		if r.URL.Query().Get("maxResults") != "1" {
			t.Errorf("maxResults = %q, want 1", r.URL.Query().Get("maxResults"))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return metadata.NewVolumesClientWithBase(srv.URL), &queries
}

func TestResolve_StoredNoteSkipsExternalService(t *testing.T) {
	volumes, queries := newVolumesServer(t, `{}`, http.StatusOK)
	notes := &fakeNotes{notes: map[int64]string{42: "My own thoughts on Dune."}}
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(notes, volumes, saved.save, 10*time.Millisecond)
	defer r.Close()

	summary := r.Resolve(context.Background(), 42, "Dune")
	if summary != "My own thoughts on Dune." {
		t.Errorf("summary = %q, want the stored note verbatim", summary)
	}
	if len(*queries) != 0 {
		t.Error("external service called despite a stored note")
	}
	if r.PendingSave() {
		t.Error("write-back scheduled for a stored note")
	}
}

func TestResolve_WhitespaceNoteFallsThrough(t *testing.T) {
	volumes, queries := newVolumesServer(t,
		`{"items":[{"volumeInfo":{"description":"A desert planet..."}}]}`, http.StatusOK)
	notes := &fakeNotes{notes: map[int64]string{42: "   \n\t "}}
	r := metadata.NewResolverWithDelay(notes, volumes, nil, 10*time.Millisecond)
	defer r.Close()

	summary := r.Resolve(context.Background(), 42, "Dune")
	if summary != "A desert planet..." {
		t.Errorf("summary = %q", summary)
	}
	if len(*queries) != 1 {
		t.Errorf("external calls = %d, want 1", len(*queries))
	}
}

func TestResolve_DuneScenario(t *testing.T) {
	volumes, queries := newVolumesServer(t,
		`{"items":[{"volumeInfo":{"description":"A desert planet..."}}]}`, http.StatusOK)
	notes := &fakeNotes{}
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(notes, volumes, saved.save, 10*time.Millisecond)
	defer r.Close()

	summary := r.Resolve(context.Background(), 42, "Dune")
	if summary != "A desert planet..." {
		t.Errorf("summary = %q, want the description", summary)
	}
	if (*queries)[0] != "intitle:dune" {
		t.Errorf("query = %q, want %q", (*queries)[0], "intitle:dune")
	}
	if !r.PendingSave() {
		t.Fatal("no write-back scheduled for the discovered description")
	}

	r.FlushSave()
	if saved.count() != 1 {
		t.Fatalf("write-backs = %d, want 1", saved.count())
	}
	saved.mu.Lock()
	call := saved.calls[0]
	saved.mu.Unlock()
	if call.BookID != 42 || call.Text != "A desert planet..." {
		t.Errorf("write-back = %+v", call)
	}
}

func TestResolve_SnippetFallback(t *testing.T) {
	volumes, _ := newVolumesServer(t,
		`{"items":[{"searchInfo":{"textSnippet":"An epic of political intrigue."}}]}`, http.StatusOK)
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, nil, 10*time.Millisecond)
	defer r.Close()

	summary := r.Resolve(context.Background(), 42, "Dune")
	if summary != "An epic of political intrigue." {
		t.Errorf("summary = %q, want the snippet", summary)
	}
}

func TestResolve_NoItemsYieldsPlaceholder(t *testing.T) {
	volumes, _ := newVolumesServer(t, `{}`, http.StatusOK)
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, saved.save, 10*time.Millisecond)
	defer r.Close()

	summary := r.Resolve(context.Background(), 42, "Dune")
	if summary != metadata.Placeholder {
		t.Errorf("summary = %q, want placeholder", summary)
	}
	if r.PendingSave() {
		t.Error("write-back scheduled for the placeholder")
	}
}

func TestResolve_ServiceFailureYieldsPlaceholder(t *testing.T) {
	volumes, _ := newVolumesServer(t, `oops`, http.StatusInternalServerError)
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, saved.save, 10*time.Millisecond)
	defer r.Close()

	summary := r.Resolve(context.Background(), 42, "Dune")
	if summary != metadata.Placeholder {
		t.Errorf("summary = %q, want placeholder on failure", summary)
	}
	if r.PendingSave() {
		t.Error("write-back scheduled after a failed lookup")
	}
}

func TestResolve_NoteFetchErrorFallsBack(t *testing.T) {
	volumes, _ := newVolumesServer(t,
		`{"items":[{"volumeInfo":{"description":"Still resolvable."}}]}`, http.StatusOK)
	notes := &fakeNotes{err: errors.New("boom")}
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(notes, volumes, saved.save, 10*time.Millisecond)
	defer r.Close()

	if got := r.Resolve(context.Background(), 42, "Dune"); got != "Still resolvable." {
		t.Errorf("summary = %q", got)
	}
	// The note fetch failing says nothing about whether a note exists; a
	// write-back here could clobber it.
	if r.PendingSave() {
		t.Fatal("write-back scheduled while the stored note is unknown")
	}
	time.Sleep(40 * time.Millisecond)
	if saved.count() != 0 {
		t.Fatalf("write-backs = %d, want 0", saved.count())
	}
}

func TestResolve_MultiWordTitleQuery(t *testing.T) {
	volumes, queries := newVolumesServer(t, `{}`, http.StatusOK)
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, nil, 10*time.Millisecond)
	defer r.Close()

	r.Resolve(context.Background(), 7, "The Left Hand of Darkness")
	// The "+" separators decode as spaces on the service side.
	if (*queries)[0] != "intitle:the left hand of darkness" {
		t.Errorf("query = %q", (*queries)[0])
	}
}

func TestScheduleSave_RapidEditsCollapse(t *testing.T) {
	volumes, _ := newVolumesServer(t, `{}`, http.StatusOK)
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, saved.save, 30*time.Millisecond)
	defer r.Close()

	for _, text := range []string{"draft 1", "draft 2", "draft 3"} {
		r.ScheduleSave(42, text)
	}
	time.Sleep(100 * time.Millisecond)

	if saved.count() != 1 {
		t.Fatalf("write-backs = %d, want exactly 1", saved.count())
	}
	saved.mu.Lock()
	text := saved.calls[0].Text
	saved.mu.Unlock()
	if text != "draft 3" {
		t.Errorf("persisted %q, want the last edit", text)
	}
}

func TestClose_CancelsPendingSave(t *testing.T) {
	volumes, _ := newVolumesServer(t, `{}`, http.StatusOK)
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, saved.save, 20*time.Millisecond)

	r.ScheduleSave(42, "about to be abandoned")
	r.Close()

	time.Sleep(60 * time.Millisecond)
	if saved.count() != 0 {
		t.Fatalf("write-backs = %d after Close, want 0", saved.count())
	}
}

func TestClose_BlocksLateResolveWriteBack(t *testing.T) {
	volumes, _ := newVolumesServer(t,
		`{"items":[{"volumeInfo":{"description":"A desert planet..."}}]}`, http.StatusOK)
	saved := &savedNotes{}
	r := metadata.NewResolverWithDelay(&fakeNotes{}, volumes, saved.save, 10*time.Millisecond)

	// Navigation can tear the view down while a Resolve is still in
	// flight; whatever it finds afterwards must not be written back.
	r.Close()
	r.Resolve(context.Background(), 42, "Dune")

	if r.PendingSave() {
		t.Fatal("write-back scheduled after Close")
	}
	time.Sleep(40 * time.Millisecond)
	if saved.count() != 0 {
		t.Fatalf("write-backs = %d after Close, want 0", saved.count())
	}
}
