package views

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/library"
)

func newTestFavourites() FavouritesModel {
	gw := library.NewGateway(api.New("http://127.0.0.1:1", "token", time.Second))
	return NewFavouritesModel(gw)
}

func loadedFavourites(t *testing.T, books []library.Book) FavouritesModel {
	t.Helper()
	m := newTestFavourites()
	m, _ = m.Update(favListMsg{books: books})
	if m.phase != favPicking {
		t.Fatalf("phase = %v after load, want picking", m.phase)
	}
	return m
}

func TestFavourites_RemoveSelectedWorksThroughQueue(t *testing.T) {
	books := []library.Book{
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "Hyperion"},
		{ID: 3, Title: "Foundation"},
	}
	m := loadedFavourites(t, books)

	m, _ = m.Update(keyMsg(" "))
	m.ms.List.Select(1)
	m, _ = m.Update(keyMsg(" "))
	if m.ms.SelectedCount() != 2 {
		t.Fatalf("selected = %d, want 2", m.ms.SelectedCount())
	}

	m, _ = m.Update(keyMsg("x"))
	if m.phase != favConfirming {
		t.Fatal("remove-selected did not ask for confirmation")
	}

	m, cmd := m.Update(keyMsg("y"))
	if m.phase != favProcessing {
		t.Fatal("confirmation did not start processing")
	}
	if cmd == nil {
		t.Fatal("expected the first removal command")
	}
	if len(m.queue) != 1 {
		t.Fatalf("queue = %d, want 1 remaining while the first is in flight", len(m.queue))
	}

	// Server confirms both removals one by one.
	m, cmd = m.Update(favRemovedMsg{bookID: 1})
	if cmd == nil {
		t.Fatal("expected the second removal command")
	}
	m, cmd = m.Update(favRemovedMsg{bookID: 2})
	if cmd == nil {
		t.Fatal("expected a reload after the queue drained")
	}
	if m.phase != favLoading {
		t.Error("list should reload once the queue is empty")
	}
	if m.status != "Removed 2 favourite(s)" {
		t.Errorf("status = %q", m.status)
	}
}

func TestFavourites_PartialFailureIsCounted(t *testing.T) {
	m := loadedFavourites(t, []library.Book{{ID: 1, Title: "Dune"}, {ID: 2, Title: "Hyperion"}})

	m, _ = m.Update(keyMsg(" "))
	m.ms.List.Select(1)
	m, _ = m.Update(keyMsg(" "))
	m, _ = m.Update(keyMsg("x"))
	m, _ = m.Update(keyMsg("y"))

	m, _ = m.Update(favRemovedMsg{bookID: 1, err: errors.New("boom")})
	m, _ = m.Update(favRemovedMsg{bookID: 2})

	if m.status != "Removed 1 favourite(s), 1 failed" {
		t.Errorf("status = %q", m.status)
	}
}

func TestFavourites_RemoveNeedsSelection(t *testing.T) {
	m := loadedFavourites(t, []library.Book{{ID: 1, Title: "Dune"}})

	m, _ = m.Update(keyMsg("x"))
	if m.phase != favPicking {
		t.Error("remove-selected with nothing selected must not confirm")
	}
	if m.status == "" {
		t.Error("expected a hint that nothing is selected")
	}
}

func TestFavourites_DeclinedConfirmationReturnsToList(t *testing.T) {
	m := loadedFavourites(t, []library.Book{{ID: 1, Title: "Dune"}})

	m, _ = m.Update(keyMsg("C"))
	if m.phase != favConfirming {
		t.Fatal("clear-all did not ask for confirmation")
	}
	m, cmd := m.Update(keyMsg("n"))
	if m.phase != favPicking || cmd != nil {
		t.Error("declining must return to the list without issuing requests")
	}
}

func TestFavourites_ClearAllReloads(t *testing.T) {
	m := loadedFavourites(t, []library.Book{{ID: 1, Title: "Dune"}})

	m, _ = m.Update(keyMsg("C"))
	m, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("expected the clear-all command")
	}

	m, cmd = m.Update(favClearedMsg{message: "All favourites removed"})
	if cmd == nil || m.phase != favLoading {
		t.Error("a confirmed clear-all should reload the list")
	}
	if m.status != "All favourites removed" {
		t.Errorf("status = %q, want the server's message", m.status)
	}
}
