package views

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/config"
	"github.com/blackwell-systems/bookctl/internal/library"
)

func newTestBrowse() BrowseModel {
	return NewBrowseModel(library.NewGateway(api.New("http://127.0.0.1:1", "token", time.Second)), config.UIConfig{})
}

func TestBrowse_StaleQueryResultsIgnored(t *testing.T) {
	m := newTestBrowse()
	m.query = "dune"

	m, _ = m.Update(browseBooksMsg{query: "du", books: []library.Book{{ID: 1, Title: "Wrong"}}})
	if len(m.list.Items()) != 0 {
		t.Error("results for a superseded query were applied")
	}

	m, _ = m.Update(browseBooksMsg{query: "dune", books: []library.Book{{ID: 2, Title: "Dune"}}})
	if len(m.list.Items()) != 1 {
		t.Error("results for the current query were dropped")
	}
	if m.loading {
		t.Error("loading flag not cleared")
	}
}

func TestBrowse_SearchFailureShowsDetail(t *testing.T) {
	m := newTestBrowse()
	m.query = "dune"

	m, _ = m.Update(browseBooksMsg{
		query: "dune",
		err:   &api.Error{Status: 500, Detail: "Database unavailable"},
	})

	if m.status != "Database unavailable" {
		t.Errorf("status = %q, want the server's detail message", m.status)
	}
}

func TestBrowse_RecentsRailFailureIsSilent(t *testing.T) {
	m := newTestBrowse()

	m, _ = m.Update(browseRecentsMsg{err: errors.New("boom")})
	if len(m.recents) != 0 {
		t.Error("rail should stay empty on failure")
	}
	if m.renderRecentsRail() != "" {
		t.Error("an empty rail renders nothing")
	}

	m, _ = m.Update(browseRecentsMsg{books: []library.Book{{ID: 1, Title: "Dune"}}})
	if len(m.recents) != 1 {
		t.Error("rail contents were dropped")
	}
}
