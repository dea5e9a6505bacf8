package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackwell-systems/bookctl/internal/api"
)

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, "tok-123", 0)
	if err := c.Get(context.Background(), "/books/search", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", 0)
	if err := c.Post(context.Background(), "/signin", map[string]string{"username": "u"}, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := api.New(srv.URL, "expired", 0)
	err := c.Get(context.Background(), "/favourites", nil)
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Note not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := api.New(srv.URL, "tok", 0)
	err := c.Get(context.Background(), "/notes/42", nil)
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_DetailSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Book already favourited"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := api.New(srv.URL, "tok", 0)
	err := c.Post(context.Background(), "/favourites", map[string]int64{"book_id": 42}, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *api.Error", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Detail != "Book already favourited" {
		t.Errorf("Detail = %q, want %q", apiErr.Detail, "Book already favourited")
	}
	if got := api.DetailMessage(err); got != "Book already favourited" {
		t.Errorf("DetailMessage = %q", got)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := api.New(srv.URL, "tok", 0)
	err := c.Get(context.Background(), "/books/search", nil)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *api.Error", err)
	}
	if apiErr.Detail != "bad gateway" {
		t.Errorf("Detail = %q, want raw body", apiErr.Detail)
	}
}

func TestDetailMessage_PlainError(t *testing.T) {
	err := errors.New("connection refused")
	if got := api.DetailMessage(err); got != "connection refused" {
		t.Errorf("DetailMessage = %q", got)
	}
}
