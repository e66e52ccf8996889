package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/dinner"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
	"github.com/PCalderonpm/menu-escolar/internal/menus/memory"
)

// testService exposes the wire contract over an in-memory store, enough
// for the client to talk to.
func testService(t *testing.T) (*Client, *memory.Store) {
	t.Helper()
	store := memory.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID   string           `json:"id"`
			Data *core.MenuBundle `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing data"})
			return
		}
		id, err := store.Save(r.Context(), req.ID, *req.Data)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	})
	mux.HandleFunc("/api/menu/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/api/menu/"):]
		b, err := store.Load(r.Context(), id)
		if errors.Is(err, menus.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "menu not found"})
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "data": b})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	client, _ := testService(t)

	b := core.NewBundle()
	b.Profile.Name = "Luna"
	b.Ledger["2024-03-04"] = core.SchoolMenu
	b.WeeklyMenu["2024-03-04"] = "Lentejas"

	id, err := client.Save(context.Background(), "", b)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	got, err := client.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, b)
	}
}

func TestSaveKeepsID(t *testing.T) {
	client, _ := testService(t)

	id, err := client.Save(context.Background(), "abc123def4", core.NewBundle())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id != "abc123def4" {
		t.Fatalf("id = %q, want abc123def4", id)
	}
}

func TestLoadNotFound(t *testing.T) {
	client, _ := testService(t)

	_, err := client.Load(context.Background(), "missing123")
	if !errors.Is(err, menus.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "database exploded"})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL)
	_, err := client.Load(context.Background(), "abc123def4")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, menus.ErrNotFound) {
		t.Fatal("500 must not map to ErrNotFound")
	}
}

func TestSuggestDinners(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dinner-suggestions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"suggestions": []map[string]any{
				{"name": "Sopa de verduras", "ingredients": []string{"zanahoria"}, "steps": []string{"Hervir"}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	got, err := NewClient(srv.URL).SuggestDinners(context.Background(), "Lentejas")
	if err != nil {
		t.Fatalf("SuggestDinners: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Sopa de verduras" {
		t.Fatalf("suggestions = %+v", got)
	}
}

func TestSuggestDinnersServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "dinner suggestions not configured"})
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).SuggestDinners(context.Background(), "Lentejas")
	if !errors.Is(err, dinner.ErrService) {
		t.Fatalf("error = %v, want ErrService", err)
	}
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8080/")
	if c.baseURL != "http://localhost:8080" {
		t.Fatalf("baseURL = %q", c.baseURL)
	}
}
