package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/dinner"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
)

type saveMenuRequest struct {
	ID   string           `json:"id"`
	Data *core.MenuBundle `json:"data"`
}

type saveMenuResponse struct {
	ID string `json:"id"`
}

type getMenuResponse struct {
	ID   string          `json:"id"`
	Data core.MenuBundle `json:"data"`
}

// handleSaveMenu stores a full bundle, minting an id when the request
// carries none.
func (s *Server) handleSaveMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req saveMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Save menu decode error", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Data == nil {
		writeError(w, http.StatusBadRequest, "missing data")
		return
	}

	bundle := req.Data.Normalize()

	id, err := s.gateway.Save(r.Context(), strings.TrimSpace(req.ID), bundle)
	if err != nil {
		slog.ErrorContext(r.Context(), "Save menu error", "menu_id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save menu")
		return
	}

	s.bundleCache.Delete(id)
	s.notifySaved(id)

	writeJSON(w, http.StatusOK, saveMenuResponse{ID: id})
}

// notifySaved publishes the saved event without letting broker trouble
// surface to the client. The request context is not reused: it dies
// with the response.
func (s *Server) notifySaved(id string) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.PublishMenuSaved(ctx, id); err != nil {
			slog.Error("Failed to publish menu saved event", "menu_id", id, "error", err)
		}
	}()
}

// handleMenuSubtree dispatches /api/menu/{id}, /api/menu/{id}/stats and
// /api/menu/{id}/summary.
func (s *Server) handleMenuSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/menu/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch sub {
	case "":
		s.handleGetMenu(w, r, id)
	case "stats":
		s.handleMenuStats(w, r, id)
	case "summary":
		s.handleMenuSummary(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request, id string) {
	bundle, err := s.loadBundle(r.Context(), id)
	if err != nil {
		if errors.Is(err, menus.ErrNotFound) {
			writeError(w, http.StatusNotFound, "menu not found")
			return
		}
		slog.ErrorContext(r.Context(), "Load menu error", "menu_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load menu")
		return
	}

	writeJSON(w, http.StatusOK, getMenuResponse{ID: id, Data: bundle})
}

func (s *Server) handleMenuStats(w http.ResponseWriter, r *http.Request, id string) {
	bundle, err := s.loadBundle(r.Context(), id)
	if err != nil {
		if errors.Is(err, menus.ErrNotFound) {
			writeError(w, http.StatusNotFound, "menu not found")
			return
		}
		slog.ErrorContext(r.Context(), "Load menu error", "menu_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load menu")
		return
	}

	year, month := yearMonthParams(r)
	stats := core.Aggregate(bundle.Ledger, bundle.Pricing, year, month)
	writeJSON(w, http.StatusOK, stats)
}

type summaryLine struct {
	Label string `json:"label"`
	Days  int    `json:"days"`
	Cost  string `json:"cost"`
}

type summaryResponse struct {
	Student       string        `json:"student"`
	Period        string        `json:"period"`
	Lines         []summaryLine `json:"lines"`
	AbsentDays    int           `json:"absentDays"`
	NoClassesDays int           `json:"noClassesDays"`
	Total         string        `json:"total"`
	FixedPlan     string        `json:"fixedPlan,omitempty"`
	Savings       string        `json:"savings,omitempty"`
}

// handleMenuSummary renders a printable monthly summary.
func (s *Server) handleMenuSummary(w http.ResponseWriter, r *http.Request, id string) {
	bundle, err := s.loadBundle(r.Context(), id)
	if err != nil {
		if errors.Is(err, menus.ErrNotFound) {
			writeError(w, http.StatusNotFound, "menu not found")
			return
		}
		slog.ErrorContext(r.Context(), "Load menu error", "menu_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load menu")
		return
	}

	year, month := yearMonthParams(r)
	stats := core.Aggregate(bundle.Ledger, bundle.Pricing, year, month)

	resp := summaryResponse{
		Student: bundle.Profile.Name,
		Period:  periodLabel(year, month),
		Lines: []summaryLine{
			{Label: string(core.SchoolMenu), Days: stats.MenuDays, Cost: core.FormatARS(stats.MenuCost)},
			{Label: string(core.PackedLunch), Days: stats.PackedLunchDays, Cost: core.FormatARS(stats.PackedLunchCost)},
		},
		AbsentDays:    stats.AbsentDays,
		NoClassesDays: stats.NoClassesDays,
		Total:         core.FormatARS(stats.TotalCost),
	}
	if stats.HasSavings {
		resp.FixedPlan = core.FormatARS(bundle.Pricing.FixedMonthly)
		resp.Savings = core.FormatARS(stats.Savings)
	}

	writeJSON(w, http.StatusOK, resp)
}

type dinnerRequest struct {
	Lunch string `json:"lunch"`
}

type dinnerResponse struct {
	Suggestions []dinner.Suggestion `json:"suggestions"`
}

func (s *Server) handleDinnerSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.suggester == nil {
		writeError(w, http.StatusServiceUnavailable, "dinner suggestions not configured")
		return
	}

	var req dinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lunch := strings.TrimSpace(req.Lunch)
	if lunch == "" {
		writeError(w, http.StatusBadRequest, "missing lunch")
		return
	}

	suggestions, err := s.suggester.SuggestDinners(r.Context(), lunch)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dinner suggestion error", "lunch", lunch, "error", err)
		writeError(w, http.StatusBadGateway, "could not fetch dinner suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []dinner.Suggestion{}
	}

	writeJSON(w, http.StatusOK, dinnerResponse{Suggestions: suggestions})
}
