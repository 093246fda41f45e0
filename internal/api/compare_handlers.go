package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/product-catalog/internal/compare"
)

// Compare handlers — the bounded side-by-side selection, scoped per session

// compareColumn is one product column of the comparison table: price,
// rating, stock status as text, category.
type compareColumn struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	StockStatus string  `json:"stockStatus"`
	Category    string  `json:"category"`
}

func (s *Server) handleCreateCompareSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.compare.Create(r.Context())
	if err != nil {
		slog.Error("failed to create compare session", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create compare session")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": sess.ID,
		"ids":       sess.Set.IDs(),
	})
}

func (s *Server) handleGetCompare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	ids := sess.Set.IDs()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ids":      ids,
		"products": s.compareTable(ids),
	})
}

func (s *Server) handleToggleCompare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ID *int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "product id is required")
		return
	}

	added, err := sess.Set.Toggle(r.Context(), *req.ID)
	if err != nil {
		if errors.Is(err, compare.ErrFull) {
			respondError(w, http.StatusConflict, "compare_limit", err.Error())
			return
		}
		slog.Error("failed to toggle compare item", "error", err, "session", sess.ID, "id", *req.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update compare set")
		return
	}

	ids := sess.Set.IDs()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"added":    added,
		"ids":      ids,
		"products": s.compareTable(ids),
	})
}

func (s *Server) handleClearCompare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := sess.Set.Clear(r.Context()); err != nil {
		slog.Error("failed to clear compare set", "error", err, "session", sess.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear compare set")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ids": []int{},
	})
}

// session resolves the sessionID URL parameter, writing the error response
// itself when the id is unusable.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*compare.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.compare.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_session", "invalid compare session id")
		return nil, false
	}
	return sess, true
}

// compareTable lists the compared products in dataset order, skipping ids
// the current dataset no longer contains.
func (s *Server) compareTable(ids []int) []compareColumn {
	selected := make(map[int]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	columns := make([]compareColumn, 0, len(ids))
	for _, p := range s.store.Products() {
		if !selected[p.ID] {
			continue
		}
		columns = append(columns, compareColumn{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Rating:      p.Rating,
			StockStatus: p.StockStatus(),
			Category:    p.Category,
		})
	}
	return columns
}
