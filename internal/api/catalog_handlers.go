package api

import (
	"net/http"
	"time"

	"github.com/terra-clan/product-catalog/internal/catalog"
	"github.com/terra-clan/product-catalog/internal/models"
)

// Catalog handlers — filtered, sorted, paginated product views

// handleListProducts recomputes the visible subset from the full in-memory
// dataset and the query parameters: q, cat, min, max, inStock, sort, page.
// The response carries the canonical query string so a shared URL reproduces
// the exact view.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := models.ParseQuery(r.URL.Query())
	view := catalog.BuildView(s.store.Products(), q, nil, time.Now())
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.Categories()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}
