package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/terra-clan/product-catalog/internal/ingest"
)

// handleImport accepts one multipart upload under the "products" field,
// validates it as a whole batch and, only when every row passes, overwrites
// the dataset file and reloads the catalog. The response shapes and status
// codes mirror the upload contract: 400 for request-shape and format-level
// faults, 422 with the full error list for validation, 500 for storage.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("products")
	if err != nil {
		respondRaw(w, http.StatusBadRequest, map[string]string{
			"error": "Файл не загружен",
		})
		return
	}
	defer file.Close()

	result, err := ingest.Import(s.dataDir, header.Filename, file)
	if err != nil {
		var reqErr *ingest.RequestError
		var valErr *ingest.ValidationError
		var storErr *ingest.StorageError

		switch {
		case errors.As(err, &reqErr):
			respondRaw(w, http.StatusBadRequest, map[string]string{
				"error": reqErr.Message,
			})
		case errors.As(err, &valErr):
			respondRaw(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":   "Валидация не пройдена",
				"details": valErr.Details,
			})
		case errors.As(err, &storErr):
			slog.Error("dataset write failed", "error", storErr.Unwrap(), "file", header.Filename)
			respondRaw(w, http.StatusInternalServerError, map[string]string{
				"error": storErr.Message,
			})
		default:
			slog.Error("import failed", "error", err, "file", header.Filename)
			respondRaw(w, http.StatusInternalServerError, map[string]string{
				"error": "Внутренняя ошибка сервера",
			})
		}
		return
	}

	if err := s.store.Load(); err != nil {
		slog.Error("failed to reload dataset after import", "error", err)
	}

	respondRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   result.Count,
		"format":  result.Format,
	})
}
