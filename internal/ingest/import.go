// Package ingest implements the upload-and-validate pipeline: an uploaded
// JSON or CSV dataset is validated row by row against a fixed schema and,
// only when every row passes, overwrites the canonical dataset file.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/terra-clan/product-catalog/internal/models"
	"github.com/terra-clan/product-catalog/internal/storage"
)

// Result describes a successful import.
type Result struct {
	Count  int            `json:"count"`
	Format storage.Format `json:"format"`
}

// RequestError is a request-shape or format-level failure: wrong extension,
// unparseable JSON, JSON not an array, CSV empty or missing a required
// column. Nothing is processed past it.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// ValidationError carries the full accumulated list of per-row violations.
// Any validation error means zero file mutation.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("валидация не пройдена: %d ошибок", len(e.Details))
}

// StorageError is a fatal ingestion failure distinct from validation:
// the data directory could not be created or the file could not be written.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string { return e.Message }
func (e *StorageError) Unwrap() error { return e.Err }

// Import validates an uploaded dataset and, when every row passes, writes it
// to the dataset file of the detected format under dir. The format is chosen
// by file extension only, without content sniffing.
func Import(dir, filename string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &RequestError{Message: "Не удалось прочитать файл"}
	}

	var (
		items   []map[string]any
		details []string
		format  storage.Format
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		format = storage.FormatJSON
		items, details, err = parseJSON(data)
	case ".csv":
		format = storage.FormatCSV
		items, details, err = parseCSV(data)
	default:
		return nil, &RequestError{Message: "Файл должен быть .json или .csv"}
	}
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	products := make([]models.Product, 0, len(items))
	for _, row := range items {
		products = append(products, normalizeRow(row))
	}

	if err := storage.EnsureDir(dir); err != nil {
		return nil, &StorageError{Message: "Не удалось создать папку для данных", Err: err}
	}
	if format == storage.FormatJSON {
		if err := storage.WriteJSON(dir, products); err != nil {
			return nil, &StorageError{Message: "Не удалось записать JSON файл", Err: err}
		}
	} else {
		if err := storage.WriteCSV(dir, products); err != nil {
			return nil, &StorageError{Message: "Не удалось записать CSV файл", Err: err}
		}
	}

	slog.Info("dataset imported", "count", len(products), "format", format, "dir", dir)
	return &Result{Count: len(products), Format: format}, nil
}

// parseJSON decodes a JSON upload: the top level must be an array, and every
// element must be an object. A non-object element produces a row-level error
// without aborting the remaining elements.
func parseJSON(data []byte) ([]map[string]any, []string, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, nil, &RequestError{Message: "Некорректный JSON"}
	}
	arr, ok := parsed.([]any)
	if !ok {
		return nil, nil, &RequestError{Message: "JSON должен быть массивом объектов"}
	}

	var items []map[string]any
	var details []string
	for i, el := range arr {
		row, ok := el.(map[string]any)
		if !ok {
			details = append(details, fmt.Sprintf("элемент %d не является объектом", i+1))
			continue
		}
		items = append(items, row)
		details = append(details, validateRow(row, i+1)...)
	}
	return items, details, nil
}

// parseCSV decodes a CSV upload. The header is checked once for all required
// columns (a format-level rejection); data rows with a mismatched column
// count are reported as malformed and skipped for field checks. Row numbers
// are 1-based counting the header, so data rows start at 2.
func parseCSV(data []byte) ([]map[string]any, []string, error) {
	lines := splitCSVLines(data)
	if len(lines) < 2 {
		return nil, nil, &RequestError{Message: "CSV пустой или содержит только заголовок"}
	}

	lines[0] = strings.TrimPrefix(lines[0], "\uFEFF")
	header := storage.ParseLine(lines[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	for _, f := range models.RequiredFields {
		if !slices.Contains(header, f) {
			return nil, nil, &RequestError{Message: fmt.Sprintf("В CSV отсутствует обязательное поле %q", f)}
		}
	}

	var items []map[string]any
	var details []string
	for i, line := range lines[1:] {
		rowNum := i + 2
		fields := storage.ParseLine(line)
		if len(fields) != len(header) {
			details = append(details, fmt.Sprintf("строка %d: количество колонок не соответствует заголовку", rowNum))
			continue
		}
		row := make(map[string]any, len(header))
		for j, name := range header {
			row[name] = strings.TrimSpace(fields[j])
		}
		items = append(items, row)
		details = append(details, validateRow(row, rowNum)...)
	}
	return items, details, nil
}

func splitCSVLines(data []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
