package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/terra-clan/product-catalog/internal/models"
)

// validateRow checks one uploaded row against the schema and returns a
// human-readable error per violation, referencing the 1-based row number.
// Every required field missing, empty or null is reported; field-level
// checks run for each field that is actually present, so one row can
// accumulate several errors.
func validateRow(row map[string]any, rowNum int) []string {
	present := func(f string) bool {
		v, ok := row[f]
		return ok && v != nil && v != ""
	}

	var errs []string
	for _, f := range models.RequiredFields {
		if !present(f) {
			errs = append(errs, fmt.Sprintf("строка %d: отсутствует поле %q", rowNum, f))
		}
	}

	if present("id") {
		if n, ok := toNumber(row["id"]); !ok || n != math.Trunc(n) {
			errs = append(errs, fmt.Sprintf("строка %d: поле id должно быть целым числом", rowNum))
		}
	}
	if present("price") {
		if n, ok := toNumber(row["price"]); !ok || n < 0 {
			errs = append(errs, fmt.Sprintf("строка %d: поле price должно быть числом >= 0", rowNum))
		}
	}
	if present("stock") {
		if n, ok := toNumber(row["stock"]); !ok || n != math.Trunc(n) || n < 0 {
			errs = append(errs, fmt.Sprintf("строка %d: поле stock — неотрицательное целое", rowNum))
		}
	}
	if present("rating") {
		if n, ok := toNumber(row["rating"]); !ok || n < 0 || n > 5 {
			errs = append(errs, fmt.Sprintf("строка %d: поле rating должно быть число от 0 до 5", rowNum))
		}
	}
	if present("created_at") {
		if !isCalendarDate(row["created_at"]) {
			errs = append(errs, fmt.Sprintf("строка %d: поле created_at должно быть в формате YYYY-MM-DD", rowNum))
		}
	}
	return errs
}

// isCalendarDate reports whether v is a string holding a real calendar date
// in the exact YYYY-MM-DD pattern: re-serializing the parsed date must
// reproduce the input byte for byte.
func isCalendarDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Format("2006-01-02") == s
}

// toNumber accepts JSON numbers and numeric strings (CSV values arrive as
// strings and pass through the same checks).
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// normalizeRow coerces an accepted row into the canonical field set.
func normalizeRow(row map[string]any) models.Product {
	p := models.Product{
		ID:        intField(row["id"]),
		Name:      textField(row["name"]),
		Category:  textField(row["category"]),
		Price:     floatField(row["price"]),
		Stock:     intField(row["stock"]),
		Rating:    floatField(row["rating"]),
		CreatedAt: textField(row["created_at"]),
	}
	if v, ok := row["reviews_count"]; ok {
		p.ReviewsCount = intField(v)
	}
	p.Image = optionalField(row, "image")
	if v, ok := row["promo"]; ok && v != "" {
		p.Promo = v
	}
	p.Description = optionalField(row, "description")
	return p
}

func intField(v any) int {
	n, _ := toNumber(v)
	return int(n)
}

func floatField(v any) float64 {
	n, _ := toNumber(v)
	return n
}

func textField(v any) string {
	s, _ := v.(string)
	if s == "" {
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return s
}

func optionalField(row map[string]any, name string) *string {
	v, ok := row[name]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
