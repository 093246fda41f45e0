package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/terra-clan/product-catalog/internal/models"
)

// Dataset file names inside the data directory. The two formats are
// alternatives, never merged: a reader consults exactly one of them.
const (
	JSONFile = "products.json"
	CSVFile  = "products.csv"
)

// Format identifies which dataset file a read or write touched.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatNone Format = ""
)

// EnsureDir creates the data directory if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ReadDataset loads the dataset from dir: products.json first, products.csv
// as fallback. A missing file is not an error: when neither format exists
// the dataset is simply empty. A malformed JSON payload is an error.
func ReadDataset(dir string) ([]models.Product, Format, error) {
	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	if err == nil {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, FormatJSON, fmt.Errorf("malformed JSON dataset: %w", err)
		}
		return products, FormatJSON, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, FormatJSON, fmt.Errorf("failed to read %s: %w", JSONFile, err)
	}

	data, err = os.ReadFile(filepath.Join(dir, CSVFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, FormatNone, nil
		}
		return nil, FormatCSV, fmt.Errorf("failed to read %s: %w", CSVFile, err)
	}

	return parseCSVDataset(data), FormatCSV, nil
}

// parseCSVDataset converts CSV bytes into products with lenient coercion:
// unparseable numeric fields default to 0, missing text fields to empty.
// Rows whose column count differs from the header are skipped.
func parseCSVDataset(data []byte) []models.Product {
	lines := splitLines(data)
	if len(lines) < 2 {
		return nil
	}

	header := ParseLine(strings.TrimPrefix(lines[0], "\uFEFF"))
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var products []models.Product
	for _, line := range lines[1:] {
		fields := ParseLine(line)
		if len(fields) != len(header) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = strings.TrimSpace(fields[i])
		}
		products = append(products, models.Product{
			ID:           atoiOrZero(row["id"]),
			Name:         row["name"],
			Category:     row["category"],
			Price:        atofOrZero(row["price"]),
			Stock:        atoiOrZero(row["stock"]),
			Rating:       atofOrZero(row["rating"]),
			ReviewsCount: atoiOrZero(row["reviews_count"]),
			CreatedAt:    row["created_at"],
			Image:        optionalText(row["image"]),
			Promo:        promoValue(row["promo"]),
			Description:  optionalText(row["description"]),
		})
	}
	return products
}

// WriteJSON overwrites the JSON dataset file with normalized products,
// pretty-printed and with non-ASCII text left unescaped.
func WriteJSON(dir string, products []models.Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, JSONFile), buf.Bytes(), 0o644)
}

// WriteCSV overwrites the CSV dataset file: the fixed 11-column header, then
// one row per product. Values containing a comma or a double quote are
// wrapped in double quotes with embedded quotes doubled.
func WriteCSV(dir string, products []models.Product) error {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(models.CSVHeader, ","))
	buf.WriteByte('\n')

	for _, p := range products {
		fields := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			formatNumber(p.Price),
			strconv.Itoa(p.Stock),
			formatNumber(p.Rating),
			p.CreatedAt,
			strconv.Itoa(p.ReviewsCount),
			textOrEmpty(p.Image),
			anyString(p.Promo),
			textOrEmpty(p.Description),
		}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(EncodeField(f))
		}
		buf.WriteByte('\n')
	}

	return os.WriteFile(filepath.Join(dir, CSVFile), buf.Bytes(), 0o644)
}

func splitLines(data []byte) []string {
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

func atoiOrZero(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// tolerate "12.0" style integers coming from a re-exported CSV
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func atofOrZero(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func promoValue(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// anyString renders an untyped passthrough value for the CSV file.
func anyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
