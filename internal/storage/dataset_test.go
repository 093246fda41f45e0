package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terra-clan/product-catalog/internal/models"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{`"a,b",c`, []string{"a,b", "c"}},
		{`"он сказал ""привет""",x`, []string{`он сказал "привет"`, "x"}},
		{`a\,b,c`, []string{"a,b", "c"}},
		{"", []string{""}},
		{"a,,c", []string{"a", "", "c"}},
		{`"",x`, []string{"", "x"}},
	}

	for _, tc := range cases {
		got := ParseLine(tc.line)
		if len(got) != len(tc.want) {
			t.Errorf("ParseLine(%q) = %v, want %v", tc.line, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseLine(%q)[%d] = %q, want %q", tc.line, i, got[i], tc.want[i])
			}
		}
	}
}

func TestEncodeField(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`he said "hi"`, `"he said ""hi"""`},
		{"", ""},
	}

	for _, tc := range cases {
		if got := EncodeField(tc.in); got != tc.want {
			t.Errorf("EncodeField(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteCSVReadDatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	image := "https://example.com/1.png"
	products := []models.Product{
		{ID: 1, Name: "Ноутбук, игровой", Category: "Электроника", Price: 99999.5, Stock: 3, Rating: 4.8, ReviewsCount: 120, CreatedAt: "2024-01-01", Image: &image},
		{ID: 2, Name: `Кружка "Дом"`, Category: "Посуда", Price: 350, Stock: 0, Rating: 4.1, CreatedAt: "2023-11-20"},
	}

	if err := WriteCSV(dir, products); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, CSVFile))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	firstLine := strings.SplitN(string(data), "\n", 2)[0]
	if firstLine != strings.Join(models.CSVHeader, ",") {
		t.Errorf("unexpected header line: %q", firstLine)
	}
	if !strings.Contains(string(data), `"Ноутбук, игровой"`) {
		t.Error("value containing a comma should be quoted")
	}
	if !strings.Contains(string(data), `"Кружка ""Дом"""`) {
		t.Error("value containing quotes should be quoted with doubled quotes")
	}

	got, format, err := ReadDataset(dir)
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}
	if format != FormatCSV {
		t.Errorf("expected format csv, got %q", format)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].Name != "Ноутбук, игровой" || got[0].Price != 99999.5 || got[0].Stock != 3 {
		t.Errorf("first product mismatch: %+v", got[0])
	}
	if got[0].Image == nil || *got[0].Image != image {
		t.Errorf("image not preserved: %+v", got[0].Image)
	}
	if got[1].Name != `Кружка "Дом"` {
		t.Errorf("quoted name not preserved: %q", got[1].Name)
	}
	if got[1].Image != nil {
		t.Errorf("empty optional field should read back as nil, got %q", *got[1].Image)
	}
}

func TestReadDatasetPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSON(dir, []models.Product{{ID: 1, Name: "JSON"}}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if err := WriteCSV(dir, []models.Product{{ID: 2, Name: "CSV"}}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, format, err := ReadDataset(dir)
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}
	if format != FormatJSON {
		t.Errorf("expected json to win, got %q", format)
	}
	if len(got) != 1 || got[0].Name != "JSON" {
		t.Errorf("unexpected products: %+v", got)
	}
}

func TestReadDatasetMissingFilesIsEmptyCatalog(t *testing.T) {
	got, format, err := ReadDataset(t.TempDir())
	if err != nil {
		t.Fatalf("missing files must not be an error, got: %v", err)
	}
	if format != FormatNone {
		t.Errorf("expected no format, got %q", format)
	}
	if len(got) != 0 {
		t.Errorf("expected empty dataset, got %d products", len(got))
	}
}

func TestReadDatasetMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, JSONFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ReadDataset(dir); err == nil {
		t.Fatal("expected an error for a malformed JSON dataset")
	}
}

func TestParseCSVDatasetLenientCoercion(t *testing.T) {
	csv := "\uFEFFid,name,category,price,stock,rating,created_at,reviews_count,image,promo,description\n" +
		"abc,Товар,Разное,not-a-price,,,2024-02-02,,,,\n" +
		"2,Второй,Разное,10,5,4.5,2024-02-03,7,,,extra-column-here\n" +
		"3,short,row\n"

	got := parseCSVDataset([]byte(csv))
	if len(got) != 2 {
		t.Fatalf("expected 2 rows (short row skipped), got %d", len(got))
	}
	first := got[0]
	if first.ID != 0 || first.Price != 0 || first.Stock != 0 || first.Rating != 0 {
		t.Errorf("unparseable numerics should default to 0: %+v", first)
	}
	if first.Name != "Товар" || first.CreatedAt != "2024-02-02" {
		t.Errorf("text fields mismatch: %+v", first)
	}
	if got[1].ReviewsCount != 7 {
		t.Errorf("expected reviews_count 7, got %d", got[1].ReviewsCount)
	}
}

func TestWriteJSONKeepsUnicodeUnescaped(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSON(dir, []models.Product{{ID: 1, Name: "Новинка", CreatedAt: "2024-01-01"}}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Новинка") {
		t.Error("non-ASCII text should be written unescaped")
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Error("dataset should be pretty-printed")
	}
}
