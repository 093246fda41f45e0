package models

// Product is the canonical 11-field record shared by both dataset formats.
// Optional fields are pointers so a missing value serializes as JSON null.
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviews_count"`
	CreatedAt    string  `json:"created_at"` // YYYY-MM-DD
	Image        *string `json:"image"`
	Promo        any     `json:"promo"` // untyped passthrough
	Description  *string `json:"description"`
}

// RequiredFields lists the fields every uploaded row must carry.
var RequiredFields = []string{"id", "name", "category", "price", "stock", "rating", "created_at"}

// CSVHeader is the fixed column order of the CSV dataset file.
var CSVHeader = []string{
	"id", "name", "category", "price", "stock", "rating", "created_at",
	"reviews_count", "image", "promo", "description",
}

// StockStatus returns the availability text shown in the comparison table.
func (p Product) StockStatus() string {
	if p.Stock > 0 {
		return "В наличии"
	}
	return "Нет в наличии"
}
