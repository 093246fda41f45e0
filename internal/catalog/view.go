package catalog

import (
	"time"

	"github.com/terra-clan/product-catalog/internal/models"
)

// Item is a product as displayed on the catalog grid: the record itself,
// its derived badges and whether it sits in the compare set.
type Item struct {
	models.Product
	Badges    []string `json:"badges"`
	InCompare bool     `json:"inCompare"`
}

// View is the fully derived state of one catalog page.
type View struct {
	Items      []Item `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Window     Window `json:"pagination"`
	Query      string `json:"query"` // canonical URL query string
}

// BuildView runs the filter→sort→paginate pipeline over the full dataset
// and decorates the visible page with badges and compare markers. Category
// medians are computed over the unfiltered dataset.
func BuildView(products []models.Product, q models.Query, compareIDs map[int]bool, now time.Time) View {
	medians := CategoryMedians(products)

	filtered := Filter(products, q)
	Sort(filtered, q.Sort)
	page := Paginate(filtered, q.Page)

	items := make([]Item, 0, len(page))
	for _, p := range page {
		median, ok := medians[p.Category]
		items = append(items, Item{
			Product:   p,
			Badges:    Badges(p, median, ok, now),
			InCompare: compareIDs[p.ID],
		})
	}

	return View{
		Items:      items,
		Total:      len(filtered),
		Page:       q.Page,
		TotalPages: TotalPages(len(filtered)),
		Window:     PageWindow(q.Page, len(filtered)),
		Query:      q.Values().Encode(),
	}
}
