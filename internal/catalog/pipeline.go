package catalog

import (
	"sort"
	"strings"

	"github.com/terra-clan/product-catalog/internal/models"
)

// Filter returns the products passing every predicate of the query:
// case-insensitive substring match on name, category equality (or none
// selected), price within bounds, stock > 0 when in-stock-only is set.
func Filter(products []models.Product, q models.Query) []models.Product {
	search := strings.ToLower(q.Search)
	var out []models.Product
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if p.Price < q.MinPrice || p.Price > q.MaxPrice {
			continue
		}
		if q.InStock && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders products by the given sort key, stably, in place. An empty or
// unknown key preserves the incoming (source dataset) order.
func Sort(products []models.Product, key string) {
	switch key {
	case models.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case models.SortDateDesc:
		// ISO dates order lexicographically
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt > products[j].CreatedAt
		})
	}
}

// Paginate slices out the 1-based page of fixed size. An out-of-range page
// yields an empty slice rather than an error.
func Paginate(products []models.Product, page int) []models.Product {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * models.PageSize
	if start >= len(products) {
		return nil
	}
	end := start + models.PageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// TotalPages returns ceil(total / page size).
func TotalPages(total int) int {
	return (total + models.PageSize - 1) / models.PageSize
}
