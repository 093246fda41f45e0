package catalog

import (
	"sort"
	"time"

	"github.com/terra-clan/product-catalog/internal/models"
)

// Badge labels shown on product cards, in fixed priority order.
const (
	BadgeNew        = "Новинка"
	BadgeTopRated   = "Топ-рейтинг"
	BadgeDeal       = "Выгодно"
	BadgeLowStock   = "Последний!"
	BadgeOutOfStock = "нет в наличии"
)

// maxBadges caps how many badges a product card shows.
const maxBadges = 2

// CategoryMedians computes the median price per category over the full,
// unfiltered dataset: standard median of sorted prices, average of the two
// middle values for even counts.
func CategoryMedians(products []models.Product) map[string]float64 {
	grouped := make(map[string][]float64)
	for _, p := range products {
		grouped[p.Category] = append(grouped[p.Category], p.Price)
	}

	medians := make(map[string]float64, len(grouped))
	for cat, prices := range grouped {
		sort.Float64s(prices)
		mid := len(prices) / 2
		if len(prices)%2 == 0 {
			medians[cat] = (prices[mid-1] + prices[mid]) / 2
		} else {
			medians[cat] = prices[mid]
		}
	}
	return medians
}

// Badges derives the display badges for a product given its category median.
// At most the first two applicable badges are returned, in the order:
// new, top-rated, deal, low-stock, out-of-stock.
func Badges(p models.Product, median float64, hasMedian bool, now time.Time) []string {
	var badges []string

	if created, err := time.Parse("2006-01-02", p.CreatedAt); err == nil {
		if now.Sub(created).Hours()/24 <= 30 {
			badges = append(badges, BadgeNew)
		}
	}
	if p.Rating >= 4.7 && p.ReviewsCount >= 50 {
		badges = append(badges, BadgeTopRated)
	}
	if hasMedian && p.Price <= median*0.85 {
		badges = append(badges, BadgeDeal)
	}
	// exact match on 3 is intentional: 1 or 2 in stock show no badge
	if p.Stock == 3 {
		badges = append(badges, BadgeLowStock)
	}
	if p.Stock == 0 {
		badges = append(badges, BadgeOutOfStock)
	}

	if len(badges) > maxBadges {
		badges = badges[:maxBadges]
	}
	return badges
}
