package catalog

import (
	"fmt"

	"github.com/terra-clan/product-catalog/internal/models"
)

// Window describes the pagination control, derived purely from the current
// page and the filtered total. With one page or fewer the control is empty.
type Window struct {
	Summary     string `json:"summary,omitempty"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalItems  int    `json:"totalItems"`
	HasPrev     bool   `json:"hasPrev"`
	HasNext     bool   `json:"hasNext"`
	ShowFirst   bool   `json:"showFirst"`
	LeadingGap  bool   `json:"leadingGap"`
	Pages       []int  `json:"pages,omitempty"`
	TrailingGap bool   `json:"trailingGap"`
	ShowLast    bool   `json:"showLast"`
}

// PageWindow derives the pagination control for a filtered set of the given
// size: item-range summary, previous/next availability, a first-page
// shortcut when the current page is past 2, ellipsis markers when a gap
// exists, up to three numbered pages centered on the current one, and a
// last-page shortcut.
func PageWindow(page, totalItems int) Window {
	totalPages := TotalPages(totalItems)
	w := Window{CurrentPage: page, TotalPages: totalPages, TotalItems: totalItems}
	if totalPages <= 1 {
		return w
	}

	start := (page-1)*models.PageSize + 1
	end := page * models.PageSize
	if end > totalItems {
		end = totalItems
	}
	w.Summary = fmt.Sprintf("Показано %d-%d из %d", start, end, totalItems)

	w.HasPrev = page > 1
	w.HasNext = page < totalPages
	w.ShowFirst = page > 2
	w.LeadingGap = page > 3
	w.TrailingGap = page < totalPages-2
	w.ShowLast = page < totalPages-1

	lo := page - 1
	if lo < 1 {
		lo = 1
	}
	hi := page + 1
	if hi > totalPages {
		hi = totalPages
	}
	for i := lo; i <= hi; i++ {
		w.Pages = append(w.Pages, i)
	}
	return w
}
