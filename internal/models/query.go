package models

import (
	"math"
	"net/url"
	"strconv"
)

// Sort key tokens accepted in the sort query parameter.
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortDateDesc   = "date_desc"
)

// PageSize is the fixed number of products per catalog page.
const PageSize = 12

// Query holds the full filter/sort/page state of a catalog view.
// The zero value is not a valid query; use DefaultQuery.
type Query struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	InStock  bool
	Sort     string
	Page     int
}

// DefaultQuery returns the state of an unfiltered first page.
func DefaultQuery() Query {
	return Query{MaxPrice: math.Inf(1), Page: 1}
}

// Values serializes the query state into URL parameters. Default values are
// omitted so a pristine state yields an empty query string.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" {
		v.Set("cat", q.Category)
	}
	if q.MinPrice > 0 {
		v.Set("min", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if !math.IsInf(q.MaxPrice, 1) {
		v.Set("max", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.InStock {
		v.Set("inStock", "1")
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// ParseQuery reconstructs query state from URL parameters. Absent or
// unparseable values fall back to defaults, so Values and ParseQuery
// round-trip for any state.
func ParseQuery(v url.Values) Query {
	q := DefaultQuery()
	q.Search = v.Get("q")
	q.Category = v.Get("cat")
	if f, err := strconv.ParseFloat(v.Get("min"), 64); err == nil && f > 0 {
		q.MinPrice = f
	}
	if f, err := strconv.ParseFloat(v.Get("max"), 64); err == nil {
		q.MaxPrice = f
	}
	q.InStock = v.Get("inStock") == "1"
	q.Sort = v.Get("sort")
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 1 {
		q.Page = n
	}
	return q
}
