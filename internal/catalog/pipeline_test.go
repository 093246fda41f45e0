package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/terra-clan/product-catalog/internal/models"
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Ноутбук игровой", Category: "Электроника", Price: 99999, Stock: 3, Rating: 4.8, ReviewsCount: 120, CreatedAt: "2024-01-10"},
		{ID: 2, Name: "Мышь беспроводная", Category: "Электроника", Price: 1500, Stock: 0, Rating: 4.2, ReviewsCount: 30, CreatedAt: "2023-06-01"},
		{ID: 3, Name: "Кружка", Category: "Посуда", Price: 350, Stock: 12, Rating: 4.9, ReviewsCount: 80, CreatedAt: "2024-01-05"},
		{ID: 4, Name: "Ноутбук офисный", Category: "Электроника", Price: 45000, Stock: 7, Rating: 4.0, ReviewsCount: 10, CreatedAt: "2023-12-20"},
	}
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	q := models.DefaultQuery()
	q.Search = "ноутбук"

	got := Filter(testProducts(), q)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, p := range got {
		if p.ID != 1 && p.ID != 4 {
			t.Errorf("unexpected match: %+v", p)
		}
	}
}

func TestFilterCategoryAndPriceAndStock(t *testing.T) {
	q := models.DefaultQuery()
	q.Category = "Электроника"
	q.MinPrice = 1000
	q.MaxPrice = 50000
	q.InStock = true

	got := Filter(testProducts(), q)
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("expected only product 4, got %+v", got)
	}
}

func TestFilterDefaultsPassEverything(t *testing.T) {
	got := Filter(testProducts(), models.DefaultQuery())
	if len(got) != 4 {
		t.Errorf("default query should pass all products, got %d", len(got))
	}
}

func TestSortKeys(t *testing.T) {
	products := testProducts()

	Sort(products, models.SortPriceAsc)
	if products[0].ID != 3 || products[3].ID != 1 {
		t.Errorf("price_asc order wrong: %v", ids(products))
	}

	Sort(products, models.SortPriceDesc)
	if products[0].ID != 1 || products[3].ID != 3 {
		t.Errorf("price_desc order wrong: %v", ids(products))
	}

	Sort(products, models.SortRatingDesc)
	if products[0].ID != 3 {
		t.Errorf("rating_desc should put product 3 first: %v", ids(products))
	}

	Sort(products, models.SortDateDesc)
	if products[0].ID != 1 || products[1].ID != 3 {
		t.Errorf("date_desc order wrong: %v", ids(products))
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	products := testProducts()
	Sort(products, "")
	if products[0].ID != 1 || products[3].ID != 4 {
		t.Errorf("empty sort key must preserve dataset order: %v", ids(products))
	}
}

func TestSortIsStable(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: 100},
		{ID: 2, Price: 100},
		{ID: 3, Price: 50},
	}
	Sort(products, models.SortPriceAsc)
	if products[1].ID != 1 || products[2].ID != 2 {
		t.Errorf("equal prices must keep original order: %v", ids(products))
	}
}

func TestPagination(t *testing.T) {
	products := make([]models.Product, 30)
	for i := range products {
		products[i] = models.Product{ID: i + 1}
	}

	if got := TotalPages(30); got != 3 {
		t.Errorf("expected 3 pages for 30 items, got %d", got)
	}

	page1 := Paginate(products, 1)
	if len(page1) != 12 || page1[0].ID != 1 || page1[11].ID != 12 {
		t.Errorf("page 1 should hold items 1-12, got %v", ids(page1))
	}

	page3 := Paginate(products, 3)
	if len(page3) != 6 || page3[0].ID != 25 || page3[5].ID != 30 {
		t.Errorf("page 3 should hold items 25-30, got %v", ids(page3))
	}

	if got := Paginate(products, 4); len(got) != 0 {
		t.Errorf("out-of-range page should be empty, got %v", ids(got))
	}
}

func TestFilterPriceBoundsUnbounded(t *testing.T) {
	q := models.DefaultQuery()
	if !math.IsInf(q.MaxPrice, 1) {
		t.Fatal("default max price should be unbounded")
	}
	got := Filter([]models.Product{{ID: 1, Price: 1e12}}, q)
	if len(got) != 1 {
		t.Error("unbounded max price should pass any price")
	}
}

func ids(products []models.Product) string {
	s := ""
	for _, p := range products {
		s += fmt.Sprintf("%d ", p.ID)
	}
	return s
}
