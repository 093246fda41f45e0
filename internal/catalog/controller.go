package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/terra-clan/product-catalog/internal/compare"
	"github.com/terra-clan/product-catalog/internal/models"
)

// DefaultSearchDelay is the quiet period coalescing rapid search keystrokes
// into a single recomputation.
const DefaultSearchDelay = 300 * time.Millisecond

// Controller is the command dispatcher over one catalog view: UI events
// become state-transition commands consumed here, each recomputing the
// filter→sort→paginate pipeline and pushing the derived view to render.
// Search input is debounced; every other command recomputes synchronously.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	compare *compare.Set
	render  func(View)

	query         models.Query
	searchDelay   time.Duration
	searchTimer   *time.Timer
	pendingSearch string
	now           func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSearchDelay overrides the debounce quiet period.
func WithSearchDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.searchDelay = d
	}
}

// WithClock overrides the time source used for badge derivation.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a dispatcher over the store and compare set. The
// render callback receives every recomputed view; it must not call back
// into the controller.
func NewController(store *Store, cmp *compare.Set, render func(View), opts ...ControllerOption) *Controller {
	c := &Controller{
		store:       store,
		compare:     cmp,
		render:      render,
		query:       models.DefaultQuery(),
		searchDelay: DefaultSearchDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore replaces the whole query state, as when entering via a shared URL.
func (c *Controller) Restore(q models.Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.recompute()
}

// SetSearch updates the free-text search after the debounce quiet period.
// Each call resets the pending timer, so only the final text after a typing
// pause triggers recomputation. The page resets to 1.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingSearch = text
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.searchDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.query.Search = c.pendingSearch
		c.query.Page = 1
		c.recompute()
	})
}

// SetCategory selects a category filter and resets the page.
func (c *Controller) SetCategory(cat string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Category = cat
	c.query.Page = 1
	c.recompute()
}

// SetPriceBounds sets the price range filter and resets the page.
func (c *Controller) SetPriceBounds(min, max float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.MinPrice = min
	c.query.MaxPrice = max
	c.query.Page = 1
	c.recompute()
}

// SetInStock toggles the in-stock-only filter and resets the page.
func (c *Controller) SetInStock(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.InStock = on
	c.query.Page = 1
	c.recompute()
}

// SetSort selects the sort key and resets the page.
func (c *Controller) SetSort(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Sort = key
	c.query.Page = 1
	c.recompute()
}

// SetPage moves to the given 1-based page.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.query.Page = page
	c.recompute()
}

// ToggleCompare flips the compare membership of a product and re-renders so
// the grid checkboxes stay consistent with the comparison table. A full set
// rejects the add and returns the capacity warning, leaving state unchanged.
func (c *Controller) ToggleCompare(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.compare.Toggle(ctx, id); err != nil {
		return err
	}
	c.recompute()
	return nil
}

// ClearCompare empties the compare set and re-renders.
func (c *Controller) ClearCompare(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.compare.Clear(ctx); err != nil {
		return err
	}
	c.recompute()
	return nil
}

// Query returns a snapshot of the current state.
func (c *Controller) Query() models.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// recompute rebuilds and renders the view. Callers hold c.mu.
func (c *Controller) recompute() {
	ids := make(map[int]bool)
	if c.compare != nil {
		for _, id := range c.compare.IDs() {
			ids[id] = true
		}
	}
	view := BuildView(c.store.Products(), c.query, ids, c.now())
	if c.render != nil {
		c.render(view)
	}
}
