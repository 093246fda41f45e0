package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/product-catalog/internal/compare"
)

// Cleaner handles periodic pruning of idle compare sessions
type Cleaner struct {
	manager  *compare.Manager
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(manager *compare.Manager, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		manager:  manager,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup finds and removes idle compare sessions
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	pruned := c.manager.PruneExpired(ctx)
	if len(pruned) == 0 {
		slog.Debug("no idle compare sessions found")
		return
	}

	slog.Info("pruned idle compare sessions", "count", len(pruned), "remaining", c.manager.Len())
}
