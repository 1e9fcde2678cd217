package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/apihub/internal/catalog"
	"github.com/MrSnakeDoc/apihub/internal/index"
	"github.com/MrSnakeDoc/apihub/internal/logger"
)

// CatalogReloader keeps the memory index in step with the remote store.
type CatalogReloader struct {
	source        catalog.Source
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a reloader. interval <= 0 disables the periodic
// reload; manual triggers still work.
func NewCatalogReloader(
	source catalog.Source,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		source:        source,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once synchronously, then reloads on every tick and trigger.
// A failed load is logged and leaves the affected resources absent.
func (cr *CatalogReloader) Start(ctx context.Context) {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Warn("initial catalog load incomplete", logger.Error(err))
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Warn("catalog reload incomplete", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Warn("catalog reload incomplete", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader. Safe to call more than once.
func (cr *CatalogReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
}

// Reload fetches every collection resource and stores the ones that loaded.
// Resources that failed keep their previous value.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	cr.logger.Debug("reloading catalog from store")

	snap := catalog.LoadSnapshot(ctx, cr.source)

	if snap.Categories != nil {
		cr.index.UpdateCategories(snap.Categories)
	}
	if snap.Listings != nil {
		cr.index.UpdateListings(snap.Listings)
	}
	if snap.Metrics != nil {
		cr.index.UpdateMetrics(*snap.Metrics)
	}

	cr.logger.Info("catalog loaded",
		logger.Int("categories", len(snap.Categories)),
		logger.Int("listings", len(snap.Listings)),
		logger.Bool("metrics", snap.Metrics != nil))

	return snap.Err()
}

// Trigger asks a running reloader for an immediate reload without blocking.
// It returns false when a reload is already pending.
func Trigger(ch chan struct{}) bool {
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
