package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/apihub/internal/logger"
)

const (
	// DefaultDraftTTL is how long an untouched draft is kept.
	DefaultDraftTTL = 24 * time.Hour
)

// Expirer drops drafts untouched since before a cutoff.
type Expirer interface {
	Expire(cutoff time.Time) int
	Count() int
}

// DraftJanitor periodically removes abandoned drafts.
type DraftJanitor struct {
	drafts   Expirer
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewDraftJanitor creates a janitor. A zero ttl uses DefaultDraftTTL.
func NewDraftJanitor(drafts Expirer, log logger.Logger, interval, ttl time.Duration) *DraftJanitor {
	if ttl == 0 {
		ttl = DefaultDraftTTL
	}

	return &DraftJanitor{
		drafts:   drafts,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

// Start runs the periodic collection in the background.
func (j *DraftJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Collect()
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor. Safe to call more than once.
func (j *DraftJanitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopCh) })
}

// Collect drops expired drafts and returns how many were removed.
func (j *DraftJanitor) Collect() int {
	removed := j.drafts.Expire(j.now().Add(-j.ttl))

	if removed > 0 {
		j.logger.Info("expired abandoned drafts",
			logger.Int("removed", removed),
			logger.Int("remaining", j.drafts.Count()),
			logger.Duration("ttl", j.ttl))
	} else {
		j.logger.Debug("no drafts to expire")
	}
	return removed
}
