package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// MemoryIndex holds the session snapshot of the remote store.
// A resource that was never loaded is absent: its getter returns ok=false.
type MemoryIndex struct {
	mu         sync.RWMutex
	categories []domain.Category         // nil until loaded
	listings   []domain.Listing          // store order, nil until loaded
	byID       map[string]domain.Listing // ID -> Listing
	metrics    *domain.Metrics
	lastReload time.Time
}

// NewMemoryIndex creates an empty index with every resource absent.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// UpdateCategories replaces the categories.
func (idx *MemoryIndex) UpdateCategories(cats []domain.Category) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.categories = append(make([]domain.Category, 0, len(cats)), cats...)
	idx.lastReload = time.Now()
}

// UpdateListings replaces all listings, keeping their order.
func (idx *MemoryIndex) UpdateListings(ls []domain.Listing) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.listings = append(make([]domain.Listing, 0, len(ls)), ls...)
	idx.byID = make(map[string]domain.Listing, len(ls))
	for _, l := range ls {
		idx.byID[l.ID] = l
	}
	idx.lastReload = time.Now()
}

// UpdateMetrics replaces the dashboard metrics.
func (idx *MemoryIndex) UpdateMetrics(m domain.Metrics) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.metrics = &m
	idx.lastReload = time.Now()
}

// Categories returns a copy of the categories.
func (idx *MemoryIndex) Categories() ([]domain.Category, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.categories == nil {
		return nil, false
	}
	return append([]domain.Category(nil), idx.categories...), true
}

// DefaultCategoryID returns the id of the first category, or "".
func (idx *MemoryIndex) DefaultCategoryID() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.categories) == 0 {
		return ""
	}
	return idx.categories[0].ID
}

// Listings returns a copy of every listing in store order.
func (idx *MemoryIndex) Listings() ([]domain.Listing, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.listings == nil {
		return nil, false
	}
	return append([]domain.Listing(nil), idx.listings...), true
}

// Listing retrieves a listing by ID.
func (idx *MemoryIndex) Listing(id string) (domain.Listing, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	l, ok := idx.byID[id]
	return l, ok
}

// Metrics returns the dashboard metrics.
func (idx *MemoryIndex) Metrics() (domain.Metrics, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.metrics == nil {
		return domain.Metrics{}, false
	}
	return *idx.metrics, true
}

// Count returns the number of listings in the index.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.listings)
}

// Ready reports whether categories and listings are both loaded.
func (idx *MemoryIndex) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.categories != nil && idx.listings != nil
}

// GetLastReload returns the timestamp of the last successful update.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
