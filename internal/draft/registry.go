package draft

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the open drafts of the server, keyed by a random id.
type Registry struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Create opens a fresh draft.
func (r *Registry) Create(defaultCategory string) *Draft {
	d := New(uuid.NewString(), defaultCategory)

	r.mu.Lock()
	r.drafts[d.id] = d
	r.mu.Unlock()
	return d
}

// Get returns the draft with id, or ErrNotFound.
func (r *Registry) Get(id string) (*Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Delete drops a draft and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.drafts[id]
	delete(r.drafts, id)
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.drafts)
}

// Expire removes drafts untouched since before cutoff and returns how many
// were dropped. Drafts with a submission in flight are kept.
func (r *Registry) Expire(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, d := range r.drafts {
		if d.InFlight() || !d.LastTouched().Before(cutoff) {
			continue
		}
		delete(r.drafts, id)
		removed++
	}
	return removed
}
