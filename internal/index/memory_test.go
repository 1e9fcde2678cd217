package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if _, ok := index.Listings(); ok {
		t.Error("NewMemoryIndex() listings should be absent")
	}
	if _, ok := index.Categories(); ok {
		t.Error("NewMemoryIndex() categories should be absent")
	}
	if _, ok := index.Metrics(); ok {
		t.Error("NewMemoryIndex() metrics should be absent")
	}
	if index.Ready() {
		t.Error("NewMemoryIndex() should not be ready")
	}
}

func TestEmptyLoadIsPresent(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateListings(nil)

	got, ok := index.Listings()
	if !ok {
		t.Fatal("empty listings load should be present")
	}
	if len(got) != 0 {
		t.Errorf("Listings() = %v, want empty", got)
	}
}

func TestUpdateListingsOverwritesAndKeepsOrder(t *testing.T) {
	index := NewMemoryIndex()

	index.UpdateListings([]domain.Listing{{ID: "1", Name: "Payment Gateway API"}})
	index.UpdateListings([]domain.Listing{
		{ID: "3", Name: "Social Network API"},
		{ID: "2", Name: "Weather Forecast API"},
	})

	got, _ := index.Listings()
	if len(got) != 2 {
		t.Fatalf("UpdateListings() should overwrite, got %v listings want 2", len(got))
	}
	if got[0].ID != "3" || got[1].ID != "2" {
		t.Errorf("Listings() order = [%s %s], want [3 2]", got[0].ID, got[1].ID)
	}
	if _, ok := index.Listing("1"); ok {
		t.Error("Listing(1) should be gone after overwrite")
	}
	if l, ok := index.Listing("2"); !ok || l.Name != "Weather Forecast API" {
		t.Errorf("Listing(2) = %v, %v", l, ok)
	}
}

func TestListingsReturnsSnapshot(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateListings([]domain.Listing{{ID: "1", Name: "original"}})

	snapshot, _ := index.Listings()
	snapshot[0].Name = "mutated"

	again, _ := index.Listings()
	if again[0].Name != "original" {
		t.Error("Listings() should return a copy")
	}
}

func TestDefaultCategoryID(t *testing.T) {
	index := NewMemoryIndex()
	if got := index.DefaultCategoryID(); got != "" {
		t.Errorf("DefaultCategoryID() = %q, want empty", got)
	}

	index.UpdateCategories([]domain.Category{{ID: "1", Name: "Finanzas"}, {ID: "2", Name: "Clima"}})
	if got := index.DefaultCategoryID(); got != "1" {
		t.Errorf("DefaultCategoryID() = %q, want 1", got)
	}
}

func TestMetricsRoundTrip(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateMetrics(domain.Metrics{TotalAPIs: 6, ActiveUsers: 1245})

	m, ok := index.Metrics()
	if !ok || m.TotalAPIs != 6 || m.ActiveUsers != 1245 {
		t.Errorf("Metrics() = %+v, %v", m, ok)
	}
	if index.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be set")
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateCategories([]domain.Category{{ID: "1"}})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = index.Listings()
			_ = index.Ready()
		}()
		go func() {
			defer wg.Done()
			index.UpdateListings([]domain.Listing{{ID: "a"}, {ID: "b"}})
		}()
	}
	wg.Wait()

	if index.Count() != 2 {
		t.Errorf("Count() = %v, want 2", index.Count())
	}
	if !index.Ready() {
		t.Error("index should be ready")
	}
}
