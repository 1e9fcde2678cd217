package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool `json:"ready"`
	Categories bool `json:"categories"`
	Listings   bool `json:"listings"`
	Metrics    bool `json:"metrics"`
}

// Readyz answers 200 once categories and listings have been loaded at
// least once, 503 before that. Metrics are reported but not required.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, cats := d.MemoryIndex.Categories()
		_, lists := d.MemoryIndex.Listings()
		_, mets := d.MemoryIndex.Metrics()

		status := http.StatusOK
		if !d.MemoryIndex.Ready() {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:      d.MemoryIndex.Ready(),
			Categories: cats,
			Listings:   lists,
			Metrics:    mets,
		})
	}
}
