package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/apihub/internal/catalog"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/present"
)

// Detail fetches one listing live from the store and presents it.
// Query parameters: tab=docs|endpoints|examples, full=true.
func Detail(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		l, err := d.Catalog.GetListing(r.Context(), id)
		if err != nil {
			var se *catalog.StatusError
			if errors.Is(err, catalog.ErrInvalidID) ||
				(errors.As(err, &se) && se.StatusCode == http.StatusNotFound) {
				writeProblem(w, http.StatusNotFound, "api "+strconv.Quote(id)+" not found")
				return
			}
			d.Logger.Warn("listing detail unavailable",
				logger.String("id", id),
				logger.Error(err))
			writeLoading(w)
			return
		}

		tabs := present.DefaultTabs()
		if raw := r.URL.Query().Get("tab"); raw != "" {
			tabs.Select(present.ParseTab(raw))
		}
		if full, _ := strconv.ParseBool(r.URL.Query().Get("full")); full {
			tabs.ToggleFullSpec()
		}

		writeJSON(w, http.StatusOK, present.Present(l, tabs))
	}
}
