package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/mw"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/prefs"
)

type themeResponse struct {
	Theme   prefs.Theme `json:"theme"`
	Default prefs.Theme `json:"default"`
}

// GetTheme returns the caller's theme. A failing store degrades to the
// configured default.
func GetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := mw.ClientIDFrom(r.Context())
		t, err := d.Themes.Get(r.Context(), clientID)
		if err != nil {
			d.Logger.Warn("theme preference unavailable, using default",
				logger.String("client_id", clientID),
				logger.Error(err))
		}
		writeJSON(w, http.StatusOK, themeResponse{Theme: t, Default: d.Themes.Default()})
	}
}

// ToggleTheme flips and persists the caller's theme.
func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := mw.ClientIDFrom(r.Context())
		t, err := d.Themes.Toggle(r.Context(), clientID)
		if err != nil {
			d.Logger.Error("theme preference not saved",
				logger.String("client_id", clientID),
				logger.Error(err))
			writeProblem(w, http.StatusServiceUnavailable, "theme preference could not be saved")
			return
		}
		writeJSON(w, http.StatusOK, themeResponse{Theme: t, Default: d.Themes.Default()})
	}
}
