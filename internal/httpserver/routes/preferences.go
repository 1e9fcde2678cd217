package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/mw"
)

func init() { Register(registerPreferences, mw.ClientID) }

func registerPreferences(r chi.Router, d deps.Deps) {
	r.Get("/api/preferences/theme", handlers.GetTheme(d))
	r.Post("/api/preferences/theme/toggle", handlers.ToggleTheme(d))
}
