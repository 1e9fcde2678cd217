package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Get("/api/dashboard", handlers.Dashboard(d))
	r.Get("/api/categories", handlers.Categories(d))
	r.Get("/api/apis", handlers.Listings(d))
	r.Get("/api/apis/{id}", handlers.Detail(d))
}
