package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/mw"
)

func init() { Register(registerDrafts, mw.ClientID) }

func registerDrafts(r chi.Router, d deps.Deps) {
	r.Route("/api/drafts", func(r chi.Router) {
		r.Post("/", handlers.CreateDraft(d))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetDraft(d))
			r.Patch("/", handlers.PatchDraft(d))
			r.Post("/endpoints", handlers.AddEndpoint(d))
			r.Put("/endpoints/{index}", handlers.UpdateEndpoint(d))
			r.Delete("/endpoints/{index}", handlers.RemoveEndpoint(d))
			r.Post("/file", handlers.AttachFile(d))
			r.Post("/import", handlers.ImportDefinition(d))
			r.Post("/submit", handlers.SubmitDraft(d))
		})
	})
}
