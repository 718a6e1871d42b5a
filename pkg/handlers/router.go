package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/middleware"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/progress"
)

// NewRouter wires the web index and the JSON API. Mutations share gate, so
// at most one runs at a time.
func NewRouter(svc NoteService, gate *progress.Gate, indicator progress.Indicator) http.Handler {
	api := NewAPIHandlers(svc)
	web := NewWebHandlers(svc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/", web.IndexHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SerializeMutations(gate, indicator))

		r.Get("/notes", api.GetNotesHandler)
		r.Post("/notes", api.CreateNoteHandler)
		r.Get("/notes/{id}", api.GetNoteHandler)
		r.Put("/notes/{id}", api.UpdateNoteHandler)
		r.Delete("/notes/{id}", api.DeleteNoteHandler)
		r.Post("/sync", api.SyncHandler)
	})

	return r
}
