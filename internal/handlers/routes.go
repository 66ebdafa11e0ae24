package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers the page and API routes on r.
func (h *Handlers) Routes(r chi.Router) {
	// Page routes
	r.Get("/", h.Home)
	r.Post("/filter", h.SetFilter)

	// Task routes
	r.Post("/tasks", h.SubmitTask)
	r.Post("/tasks/edit/cancel", h.CancelEdit)
	r.Post("/tasks/{id}/toggle", h.ToggleTask)
	r.Post("/tasks/{id}/edit", h.EditTask)
	r.Post("/tasks/{id}/delete", h.DeleteTask)
	r.Delete("/tasks/{id}", h.DeleteTask)

	// API routes
	r.Get("/api/tasks", h.GetView)
	r.Post("/api/commands", h.RunCommand)
}
