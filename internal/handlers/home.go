package handlers

import (
	"net/http"

	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

// Home renders the task list. An optional filter query parameter changes
// the current filter first. The filter is transient view state of a single
// user, so this GET shortcut does not touch stored tasks. POST /filter is
// the form route.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	if filter := r.URL.Query().Get("filter"); filter != "" {
		h.dispatch(w, r, tasks.Command{Kind: tasks.KindSetFilter, Filter: models.Filter(filter)})
		return
	}
	h.renderApp(w, r, http.StatusOK, PageData{View: h.tasks.Render()})
}

// SetFilter changes the current filter.
func (h *Handlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	h.dispatch(w, r, tasks.Command{Kind: tasks.KindSetFilter, Filter: models.Filter(r.FormValue("filter"))})
}
