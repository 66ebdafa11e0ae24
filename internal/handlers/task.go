package handlers

import (
	"net/http"

	"tasklist/internal/tasks"
)

// SubmitTask handles the add/update input. It updates the task being edited
// if there is one and creates a new task otherwise.
func (h *Handlers) SubmitTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	h.dispatch(w, r, tasks.Command{Kind: tasks.KindSubmit, Text: r.FormValue("text")})
}

// ToggleTask toggles the completion status of a task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	h.dispatch(w, r, tasks.Command{Kind: tasks.KindToggle, ID: id})
}

// EditTask puts a task into the add/update input for editing.
func (h *Handlers) EditTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	h.dispatch(w, r, tasks.Command{Kind: tasks.KindEdit, ID: id})
}

// CancelEdit leaves edit mode without changing the task.
func (h *Handlers) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, tasks.Command{Kind: tasks.KindCancelEdit})
}

// DeleteTask deletes a task once the request carries confirm=yes. Without
// it the page is rendered with a confirmation prompt and nothing changes.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	confirmed := r.FormValue("confirm") == "yes"
	asked := false
	confirm := tasks.ConfirmFunc(func(string) bool {
		asked = true
		return confirmed
	})

	res, err := h.run(r, tasks.Command{Kind: tasks.KindDelete, ID: id, Confirm: confirm})
	if err != nil {
		h.respondServerError(w, err)
		return
	}

	data := PageData{View: res.View, Message: res.Message}
	if asked && !confirmed {
		data.ConfirmDelete = res.Task
	}
	h.renderApp(w, r, http.StatusOK, data)
}
