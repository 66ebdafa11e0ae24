package handlers

import (
	"encoding/json"
	"net/http"

	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

// commandRequest is the JSON form of a tasks.Command.
type commandRequest struct {
	Kind    tasks.Kind    `json:"kind"`
	ID      int64         `json:"id"`
	Text    string        `json:"text"`
	Filter  models.Filter `json:"filter"`
	Confirm bool          `json:"confirm"`
}

// GetView returns the current view as JSON.
func (h *Handlers) GetView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tasks.Render())
}

// RunCommand decodes a JSON command, dispatches it and returns the result.
// Deletes run only when the request sets "confirm": true.
func (h *Handlers) RunCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	res, err := h.run(r, tasks.Command{
		Kind:    req.Kind,
		ID:      req.ID,
		Text:    req.Text,
		Filter:  req.Filter,
		Confirm: tasks.Always(req.Confirm),
	})
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			h.logger.Error("command failed", "kind", req.Kind, "error", err)
		}
		respondJSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, res)
}
