package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tasklist/internal/metrics"
	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	tasks     *tasks.Manager
	templates *template.Template
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New creates a new Handlers instance. tmpl may be nil, in which case HTML
// routes reply with a status code and no body. mt may be nil.
func New(m *tasks.Manager, tmpl *template.Template, logger *slog.Logger, mt *metrics.Metrics) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		tasks:     m,
		templates: tmpl,
		logger:    logger,
		metrics:   mt,
	}
}

// PageData is the data passed to the page templates.
type PageData struct {
	Title   string
	View    tasks.View
	Filters []models.Filter
	Message string
	Error   string

	// ConfirmDelete is the task awaiting delete confirmation, if any.
	ConfirmDelete *models.Task
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	return strconv.ParseInt(idStr, 10, 64)
}

// isHTMX reports whether the request came from htmx and wants a fragment.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		verr *models.ValidationError
		nerr *models.NotFoundError
		cerr *tasks.UnknownCommandError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &cerr):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func respondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.logger.Error("internal server error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handlers) render(w http.ResponseWriter, code int, name string, data interface{}) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(code)
		return
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.respondServerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	buf.WriteTo(w)
}

// renderApp renders the app fragment for htmx requests and the full page otherwise.
func (h *Handlers) renderApp(w http.ResponseWriter, r *http.Request, code int, data PageData) {
	data.Title = "To-Do List"
	data.Filters = models.Filters
	if isHTMX(r) {
		h.render(w, code, "app.html", data)
		return
	}
	h.render(w, code, "index.html", data)
}

// dispatch runs cmd and renders the resulting page. Domain errors are shown
// to the user as a transient message with the matching status code.
func (h *Handlers) dispatch(w http.ResponseWriter, r *http.Request, cmd tasks.Command) {
	res, err := h.run(r, cmd)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			h.respondServerError(w, err)
			return
		}
		h.renderApp(w, r, code, PageData{View: res.View, Error: err.Error()})
		return
	}
	h.renderApp(w, r, http.StatusOK, PageData{View: res.View, Message: res.Message})
}

// run dispatches cmd and records it.
func (h *Handlers) run(r *http.Request, cmd tasks.Command) (tasks.Result, error) {
	res, err := h.tasks.Dispatch(r.Context(), cmd)
	h.metrics.ObserveCommand(cmd.Kind, err, res.View)
	return res, err
}
