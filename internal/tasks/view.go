package tasks

import "tasklist/internal/models"

// View is a read-only projection of the manager state.
type View struct {
	Filter models.Filter `json:"filter"`

	// Tasks holds copies of the tasks matching Filter, in store order.
	Tasks []models.Task `json:"tasks"`

	// Total and Completed count the whole store, regardless of Filter.
	Total     int `json:"total"`
	Completed int `json:"completed"`

	// Empty is true exactly when Tasks is empty.
	Empty bool `json:"empty"`

	// Editing is the task under the edit cursor, if any.
	Editing *models.Task `json:"editing,omitempty"`

	// Degraded is set while changes cannot be saved.
	Degraded bool `json:"degraded"`
}

// Render computes a fresh view for the current filter.
func (m *Manager) Render() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.render()
}

func (m *Manager) render() View {
	v := View{
		Filter:   m.filter,
		Tasks:    make([]models.Task, 0, len(m.tasks)),
		Total:    len(m.tasks),
		Degraded: m.degraded,
	}

	for _, t := range m.tasks {
		if t.Completed {
			v.Completed++
		}
		if m.filter.Matches(t) {
			v.Tasks = append(v.Tasks, t)
		}
		if m.editing != nil && *m.editing == t.ID {
			editing := t
			v.Editing = &editing
		}
	}
	v.Empty = len(v.Tasks) == 0

	return v
}
