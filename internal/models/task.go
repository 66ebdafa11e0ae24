package models

import (
	"strings"
	"time"
)

// Task represents a single to-do item.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateText trims the given text and rejects it if nothing is left.
// It returns the trimmed text on success.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Field: "text", Message: "Please enter a task!"}
	}
	return trimmed, nil
}

// Filter selects which tasks are shown in the view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists the valid filters in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// ParseFilter converts a raw value into a Filter.
// An empty value means FilterAll; anything outside the enumerated set is rejected.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterCompleted:
		return f, nil
	default:
		return "", &ValidationError{Field: "filter", Message: "filter must be 'all', 'pending', or 'completed'"}
	}
}

// Matches reports whether the task belongs in a view with this filter.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}
