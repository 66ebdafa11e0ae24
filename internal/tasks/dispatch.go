package tasks

import (
	"context"
	"fmt"

	"tasklist/internal/models"
)

// Kind identifies a user event.
type Kind string

const (
	KindCreate     Kind = "create"
	KindUpdate     Kind = "update"
	KindToggle     Kind = "toggle"
	KindDelete     Kind = "delete"
	KindSetFilter  Kind = "setFilter"
	KindEdit       Kind = "edit"
	KindCancelEdit Kind = "cancelEdit"
	KindSubmit     Kind = "submit"
)

// Known reports whether Dispatch handles k.
func (k Kind) Known() bool {
	switch k {
	case KindCreate, KindUpdate, KindToggle, KindDelete,
		KindSetFilter, KindEdit, KindCancelEdit, KindSubmit:
		return true
	}
	return false
}

// Messages shown to the user after a successful command.
const (
	MessageAdded   = "Task added successfully!"
	MessageUpdated = "Task updated successfully!"
	MessageDeleted = "Task deleted!"
)

// Command is a single user event. Only the fields used by Kind are read.
type Command struct {
	Kind   Kind
	ID     int64
	Text   string
	Filter models.Filter

	// Confirm gates KindDelete. A nil Confirm declines.
	Confirm Confirmer
}

// Result describes the outcome of a command.
type Result struct {
	// Message is a transient notice for the user, empty when there is none.
	Message string `json:"message,omitempty"`

	// Task is the created, updated or edited task, or the task still
	// awaiting confirmation after a declined delete.
	Task *models.Task `json:"task,omitempty"`

	// Changed reports whether the store was modified.
	Changed bool `json:"changed"`

	// View is the state after the command.
	View View `json:"view"`
}

// UnknownCommandError is returned for a command kind Dispatch does not handle.
type UnknownCommandError struct {
	Kind Kind
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Kind)
}

// Dispatch runs one command to completion. On error the store is unchanged
// and the result still carries the current view.
func (m *Manager) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		res Result
		err error
	)

	switch cmd.Kind {
	case KindCreate:
		var task models.Task
		if task, err = m.create(ctx, cmd.Text); err == nil {
			res = Result{Message: MessageAdded, Task: &task, Changed: true}
		}
	case KindUpdate:
		var task models.Task
		if task, err = m.update(ctx, cmd.ID, cmd.Text); err == nil {
			res = Result{Message: MessageUpdated, Task: &task, Changed: true}
		}
	case KindSubmit:
		var (
			task    models.Task
			updated bool
		)
		if task, updated, err = m.submit(ctx, cmd.Text); err == nil {
			res = Result{Message: MessageAdded, Task: &task, Changed: true}
			if updated {
				res.Message = MessageUpdated
			}
		}
	case KindToggle:
		res.Changed = m.toggle(ctx, cmd.ID)
	case KindDelete:
		if m.delete(ctx, cmd.ID, cmd.Confirm) {
			res = Result{Message: MessageDeleted, Changed: true}
		} else if i := m.indexOf(cmd.ID); i >= 0 {
			task := m.tasks[i]
			res.Task = &task
		}
	case KindSetFilter:
		err = m.setFilter(cmd.Filter)
	case KindEdit:
		var task models.Task
		if task, err = m.edit(cmd.ID); err == nil {
			res.Task = &task
		}
	case KindCancelEdit:
		m.editing = nil
	default:
		err = &UnknownCommandError{Kind: cmd.Kind}
	}

	if err != nil {
		res = Result{}
		m.logger.Debug("command rejected", "kind", cmd.Kind, "error", err)
	}
	res.View = m.render()
	return res, err
}
