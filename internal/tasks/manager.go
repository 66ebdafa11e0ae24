// Package tasks owns the todo list: the ordered task collection, the current
// filter and the edit cursor. Every mutation is written through to a single
// persistent slot.
package tasks

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tasklist/internal/models"
	"tasklist/internal/store"
)

// DefaultSlotKey is the slot the task list is stored under.
const DefaultSlotKey = "tasks"

// Options configures a Manager.
type Options struct {
	// SlotKey names the persistent slot. Defaults to DefaultSlotKey.
	SlotKey string

	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Manager is the task store and view. It is safe for concurrent use; calls
// are serialized so that at most one operation touches the store at a time.
type Manager struct {
	mu sync.Mutex

	slots   store.Slots
	slotKey string
	logger  *slog.Logger
	now     func() time.Time

	tasks    []models.Task
	filter   models.Filter
	editing  *int64
	lastID   int64
	degraded bool

	// memoryOnly stops all writes. It is set when the slot could not be
	// read, so a stored list that failed to load is never overwritten.
	memoryOnly bool
}

// New creates a Manager and loads the task list from slots. A missing or
// unparseable slot yields an empty list; a failing read additionally puts
// the manager in degraded (memory only) mode.
func New(ctx context.Context, slots store.Slots, opts Options) *Manager {
	if opts.SlotKey == "" {
		opts.SlotKey = DefaultSlotKey
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Manager{
		slots:   slots,
		slotKey: opts.SlotKey,
		logger:  opts.Logger.With("component", "tasks", "slot", opts.SlotKey),
		now:     opts.Now,
		filter:  models.FilterAll,
	}
	m.load(ctx)
	return m
}

func (m *Manager) load(ctx context.Context) {
	if m.slots == nil {
		m.degraded = true
		m.memoryOnly = true
		m.logger.Warn("no persistent storage configured, tasks are kept in memory only")
		return
	}

	data, ok, err := m.slots.Load(ctx, m.slotKey)
	if err != nil {
		m.degraded = true
		m.memoryOnly = true
		m.logger.Warn("failed to read task list, starting empty in memory only mode", "error", err)
		return
	}
	if !ok {
		return
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		m.logger.Warn("stored task list is unreadable, starting empty", "error", err)
		return
	}

	m.tasks = tasks
	for _, t := range tasks {
		if t.ID > m.lastID {
			m.lastID = t.ID
		}
	}
	m.logger.Debug("loaded task list", "count", len(tasks))
}

// persist writes the whole task list to the slot. Failures switch the
// manager to degraded mode instead of failing the operation.
func (m *Manager) persist(ctx context.Context) {
	if m.memoryOnly {
		return
	}

	data, err := json.Marshal(m.taskSlice())
	if err == nil {
		err = m.slots.Save(ctx, m.slotKey, data)
	}
	if err != nil {
		if !m.degraded {
			m.logger.Warn("failed to save task list, changes are kept in memory only", "error", err)
		}
		m.degraded = true
		return
	}
	if m.degraded {
		m.logger.Info("task list saved again after storage failure")
		m.degraded = false
	}
}

// taskSlice never returns nil so an empty list is stored as [] rather than null.
func (m *Manager) taskSlice() []models.Task {
	if m.tasks == nil {
		return []models.Task{}
	}
	return m.tasks
}

// nextID returns a creation-time based id that is strictly greater than any
// id handed out or loaded before.
func (m *Manager) nextID() int64 {
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

func (m *Manager) indexOf(id int64) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Create appends a new pending task.
func (m *Manager) Create(ctx context.Context, text string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(ctx, text)
}

func (m *Manager) create(ctx context.Context, text string) (models.Task, error) {
	text, err := models.ValidateText(text)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:        m.nextID(),
		Text:      text,
		CreatedAt: m.now().UTC(),
	}
	m.tasks = append(m.tasks, task)
	m.persist(ctx)

	m.logger.Debug("task created", "id", task.ID)
	return task, nil
}

// Update replaces the text of an existing task and clears the edit cursor.
func (m *Manager) Update(ctx context.Context, id int64, text string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(ctx, id, text)
}

func (m *Manager) update(ctx context.Context, id int64, text string) (models.Task, error) {
	text, err := models.ValidateText(text)
	if err != nil {
		return models.Task{}, err
	}

	i := m.indexOf(id)
	if i < 0 {
		if m.editing != nil && *m.editing == id {
			m.editing = nil
		}
		return models.Task{}, &models.NotFoundError{ID: id}
	}

	m.tasks[i].Text = text
	m.persist(ctx)
	m.editing = nil

	m.logger.Debug("task updated", "id", id)
	return m.tasks[i], nil
}

// Toggle flips the completion state of a task. Unknown ids are ignored.
func (m *Manager) Toggle(ctx context.Context, id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggle(ctx, id)
}

func (m *Manager) toggle(ctx context.Context, id int64) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}

	m.tasks[i].Completed = !m.tasks[i].Completed
	m.persist(ctx)
	return true
}

// Delete removes a task after confirm agrees. It reports whether a task was
// removed. A nil confirmer declines. Unknown ids are ignored without asking.
func (m *Manager) Delete(ctx context.Context, id int64, confirm Confirmer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delete(ctx, id, confirm)
}

func (m *Manager) delete(ctx context.Context, id int64, confirm Confirmer) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false
	}

	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	if m.editing != nil && *m.editing == id {
		m.editing = nil
	}
	m.persist(ctx)

	m.logger.Debug("task deleted", "id", id)
	return true
}

// SetFilter changes the view filter. Invalid values leave the filter unchanged.
func (m *Manager) SetFilter(filter models.Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setFilter(filter)
}

func (m *Manager) setFilter(filter models.Filter) error {
	f, err := models.ParseFilter(string(filter))
	if err != nil {
		return err
	}
	m.filter = f
	return nil
}

// Edit points the edit cursor at a task.
func (m *Manager) Edit(id int64) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edit(id)
}

func (m *Manager) edit(id int64) (models.Task, error) {
	i := m.indexOf(id)
	if i < 0 {
		return models.Task{}, &models.NotFoundError{ID: id}
	}
	m.editing = &id
	return m.tasks[i], nil
}

// CancelEdit clears the edit cursor.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = nil
}

// Submit handles the dual-purpose add/update input: it updates the task
// under the edit cursor if there is one, and creates a task otherwise.
// updated reports which of the two happened.
func (m *Manager) Submit(ctx context.Context, text string) (task models.Task, updated bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submit(ctx, text)
}

func (m *Manager) submit(ctx context.Context, text string) (models.Task, bool, error) {
	if m.editing != nil {
		task, err := m.update(ctx, *m.editing, text)
		return task, true, err
	}
	task, err := m.create(ctx, text)
	return task, false, err
}

// Degraded reports whether the last storage access failed and the task list
// currently lives in memory only.
func (m *Manager) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}
