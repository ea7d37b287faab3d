package organizer

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hearth/pkg/remote"
)

// Task is the client-side task shape. Budget is set only through
// AllocateTaskBudget so the ledger bookkeeping stays exact.
type Task struct {
	ID          ID               `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Completed   bool             `json:"completed"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	AssignedTo  []string         `json:"assigned_to"`
	Priority    string           `json:"priority"`
	Points      int              `json:"points"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// TaskInput holds the fields accepted when creating a task. Budget is
// deliberately absent; allocate after creation.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssignedTo  []string
	Priority    string
	Points      int
}

// TaskPatch holds the optional fields of a task update. Budget is
// deliberately absent; it only moves through AllocateTaskBudget.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	AssignedTo  []string
	Priority    *string
	Points      *int
}

// Tasks returns a copy of the current task list.
func (a *App) Tasks() []Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Task, len(a.tasks))
	copy(out, a.tasks)
	return out
}

// Task returns the task with the given id.
func (a *App) Task(id ID) (Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i := a.taskIndexLocked(id); i >= 0 {
		return a.tasks[i], true
	}
	return Task{}, false
}

// CreateTask adds a task under a provisional id, persists it locally,
// and fires a background server create. When the server confirms, the
// provisional id is swapped for the canonical one wherever it still
// appears; if the create fails the task stays device-local.
func (a *App) CreateTask(input TaskInput) (Task, error) {
	if input.Title == "" {
		return Task{}, ErrEmptyTitle
	}

	task := Task{
		ID:          NewProvisionalID(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		Priority:    input.Priority,
		Points:      input.Points,
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}

	a.mu.Lock()
	a.tasks = append(a.tasks, task)
	a.persistTasksLocked()
	a.mu.Unlock()
	a.notify()

	provisional := task.ID
	a.spawn(func(ctx context.Context) {
		created, err := a.remote.CreateTask(ctx, taskToRemote(task))
		if err != nil {
			a.logRemoteFailure("task create", provisional.String(), err)
			return
		}
		a.adoptTaskID(provisional, created.ID)
	})

	return task, nil
}

// adoptTaskID relabels the task carrying the provisional id with the
// server-assigned one. The lookup is by id, not object identity, so the
// swap lands even when the task was edited in the meantime; it is a
// no-op when the task was deleted before the confirmation arrived.
func (a *App) adoptTaskID(provisional ID, canonical string) {
	a.mu.Lock()
	i := a.taskIndexLocked(provisional)
	if i < 0 {
		a.mu.Unlock()
		return
	}
	a.tasks[i].ID = CanonicalID(canonical)
	a.persistTasksLocked()
	a.mu.Unlock()
	a.notify()
}

// UpdateTask applies the set fields of patch to a task. The local copy
// and store always win; a server update is attempted only for tasks the
// server already knows about.
func (a *App) UpdateTask(id ID, patch TaskPatch) (Task, error) {
	a.mu.Lock()
	i := a.taskIndexLocked(id)
	if i < 0 {
		a.mu.Unlock()
		return Task{}, &NotFoundError{Kind: "task", ID: id.String()}
	}

	task := &a.tasks[i]
	if patch.Title != nil {
		if *patch.Title == "" {
			a.mu.Unlock()
			return Task{}, ErrEmptyTitle
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Points != nil {
		task.Points = *patch.Points
	}
	updated := *task
	a.persistTasksLocked()
	a.mu.Unlock()
	a.notify()

	if !id.IsProvisional() {
		a.spawn(func(ctx context.Context) {
			if _, err := a.remote.UpdateTask(ctx, id.String(), taskPatchToRemote(patch)); err != nil {
				a.logRemoteFailure("task update", id.String(), err)
			}
		})
	}

	return updated, nil
}

// DeleteTask removes a task, first releasing any budget it holds back
// to the household headroom. A server delete is attempted only for
// tasks the server knows about.
func (a *App) DeleteTask(id ID) error {
	a.mu.Lock()
	i := a.taskIndexLocked(id)
	if i < 0 {
		a.mu.Unlock()
		return &NotFoundError{Kind: "task", ID: id.String()}
	}

	budgetChanged := a.tasks[i].Budget != nil && !a.tasks[i].Budget.IsZero()
	if err := a.ledger.ReleaseTaskBudget(id.String()); err != nil {
		a.mu.Unlock()
		return err
	}
	a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
	a.persistTasksLocked()
	if budgetChanged {
		a.persistBudgetLocked()
	}
	a.mu.Unlock()
	a.notify()

	if !id.IsProvisional() {
		a.spawn(func(ctx context.Context) {
			if err := a.remote.DeleteTask(ctx, id.String()); err != nil {
				a.logRemoteFailure("task delete", id.String(), err)
			}
		})
	}
	if budgetChanged {
		a.pushBudget()
	}

	return nil
}

// AllocateTaskBudget sets a task's allocation from the household
// budget. Validation happens synchronously against the ledger; on
// success the task list and budget are persisted and pushed to the
// server best-effort.
func (a *App) AllocateTaskBudget(id ID, amount decimal.Decimal) error {
	a.mu.Lock()
	if err := a.ledger.AllocateToTask(id.String(), amount); err != nil {
		a.mu.Unlock()
		return err
	}
	a.persistTasksLocked()
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()

	if !id.IsProvisional() {
		value := amount
		a.spawn(func(ctx context.Context) {
			if _, err := a.remote.UpdateTask(ctx, id.String(), remote.TaskPatch{Budget: &value}); err != nil {
				a.logRemoteFailure("task allocation update", id.String(), err)
			}
		})
	}
	a.pushBudget()
	return nil
}

// RefreshTasks fetches the authoritative task list from the server and
// replaces the local one wholesale. When the server is unreachable the
// last locally stored list is kept, without surfacing an error.
func (a *App) RefreshTasks() ([]Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	remoteTasks, err := a.remote.Tasks(ctx)
	if err != nil {
		var unavailable *remote.UnavailableError
		if errors.As(err, &unavailable) {
			a.logRemoteFailure("task refresh", "", err)
			return a.Tasks(), nil
		}
		return nil, err
	}

	tasks := make([]Task, 0, len(remoteTasks))
	for _, rt := range remoteTasks {
		tasks = append(tasks, taskFromRemote(rt))
	}

	a.mu.Lock()
	a.tasks = tasks
	a.persistTasksLocked()
	a.mu.Unlock()
	a.notify()
	return a.Tasks(), nil
}

func (a *App) taskIndexLocked(id ID) int {
	for i := range a.tasks {
		if a.tasks[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}

func (a *App) logRemoteFailure(op, id string, err error) {
	a.log.Warnw("server sync failed; local state kept", "op", op, "id", id, "error", err)
}

func taskToRemote(t Task) remote.Task {
	return remote.Task{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		AssignedTo:  t.AssignedTo,
		Priority:    t.Priority,
		Points:      t.Points,
		Budget:      t.Budget,
	}
}

func taskFromRemote(t remote.Task) Task {
	return Task{
		ID:          ParseID(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		AssignedTo:  t.AssignedTo,
		Priority:    t.Priority,
		Points:      t.Points,
		Budget:      t.Budget,
	}
}

func taskPatchToRemote(p TaskPatch) remote.TaskPatch {
	return remote.TaskPatch{
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		DueDate:     p.DueDate,
		AssignedTo:  p.AssignedTo,
		Priority:    p.Priority,
		Points:      p.Points,
	}
}
