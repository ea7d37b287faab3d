// Package organizer is the client-side core of the family organizer: an
// in-memory copy of the household's tasks, events, and budget, persisted
// to a local store on every mutation and reconciled with the server on a
// best-effort basis.
//
// Mutations are local-first: they update the in-memory state and the
// local store synchronously and return, while the matching server call
// runs in the background. A failed server call is logged and swallowed;
// from the caller's point of view the edit always succeeds, even
// offline. Only budget validation (insufficient headroom, negative or
// unknown references) fails synchronously, before any state changes.
package organizer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hearth/pkg/ledger"
	"hearth/pkg/localstore"
	"hearth/pkg/remote"
)

const defaultRemoteTimeout = 10 * time.Second

// Remote is the server surface the organizer syncs against, satisfied
// by *remote.Client.
type Remote interface {
	SetToken(token string)
	Register(ctx context.Context, name, email, password, role string) (remote.Session, error)
	Login(ctx context.Context, email, password string) (remote.Session, error)
	Tasks(ctx context.Context) ([]remote.Task, error)
	CreateTask(ctx context.Context, task remote.Task) (remote.Task, error)
	UpdateTask(ctx context.Context, id string, patch remote.TaskPatch) (remote.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Events(ctx context.Context) ([]remote.Event, error)
	CreateEvent(ctx context.Context, event remote.Event) (remote.Event, error)
	UpdateEvent(ctx context.Context, id string, patch remote.EventPatch) (remote.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	Budget(ctx context.Context) (remote.Budget, error)
	UpdateBudget(ctx context.Context, budget remote.Budget) (remote.Budget, error)
}

// App owns all client-side organizer state. One instance per process.
// All public methods are safe for concurrent use; a single coarse mutex
// serializes every state access, which is more than enough for
// human-driven call rates.
type App struct {
	store  localstore.Store
	remote Remote
	log    *zap.SugaredLogger

	timeout time.Duration

	mu     sync.Mutex
	ledger *ledger.Ledger
	tasks  []Task
	events []Event
	token  string
	user   *remote.User

	wg        sync.WaitGroup
	listenerM sync.Mutex
	listeners []func()
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used for background sync outcomes.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *App) { a.log = log }
}

// WithRemoteTimeout bounds each background server call.
func WithRemoteTimeout(d time.Duration) Option {
	return func(a *App) { a.timeout = d }
}

// New creates an App over the given local store and server client and
// loads the last persisted state: budget, task list, event list, and
// session. A corrupt entry is logged and skipped rather than failing
// startup.
func New(store localstore.Store, rc Remote, opts ...Option) *App {
	a := &App{
		store:   store,
		remote:  rc,
		log:     zap.NewNop().Sugar(),
		timeout: defaultRemoteTimeout,
	}
	a.ledger = ledger.New(taskTable{app: a})
	for _, opt := range opts {
		opt(a)
	}
	a.load()
	return a
}

// load restores persisted state from the local store.
func (a *App) load() {
	if data, ok, err := a.store.Get(localstore.KeyBudget); err == nil && ok {
		var snap ledger.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			a.log.Warnw("discarding corrupt budget entry", "error", err)
		} else {
			a.ledger.Restore(snap)
		}
	}
	if data, ok, err := a.store.Get(localstore.KeyTasks); err == nil && ok {
		if err := json.Unmarshal(data, &a.tasks); err != nil {
			a.log.Warnw("discarding corrupt task list entry", "error", err)
			a.tasks = nil
		}
	}
	if data, ok, err := a.store.Get(localstore.KeyEvents); err == nil && ok {
		if err := json.Unmarshal(data, &a.events); err != nil {
			a.log.Warnw("discarding corrupt event list entry", "error", err)
			a.events = nil
		}
	}
	if data, ok, err := a.store.Get(localstore.KeyAuthToken); err == nil && ok {
		a.token = string(data)
		a.remote.SetToken(a.token)
	}
	if data, ok, err := a.store.Get(localstore.KeyCurrentUser); err == nil && ok {
		var user remote.User
		if err := json.Unmarshal(data, &user); err != nil {
			a.log.Warnw("discarding corrupt user entry", "error", err)
		} else {
			a.user = &user
		}
	}
}

// Subscribe registers a change listener invoked after every state
// change, including background sync confirmations. Listeners run on the
// mutating goroutine and must not call back into the App.
func (a *App) Subscribe(listener func()) {
	a.listenerM.Lock()
	a.listeners = append(a.listeners, listener)
	a.listenerM.Unlock()
}

// Wait blocks until all in-flight background server calls have
// finished. Used at shutdown and in tests.
func (a *App) Wait() {
	a.wg.Wait()
}

func (a *App) notify() {
	a.listenerM.Lock()
	listeners := make([]func(), len(a.listeners))
	copy(listeners, a.listeners)
	a.listenerM.Unlock()
	for _, l := range listeners {
		l()
	}
}

// spawn runs a best-effort server call in the background with a bounded
// timeout.
func (a *App) spawn(fn func(ctx context.Context)) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		fn(ctx)
	}()
}

// --- persistence, callers hold a.mu ---

func (a *App) persistTasksLocked() {
	data, err := json.Marshal(a.tasks)
	if err != nil {
		a.log.Errorw("encode task list", "error", err)
		return
	}
	if err := a.store.Set(localstore.KeyTasks, data); err != nil {
		a.log.Errorw("persist task list", "error", err)
	}
}

func (a *App) persistEventsLocked() {
	data, err := json.Marshal(a.events)
	if err != nil {
		a.log.Errorw("encode event list", "error", err)
		return
	}
	if err := a.store.Set(localstore.KeyEvents, data); err != nil {
		a.log.Errorw("persist event list", "error", err)
	}
}

func (a *App) persistBudgetLocked() {
	data, err := json.Marshal(a.ledger.Snapshot())
	if err != nil {
		a.log.Errorw("encode budget", "error", err)
		return
	}
	if err := a.store.Set(localstore.KeyBudget, data); err != nil {
		a.log.Errorw("persist budget", "error", err)
	}
}

// taskTable adapts the App's task list to the ledger's allocation
// lookups. The ledger only calls it while the App holds a.mu.
type taskTable struct {
	app *App
}

func (t taskTable) TaskBudget(id string) (decimal.Decimal, bool) {
	for i := range t.app.tasks {
		if t.app.tasks[i].ID.String() == id {
			if t.app.tasks[i].Budget == nil {
				return decimal.Zero, true
			}
			return *t.app.tasks[i].Budget, true
		}
	}
	return decimal.Zero, false
}

func (t taskTable) SetTaskBudget(id string, amount decimal.Decimal) {
	for i := range t.app.tasks {
		if t.app.tasks[i].ID.String() == id {
			value := amount
			t.app.tasks[i].Budget = &value
			return
		}
	}
}

func (t taskTable) ClearTaskBudget(id string) {
	for i := range t.app.tasks {
		if t.app.tasks[i].ID.String() == id {
			t.app.tasks[i].Budget = nil
			return
		}
	}
}
