package organizer

import (
	"context"
	"errors"
	"time"

	"hearth/pkg/remote"
)

// Event is the client-side calendar event shape.
type Event struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Participants []string  `json:"participants"`
	IsAllDay     bool      `json:"is_all_day"`
}

// EventInput holds the fields accepted when creating an event.
type EventInput struct {
	Title        string
	Description  string
	Location     string
	StartDate    time.Time
	EndDate      time.Time
	Participants []string
	IsAllDay     bool
}

// EventPatch holds the optional fields of an event update.
type EventPatch struct {
	Title        *string
	Description  *string
	Location     *string
	StartDate    *time.Time
	EndDate      *time.Time
	Participants []string
	IsAllDay     *bool
}

// normalizeAllDay expands an all-day event to its full calendar days:
// start clamps to 00:00:00.000, end to 23:59:59.999.
func (e *Event) normalizeAllDay() {
	if !e.IsAllDay {
		return
	}
	s := e.StartDate
	e.StartDate = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
	d := e.EndDate
	e.EndDate = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), d.Location())
}

// Events returns a copy of the current event list.
func (a *App) Events() []Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// Event returns the event with the given id.
func (a *App) Event(id ID) (Event, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i := a.eventIndexLocked(id); i >= 0 {
		return a.events[i], true
	}
	return Event{}, false
}

// CreateEvent adds an event under a provisional id, persists it
// locally, and fires a background server create with the same id-swap
// handling as tasks.
func (a *App) CreateEvent(input EventInput) (Event, error) {
	if input.Title == "" {
		return Event{}, ErrEmptyTitle
	}
	if input.EndDate.Before(input.StartDate) {
		return Event{}, ErrInvalidDateRange
	}

	event := Event{
		ID:           NewProvisionalID(),
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Participants: input.Participants,
		IsAllDay:     input.IsAllDay,
	}
	event.normalizeAllDay()

	a.mu.Lock()
	a.events = append(a.events, event)
	a.persistEventsLocked()
	a.mu.Unlock()
	a.notify()

	provisional := event.ID
	a.spawn(func(ctx context.Context) {
		created, err := a.remote.CreateEvent(ctx, eventToRemote(event))
		if err != nil {
			a.logRemoteFailure("event create", provisional.String(), err)
			return
		}
		a.adoptEventID(provisional, created.ID)
	})

	return event, nil
}

func (a *App) adoptEventID(provisional ID, canonical string) {
	a.mu.Lock()
	i := a.eventIndexLocked(provisional)
	if i < 0 {
		a.mu.Unlock()
		return
	}
	a.events[i].ID = CanonicalID(canonical)
	a.persistEventsLocked()
	a.mu.Unlock()
	a.notify()
}

// UpdateEvent applies the set fields of patch to an event, re-checking
// the date range and re-normalizing all-day bounds.
func (a *App) UpdateEvent(id ID, patch EventPatch) (Event, error) {
	a.mu.Lock()
	i := a.eventIndexLocked(id)
	if i < 0 {
		a.mu.Unlock()
		return Event{}, &NotFoundError{Kind: "event", ID: id.String()}
	}

	candidate := a.events[i]
	if patch.Title != nil {
		if *patch.Title == "" {
			a.mu.Unlock()
			return Event{}, ErrEmptyTitle
		}
		candidate.Title = *patch.Title
	}
	if patch.Description != nil {
		candidate.Description = *patch.Description
	}
	if patch.Location != nil {
		candidate.Location = *patch.Location
	}
	if patch.StartDate != nil {
		candidate.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		candidate.EndDate = *patch.EndDate
	}
	if patch.Participants != nil {
		candidate.Participants = patch.Participants
	}
	if patch.IsAllDay != nil {
		candidate.IsAllDay = *patch.IsAllDay
	}

	if candidate.EndDate.Before(candidate.StartDate) {
		a.mu.Unlock()
		return Event{}, ErrInvalidDateRange
	}
	candidate.normalizeAllDay()

	a.events[i] = candidate
	a.persistEventsLocked()
	a.mu.Unlock()
	a.notify()

	if !id.IsProvisional() {
		a.spawn(func(ctx context.Context) {
			if _, err := a.remote.UpdateEvent(ctx, id.String(), eventPatchToRemote(patch)); err != nil {
				a.logRemoteFailure("event update", id.String(), err)
			}
		})
	}

	return candidate, nil
}

// DeleteEvent removes an event. A server delete is attempted only for
// events the server knows about.
func (a *App) DeleteEvent(id ID) error {
	a.mu.Lock()
	i := a.eventIndexLocked(id)
	if i < 0 {
		a.mu.Unlock()
		return &NotFoundError{Kind: "event", ID: id.String()}
	}
	a.events = append(a.events[:i], a.events[i+1:]...)
	a.persistEventsLocked()
	a.mu.Unlock()
	a.notify()

	if !id.IsProvisional() {
		a.spawn(func(ctx context.Context) {
			if err := a.remote.DeleteEvent(ctx, id.String()); err != nil {
				a.logRemoteFailure("event delete", id.String(), err)
			}
		})
	}
	return nil
}

// RefreshEvents fetches the authoritative event list from the server
// and replaces the local one wholesale, keeping the stored list when
// the server is unreachable.
func (a *App) RefreshEvents() ([]Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	remoteEvents, err := a.remote.Events(ctx)
	if err != nil {
		var unavailable *remote.UnavailableError
		if errors.As(err, &unavailable) {
			a.logRemoteFailure("event refresh", "", err)
			return a.Events(), nil
		}
		return nil, err
	}

	events := make([]Event, 0, len(remoteEvents))
	for _, re := range remoteEvents {
		events = append(events, eventFromRemote(re))
	}

	a.mu.Lock()
	a.events = events
	a.persistEventsLocked()
	a.mu.Unlock()
	a.notify()
	return a.Events(), nil
}

func (a *App) eventIndexLocked(id ID) int {
	for i := range a.events {
		if a.events[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}

func eventToRemote(e Event) remote.Event {
	return remote.Event{
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Participants: e.Participants,
		IsAllDay:     e.IsAllDay,
	}
}

func eventFromRemote(e remote.Event) Event {
	return Event{
		ID:           ParseID(e.ID),
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Participants: e.Participants,
		IsAllDay:     e.IsAllDay,
	}
}

func eventPatchToRemote(p EventPatch) remote.EventPatch {
	return remote.EventPatch{
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Participants: p.Participants,
		IsAllDay:     p.IsAllDay,
	}
}
