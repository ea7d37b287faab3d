package organizer

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned when a task or event is created without a
// title.
var ErrEmptyTitle = errors.New("organizer: title must not be empty")

// ErrInvalidDateRange is returned when an event ends before it starts.
var ErrInvalidDateRange = errors.New("organizer: end date must not be before start date")

// NotFoundError is returned when a referenced task or event id does not
// exist in the current state.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
