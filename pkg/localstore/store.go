// Package localstore provides the durable per-device key-value storage
// that keeps the last known budget, task list, event list, and session
// between app launches.
package localstore

import "errors"

// Fixed keys for the entries the organizer persists.
const (
	KeyBudget      = "budget"
	KeyTasks       = "tasks"
	KeyEvents      = "events"
	KeyAuthToken   = "auth_token"
	KeyCurrentUser = "current_user"
)

// ErrClosed is returned from operations on a closed store.
var ErrClosed = errors.New("localstore: store is closed")

// Store is a durable key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set or has been deleted.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes the entry under key. Deleting a missing key is not
	// an error.
	Delete(key string) error
}
