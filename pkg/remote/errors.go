package remote

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a protected call is made without a
// token, or the server rejects the token.
var ErrAuthRequired = errors.New("remote: authentication required")

// UnavailableError covers every way the server can fail a best-effort
// call: unreachable, timed out, or a non-2xx response. Callers treat all
// of these the same way and keep local state authoritative.
type UnavailableError struct {
	Op      string
	Status  int    // 0 when the request never got a response
	Code    string // server error code when present
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
	}
	if e.Code != "" {
		return fmt.Sprintf("remote: %s: %d %s: %s", e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote: %s: %d: %s", e.Op, e.Status, e.Message)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
