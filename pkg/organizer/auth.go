package organizer

import (
	"context"
	"encoding/json"

	"hearth/pkg/localstore"
	"hearth/pkg/remote"
)

// Register creates an account on the server and starts a session.
// Unlike entity mutations this cannot be local-first; server errors are
// surfaced to the caller.
func (a *App) Register(name, email, password, role string) (remote.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	session, err := a.remote.Register(ctx, name, email, password, role)
	if err != nil {
		return remote.User{}, err
	}
	a.startSession(session)
	return session.User, nil
}

// Login authenticates against the server and starts a session.
func (a *App) Login(email, password string) (remote.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	session, err := a.remote.Login(ctx, email, password)
	if err != nil {
		return remote.User{}, err
	}
	a.startSession(session)
	return session.User, nil
}

// Logout drops the session token and user snapshot from memory and the
// local store. Entity data stays on the device.
func (a *App) Logout() {
	a.mu.Lock()
	a.token = ""
	a.user = nil
	a.remote.SetToken("")
	if err := a.store.Delete(localstore.KeyAuthToken); err != nil {
		a.log.Errorw("remove stored token", "error", err)
	}
	if err := a.store.Delete(localstore.KeyCurrentUser); err != nil {
		a.log.Errorw("remove stored user", "error", err)
	}
	a.mu.Unlock()
	a.notify()
}

// CurrentUser returns the last known profile of the signed-in user.
func (a *App) CurrentUser() (remote.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return remote.User{}, false
	}
	return *a.user, true
}

// SignedIn reports whether a session token is present.
func (a *App) SignedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token != ""
}

func (a *App) startSession(session remote.Session) {
	a.mu.Lock()
	a.token = session.Token
	user := session.User
	a.user = &user
	a.remote.SetToken(session.Token)
	if err := a.store.Set(localstore.KeyAuthToken, []byte(session.Token)); err != nil {
		a.log.Errorw("persist token", "error", err)
	}
	if data, err := json.Marshal(session.User); err == nil {
		if err := a.store.Set(localstore.KeyCurrentUser, data); err != nil {
			a.log.Errorw("persist user", "error", err)
		}
	}
	a.mu.Unlock()
	a.notify()
}
