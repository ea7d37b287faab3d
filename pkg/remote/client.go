// Package remote is the typed HTTP client for the Hearth API. It is the
// only place that talks to the network; callers treat it as a
// best-effort collaborator and keep local state authoritative when it
// fails.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client calls the Hearth API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. The default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the API at baseURL, e.g.
// "https://hearth.example.com/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token used on protected calls. An empty
// token clears the session.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// apiError matches both error shapes the API family has used: the
// structured {"error":{"code","message"}} object and the legacy flat
// {"message"} body.
type apiError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}, protected bool) error {
	var token string
	if protected {
		token = c.Token()
		if token == "" {
			return ErrAuthRequired
		}
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: %s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("remote: %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &UnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		unavailable := &UnavailableError{Op: op, Status: resp.StatusCode, Message: apiErr.Message}
		if apiErr.Error != nil {
			unavailable.Code = apiErr.Error.Code
			unavailable.Message = apiErr.Error.Message
		}
		return unavailable
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UnavailableError{Op: op, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

// --- auth ---

// Register creates an account and returns the resulting session. Role
// may be empty for the server default.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	var session Session
	if err := c.do(ctx, "register", http.MethodPost, "/users", body, &session, false); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Login authenticates and returns the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, "login", http.MethodPost, "/users/login", body, &session, false); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, "profile", http.MethodGet, "/users/profile", nil, &envelope, true); err != nil {
		return User{}, err
	}
	return envelope.User, nil
}

// UpdateProfile applies a partial profile update. The server issues a
// fresh token alongside the updated user.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (Session, error) {
	var session Session
	if err := c.do(ctx, "update profile", http.MethodPut, "/users/profile", patch, &session, true); err != nil {
		return Session{}, err
	}
	return session, nil
}

const listPageSize = 100

type listPage[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// listAll walks a paginated list endpoint until total_pages is
// exhausted. Refreshes replace local state wholesale, so stopping at
// one page would drop everything past it from the device.
func listAll[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	var items []T
	for page := 1; ; page++ {
		var pg listPage[T]
		url := fmt.Sprintf("%s?page=%d&page_size=%d", path, page, listPageSize)
		if err := c.do(ctx, op, http.MethodGet, url, nil, &pg, true); err != nil {
			return nil, err
		}
		items = append(items, pg.Data...)
		if page >= pg.TotalPages {
			return items, nil
		}
	}
}

// --- tasks ---

// Tasks fetches the caller's full task list.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	return listAll[Task](ctx, c, "list tasks", "/tasks")
}

// CreateTask creates a task and returns the server's copy, canonical id
// included.
func (c *Client) CreateTask(ctx context.Context, task Task) (Task, error) {
	var envelope struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", task, &envelope, true); err != nil {
		return Task{}, err
	}
	return envelope.Task, nil
}

// UpdateTask applies a partial update to the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error) {
	var envelope struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, "update task", http.MethodPut, "/tasks/"+id, patch, &envelope, true); err != nil {
		return Task{}, err
	}
	return envelope.Task, nil
}

// DeleteTask deletes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete task", http.MethodDelete, "/tasks/"+id, nil, nil, true)
}

// --- events ---

// Events fetches the caller's full event list.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	return listAll[Event](ctx, c, "list events", "/events")
}

// CreateEvent creates an event and returns the server's copy.
func (c *Client) CreateEvent(ctx context.Context, event Event) (Event, error) {
	var envelope struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, "create event", http.MethodPost, "/events", event, &envelope, true); err != nil {
		return Event{}, err
	}
	return envelope.Event, nil
}

// UpdateEvent applies a partial update to the event with the given id.
func (c *Client) UpdateEvent(ctx context.Context, id string, patch EventPatch) (Event, error) {
	var envelope struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, "update event", http.MethodPut, "/events/"+id, patch, &envelope, true); err != nil {
		return Event{}, err
	}
	return envelope.Event, nil
}

// DeleteEvent deletes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, "delete event", http.MethodDelete, "/events/"+id, nil, nil, true)
}

// --- budget ---

// Budget fetches the household budget document.
func (c *Client) Budget(ctx context.Context) (Budget, error) {
	var envelope struct {
		Budget Budget `json:"budget"`
	}
	if err := c.do(ctx, "get budget", http.MethodGet, "/budget", nil, &envelope, true); err != nil {
		return Budget{}, err
	}
	return envelope.Budget, nil
}

// UpdateBudget pushes the full budget document and returns the stored
// copy.
func (c *Client) UpdateBudget(ctx context.Context, budget Budget) (Budget, error) {
	var envelope struct {
		Budget Budget `json:"budget"`
	}
	if err := c.do(ctx, "update budget", http.MethodPut, "/budget", budget, &envelope, true); err != nil {
		return Budget{}, err
	}
	return envelope.Budget, nil
}
