package remote

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire shapes for the Hearth API. Every response is decoded into one of
// these rather than into loose maps, so malformed payloads fail at the
// boundary.

// User is the profile payload returned by auth and profile endpoints.
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Points int     `json:"points"`
	Avatar *string `json:"avatar"`
}

// Session pairs a bearer token with the user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Task is the server-side task shape.
type Task struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Completed   bool             `json:"completed"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	AssignedTo  []string         `json:"assigned_to"`
	AssignedBy  string           `json:"assigned_by"`
	Priority    string           `json:"priority"`
	Points      int              `json:"points"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// TaskPatch holds the optional fields of a task update; omitted fields
// keep their server-side values.
type TaskPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	AssignedTo  []string         `json:"assigned_to,omitempty"`
	Priority    *string          `json:"priority,omitempty"`
	Points      *int             `json:"points,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// Event is the server-side calendar event shape.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Participants []string  `json:"participants"`
	IsAllDay     bool      `json:"is_all_day"`
}

// EventPatch holds the optional fields of an event update.
type EventPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Location     *string    `json:"location,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Participants []string   `json:"participants,omitempty"`
	IsAllDay     *bool      `json:"is_all_day,omitempty"`
}

// Category is one bucket of the server-side budget document.
type Category struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Icon   string          `json:"icon"`
	Color  string          `json:"color"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

// Budget is the server-side budget document.
type Budget struct {
	TotalBudget     decimal.Decimal `json:"total_budget"`
	AllocatedBudget decimal.Decimal `json:"allocated_budget"`
	AvailableBudget decimal.Decimal `json:"available_budget"`
	Categories      []Category      `json:"categories"`
}

// ProfilePatch holds the optional fields of a profile update.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}
