package services

import (
	"time"

	"github.com/shopspring/decimal"

	"hearth/internal/models"
	"hearth/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string, role models.UserRole) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error)
}

// UpdateProfileInput holds the optional fields of a profile update.
type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
	Role     *models.UserRole
	Avatar   *string
}

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssignedTo  []string
	FamilyID    *string
	Priority    models.TaskPriority
	Points      int
	Budget      *decimal.Decimal
}

// UpdateTaskInput holds the optional fields of a task update. Nil
// pointers leave the corresponding field untouched.
type UpdateTaskInput struct {
	Title       string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	AssignedTo  []string
	Priority    *models.TaskPriority
	Points      *int
	Budget      *decimal.Decimal
}

// TaskServicer defines the contract for task-related business logic.
type TaskServicer interface {
	CreateTask(userID string, input CreateTaskInput) (*models.Task, error)
	GetUserTasks(userID string, familyID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error)
	GetTaskByID(userID, taskID string) (*models.Task, error)
	UpdateTask(userID, taskID string, input UpdateTaskInput) (*models.Task, error)
	DeleteTask(userID, taskID string) error
}

// CreateEventInput holds the fields accepted when creating an event.
type CreateEventInput struct {
	Title        string
	Description  string
	Location     string
	StartDate    time.Time
	EndDate      time.Time
	Participants []string
	IsAllDay     bool
}

// UpdateEventInput holds the optional fields of an event update.
type UpdateEventInput struct {
	Title        string
	Description  *string
	Location     *string
	StartDate    *time.Time
	EndDate      *time.Time
	Participants []string
	IsAllDay     *bool
}

// EventServicer defines the contract for calendar-event business logic.
type EventServicer interface {
	CreateEvent(userID string, input CreateEventInput) (*models.Event, error)
	GetUserEvents(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error)
	GetEventByID(userID, eventID string) (*models.Event, error)
	UpdateEvent(userID, eventID string, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(userID, eventID string) error
}

// CategoryInput is one category entry of a wholesale budget update.
type CategoryInput struct {
	ID     string
	Name   string
	Icon   string
	Color  string
	Budget decimal.Decimal
	Spent  decimal.Decimal
}

// UpdateBudgetInput holds the optional fields of a budget update. When
// only TotalBudget is supplied, AvailableBudget is recomputed against
// the stored allocation; Categories, when present, replace the stored
// list wholesale in the given order.
type UpdateBudgetInput struct {
	TotalBudget     *decimal.Decimal
	AllocatedBudget *decimal.Decimal
	AvailableBudget *decimal.Decimal
	Categories      []CategoryInput
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	GetOrCreateBudget(ownerID string) (*models.Budget, error)
	UpdateBudget(ownerID string, input UpdateBudgetInput) (*models.Budget, error)
}
