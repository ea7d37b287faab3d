package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hearth/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Role:     models.UserRolePersonal,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTask creates a task assigned to and created by the given user.
func CreateTestTask(t *testing.T, db *gorm.DB, userID string) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:      fmt.Sprintf("Task %d", nextID()),
		AssignedTo: []string{userID},
		AssignedBy: userID,
		Priority:   models.TaskPriorityMedium,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestTaskWithBudget creates a task carrying the given budget allocation.
func CreateTestTaskWithBudget(t *testing.T, db *gorm.DB, userID string, budget decimal.Decimal) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:      fmt.Sprintf("Task %d", nextID()),
		AssignedTo: []string{userID},
		AssignedBy: userID,
		Priority:   models.TaskPriorityMedium,
		Budget:     &budget,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestEvent creates a one-hour event for the given user starting at start.
func CreateTestEvent(t *testing.T, db *gorm.DB, userID string, start time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		UserID:    userID,
		Title:     fmt.Sprintf("Event %d", nextID()),
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestBudget creates a budget for the given owner with the given total
// and no categories. Allocated starts at zero, available equals the total.
func CreateTestBudget(t *testing.T, db *gorm.DB, ownerID string, total decimal.Decimal) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		OwnerID:         ownerID,
		TotalBudget:     total,
		AllocatedBudget: decimal.Zero,
		AvailableBudget: total,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategory attaches a category with the given allocation to a budget.
func CreateTestCategory(t *testing.T, db *gorm.DB, budgetID string, name string, amount decimal.Decimal) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		BudgetID: budgetID,
		Name:     name,
		Icon:     "cart",
		Color:    "#4CAF50",
		Budget:   amount,
		Spent:    decimal.Zero,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}
