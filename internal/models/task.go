package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Task represents a household task, optionally carrying a budget
// allocation from the family budget and reward points for completion.
type Task struct {
	Base
	Title       string           `gorm:"not null" json:"title"`
	Description string           `json:"description"`
	Completed   bool             `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	AssignedTo  []string         `gorm:"serializer:json" json:"assigned_to"`
	AssignedBy  string           `gorm:"type:uuid;not null" json:"assigned_by"`
	FamilyID    *string          `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Priority    TaskPriority     `gorm:"not null;default:medium" json:"priority"`
	Points      int              `gorm:"not null;default:0" json:"points"`
	Budget      *decimal.Decimal `gorm:"type:numeric" json:"budget,omitempty"`
}
