package models

import "github.com/shopspring/decimal"

// Budget represents the household budget document: a single row per
// owner (family, or the user themselves for personal accounts) with an
// ordered list of categories.
type Budget struct {
	Base
	OwnerID         string           `gorm:"type:uuid;uniqueIndex;not null" json:"owner_id"`
	TotalBudget     decimal.Decimal  `gorm:"type:numeric;not null" json:"total_budget"`
	AllocatedBudget decimal.Decimal  `gorm:"type:numeric;not null" json:"allocated_budget"`
	AvailableBudget decimal.Decimal  `gorm:"type:numeric;not null" json:"available_budget"`
	Categories      []BudgetCategory `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"categories"`
}

// BudgetCategory is a named allocation bucket inside a budget. Position
// preserves insertion order, which is also display order.
type BudgetCategory struct {
	Base
	BudgetID string          `gorm:"type:uuid;not null;index" json:"-"`
	Name     string          `gorm:"not null" json:"name"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
	Budget   decimal.Decimal `gorm:"type:numeric;not null" json:"budget"`
	Spent    decimal.Decimal `gorm:"type:numeric;not null" json:"spent"`
	Position int             `gorm:"not null" json:"position"`
}
