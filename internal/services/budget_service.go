package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
)

// budgetService handles the household budget document. The server is
// deliberately permissive: the heavy allocation bookkeeping happens in
// the client core, and the API stores whatever consistent snapshot the
// client pushes, only recomputing the available headroom when a partial
// update supplies the total alone.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetOrCreateBudget returns the owner's budget, creating a zero budget
// on first access.
func (s *budgetService) GetOrCreateBudget(ownerID string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("owner_id = ?", ownerID).First(&budget).Error
	if err == nil {
		return &budget, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget = models.Budget{
		OwnerID:         ownerID,
		TotalBudget:     decimal.Zero,
		AllocatedBudget: decimal.Zero,
		AvailableBudget: decimal.Zero,
		Categories:      []models.BudgetCategory{},
	}
	if err := s.db.Create(&budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies the set fields of input to the owner's budget.
// When only the total is supplied the available headroom is recomputed
// against the stored allocation; a supplied category list replaces the
// stored one wholesale, preserving its order.
func (s *budgetService) UpdateBudget(ownerID string, input UpdateBudgetInput) (*models.Budget, error) {
	budget, err := s.GetOrCreateBudget(ownerID)
	if err != nil {
		return nil, err
	}

	if input.TotalBudget != nil {
		if input.TotalBudget.IsNegative() {
			return nil, apperrors.ErrInvalidAmount
		}
		budget.TotalBudget = *input.TotalBudget
	}
	if input.AllocatedBudget != nil {
		budget.AllocatedBudget = *input.AllocatedBudget
	}

	// A supplied available value always wins, even next to a new total;
	// the recompute only kicks in when the caller left available unset.
	switch {
	case input.TotalBudget != nil && input.AllocatedBudget == nil && input.AvailableBudget == nil:
		budget.AvailableBudget = budget.TotalBudget.Sub(budget.AllocatedBudget)
	case input.AvailableBudget != nil:
		budget.AvailableBudget = *input.AvailableBudget
	case input.AllocatedBudget != nil:
		budget.AvailableBudget = budget.TotalBudget.Sub(budget.AllocatedBudget)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(budget).Select("total_budget", "allocated_budget", "available_budget").
			Updates(map[string]interface{}{
				"total_budget":     budget.TotalBudget,
				"allocated_budget": budget.AllocatedBudget,
				"available_budget": budget.AvailableBudget,
			}).Error; err != nil {
			return err
		}

		if input.Categories == nil {
			return nil
		}

		if err := tx.Unscoped().Where("budget_id = ?", budget.ID).Delete(&models.BudgetCategory{}).Error; err != nil {
			return err
		}

		categories := make([]models.BudgetCategory, 0, len(input.Categories))
		for i, in := range input.Categories {
			cat := models.BudgetCategory{
				BudgetID: budget.ID,
				Name:     in.Name,
				Icon:     in.Icon,
				Color:    in.Color,
				Budget:   in.Budget,
				Spent:    in.Spent,
				Position: i,
			}
			// The client keeps category ids stable across pushes.
			cat.ID = in.ID
			categories = append(categories, cat)
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		budget.Categories = categories
		return nil
	})
	if txErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, txErr)
	}

	return budget, nil
}
