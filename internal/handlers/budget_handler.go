package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "hearth/internal/errors"
	"hearth/internal/services"
)

// BudgetHandler handles household-budget requests. The budget document
// is scoped to the user's family when they belong to one, otherwise to
// the user themselves.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	userService   services.UserServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, userService services.UserServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, userService: userService}
}

// BudgetCategoryRequest is one category entry in a budget update.
type BudgetCategoryRequest struct {
	ID     string          `json:"id"`
	Name   string          `json:"name" binding:"required,min=1,max=100"`
	Icon   string          `json:"icon" binding:"max=100"`
	Color  string          `json:"color" binding:"omitempty,hex_color"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

// UpdateBudgetRequest represents the request payload for updating the budget.
type UpdateBudgetRequest struct {
	TotalBudget     *decimal.Decimal        `json:"total_budget"`
	AllocatedBudget *decimal.Decimal        `json:"allocated_budget"`
	AvailableBudget *decimal.Decimal        `json:"available_budget"`
	Categories      []BudgetCategoryRequest `json:"categories"`
}

// ownerID resolves the budget scope for the authenticated user.
func (h *BudgetHandler) ownerID(c *gin.Context) (string, error) {
	userID, err := getUserID(c)
	if err != nil {
		return "", err
	}
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	if user.FamilyID != nil {
		return *user.FamilyID, nil
	}
	return user.ID, nil
}

// GetBudget returns the household budget, creating a zero budget on first access.
// @Summary     Get budget
// @Description Get the household budget; a zero budget is created on first access
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Budget "Budget document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	ownerID, err := h.ownerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetOrCreateBudget(ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget applies a partial update to the household budget.
// @Summary     Update budget
// @Description Update the household budget; omitted fields keep their values
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateBudgetRequest true "Budget fields to update"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	ownerID, err := h.ownerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateBudgetInput{
		TotalBudget:     req.TotalBudget,
		AllocatedBudget: req.AllocatedBudget,
		AvailableBudget: req.AvailableBudget,
	}
	if req.Categories != nil {
		input.Categories = make([]services.CategoryInput, 0, len(req.Categories))
		for _, cat := range req.Categories {
			input.Categories = append(input.Categories, services.CategoryInput{
				ID:     cat.ID,
				Name:   cat.Name,
				Icon:   cat.Icon,
				Color:  cat.Color,
				Budget: cat.Budget,
				Spent:  cat.Spent,
			})
		}
	}

	budget, err := h.budgetService.UpdateBudget(ownerID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
