package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrEmptyName is returned when a category is created or renamed with an
// empty name.
var ErrEmptyName = errors.New("category name must not be empty")

// InsufficientBudgetError is returned when an allocation would exceed the
// available headroom. Required is the additional headroom the operation
// needed, Available the headroom at the time of the call.
type InsufficientBudgetError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("insufficient budget: required %s, available %s", e.Required, e.Available)
}

// NotFoundError is returned when a referenced task or category does not
// exist in the current state.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// InvalidAmountError is returned when a negative amount is supplied to a
// budget operation.
type InvalidAmountError struct {
	Value decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Value)
}
