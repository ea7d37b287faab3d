package organizer

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"hearth/pkg/ledger"
	"hearth/pkg/remote"
)

// BudgetSnapshot returns the current ledger state.
func (a *App) BudgetSnapshot() ledger.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Snapshot()
}

// TotalExpenses sums the recorded spending on this device.
func (a *App) TotalExpenses() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.TotalExpenses()
}

// TotalIncome sums the recorded income on this device.
func (a *App) TotalIncome() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.TotalIncome()
}

// Balance returns income minus expenses over the transaction log.
func (a *App) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Balance()
}

// SetTotalBudget sets the household budget ceiling. Lowering it below
// the current allocation is allowed and leaves the headroom negative.
func (a *App) SetTotalBudget(amount decimal.Decimal) error {
	a.mu.Lock()
	if err := a.ledger.SetTotal(amount); err != nil {
		a.mu.Unlock()
		return err
	}
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()
	a.pushBudget()
	return nil
}

// AddBudgetCategory creates a named budget bucket charged against the
// available headroom.
func (a *App) AddBudgetCategory(name, icon, color string, budget decimal.Decimal) (ledger.Category, error) {
	a.mu.Lock()
	cat, err := a.ledger.AddCategory(name, icon, color, budget)
	if err != nil {
		a.mu.Unlock()
		return ledger.Category{}, err
	}
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()
	a.pushBudget()
	return cat, nil
}

// UpdateBudgetCategory applies the set fields of patch to a category.
func (a *App) UpdateBudgetCategory(id string, patch ledger.CategoryPatch) error {
	a.mu.Lock()
	if err := a.ledger.UpdateCategory(id, patch); err != nil {
		a.mu.Unlock()
		return err
	}
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()
	a.pushBudget()
	return nil
}

// DeleteBudgetCategory removes a category, returning its budget to the
// headroom.
func (a *App) DeleteBudgetCategory(id string) error {
	a.mu.Lock()
	if err := a.ledger.DeleteCategory(id); err != nil {
		a.mu.Unlock()
		return err
	}
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()
	a.pushBudget()
	return nil
}

// RecordTransaction appends a spend/income record; a resolvable
// category reference accumulates the absolute amount into that
// category's spend. Transactions themselves stay on the device; the
// updated category spends are pushed with the budget document.
func (a *App) RecordTransaction(tx ledger.Transaction) ledger.Transaction {
	a.mu.Lock()
	recorded := a.ledger.RecordTransaction(tx)
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()
	a.pushBudget()
	return recorded
}

// RefreshBudget fetches the authoritative budget document from the
// server and restores the ledger from it, keeping the locally recorded
// transaction log. When the server is unreachable the stored budget is
// kept, without surfacing an error.
func (a *App) RefreshBudget() (ledger.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	budget, err := a.remote.Budget(ctx)
	if err != nil {
		var unavailable *remote.UnavailableError
		if errors.As(err, &unavailable) {
			a.logRemoteFailure("budget refresh", "", err)
			return a.BudgetSnapshot(), nil
		}
		return ledger.Snapshot{}, err
	}

	a.mu.Lock()
	snap := ledger.Snapshot{
		TotalBudget:     budget.TotalBudget,
		AllocatedBudget: budget.AllocatedBudget,
		AvailableBudget: budget.AvailableBudget,
		Categories:      categoriesFromRemote(budget.Categories),
		Transactions:    a.ledger.Transactions(),
	}
	a.ledger.Restore(snap)
	a.persistBudgetLocked()
	a.mu.Unlock()
	a.notify()
	return snap, nil
}

// pushBudget sends the current budget document to the server
// best-effort.
func (a *App) pushBudget() {
	a.mu.Lock()
	snap := a.ledger.Snapshot()
	a.mu.Unlock()

	a.spawn(func(ctx context.Context) {
		budget := remote.Budget{
			TotalBudget:     snap.TotalBudget,
			AllocatedBudget: snap.AllocatedBudget,
			AvailableBudget: snap.AvailableBudget,
			Categories:      categoriesToRemote(snap.Categories),
		}
		if _, err := a.remote.UpdateBudget(ctx, budget); err != nil {
			a.logRemoteFailure("budget update", "", err)
		}
	})
}

func categoriesToRemote(cats []ledger.Category) []remote.Category {
	out := make([]remote.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, remote.Category{
			ID:     c.ID,
			Name:   c.Name,
			Icon:   c.Icon,
			Color:  c.Color,
			Budget: c.Budget,
			Spent:  c.Spent,
		})
	}
	return out
}

func categoriesFromRemote(cats []remote.Category) []ledger.Category {
	out := make([]ledger.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, ledger.Category{
			ID:     c.ID,
			Name:   c.Name,
			Icon:   c.Icon,
			Color:  c.Color,
			Budget: c.Budget,
			Spent:  c.Spent,
		})
	}
	return out
}
