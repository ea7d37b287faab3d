// Package ledger maintains the household budget bookkeeping: a total
// budget, the portion of it committed to task allocations and named
// categories, and the remaining headroom. After every mutation the
// invariant holds exactly:
//
//	allocated == sum(category.budget) + sum(task.budget where set)
//	available == total - allocated
//
// Amounts use decimal arithmetic throughout so repeated add/subtract
// cycles cannot drift.
//
// A Ledger is not safe for concurrent use; the owning coordinator
// serializes access.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tasks lets the ledger read and write the per-task allocations that
// live in the task collection owned by the coordinator.
type Tasks interface {
	// TaskBudget reports the current allocation of a task, or ok=false
	// when no task with the given id exists. Tasks without an allocation
	// report a zero amount.
	TaskBudget(id string) (amount decimal.Decimal, ok bool)
	// SetTaskBudget records a new allocation on the task.
	SetTaskBudget(id string, amount decimal.Decimal)
	// ClearTaskBudget removes the allocation from the task.
	ClearTaskBudget(id string)
}

// Category is a named budget bucket with its own committed amount and an
// independently tracked running spend.
type Category struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Icon   string          `json:"icon"`
	Color  string          `json:"color"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

// CategoryPatch holds the optional fields of a category update. Nil
// pointers leave the corresponding field untouched. Spent is not
// settable; it only moves through RecordTransaction.
type CategoryPatch struct {
	Name   *string
	Icon   *string
	Color  *string
	Budget *decimal.Decimal
}

// Transaction is a spend/income record tagged with an optional category.
// Negative amounts are expenses, positive amounts income.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CategoryID  string          `json:"category_id"`
	Date        time.Time       `json:"date"`
}

// Snapshot is the persistable state of a ledger. Task allocations are
// not part of it; they live on the tasks themselves.
type Snapshot struct {
	TotalBudget     decimal.Decimal `json:"total_budget"`
	AllocatedBudget decimal.Decimal `json:"allocated_budget"`
	AvailableBudget decimal.Decimal `json:"available_budget"`
	Categories      []Category      `json:"categories"`
	Transactions    []Transaction   `json:"transactions"`
}

// Ledger owns the budget totals, the category list (insertion order is
// display order), and the transaction log.
type Ledger struct {
	tasks Tasks

	total     decimal.Decimal
	allocated decimal.Decimal
	available decimal.Decimal

	categories   []Category
	transactions []Transaction
}

// New creates an empty ledger whose task allocations are resolved
// through the given collaborator.
func New(tasks Tasks) *Ledger {
	return &Ledger{tasks: tasks}
}

// Total returns the budget ceiling.
func (l *Ledger) Total() decimal.Decimal { return l.total }

// Allocated returns the committed portion of the budget.
func (l *Ledger) Allocated() decimal.Decimal { return l.allocated }

// Available returns the uncommitted headroom.
func (l *Ledger) Available() decimal.Decimal { return l.available }

// Categories returns a copy of the category list in display order.
func (l *Ledger) Categories() []Category {
	out := make([]Category, len(l.categories))
	copy(out, l.categories)
	return out
}

// Transactions returns a copy of the transaction log in recording order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// TotalExpenses returns the absolute sum of negative transactions.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Amount.IsNegative() {
			total = total.Add(tx.Amount.Abs())
		}
	}
	return total
}

// TotalIncome returns the sum of positive transactions.
func (l *Ledger) TotalIncome() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Amount.IsPositive() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Balance returns income minus expenses over the whole log.
func (l *Ledger) Balance() decimal.Decimal {
	return l.TotalIncome().Sub(l.TotalExpenses())
}

// Category returns the category with the given id.
func (l *Ledger) Category(id string) (Category, bool) {
	for _, c := range l.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// SetTotal sets the budget ceiling and recomputes the headroom against
// the current allocation. Lowering the total below the allocation is
// allowed and leaves the headroom negative; only new allocations are
// checked against headroom.
func (l *Ledger) SetTotal(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &InvalidAmountError{Value: amount}
	}
	l.total = amount
	l.available = l.total.Sub(l.allocated)
	return nil
}

// AllocateToTask sets a task's allocation to amount. The difference to
// the task's current allocation is charged against the headroom, so
// re-allocating the same amount is a no-op and lowering an allocation
// always succeeds.
func (l *Ledger) AllocateToTask(taskID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &InvalidAmountError{Value: amount}
	}
	current, ok := l.tasks.TaskBudget(taskID)
	if !ok {
		return &NotFoundError{Kind: "task", ID: taskID}
	}

	delta := amount.Sub(current)
	if delta.IsPositive() && delta.GreaterThan(l.available) {
		return &InsufficientBudgetError{Required: delta, Available: l.available}
	}

	l.tasks.SetTaskBudget(taskID, amount)
	l.allocated = l.allocated.Add(delta)
	l.available = l.available.Sub(delta)
	return nil
}

// ReleaseTaskBudget returns a task's allocation to the headroom and
// clears it from the task. Task deletion calls this before removal.
func (l *Ledger) ReleaseTaskBudget(taskID string) error {
	current, ok := l.tasks.TaskBudget(taskID)
	if !ok {
		return &NotFoundError{Kind: "task", ID: taskID}
	}

	l.tasks.ClearTaskBudget(taskID)
	l.allocated = l.allocated.Sub(current)
	l.available = l.available.Add(current)
	return nil
}

// AddCategory appends a new category and charges its budget against the
// headroom. The new category starts with zero spend.
func (l *Ledger) AddCategory(name, icon, color string, budget decimal.Decimal) (Category, error) {
	if name == "" {
		return Category{}, ErrEmptyName
	}
	if budget.IsNegative() {
		return Category{}, &InvalidAmountError{Value: budget}
	}
	if budget.GreaterThan(l.available) {
		return Category{}, &InsufficientBudgetError{Required: budget, Available: l.available}
	}

	cat := Category{
		ID:     uuid.NewString(),
		Name:   name,
		Icon:   icon,
		Color:  color,
		Budget: budget,
		Spent:  decimal.Zero,
	}
	l.categories = append(l.categories, cat)
	l.allocated = l.allocated.Add(budget)
	l.available = l.available.Sub(budget)
	return cat, nil
}

// UpdateCategory applies the set fields of patch to an existing
// category. A budget change is charged against the headroom by its
// delta; the other fields apply unconditionally. The patch is rejected
// as a whole when any field is invalid, leaving the state untouched.
func (l *Ledger) UpdateCategory(id string, patch CategoryPatch) error {
	idx := -1
	for i := range l.categories {
		if l.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "category", ID: id}
	}

	if patch.Name != nil && *patch.Name == "" {
		return ErrEmptyName
	}

	delta := decimal.Zero
	if patch.Budget != nil {
		if patch.Budget.IsNegative() {
			return &InvalidAmountError{Value: *patch.Budget}
		}
		delta = patch.Budget.Sub(l.categories[idx].Budget)
		if delta.IsPositive() && delta.GreaterThan(l.available) {
			return &InsufficientBudgetError{Required: delta, Available: l.available}
		}
	}

	cat := &l.categories[idx]
	if patch.Name != nil {
		cat.Name = *patch.Name
	}
	if patch.Icon != nil {
		cat.Icon = *patch.Icon
	}
	if patch.Color != nil {
		cat.Color = *patch.Color
	}
	if patch.Budget != nil {
		cat.Budget = *patch.Budget
		l.allocated = l.allocated.Add(delta)
		l.available = l.available.Sub(delta)
	}
	return nil
}

// DeleteCategory removes a category and returns its budget to the
// headroom. Its recorded spend disappears with it.
func (l *Ledger) DeleteCategory(id string) error {
	for i := range l.categories {
		if l.categories[i].ID != id {
			continue
		}
		budget := l.categories[i].Budget
		l.categories = append(l.categories[:i], l.categories[i+1:]...)
		l.allocated = l.allocated.Sub(budget)
		l.available = l.available.Add(budget)
		return nil
	}
	return &NotFoundError{Kind: "category", ID: id}
}

// RecordTransaction appends a transaction to the log. When its category
// reference resolves, the absolute amount is added to that category's
// spend; an unresolved reference leaves the categories untouched but
// still records the transaction. Spending never moves the allocation
// totals.
func (l *Ledger) RecordTransaction(tx Transaction) Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	l.transactions = append(l.transactions, tx)

	if tx.CategoryID != "" {
		for i := range l.categories {
			if l.categories[i].ID == tx.CategoryID {
				l.categories[i].Spent = l.categories[i].Spent.Add(tx.Amount.Abs())
				break
			}
		}
	}
	return tx
}

// Snapshot returns a deep copy of the persistable ledger state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		TotalBudget:     l.total,
		AllocatedBudget: l.allocated,
		AvailableBudget: l.available,
		Categories:      l.Categories(),
		Transactions:    l.Transactions(),
	}
}

// Restore replaces the ledger state with a previously taken snapshot,
// for example the last known budget loaded from storage or fetched from
// the server.
func (l *Ledger) Restore(s Snapshot) {
	l.total = s.TotalBudget
	l.allocated = s.AllocatedBudget
	l.available = s.AvailableBudget
	l.categories = make([]Category, len(s.Categories))
	copy(l.categories, s.Categories)
	l.transactions = make([]Transaction, len(s.Transactions))
	copy(l.transactions, s.Transactions)
}
