package ledger

import (
	"context"
	"errors"

	"expensetracker/internal/core"
)

// ErrNotFound is returned when no expense has the requested id.
var ErrNotFound = errors.New("expense not found")

// Ports for expense storage adapters.
type (
	// ExpenseStore is an ordered collection of expenses kept in memory for the
	// lifetime of the screen.
	ExpenseStore interface {
		// Add assigns the next id (max existing id + 1) and appends e.
		Add(ctx context.Context, e core.Expense) (core.Expense, error)
		// Update replaces every field of the expense with e.ID, keeping its
		// position. Returns ErrNotFound when the id is unknown.
		Update(ctx context.Context, e core.Expense) error
		// Delete removes the expense with id. Returns ErrNotFound when missing.
		Delete(ctx context.Context, id int64) error
		// List returns the expenses in insertion order.
		List(ctx context.Context) ([]core.Expense, error)
	}

	// ExpenseGetter looks up a single expense.
	ExpenseGetter interface {
		Get(ctx context.Context, id int64) (core.Expense, error)
	}

	// CategoryTotaler sums amounts per category, ordered by the first
	// expense seen in each category.
	CategoryTotaler interface {
		CategoryTotals(ctx context.Context) ([]core.CategoryAmount, error)
	}
)
