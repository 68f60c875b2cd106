package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	applog "expensetracker/internal/log"
	"expensetracker/internal/metrics"
)

// ExpenseService orchestrates expense operations over a store, recording
// logs and metrics and bumping a revision on every successful change.
type ExpenseService struct {
	store    ledger.ExpenseStore
	metrics  *metrics.Metrics
	log      *applog.StructuredLogger
	revision atomic.Uint64
}

func NewExpenseService(store ledger.ExpenseStore, m *metrics.Metrics, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ExpenseService{
		store:   store,
		metrics: m,
		log:     applog.NewStructuredLogger(logger),
	}
}

// CreateExpense parses the raw form input and appends a new expense.
// Unparsable input leaves the store untouched.
func (s *ExpenseService) CreateExpense(ctx context.Context, amountText, note, category string) (core.Expense, error) {
	e, err := core.NewExpense(amountText, note, category)
	if err != nil {
		s.reject(ctx, applog.OpCreate, amountText, category, err)
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	saved, err := s.store.Add(ctx, e)
	if err != nil {
		s.failed(ctx, applog.OpCreate, err, nil)
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.changed(ctx, applog.OpCreate, saved)
	return saved, nil
}

// UpdateExpense replaces all fields of the expense with id. Unparsable input
// is a no-op; an unknown id returns ledger.ErrNotFound.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, amountText, note, category string) (core.Expense, error) {
	e, err := core.NewExpense(amountText, note, category)
	if err != nil {
		s.reject(ctx, applog.OpUpdate, amountText, category, err)
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}
	e.ID = id

	if err := s.store.Update(ctx, e); err != nil {
		s.failed(ctx, applog.OpUpdate, err, applog.NewFields().WithExpense(id, e.Amount.Cents, e.Category.String()))
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}

	s.changed(ctx, applog.OpUpdate, e)
	return e, nil
}

// DeleteExpense removes the expense with id.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.failed(ctx, applog.OpDelete, err, applog.LogFields{applog.FieldExpenseID: id})
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	s.changed(ctx, applog.OpDelete, core.Expense{ID: id})
	return nil
}

// GetExpense returns a single expense by id.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	if g, ok := s.store.(ledger.ExpenseGetter); ok {
		return g.Get(ctx, id)
	}
	items, err := s.store.List(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("list expenses: %w", err)
	}
	for _, e := range items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, ledger.ErrNotFound
}

// ListExpenses returns the expenses in insertion order.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		s.failed(ctx, applog.OpList, err, nil)
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return items, nil
}

// CategoryTotals returns per-category totals in first-seen order. Stores that
// can sum on their side are asked to; otherwise items are summed here.
func (s *ExpenseService) CategoryTotals(ctx context.Context, items []core.Expense) (aggregate.CategoryTotals, error) {
	t, ok := s.store.(ledger.CategoryTotaler)
	if !ok {
		return aggregate.ByCategory(items), nil
	}
	totals, err := t.CategoryTotals(ctx)
	if err != nil {
		s.failed(ctx, applog.OpList, err, nil)
		return nil, fmt.Errorf("category totals: %w", err)
	}
	return totals, nil
}

// Revision increases after every successful change.
func (s *ExpenseService) Revision() uint64 {
	return s.revision.Load()
}

func (s *ExpenseService) changed(ctx context.Context, op string, e core.Expense) {
	s.revision.Add(1)
	s.metrics.ObserveOperation(op, metrics.ResultOK)
	if items, err := s.store.List(ctx); err == nil {
		s.metrics.SetExpenseCount(len(items))
	}
	s.log.LogExpenseChanged(ctx, op, e.ID, e.Amount.Cents, e.Category.String())
}

func (s *ExpenseService) reject(ctx context.Context, op, amountText, category string, err error) {
	field, input := "amount", amountText
	if errors.Is(err, core.ErrUnknownCategory) {
		field, input = "category", category
	}
	s.metrics.ObserveOperation(op, metrics.ResultRejected)
	s.metrics.ObserveRejected(field)
	s.log.LogRejectedInput(ctx, op, field, input, err)
}

// failed records a store error. Not found is an expected outcome and is only
// counted.
func (s *ExpenseService) failed(ctx context.Context, op string, err error, fields applog.LogFields) {
	result := resultOf(err)
	s.metrics.ObserveOperation(op, result)
	if result == metrics.ResultError {
		s.log.LogError(ctx, "Expense store operation failed", err, applog.ComponentStorage, op, fields)
	}
}

func resultOf(err error) string {
	if errors.Is(err, ledger.ErrNotFound) {
		return metrics.ResultNotFound
	}
	return metrics.ResultError
}

// Close releases the store when it holds resources.
func (s *ExpenseService) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
