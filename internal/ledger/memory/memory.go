package memory

import (
	"context"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New() *Store {
	return &Store{}
}

// Add validates e, assigns the next id and appends it.
func (s *Store) Add(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID()
	s.items = append(s.items, e)
	return e, nil
}

// Update replaces the fields of the expense with the same id in place.
func (s *Store) Update(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(e.ID)
	if i < 0 {
		return ledger.ErrNotFound
	}
	s.items[i] = e
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ledger.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) Get(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, ledger.ErrNotFound
	}
	return s.items[i], nil
}

// List returns a copy of the expenses in insertion order.
func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// nextID is max(id)+1; size+1 would hand out duplicates after a delete.
func (s *Store) nextID() int64 {
	var max int64
	for _, e := range s.items {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func (s *Store) indexOf(id int64) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

var (
	_ ledger.ExpenseStore  = (*Store)(nil)
	_ ledger.ExpenseGetter = (*Store)(nil)
)
