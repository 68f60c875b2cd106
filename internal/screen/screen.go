// Package screen holds the state of the single expense screen: the budget
// field, the add/edit form, and the list/chart, pie/bar and light/dark flags.
//
// Every method runs one user action to completion under the screen lock, so
// actions apply in the order they arrive.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/services"
)

type (
	View      string
	Theme     string
	ChartKind string
	Action    string
)

const (
	ViewList  View = "list"
	ViewChart View = "chart"

	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	ChartPie ChartKind = "pie"
	ChartBar ChartKind = "bar"

	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
)

var ErrUnknownOption = errors.New("unknown option")

// Form is the add/edit form. EditingID is zero when adding.
type Form struct {
	Amount    string
	Note      string
	Category  core.Category
	EditingID int64
}

func emptyForm() Form {
	return Form{Category: core.DefaultCategory}
}

// Editing reports whether the form is saving changes to an existing expense.
func (f Form) Editing() bool {
	return f.EditingID != 0
}

// State is a read-only view model of the screen.
type State struct {
	BudgetText string
	Expenses   []core.Expense
	Breakdown  aggregate.Breakdown
	Form       Form
	View       View
	Theme      Theme
	Chart      ChartKind
	Categories []core.Category
	Revision   uint64
}

// Options are the initial presentation flags.
type Options struct {
	Theme Theme
	Chart ChartKind
}

type Screen struct {
	mu         sync.Mutex
	svc        *services.ExpenseService
	budgetText string
	form       Form
	view       View
	theme      Theme
	chart      ChartKind
}

func New(svc *services.ExpenseService, opts Options) *Screen {
	s := &Screen{
		svc:   svc,
		form:  emptyForm(),
		view:  ViewList,
		theme: ThemeLight,
		chart: ChartPie,
	}
	if opts.Theme.Valid() {
		s.theme = opts.Theme
	}
	if opts.Chart.Valid() {
		s.chart = opts.Chart
	}
	return s
}

// SetBudget stores the budget text as typed. It is parsed on read; invalid
// text counts as zero.
func (s *Screen) SetBudget(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgetText = text
}

// ResetBudget clears the budget field.
func (s *Screen) ResetBudget() {
	s.SetBudget("")
}

// Submit adds a new expense, or saves changes when an edit is in progress.
//
// On success the form resets and the edit session ends. When the input does
// not parse the action is ignored, the form keeps the submitted text, and the
// returned error wraps core.ErrInvalidAmount or core.ErrUnknownCategory.
func (s *Screen) Submit(ctx context.Context, amount, note, category string) (core.Expense, Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		e      core.Expense
		action Action
		err    error
	)
	if s.form.Editing() {
		action = ActionUpdated
		e, err = s.svc.UpdateExpense(ctx, s.form.EditingID, amount, note, category)
	} else {
		action = ActionAdded
		e, err = s.svc.CreateExpense(ctx, amount, note, category)
	}
	if err != nil {
		s.retain(amount, note, category)
		if errors.Is(err, ledger.ErrNotFound) {
			// The record vanished mid-edit; nothing left to save into.
			s.form.EditingID = 0
		}
		return core.Expense{}, "", err
	}

	s.form = emptyForm()
	return e, action, nil
}

func (s *Screen) retain(amount, note, category string) {
	s.form.Amount = amount
	s.form.Note = note
	if c, err := core.ParseCategory(category); err == nil {
		s.form.Category = c
	}
}

// BeginEdit loads the expense into the form and switches to the list view.
func (s *Screen) BeginEdit(ctx context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.svc.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("begin edit %d: %w", id, err)
	}
	s.form = Form{
		Amount:    e.Amount.Input(),
		Note:      e.Note,
		Category:  e.Category,
		EditingID: e.ID,
	}
	s.view = ViewList
	return e, nil
}

// CancelEdit drops the edit session and clears the form.
func (s *Screen) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = emptyForm()
}

// Delete removes the expense. An edit session on the same id is cleared.
func (s *Screen) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.svc.DeleteExpense(ctx, id)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return err
	}
	if s.form.EditingID == id {
		s.form = emptyForm()
	}
	return err
}

func (s *Screen) ShowChart() { s.setView(ViewChart) }

func (s *Screen) ShowList() { s.setView(ViewList) }

func (s *Screen) setView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// ToggleView flips between the list and the chart.
func (s *Screen) ToggleView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == ViewChart {
		s.view = ViewList
	} else {
		s.view = ViewChart
	}
	return s.view
}

// ToggleTheme flips between light and dark presentation.
func (s *Screen) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

func (s *Screen) SetChartKind(k ChartKind) error {
	if !k.Valid() {
		return fmt.Errorf("chart kind %q: %w", k, ErrUnknownOption)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart = k
	return nil
}

// ToggleChartKind flips between pie and bar charts.
func (s *Screen) ToggleChartKind() ChartKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chart == ChartBar {
		s.chart = ChartPie
	} else {
		s.chart = ChartBar
	}
	return s.chart
}

// Snapshot computes the current view model.
func (s *Screen) Snapshot(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.svc.ListExpenses(ctx)
	if err != nil {
		return State{}, fmt.Errorf("snapshot: %w", err)
	}
	byCat, err := s.svc.CategoryTotals(ctx, items)
	if err != nil {
		return State{}, fmt.Errorf("snapshot: %w", err)
	}
	return State{
		BudgetText: s.budgetText,
		Expenses:   items,
		Breakdown:  aggregate.FromTotals(byCat, core.ParseBudget(s.budgetText)),
		Form:       s.form,
		View:       s.view,
		Theme:      s.theme,
		Chart:      s.chart,
		Categories: core.Categories(),
		Revision:   s.svc.Revision(),
	}, nil
}

func (v View) Valid() bool { return v == ViewList || v == ViewChart }

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

func (k ChartKind) Valid() bool { return k == ChartPie || k == ChartBar }

func ParseView(s string) (View, error) {
	if v := View(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("view %q: %w", s, ErrUnknownOption)
}

func ParseTheme(s string) (Theme, error) {
	if t := Theme(s); t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("theme %q: %w", s, ErrUnknownOption)
}

func ParseChartKind(s string) (ChartKind, error) {
	if k := ChartKind(s); k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("chart kind %q: %w", s, ErrUnknownOption)
}
