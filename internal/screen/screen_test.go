package screen

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/ledger/memory"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/storage"
)

func newScreen(t *testing.T) *Screen {
	t.Helper()
	svc := services.NewExpenseService(memory.New(), nil, applog.New(applog.Config{Output: &bytes.Buffer{}}))
	return New(svc, Options{})
}

func snapshot(t *testing.T, s *Screen) State {
	t.Helper()
	st, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	return st
}

func TestDefaults(t *testing.T) {
	st := snapshot(t, newScreen(t))
	assert.Equal(t, ViewList, st.View)
	assert.Equal(t, ThemeLight, st.Theme)
	assert.Equal(t, ChartPie, st.Chart)
	assert.Equal(t, core.General, st.Form.Category)
	assert.False(t, st.Form.Editing())
	assert.Len(t, st.Categories, 6)
	assert.False(t, st.Breakdown.HasData())
}

func TestOptionsOverrideDefaults(t *testing.T) {
	svc := services.NewExpenseService(memory.New(), nil, applog.New(applog.Config{Output: &bytes.Buffer{}}))
	s := New(svc, Options{Theme: ThemeDark, Chart: ChartBar})
	st := snapshot(t, s)
	assert.Equal(t, ThemeDark, st.Theme)
	assert.Equal(t, ChartBar, st.Chart)
}

func TestSubmitAddsAndResetsForm(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)

	e, action, err := s.Submit(ctx, "50", "groceries", "Food")
	require.NoError(t, err)
	assert.Equal(t, ActionAdded, action)
	assert.Equal(t, int64(1), e.ID)

	st := snapshot(t, s)
	assert.Equal(t, emptyForm(), st.Form)
	require.Len(t, st.Expenses, 1)
	assert.Equal(t, int64(5000), st.Breakdown.Total.Cents)
}

func TestSubmitInvalidAmountIsIgnoredAndFormRetained(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)

	_, _, err := s.Submit(ctx, "abc", "coffee", "Food")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	st := snapshot(t, s)
	assert.Empty(t, st.Expenses)
	assert.Equal(t, "abc", st.Form.Amount)
	assert.Equal(t, "coffee", st.Form.Note)
	assert.Equal(t, core.Food, st.Form.Category)
}

func TestEditSaveFlow(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)
	_, _, err := s.Submit(ctx, "10", "bus", "Transport")
	require.NoError(t, err)

	s.ShowChart()
	_, err = s.BeginEdit(ctx, 1)
	require.NoError(t, err)

	st := snapshot(t, s)
	assert.Equal(t, ViewList, st.View, "editing happens on the list")
	assert.Equal(t, Form{Amount: "10.00", Note: "bus", Category: core.Transport, EditingID: 1}, st.Form)

	// Invalid save keeps the edit session.
	_, _, err = s.Submit(ctx, "ten", "bus", "Transport")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	st = snapshot(t, s)
	assert.Equal(t, int64(1), st.Form.EditingID)
	assert.Equal(t, int64(1000), st.Expenses[0].Amount.Cents)

	e, action, err := s.Submit(ctx, "12", "train", "Transport")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, action)
	assert.Equal(t, int64(1), e.ID)

	st = snapshot(t, s)
	assert.False(t, st.Form.Editing())
	require.Len(t, st.Expenses, 1)
	assert.Equal(t, "train", st.Expenses[0].Note)
}

func TestDeleteClearsEditSession(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)
	s.Submit(ctx, "10", "", "Food")
	s.Submit(ctx, "20", "", "Bills")

	_, err := s.BeginEdit(ctx, 2)
	require.NoError(t, err)

	// Deleting another record keeps the session.
	require.NoError(t, s.Delete(ctx, 1))
	assert.Equal(t, int64(2), snapshot(t, s).Form.EditingID)

	require.NoError(t, s.Delete(ctx, 2))
	st := snapshot(t, s)
	assert.False(t, st.Form.Editing())
	assert.Empty(t, st.Expenses)
}

func TestDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)
	s.Submit(ctx, "10", "", "Food")

	err := s.Delete(ctx, 9)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Len(t, snapshot(t, s).Expenses, 1)
}

func TestDeleteMissingClearsStaleEditSession(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExpenseService(memory.New(), nil, applog.New(applog.Config{Output: &bytes.Buffer{}}))
	s := New(svc, Options{})
	s.Submit(ctx, "10", "", "Food")
	_, err := s.BeginEdit(ctx, 1)
	require.NoError(t, err)

	// The record goes away behind the screen's back.
	require.NoError(t, svc.DeleteExpense(ctx, 1))

	err = s.Delete(ctx, 1)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.False(t, snapshot(t, s).Form.Editing())
}

func TestSnapshotWithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewSQLiteRepository(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	s := New(services.NewExpenseService(repo, nil, applog.New(applog.Config{Output: &bytes.Buffer{}})), Options{})
	for _, in := range [][2]string{{"50", "Food"}, {"20", "Bills"}, {"30", "Food"}} {
		_, _, err := s.Submit(ctx, in[0], "", in[1])
		require.NoError(t, err)
	}
	s.SetBudget("150")

	st := snapshot(t, s)
	require.Len(t, st.Breakdown.ByCategory, 2)
	assert.Equal(t, core.Food, st.Breakdown.ByCategory[0].Category)
	assert.Equal(t, int64(8000), st.Breakdown.ByCategory[0].Amount.Cents)
	assert.Equal(t, int64(10000), st.Breakdown.Total.Cents)
	assert.Equal(t, int64(5000), st.Breakdown.Remaining.Cents)
	assert.InDelta(t, 80.0, st.Breakdown.Percent(core.Food), 1e-9)
}

func TestBeginEditMissing(t *testing.T) {
	_, err := newScreen(t).BeginEdit(context.Background(), 3)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCancelEdit(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)
	s.Submit(ctx, "10", "x", "Other")
	_, err := s.BeginEdit(ctx, 1)
	require.NoError(t, err)

	s.CancelEdit()
	assert.Equal(t, emptyForm(), snapshot(t, s).Form)

	_, action, err := s.Submit(ctx, "5", "", "Other")
	require.NoError(t, err)
	assert.Equal(t, ActionAdded, action)
}

func TestBudgetAndRemaining(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)
	s.Submit(ctx, "60", "", "Food")
	s.Submit(ctx, "50", "", "Bills")

	s.SetBudget("100")
	st := snapshot(t, s)
	assert.Equal(t, "100", st.BudgetText)
	assert.Equal(t, int64(-1000), st.Breakdown.Remaining.Cents)
	assert.True(t, st.Breakdown.Overspent)

	s.SetBudget("not a number")
	assert.Equal(t, int64(-11000), snapshot(t, s).Breakdown.Remaining.Cents)

	s.ResetBudget()
	st = snapshot(t, s)
	assert.Empty(t, st.BudgetText)
	assert.True(t, st.Breakdown.Budget.IsZero())
}

func TestToggles(t *testing.T) {
	s := newScreen(t)
	assert.Equal(t, ViewChart, s.ToggleView())
	assert.Equal(t, ViewList, s.ToggleView())
	assert.Equal(t, ThemeDark, s.ToggleTheme())
	assert.Equal(t, ThemeLight, s.ToggleTheme())
	assert.Equal(t, ChartBar, s.ToggleChartKind())
	assert.Equal(t, ChartPie, s.ToggleChartKind())

	require.NoError(t, s.SetChartKind(ChartBar))
	assert.Equal(t, ChartBar, snapshot(t, s).Chart)
	assert.ErrorIs(t, s.SetChartKind("donut"), ErrUnknownOption)
}

func TestParseOptions(t *testing.T) {
	v, err := ParseView("chart")
	require.NoError(t, err)
	assert.Equal(t, ViewChart, v)
	_, err = ParseView("grid")
	assert.ErrorIs(t, err, ErrUnknownOption)

	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrUnknownOption)

	k, err := ParseChartKind("bar")
	require.NoError(t, err)
	assert.Equal(t, ChartBar, k)
}
