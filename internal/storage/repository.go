package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is an ExpenseStore over a private in-memory SQLite
// database. Nothing is written to disk; the data goes away on Close.
type SQLiteRepository struct {
	db  *sql.DB
	dsn string
}

func NewSQLiteRepository(ctx context.Context) (*SQLiteRepository, error) {
	dsn := memoryDSN(uuid.NewString())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection serializes writers and keeps the shared-cache
	// database alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, dsn: dsn}, nil
}

func memoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add implements ledger.ExpenseStore
func (r *SQLiteRepository) Add(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM expenses`).Scan(&id); err != nil {
		return core.Expense{}, fmt.Errorf("next expense id: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, note, category) VALUES (?, ?, ?, ?)`,
		id, e.Amount.Cents, e.Note, string(e.Category)); err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Expense{}, fmt.Errorf("commit expense: %w", err)
	}

	e.ID = id
	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e, nil
}

// Update implements ledger.ExpenseStore
func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, note = ?, category = ? WHERE id = ?`,
		e.Amount.Cents, e.Note, string(e.Category), e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	return expectOneRow(res)
}

// Delete implements ledger.ExpenseStore
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return expectOneRow(res)
}

// Get implements ledger.ExpenseGetter
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, note, category FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// List implements ledger.ExpenseStore. Ids only grow, so id order is
// insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, note, category FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// CategoryTotals sums amounts per category in SQL, ordered by the first
// expense seen in each category.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context) ([]core.CategoryAmount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents) FROM expenses GROUP BY category ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryAmount
	for rows.Next() {
		var (
			cat   string
			cents int64
		)
		if err := rows.Scan(&cat, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, core.CategoryAmount{Category: core.Category(cat), Amount: core.Money{Cents: cents}})
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (core.Expense, error) {
	var (
		e   core.Expense
		cat string
	)
	if err := s.Scan(&e.ID, &e.Amount.Cents, &e.Note, &cat); err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(cat)
	return e, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

var (
	_ ledger.ExpenseStore  = (*SQLiteRepository)(nil)
	_ ledger.ExpenseGetter = (*SQLiteRepository)(nil)
)
