package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
)

const expenseColumns = "id, amount, timestamp, category, note"

// ExpenseRepository stores expenses. Records are immutable once written:
// there is no update, only insert, delete and a wholesale replace used by
// backup restores.
type ExpenseRepository struct {
	store *Store
}

func NewExpenseRepository(store *Store) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

// Add inserts one expense. Amount and timestamp invariants are enforced at
// the input boundary, not here, so restored historical records are accepted
// as-is.
func (r *ExpenseRepository) Add(ctx context.Context, e core.Expense) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Amount, e.Timestamp.UnixMilli(), e.Category, e.Note)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("add expense %s: %w", e.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("add expense: %w", err)
	}

	r.store.log.InfoContext(ctx, "expense added",
		log.FieldExpenseID, e.ID,
		log.FieldAmount, e.Amount.String(),
		log.FieldCategory, e.Category)
	return nil
}

// GetAll returns every expense, oldest first.
func (r *ExpenseRepository) GetAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY timestamp`)
	if err != nil {
		return nil, fmt.Errorf("get expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// GetByPeriod returns the expenses whose timestamps fall inside the closed
// range [start, end]. Both endpoints are inclusive.
func (r *ExpenseRepository) GetByPeriod(ctx context.Context, start, end time.Time) ([]core.Expense, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE timestamp BETWEEN ? AND ? ORDER BY timestamp`,
		start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("get expenses by period: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ReplaceAll atomically swaps the whole collection for the given one. Either
// every record lands or the previous contents survive untouched.
func (r *ExpenseRepository) ReplaceAll(ctx context.Context, expenses []core.Expense) error {
	err := r.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
			return fmt.Errorf("clear expenses: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range expenses {
			if _, err := stmt.ExecContext(ctx,
				e.ID, e.Amount, e.Timestamp.UnixMilli(), e.Category, e.Note); err != nil {
				return fmt.Errorf("insert expense %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.store.log.InfoContext(ctx, "expenses replaced",
		log.FieldOperation, log.OpReplace,
		log.FieldCount, len(expenses))
	return nil
}

// Delete removes an expense by id. Deleting an absent id is a no-op.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	r.store.log.InfoContext(ctx, "expense deleted", log.FieldExpenseID, id)
	return nil
}

// Count returns the number of stored expenses.
func (r *ExpenseRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(scanner interface{ Scan(dest ...any) error }) (core.Expense, error) {
	var (
		e  core.Expense
		ms int64
	)
	if err := scanner.Scan(&e.ID, &e.Amount, &ms, &e.Category, &e.Note); err != nil {
		return core.Expense{}, err
	}
	e.Timestamp = time.UnixMilli(ms)
	return e, nil
}
