package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
)

const budgetGoalColumns = "id, category, amount, period, created_at, updated_at"

// BudgetGoalRepository stores spending ceilings. Goals are editable, so Save
// is an upsert; the repository owns both timestamps.
type BudgetGoalRepository struct {
	store *Store
	// now is swappable so tests can observe the created/updated split.
	now func() time.Time
}

func NewBudgetGoalRepository(store *Store) *BudgetGoalRepository {
	return &BudgetGoalRepository{store: store, now: time.Now}
}

// Save inserts or updates the goal. CreatedAt is written once, on first
// insert; UpdatedAt is refreshed on every save. Both are stamped here, never
// taken from the caller, and written back onto the passed goal.
func (r *BudgetGoalRepository) Save(ctx context.Context, g *core.BudgetGoal) error {
	now := r.now().Truncate(time.Millisecond)

	var createdMs, updatedMs int64
	err := r.store.db.QueryRowContext(ctx, `
		INSERT INTO budget_goals (`+budgetGoalColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			amount = excluded.amount,
			period = excluded.period,
			updated_at = excluded.updated_at
		RETURNING created_at, updated_at`,
		g.ID, g.Category, g.Amount, string(g.Period), now.UnixMilli(), now.UnixMilli(),
	).Scan(&createdMs, &updatedMs)
	if err != nil {
		return fmt.Errorf("save budget goal %s: %w", g.ID, err)
	}
	g.CreatedAt = time.UnixMilli(createdMs)
	g.UpdatedAt = time.UnixMilli(updatedMs)

	r.store.log.InfoContext(ctx, "budget goal saved",
		log.FieldGoalID, g.ID,
		log.FieldCategory, g.Category,
		log.FieldPeriod, string(g.Period),
		log.FieldAmount, g.Amount.String())
	return nil
}

// GetAll returns every goal.
func (r *BudgetGoalRepository) GetAll(ctx context.Context) ([]core.BudgetGoal, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+budgetGoalColumns+` FROM budget_goals`)
	if err != nil {
		return nil, fmt.Errorf("get budget goals: %w", err)
	}
	defer rows.Close()

	return collectBudgetGoals(rows)
}

// GetByCategory returns the goals for one category id via the category index.
func (r *BudgetGoalRepository) GetByCategory(ctx context.Context, category string) ([]core.BudgetGoal, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+budgetGoalColumns+` FROM budget_goals WHERE category = ?`, category)
	if err != nil {
		return nil, fmt.Errorf("get budget goals by category: %w", err)
	}
	defer rows.Close()

	return collectBudgetGoals(rows)
}

// GetByPeriod returns the goals for one period via the period index.
func (r *BudgetGoalRepository) GetByPeriod(ctx context.Context, period core.Period) ([]core.BudgetGoal, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+budgetGoalColumns+` FROM budget_goals WHERE period = ?`, string(period))
	if err != nil {
		return nil, fmt.Errorf("get budget goals by period: %w", err)
	}
	defer rows.Close()

	return collectBudgetGoals(rows)
}

// Delete removes a goal by id. Deleting an absent id is a no-op.
func (r *BudgetGoalRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM budget_goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete budget goal: %w", err)
	}

	r.store.log.InfoContext(ctx, "budget goal deleted", log.FieldGoalID, id)
	return nil
}

func collectBudgetGoals(rows *sql.Rows) ([]core.BudgetGoal, error) {
	var goals []core.BudgetGoal
	for rows.Next() {
		g, err := scanBudgetGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget goals: %w", err)
	}
	return goals, nil
}

func scanBudgetGoal(scanner interface{ Scan(dest ...any) error }) (core.BudgetGoal, error) {
	var (
		g                    core.BudgetGoal
		period               string
		createdMs, updatedMs int64
	)
	if err := scanner.Scan(&g.ID, &g.Category, &g.Amount, &period, &createdMs, &updatedMs); err != nil {
		return core.BudgetGoal{}, err
	}
	g.Period = core.Period(period)
	g.CreatedAt = time.UnixMilli(createdMs)
	g.UpdatedAt = time.UnixMilli(updatedMs)
	return g, nil
}
