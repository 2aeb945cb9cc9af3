package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
	"github.com/coderhema/Spenders/storage"
)

// GoalStatus pairs a stored goal with its computed spending status.
type GoalStatus struct {
	Goal   core.BudgetGoal
	Status core.BudgetStatus
}

// BudgetService joins budget goals with actual spending in each goal's own
// period window.
type BudgetService struct {
	goals    *storage.BudgetGoalRepository
	expenses *storage.ExpenseRepository
	log      *log.Logger
}

func NewBudgetService(goals *storage.BudgetGoalRepository, expenses *storage.ExpenseRepository, logger *log.Logger) *BudgetService {
	return &BudgetService{
		goals:    goals,
		expenses: expenses,
		log:      logger.WithComponent(log.ComponentBudget),
	}
}

// Save validates and upserts a goal. The repository stamps the timestamps.
func (s *BudgetService) Save(ctx context.Context, g *core.BudgetGoal) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate budget goal: %w", err)
	}
	return s.goals.Save(ctx, g)
}

// Delete removes a goal by id. Deleting an absent goal is a no-op.
func (s *BudgetService) Delete(ctx context.Context, id string) error {
	return s.goals.Delete(ctx, id)
}

// Goals returns every stored goal; storage failures degrade to an empty
// slice.
func (s *BudgetService) Goals(ctx context.Context) []core.BudgetGoal {
	goals, err := s.goals.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "budget goal read failed", log.FieldError, err)
		return nil
	}
	return goals
}

// GoalsByCategory returns the goals watching one category id.
func (s *BudgetService) GoalsByCategory(ctx context.Context, category string) []core.BudgetGoal {
	goals, err := s.goals.GetByCategory(ctx, category)
	if err != nil {
		s.log.ErrorContext(ctx, "budget goal read failed",
			log.FieldCategory, category, log.FieldError, err)
		return nil
	}
	return goals
}

// StatusOf evaluates one goal against the spending of its period window
// anchored at now.
func (s *BudgetService) StatusOf(ctx context.Context, goal core.BudgetGoal, now time.Time) (core.BudgetStatus, error) {
	w, err := core.WindowFor(goal.Period, now)
	if err != nil {
		return core.BudgetStatus{}, err
	}

	expenses, err := s.expenses.GetByPeriod(ctx, w.Start, w.End)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("expenses for %s window: %w", goal.Period, err)
	}
	return core.StatusFor(goal, spendByCategory(expenses)[goal.Category]), nil
}

// Statuses evaluates every stored goal at once. Window expenses are fetched
// one query per distinct period, concurrently, then shared by every goal of
// that period. Read failures degrade to an empty slice.
func (s *BudgetService) Statuses(ctx context.Context, now time.Time) []GoalStatus {
	goals, err := s.goals.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "budget goal read failed", log.FieldError, err)
		return nil
	}
	if len(goals) == 0 {
		return nil
	}

	windows := make(map[core.Period]core.Window, 3)
	for _, g := range goals {
		if _, ok := windows[g.Period]; ok {
			continue
		}
		w, err := core.WindowFor(g.Period, now)
		if err != nil {
			// Saved goals were validated, so this only trips on records
			// written by a newer schema; skip them instead of dropping the
			// whole view.
			s.log.ErrorContext(ctx, "skipping goal with unknown period",
				log.FieldGoalID, g.ID, log.FieldPeriod, string(g.Period), log.FieldError, err)
			continue
		}
		windows[g.Period] = w
	}

	var mu sync.Mutex
	sums := make(map[core.Period]map[string]decimal.Decimal, len(windows))
	eg, gctx := errgroup.WithContext(ctx)
	for period, w := range windows {
		period, w := period, w
		eg.Go(func() error {
			expenses, err := s.expenses.GetByPeriod(gctx, w.Start, w.End)
			if err != nil {
				return fmt.Errorf("expenses for %s window: %w", period, err)
			}
			byCategory := spendByCategory(expenses)
			mu.Lock()
			sums[period] = byCategory
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		s.log.ErrorContext(ctx, "window read failed", log.FieldError, err)
		return nil
	}

	statuses := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		if _, ok := windows[g.Period]; !ok {
			continue
		}
		current := sums[g.Period][g.Category]
		statuses = append(statuses, GoalStatus{Goal: g, Status: core.StatusFor(g, current)})
	}
	return statuses
}

func spendByCategory(expenses []core.Expense) map[string]decimal.Decimal {
	totals := core.GroupByCategory(expenses)
	byCategory := make(map[string]decimal.Decimal, len(totals))
	for _, ct := range totals {
		byCategory[ct.Category] = ct.Amount
	}
	return byCategory
}
