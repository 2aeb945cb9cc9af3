// Package services is the policy surface consumed by the UI: typed settings
// access, the category catalog, expense recording with memoized summaries,
// and budget status evaluation. Read paths log failures and degrade to safe
// defaults; write paths propagate errors to the caller, who owns the
// user-visible feedback and any retry.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/cache"
	"github.com/coderhema/Spenders/internal/log"
	"github.com/coderhema/Spenders/storage"
)

// ExpenseService records expenses and assembles the dashboard summaries.
// Monthly summaries are memoized per month; any write to the collection
// drops every memoized view, since the month-over-month comparison makes
// summaries depend on more than their own window.
type ExpenseService struct {
	expenses  *storage.ExpenseRepository
	catalog   *CategoryCatalog
	summaries *cache.LRUCache[core.Summary]
	log       *log.Logger
}

func NewExpenseService(expenses *storage.ExpenseRepository, catalog *CategoryCatalog, logger *log.Logger, cacheSize int, cacheTTL time.Duration) *ExpenseService {
	return &ExpenseService{
		expenses:  expenses,
		catalog:   catalog,
		summaries: cache.NewLRUCache[core.Summary](cacheSize, cacheTTL),
		log:       logger.WithComponent(log.ComponentExpense),
	}
}

// SummaryCache exposes the memoized summaries for registration with a
// cache.Manager cleanup loop.
func (s *ExpenseService) SummaryCache() cache.Cleaner {
	return s.summaries
}

// Add validates and stores one new expense, the input-form path. Records
// built by core.NewExpense already satisfy the invariants.
func (s *ExpenseService) Add(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate expense: %w", err)
	}
	if err := s.expenses.Add(ctx, e); err != nil {
		return err
	}
	s.summaries.Purge()
	return nil
}

// ReplaceAll flushes the caller's in-memory state wholesale, swapping every
// stored expense in one transaction. Records are taken as-is: restores of
// historical data bypass the input-boundary validation.
func (s *ExpenseService) ReplaceAll(ctx context.Context, expenses []core.Expense) error {
	if err := s.expenses.ReplaceAll(ctx, expenses); err != nil {
		return err
	}
	s.summaries.Purge()
	return nil
}

// Delete removes one expense by id. Deleting an absent id is a no-op.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}
	s.summaries.Purge()
	return nil
}

// All returns every recorded expense, newest first. Storage failures
// degrade to an empty slice.
func (s *ExpenseService) All(ctx context.Context) []core.Expense {
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "expense read failed", log.FieldError, err)
		return nil
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Timestamp.After(expenses[j].Timestamp)
	})
	return expenses
}

// InWindow returns the expenses recorded inside w, oldest first. Storage
// failures degrade to an empty slice.
func (s *ExpenseService) InWindow(ctx context.Context, w core.Window) []core.Expense {
	expenses, err := s.expenses.GetByPeriod(ctx, w.Start, w.End)
	if err != nil {
		s.log.ErrorContext(ctx, "expense window read failed",
			log.FieldWindow, w.Start.Format(time.DateOnly), log.FieldError, err)
		return nil
	}
	return expenses
}

// MonthlySummary assembles the dashboard view of ref's calendar month:
// total, category breakdown with display metadata, a dense daily series and
// the change against the previous month. Storage failures yield an empty
// summary the charts can still render.
func (s *ExpenseService) MonthlySummary(ctx context.Context, ref time.Time) core.Summary {
	key := ref.Format("2006-01")
	if cached, ok := s.summaries.Get(key); ok {
		s.log.DebugContext(ctx, "summary cache hit", log.FieldWindow, key)
		return cached
	}

	w := core.MonthWindow(ref)
	expenses, err := s.expenses.GetByPeriod(ctx, w.Start, w.End)
	if err != nil {
		s.log.ErrorContext(ctx, "summary read failed",
			log.FieldWindow, key, log.FieldError, err)
		return core.Summary{Window: w, ByDay: core.GroupByDay(nil, w)}
	}

	previous := core.PreviousMonthWindow(ref)
	previousExpenses, err := s.expenses.GetByPeriod(ctx, previous.Start, previous.End)
	if err != nil {
		s.log.ErrorContext(ctx, "previous month read failed",
			log.FieldWindow, key, log.FieldError, err)
		previousExpenses = nil
	}

	index := s.catalog.Index(ctx)
	var byCategory []core.CategoryBreakdown
	for _, ct := range core.GroupByCategory(expenses) {
		meta, ok := index[ct.Category]
		if !ok {
			meta = core.FallbackCategory(ct.Category)
		}
		byCategory = append(byCategory, core.CategoryBreakdown{
			Category:   meta,
			Amount:     ct.Amount,
			Percentage: ct.Percentage,
		})
	}

	total := core.SumInWindow(expenses, w)
	summary := core.Summary{
		Window:             w,
		Total:              total,
		ByCategory:         byCategory,
		ByDay:              core.GroupByDay(expenses, w),
		ChangeFromPrevious: core.PercentageChange(core.SumInWindow(previousExpenses, previous), total),
	}
	s.summaries.Set(key, summary)
	s.log.DebugContext(ctx, "summary cached",
		log.FieldWindow, key, log.FieldAmount, total.String())
	return summary
}
