package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
	"github.com/coderhema/Spenders/storage"
)

// testEnv wires every service against one real temp-file database, the same
// way the application composition does it.
type testEnv struct {
	ctx      context.Context
	store    *storage.Store
	expenses *ExpenseService
	catalog  *CategoryCatalog
	budgets  *BudgetService
	settings *SettingsService

	expenseRepo *storage.ExpenseRepository
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	logger := log.New(log.Config{
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})

	store, err := storage.Open(filepath.Join(t.TempDir(), "spenders.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	expenseRepo := storage.NewExpenseRepository(store)
	goalRepo := storage.NewBudgetGoalRepository(store)
	catalog := NewCategoryCatalog(storage.NewCategoryRepository(store), logger)

	return &testEnv{
		ctx:         context.Background(),
		store:       store,
		expenses:    NewExpenseService(expenseRepo, catalog, logger, 16, time.Minute),
		catalog:     catalog,
		budgets:     NewBudgetService(goalRepo, expenseRepo, logger),
		settings:    NewSettingsService(storage.NewSettingRepository(store), logger),
		expenseRepo: expenseRepo,
	}
}

// closeStore forces every subsequent storage call to fail, for exercising the
// read-path degradation policy.
func (env *testEnv) closeStore(t *testing.T) {
	t.Helper()
	require.NoError(t, env.store.Close())
}

func testExpense(id, amount string, at time.Time, category string) core.Expense {
	return core.Expense{
		ID:        id,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: at,
		Category:  category,
	}
}
