package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 30, 45, 123_456_789, time.UTC)

	e := NewExpense(decimal.RequireFromString("12.30"), "food", "lunch", at)

	require.NotEmpty(t, e.ID)
	require.Equal(t, "food", e.Category)
	require.Equal(t, "lunch", e.Note)
	require.True(t, e.Amount.Equal(decimal.RequireFromString("12.30")))
	require.Equal(t, at.Truncate(time.Millisecond), e.Timestamp, "timestamps carry millisecond precision")
	require.Equal(t, int64(123), int64(e.Timestamp.Nanosecond())/int64(time.Millisecond))

	other := NewExpense(decimal.NewFromInt(1), "food", "", at)
	require.NotEqual(t, e.ID, other.ID)
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		ID:        "e1",
		Amount:    decimal.RequireFromString("9.99"),
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Category:  "food",
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr error
	}{
		{name: "valid", mutate: func(e *Expense) {}},
		{name: "missing category is tolerated", mutate: func(e *Expense) { e.Category = "" }},
		{name: "missing note is tolerated", mutate: func(e *Expense) { e.Note = "" }},
		{name: "empty id", mutate: func(e *Expense) { e.ID = "  " }, wantErr: ErrEmptyID},
		{name: "zero amount", mutate: func(e *Expense) { e.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = decimal.NewFromInt(-5) }, wantErr: ErrInvalidAmount},
		{name: "zero timestamp", mutate: func(e *Expense) { e.Timestamp = time.Time{} }, wantErr: ErrZeroTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewBudgetGoal(t *testing.T) {
	g := NewBudgetGoal("food", decimal.NewFromInt(300), PeriodMonthly)

	require.NotEmpty(t, g.ID)
	require.Equal(t, "food", g.Category)
	require.Equal(t, PeriodMonthly, g.Period)
	require.True(t, g.CreatedAt.IsZero(), "timestamps are stamped by the repository")
	require.True(t, g.UpdatedAt.IsZero())
	require.NoError(t, g.Validate())
}

func TestBudgetGoalValidate(t *testing.T) {
	valid := NewBudgetGoal("food", decimal.NewFromInt(100), PeriodWeekly)

	tests := []struct {
		name    string
		mutate  func(g *BudgetGoal)
		wantErr error
	}{
		{name: "valid", mutate: func(g *BudgetGoal) {}},
		{name: "empty id", mutate: func(g *BudgetGoal) { g.ID = "" }, wantErr: ErrEmptyID},
		{name: "empty category", mutate: func(g *BudgetGoal) { g.Category = " " }, wantErr: ErrEmptyCategory},
		{name: "zero amount", mutate: func(g *BudgetGoal) { g.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "unknown period", mutate: func(g *BudgetGoal) { g.Period = "quarterly" }, wantErr: ErrInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "monthly"} {
		p, err := ParsePeriod(s)
		require.NoError(t, err)
		require.Equal(t, Period(s), p)
	}

	_, err := ParsePeriod("yearly")
	require.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = ParsePeriod("")
	require.ErrorIs(t, err, ErrInvalidPeriod)
}
