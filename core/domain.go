// Package core defines the domain entities of the expense tracker and the
// pure aggregation functions that derive views from them.
package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type (
	// Period is the recurrence window of a budget goal.
	Period string

	// Expense is one recorded transaction. Expenses are immutable once
	// written; the only mutations the store supports are delete and a
	// wholesale replace of the collection.
	Expense struct {
		ID        string
		Amount    decimal.Decimal
		Timestamp time.Time // millisecond precision, used for all window filtering
		Category  string
		Note      string
	}

	// Category is a spending bucket. Built-in categories are a fixed table
	// (see BuiltinCategories); custom ones are persisted.
	Category struct {
		ID    string
		Name  string
		Color string
	}

	// Setting is one named value in the key-value settings collection.
	// Value holds the JSON encoding of an arbitrary payload.
	Setting struct {
		Name  string
		Value json.RawMessage
	}

	// Country is the cached result of the collaborators' locale lookup,
	// stored under the userCountry setting.
	Country struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	// BudgetGoal is a spending ceiling for one category over one period.
	// CreatedAt and UpdatedAt are owned by the repository, not the caller.
	BudgetGoal struct {
		ID        string
		Category  string
		Amount    decimal.Decimal
		Period    Period
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrEmptyID       = errors.New("empty id")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrZeroTimestamp = errors.New("zero timestamp")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyName     = errors.New("empty name")
)

// ParsePeriod converts a stored period string back to a Period.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Period) Validate() error {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return nil
	}
	return ErrInvalidPeriod
}

// NewExpense builds an expense the way the input form does: a fresh unique
// id and the creation instant truncated to millisecond precision.
func NewExpense(amount decimal.Decimal, category, note string, at time.Time) Expense {
	return Expense{
		ID:        uuid.NewString(),
		Amount:    amount,
		Timestamp: at.Truncate(time.Millisecond),
		Category:  category,
		Note:      note,
	}
}

// Validate enforces the input-boundary invariants. The store itself never
// applies these checks, so bulk restores of historical records bypass them.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if e.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if e.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	return nil
}

// NewBudgetGoal builds a goal with a fresh id. The repository stamps
// CreatedAt and UpdatedAt on save.
func NewBudgetGoal(category string, amount decimal.Decimal, period Period) BudgetGoal {
	return BudgetGoal{
		ID:       uuid.NewString(),
		Category: category,
		Amount:   amount,
		Period:   period,
	}
}

func (g BudgetGoal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if g.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return g.Period.Validate()
}
