package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusUnder StatusLevel = "under"
	StatusNear  StatusLevel = "near"
	StatusOver  StatusLevel = "over"
)

// nearThreshold is the percentage at which a goal flips from under to near.
const nearThreshold = 80.0

type (
	// StatusLevel classifies spend against a budget goal.
	StatusLevel string

	// BudgetStatus is the derived state of one goal at a point in time.
	BudgetStatus struct {
		Current    decimal.Decimal
		Percentage float64
		Level      StatusLevel
	}

	// CategoryTotal is one slice of a category breakdown. Percentage is the
	// share of the grand total, 0 when the total itself is zero.
	CategoryTotal struct {
		Category   string
		Amount     decimal.Decimal
		Percentage float64
	}

	// CategoryBreakdown is a CategoryTotal joined with the category's
	// display metadata.
	CategoryBreakdown struct {
		Category   Category
		Amount     decimal.Decimal
		Percentage float64
	}

	// DayTotal is the spend of one calendar day. Days without expenses are
	// present with a zero amount so charts render a dense series.
	DayTotal struct {
		Date   time.Time
		Amount decimal.Decimal
	}

	// Summary is the dashboard view of one calendar month.
	Summary struct {
		Window             Window
		Total              decimal.Decimal
		ByCategory         []CategoryBreakdown
		ByDay              []DayTotal
		ChangeFromPrevious float64
	}
)

// SumInWindow totals the expenses whose timestamps fall inside w.
func SumInWindow(expenses []Expense, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if w.Contains(e.Timestamp) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// GroupByCategory totals expenses per category id, sorted by amount
// descending with the category id as tie-breaker. Categories that net to
// zero are dropped. Percentages are shares of the grand total.
func GroupByCategory(expenses []Expense) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	grand := decimal.Zero
	for _, amount := range byCategory {
		grand = grand.Add(amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for id, amount := range byCategory {
		if amount.IsZero() {
			continue
		}
		totals = append(totals, CategoryTotal{
			Category:   id,
			Amount:     amount,
			Percentage: shareOf(amount, grand),
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// GroupByDay buckets the expenses of w into calendar days, ascending, with a
// zero entry for every day of the window that saw no spending. Day
// boundaries follow the window's location.
func GroupByDay(expenses []Expense, w Window) []DayTotal {
	loc := w.Start.Location()
	byDay := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if !w.Contains(e.Timestamp) {
			continue
		}
		key := e.Timestamp.In(loc).Format(time.DateOnly)
		byDay[key] = byDay[key].Add(e.Amount)
	}

	var days []DayTotal
	for day := dayStart(w.Start); !day.After(w.End); day = day.AddDate(0, 0, 1) {
		days = append(days, DayTotal{
			Date:   day,
			Amount: byDay[day.Format(time.DateOnly)],
		})
	}
	return days
}

// PercentageChange reports how newValue moved relative to oldValue. A zero
// baseline yields 0 when nothing changed and 100 when spending appeared.
func PercentageChange(oldValue, newValue decimal.Decimal) float64 {
	if oldValue.IsZero() {
		if newValue.IsZero() {
			return 0
		}
		return 100
	}
	change := newValue.Sub(oldValue).Div(oldValue.Abs()).Mul(decimal.NewFromInt(100))
	return change.InexactFloat64()
}

// StatusFor classifies current spend against the goal: over at or above
// 100%, near at or above 80%, under below that.
func StatusFor(goal BudgetGoal, current decimal.Decimal) BudgetStatus {
	pct := shareOf(current, goal.Amount)
	level := StatusUnder
	switch {
	case pct >= 100:
		level = StatusOver
	case pct >= nearThreshold:
		level = StatusNear
	}
	return BudgetStatus{Current: current, Percentage: pct, Level: level}
}

func shareOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
