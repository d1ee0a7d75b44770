package stats

import (
	"github.com/shopspring/decimal"

	"statistik/internal/core"
)

// Totals holds the income and expense sums of a period.
type Totals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	DailyAverage decimal.Decimal
	DaysInMonth  int
}

// ComputeTotals sums income and expense over filtered. DailyAverage is the
// expense spread over every day of p, and exactly zero unless the expense
// total is positive.
func ComputeTotals(filtered []Dated, p core.Period) Totals {
	t := Totals{
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		DailyAverage: decimal.Zero,
		DaysInMonth:  p.DaysIn(),
	}
	for _, d := range filtered {
		switch {
		case d.Tx.IsIncome():
			t.Income = t.Income.Add(d.Tx.Amount)
		case d.Tx.IsExpense():
			t.Expense = t.Expense.Add(d.Tx.Amount)
		}
	}
	if t.Expense.IsPositive() {
		t.DailyAverage = t.Expense.Div(decimal.NewFromInt(int64(t.DaysInMonth)))
	}
	return t
}
