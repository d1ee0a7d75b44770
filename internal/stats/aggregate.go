package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"statistik/internal/catalog"
	"statistik/internal/core"
	"statistik/internal/period"
)

// Result is the summary of one period. A new Result is built on every call
// and nothing inside it is shared with the caller's transactions.
type Result struct {
	Period              core.Period
	IncomeTotal         decimal.Decimal
	ExpenseTotal        decimal.Decimal
	DailyAverageExpense decimal.Decimal
	DaysInMonth         int
	Categories          []CategoryBucket
	Top                 *CategoryBucket
	TopShare            decimal.Decimal // Top.Total as a percentage of ExpenseTotal
	Weekly              WeeklyTotals
}

type options struct {
	catalog  *catalog.Catalog
	location *time.Location
}

// Option customizes Aggregate.
type Option func(*options)

// WithCatalog sets the category catalog. Defaults to catalog.Default().
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithLocation sets the location dates are read in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// Aggregate filters txs to the selected period and computes totals,
// categories and the weekly profile over the same filtered set.
func Aggregate(txs []core.Transaction, sel period.Selection, opts ...Option) Result {
	o := options{catalog: catalog.Default(), location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}

	filtered := Filter(txs, sel.Period, o.location)
	totals := ComputeTotals(filtered, sel.Period)
	cats := ComputeCategories(filtered, o.catalog)
	weekly := ComputeWeekly(filtered)

	r := Result{
		Period:              sel.Period,
		IncomeTotal:         totals.Income,
		ExpenseTotal:        totals.Expense,
		DailyAverageExpense: totals.DailyAverage,
		DaysInMonth:         totals.DaysInMonth,
		Categories:          cats.Buckets,
		Top:                 cats.Top,
		TopShare:            decimal.Zero,
		Weekly:              weekly,
	}
	if r.Top != nil {
		divisor := r.ExpenseTotal
		if divisor.IsZero() {
			divisor = decimal.NewFromInt(1)
		}
		r.TopShare = r.Top.Total.Div(divisor).Mul(hundred).Round(1)
	}
	return r
}
