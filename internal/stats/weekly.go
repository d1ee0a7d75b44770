package stats

import (
	"github.com/shopspring/decimal"
)

const (
	WeekBuckets = 4

	// Bar geometry of the dashboard chart.
	DefaultMaxBarHeight = 120
	DefaultMinBarHeight = 10
)

// WeeklyTotals is the expense total per week of the month. Days 29 to 31
// always land in the last bucket.
type WeeklyTotals [WeekBuckets]decimal.Decimal

// WeekIndex maps a day of month (1..31) to its bucket.
func WeekIndex(day int) int {
	i := (day - 1) / 7
	switch {
	case i < 0:
		return 0
	case i > WeekBuckets-1:
		return WeekBuckets - 1
	}
	return i
}

// ComputeWeekly buckets expense amounts by the day of their effective date.
func ComputeWeekly(filtered []Dated) WeeklyTotals {
	var w WeeklyTotals
	for i := range w {
		w[i] = decimal.Zero
	}
	for _, d := range filtered {
		if !d.Tx.IsExpense() {
			continue
		}
		i := WeekIndex(d.Date.Day())
		w[i] = w[i].Add(d.Tx.Amount)
	}
	return w
}

// Sum returns the total over all buckets.
func (w WeeklyTotals) Sum() decimal.Decimal {
	s := decimal.Zero
	for _, v := range w {
		s = s.Add(v)
	}
	return s
}

// Max returns the largest bucket, never below zero.
func (w WeeklyTotals) Max() decimal.Decimal {
	m := decimal.Zero
	for _, v := range w {
		if v.GreaterThan(m) {
			m = v
		}
	}
	return m
}

// Heights scales the buckets to bar heights against Max. Buckets that are
// not positive get 0; positive ones get at least minVisible.
func (w WeeklyTotals) Heights(maxHeight, minVisible float64) [WeekBuckets]float64 {
	var h [WeekBuckets]float64
	m := w.Max()
	if !m.IsPositive() {
		return h
	}
	scale := decimal.NewFromFloat(maxHeight)
	for i, v := range w {
		if !v.IsPositive() {
			continue
		}
		height := v.Div(m).Mul(scale).Round(2).InexactFloat64()
		if height < minVisible {
			height = minVisible
		}
		h[i] = height
	}
	return h
}

// Floats returns the bucket totals as float64 for presenters.
func (w WeeklyTotals) Floats() [WeekBuckets]float64 {
	var f [WeekBuckets]float64
	for i, v := range w {
		f[i] = v.InexactFloat64()
	}
	return f
}
