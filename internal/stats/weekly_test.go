package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"statistik/internal/core"
)

func TestWeekIndex(t *testing.T) {
	tests := map[int]int{
		1: 0, 7: 0,
		8: 1, 14: 1,
		15: 2, 21: 2,
		22: 3, 28: 3,
		29: 3, 30: 3, 31: 3,
	}
	for day, want := range tests {
		assert.Equal(t, want, WeekIndex(day), "day %d", day)
	}
}

func TestComputeWeekly(t *testing.T) {
	p := core.NewPeriod(2024, time.January)
	filtered := Filter([]core.Transaction{
		expense("10", "1", "2024-01-01"),
		expense("20", "", "2024-01-08"),
		expense("30", "2", "2024-01-15"),
		expense("5", "2", "2024-01-29"),
		expense("6", "2", "2024-01-30"),
		expense("7", "2", "2024-01-31"),
		income("1000", "2024-01-02"),
	}, p, time.UTC)

	w := ComputeWeekly(filtered)

	assertDecimal(t, "10", w[0])
	assertDecimal(t, "20", w[1])
	assertDecimal(t, "30", w[2])
	assertDecimal(t, "18", w[3])
	assertDecimal(t, "30", w.Max())
}

func TestComputeWeekly_SumMatchesExpenseTotal(t *testing.T) {
	p := core.NewPeriod(2024, time.February)
	var txs []core.Transaction
	for day := 1; day <= 29; day++ {
		txs = append(txs, expense(fmt.Sprintf("%d.25", day), "", fmt.Sprintf("2024-02-%02d", day)))
	}
	txs = append(txs, income("50", "2024-02-02"), expense("999", "1", "2024-03-01"))

	filtered := Filter(txs, p, time.UTC)
	assert.True(t, ComputeWeekly(filtered).Sum().Equal(ComputeTotals(filtered, p).Expense))
}

func TestHeights(t *testing.T) {
	w := WeeklyTotals{
		decimal.NewFromInt(100),
		decimal.NewFromInt(1),
		decimal.Zero,
		decimal.NewFromInt(50),
	}

	h := w.Heights(DefaultMaxBarHeight, DefaultMinBarHeight)

	assert.Equal(t, [4]float64{120, 10, 0, 60}, h)
}

func TestHeights_AllZero(t *testing.T) {
	w := ComputeWeekly(nil)
	assert.True(t, w.Max().IsZero())
	assert.Equal(t, [4]float64{}, w.Heights(DefaultMaxBarHeight, DefaultMinBarHeight))
}

func TestHeights_NegativeBucket(t *testing.T) {
	w := WeeklyTotals{decimal.NewFromInt(-5), decimal.NewFromInt(10), decimal.Zero, decimal.Zero}
	assert.Equal(t, [4]float64{0, 120, 0, 0}, w.Heights(DefaultMaxBarHeight, DefaultMinBarHeight))
}
