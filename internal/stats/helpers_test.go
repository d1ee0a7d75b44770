package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"statistik/internal/core"
)

func expense(amount, category, date string) core.Transaction {
	return core.Transaction{
		Amount:          decimal.RequireFromString(amount),
		Type:            core.Expense,
		CategoryID:      category,
		TransactionDate: date,
	}
}

func income(amount, date string) core.Transaction {
	return core.Transaction{
		Amount:          decimal.RequireFromString(amount),
		Type:            core.Income,
		TransactionDate: date,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
