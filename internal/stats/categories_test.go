package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statistik/internal/catalog"
	"statistik/internal/core"
)

var march2024 = core.NewPeriod(2024, time.March)

func categoriesOf(txs ...core.Transaction) Categories {
	return ComputeCategories(Filter(txs, march2024, time.UTC), catalog.Default())
}

func TestComputeCategories(t *testing.T) {
	got := categoriesOf(
		expense("100", "1", "2024-03-05"),
		expense("50", "2", "2024-03-20"),
		income("500", "2024-03-01"),
	)

	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "1", got.Buckets[0].CategoryID)
	assert.Equal(t, "Makanan & Minuman", got.Buckets[0].Label)
	assertDecimal(t, "66.7", got.Buckets[0].Percentage)
	assertDecimal(t, "33.3", got.Buckets[1].Percentage)
	require.NotNil(t, got.Top)
	assert.Equal(t, "1", got.Top.CategoryID)
}

func TestComputeCategories_InsertionOrderAndColors(t *testing.T) {
	got := categoriesOf(
		expense("1", "9", "2024-03-01"),
		expense("1", "3", "2024-03-02"),
		expense("1", "1", "2024-03-03"),
		expense("1", "20", "2024-03-04"),
		expense("1", "2", "2024-03-05"),
		expense("1", "4", "2024-03-06"),
		expense("1", "9", "2024-03-07"),
	)

	ids := make([]string, 0, len(got.Buckets))
	for _, b := range got.Buckets {
		ids = append(ids, b.CategoryID)
	}
	assert.Equal(t, []string{"9", "3", "1", "20", "2", "4"}, ids)

	assert.Equal(t, 0, got.Buckets[0].ColorSlot)
	assert.Equal(t, "#3B82F6", got.Buckets[0].Color)
	assert.Equal(t, 4, got.Buckets[4].ColorSlot)
	assert.Equal(t, 0, got.Buckets[5].ColorSlot, "palette cycles")
	assertDecimal(t, "2", got.Buckets[0].Total)
}

func TestComputeCategories_UnknownIdsKeepOwnBucket(t *testing.T) {
	got := categoriesOf(
		expense("10", "77", "2024-03-01"),
		expense("30", "88", "2024-03-02"),
	)

	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "Other", got.Buckets[0].Label)
	assert.Equal(t, "Other", got.Buckets[1].Label)
	assert.Equal(t, "88", got.Top.CategoryID)
}

func TestComputeCategories_TieGoesToFirst(t *testing.T) {
	got := categoriesOf(
		expense("40", "3", "2024-03-01"),
		expense("40", "1", "2024-03-02"),
		expense("10", "2", "2024-03-03"),
	)

	require.NotNil(t, got.Top)
	assert.Equal(t, "3", got.Top.CategoryID)
}

func TestComputeCategories_Empty(t *testing.T) {
	tests := []struct {
		name string
		txs  []core.Transaction
	}{
		{"no transactions", nil},
		{"income only", []core.Transaction{income("100", "2024-03-01")}},
		{"uncategorized expenses", []core.Transaction{expense("100", "", "2024-03-01")}},
		{"other month", []core.Transaction{expense("100", "1", "2024-02-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categoriesOf(tt.txs...)
			assert.Empty(t, got.Buckets)
			assert.Nil(t, got.Top)
		})
	}
}

func TestComputeCategories_ZeroSum(t *testing.T) {
	got := categoriesOf(
		expense("0", "1", "2024-03-01"),
		expense("0", "2", "2024-03-02"),
	)

	require.Len(t, got.Buckets, 2)
	for _, b := range got.Buckets {
		assert.True(t, b.Percentage.IsZero())
	}
	assert.Equal(t, "1", got.Top.CategoryID)
}

func TestComputeCategories_PercentagesSumToHundred(t *testing.T) {
	sets := [][]core.Transaction{
		{expense("1", "1", "2024-03-01"), expense("1", "2", "2024-03-01"), expense("1", "3", "2024-03-01")},
		{expense("10", "1", "2024-03-01"), expense("20", "2", "2024-03-01"), expense("70.55", "3", "2024-03-01")},
		{expense("1", "1", "2024-03-01"), expense("2", "2", "2024-03-01"), expense("4", "3", "2024-03-01"), expense("8", "4", "2024-03-01")},
		{expense("123.45", "1", "2024-03-01")},
	}
	tolerance := decimal.RequireFromString("0.1")
	for _, txs := range sets {
		got := categoriesOf(txs...)
		sum := decimal.Zero
		for _, b := range got.Buckets {
			sum = sum.Add(b.Percentage)
		}
		diff := sum.Sub(decimal.NewFromInt(100)).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "sum %s", sum)
	}
}

func TestComputeCategories_NilCatalog(t *testing.T) {
	got := ComputeCategories(Filter([]core.Transaction{expense("5", "2", "2024-03-01")}, march2024, time.UTC), nil)
	require.Len(t, got.Buckets, 1)
	assert.Equal(t, "Transportasi", got.Buckets[0].Label)
}

func TestComputeCategories_TopIsACopy(t *testing.T) {
	got := categoriesOf(expense("5", "2", "2024-03-01"))
	got.Top.Label = "changed"
	assert.Equal(t, "Transportasi", got.Buckets[0].Label)
}
