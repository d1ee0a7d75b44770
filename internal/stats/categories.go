package stats

import (
	"github.com/shopspring/decimal"

	"statistik/internal/catalog"
)

var hundred = decimal.NewFromInt(100)

// CategoryBucket is the expense total of one category id.
type CategoryBucket struct {
	CategoryID string
	Label      string
	Total      decimal.Decimal
	Percentage decimal.Decimal // share of all bucket totals, one decimal place
	ColorSlot  int
	Color      string
}

// Categories is the category breakdown of a period.
type Categories struct {
	Buckets []CategoryBucket
	Top     *CategoryBucket
}

// ComputeCategories groups categorized expenses by id. Buckets keep the order
// in which their id was first seen; unknown ids get their own bucket with the
// catalog fallback label. Top is the largest bucket, the earliest one on a
// tie, and nil when there are no buckets. A nil cat uses catalog.Default().
func ComputeCategories(filtered []Dated, cat *catalog.Catalog) Categories {
	if cat == nil {
		cat = catalog.Default()
	}

	groups := newOrderedMap[string, decimal.Decimal]()
	for _, d := range filtered {
		if !d.Tx.IsExpense() || !d.Tx.HasCategory() {
			continue
		}
		amount := d.Tx.Amount
		groups.update(d.Tx.CategoryID, func(sum decimal.Decimal) decimal.Decimal {
			return sum.Add(amount)
		})
	}
	if groups.len() == 0 {
		return Categories{}
	}

	sum := decimal.Zero
	groups.each(func(_ int, _ string, total decimal.Decimal) {
		sum = sum.Add(total)
	})

	buckets := make([]CategoryBucket, 0, groups.len())
	groups.each(func(pos int, id string, total decimal.Decimal) {
		slot, color := cat.Color(pos)
		buckets = append(buckets, CategoryBucket{
			CategoryID: id,
			Label:      cat.Label(id),
			Total:      total,
			Percentage: percentage(total, sum),
			ColorSlot:  slot,
			Color:      color,
		})
	})

	top := 0
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Total.GreaterThan(buckets[top].Total) {
			top = i
		}
	}
	topBucket := buckets[top]

	return Categories{Buckets: buckets, Top: &topBucket}
}

// percentage returns part/whole*100 rounded to one decimal, or zero when
// whole is zero.
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}
