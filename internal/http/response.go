package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"statistik/internal/catalog"
	"statistik/internal/period"
	"statistik/internal/stats"
)

type statsResponse struct {
	Year                int              `json:"year"`
	Month               int              `json:"month"`
	Period              string           `json:"period"`
	Mode                string           `json:"mode"`
	IncomeTotal         json.Number      `json:"income_total"`
	ExpenseTotal        json.Number      `json:"expense_total"`
	DailyAverageExpense json.Number      `json:"daily_average_expense"`
	DaysInMonth         int              `json:"days_in_month"`
	Categories          []categoryBucket `json:"categories"`
	Top                 *categoryBucket  `json:"top"`
	TopShare            json.Number      `json:"top_share"`
	Weekly              weeklyResponse   `json:"weekly"`
}

type categoryBucket struct {
	CategoryID string      `json:"category_id"`
	Label      string      `json:"label"`
	Total      json.Number `json:"total"`
	Percentage json.Number `json:"percentage"`
	ColorSlot  int         `json:"color_slot"`
	Color      string      `json:"color"`
}

type weeklyResponse struct {
	Totals  [stats.WeekBuckets]json.Number `json:"totals"`
	Heights [stats.WeekBuckets]float64     `json:"heights"`
	Max     json.Number                    `json:"max"`
}

type yearsResponse struct {
	Years []int `json:"years"`
}

type categoriesResponse struct {
	FallbackLabel string          `json:"fallback_label"`
	Palette       []string        `json:"palette"`
	Categories    []catalog.Entry `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// number keeps the exact decimal text while encoding as a JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toBucket(b stats.CategoryBucket) categoryBucket {
	return categoryBucket{
		CategoryID: b.CategoryID,
		Label:      b.Label,
		Total:      number(b.Total),
		Percentage: number(b.Percentage),
		ColorSlot:  b.ColorSlot,
		Color:      b.Color,
	}
}

func newStatsResponse(sel period.Selection, res stats.Result) statsResponse {
	out := statsResponse{
		Year:                res.Period.Year,
		Month:               int(res.Period.Month),
		Period:              res.Period.String(),
		Mode:                string(sel.Mode),
		IncomeTotal:         number(res.IncomeTotal),
		ExpenseTotal:        number(res.ExpenseTotal),
		DailyAverageExpense: number(res.DailyAverageExpense),
		DaysInMonth:         res.DaysInMonth,
		Categories:          make([]categoryBucket, 0, len(res.Categories)),
		TopShare:            number(res.TopShare),
		Weekly: weeklyResponse{
			Heights: res.Weekly.Heights(stats.DefaultMaxBarHeight, stats.DefaultMinBarHeight),
			Max:     number(res.Weekly.Max()),
		},
	}
	for _, b := range res.Categories {
		out.Categories = append(out.Categories, toBucket(b))
	}
	if res.Top != nil {
		top := toBucket(*res.Top)
		out.Top = &top
	}
	for i, v := range res.Weekly {
		out.Weekly.Totals[i] = number(v)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
