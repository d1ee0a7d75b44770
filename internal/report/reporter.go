// Package report renders a period summary for terminals and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"statistik/internal/period"
	"statistik/internal/stats"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	// DefaultCurrency is the prefix used for amounts.
	DefaultCurrency = "Rp"

	// barUnit is how many height points one bar character stands for.
	barUnit = 10
)

// DefaultLanguage groups digits the Indonesian way: 1.234.567,5.
var DefaultLanguage = language.Indonesian

type TableConfig struct {
	LabelWidth int
	TotalWidth int
	ShareWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 24,
		TotalWidth: 18,
		ShareWidth: 7,
	}
}

type Reporter struct {
	writer   io.Writer
	printer  *message.Printer
	currency string
	config   TableConfig
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithLanguage sets the locale used for digit grouping.
func WithLanguage(tag language.Tag) Option {
	return func(r *Reporter) { r.printer = message.NewPrinter(tag) }
}

// WithCurrency sets the amount prefix. An empty prefix prints bare numbers.
func WithCurrency(prefix string) Option {
	return func(r *Reporter) { r.currency = prefix }
}

func NewReporter(writer io.Writer, opts ...Option) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{
		writer:   writer,
		printer:  message.NewPrinter(DefaultLanguage),
		currency: DefaultCurrency,
		config:   DefaultTableConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Money formats d with locale grouping and up to three fraction digits.
func (r *Reporter) Money(d decimal.Decimal) string {
	s := r.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
	if r.currency == "" {
		return s
	}
	return r.currency + " " + s
}

// Percent formats a percentage with one fraction digit at most.
func (r *Reporter) Percent(d decimal.Decimal) string {
	return r.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(1))) + "%"
}

type templateData struct {
	Selection period.Selection
	Result    stats.Result
	Heights   [stats.WeekBuckets]float64
}

const textTemplate = `Statistik {{.Result.Period.Month}} {{.Result.Period.Year}} ({{.Selection.Mode}})

Income:         {{money .Result.IncomeTotal}}
Expense:        {{money .Result.ExpenseTotal}}
Daily average:  {{money .Result.DailyAverageExpense}}
Days in month:  {{.Result.DaysInMonth}}

{{if .Result.Categories}}{{separator}}
{{row "Category" "Total" "Share"}}
{{separator}}
{{range .Result.Categories}}{{row .Label (money .Total) (percent .Percentage)}}
{{end}}{{separator}}
{{with .Result.Top}}
Top category: {{.Label}} ({{money .Total}}, {{percent $.Result.TopShare}} of expense)
{{end}}{{else}}No expenses in this period.
{{end}}
Weekly
{{range $i, $v := .Result.Weekly}}Week {{inc $i}}  {{bar (index $.Heights $i)}} {{money $v}}
{{end}}`

// Render writes the text report.
func (r *Reporter) Render(sel period.Selection, res stats.Result) error {
	funcMap := template.FuncMap{
		"money":   r.Money,
		"percent": r.Percent,
		"inc":     func(i int) int { return i + 1 },
		"bar": func(h float64) string {
			return fmt.Sprintf("%-*s", stats.DefaultMaxBarHeight/barUnit, strings.Repeat("#", int(h)/barUnit))
		},
		"row": func(label, total, share string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s |",
				r.config.LabelWidth, truncate(label, r.config.LabelWidth),
				r.config.TotalWidth, total,
				r.config.ShareWidth, share)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", r.config.LabelWidth+2),
				strings.Repeat("-", r.config.TotalWidth+2),
				strings.Repeat("-", r.config.ShareWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(textTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, templateData{
		Selection: sel,
		Result:    res,
		Heights:   res.Weekly.Heights(stats.DefaultMaxBarHeight, stats.DefaultMinBarHeight),
	})
}

// Summary is the JSON shape of a report. Amounts are kept as exact decimal
// strings next to their formatted form.
type Summary struct {
	Period       string            `json:"period"`
	Mode         string            `json:"mode"`
	Income       Amount            `json:"income"`
	Expense      Amount            `json:"expense"`
	DailyAverage Amount            `json:"daily_average"`
	DaysInMonth  int               `json:"days_in_month"`
	Categories   []CategorySummary `json:"categories"`
	Top          *CategorySummary  `json:"top,omitempty"`
	TopShare     string            `json:"top_share"`
	Weekly       []Amount          `json:"weekly"`
}

type Amount struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

type CategorySummary struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Total      Amount `json:"total"`
	Percentage string `json:"percentage"`
	Color      string `json:"color"`
}

func (r *Reporter) amount(d decimal.Decimal) Amount {
	return Amount{Value: d.String(), Formatted: r.Money(d)}
}

func (r *Reporter) category(b stats.CategoryBucket) CategorySummary {
	return CategorySummary{
		ID:         b.CategoryID,
		Label:      b.Label,
		Total:      r.amount(b.Total),
		Percentage: b.Percentage.String(),
		Color:      b.Color,
	}
}

// Summarize builds the JSON summary of res.
func (r *Reporter) Summarize(sel period.Selection, res stats.Result) Summary {
	s := Summary{
		Period:       res.Period.String(),
		Mode:         string(sel.Mode),
		Income:       r.amount(res.IncomeTotal),
		Expense:      r.amount(res.ExpenseTotal),
		DailyAverage: r.amount(res.DailyAverageExpense),
		DaysInMonth:  res.DaysInMonth,
		Categories:   make([]CategorySummary, 0, len(res.Categories)),
		TopShare:     res.TopShare.String(),
		Weekly:       make([]Amount, 0, stats.WeekBuckets),
	}
	for _, b := range res.Categories {
		s.Categories = append(s.Categories, r.category(b))
	}
	if res.Top != nil {
		top := r.category(*res.Top)
		s.Top = &top
	}
	for _, v := range res.Weekly {
		s.Weekly = append(s.Weekly, r.amount(v))
	}
	return s
}

// RenderJSON writes the summary as indented JSON.
func (r *Reporter) RenderJSON(sel period.Selection, res stats.Result) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Summarize(sel, res))
}

// Write renders in the given format.
func (r *Reporter) Write(format string, sel period.Selection, res stats.Result) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return r.Render(sel, res)
	case FormatJSON:
		return r.RenderJSON(sel, res)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
