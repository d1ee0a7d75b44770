package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType is the transaction kind as sent by the transaction store.
	// Values other than Income and Expense are carried but never aggregated.
	TxType string

	// Transaction is a single record from the external transaction store.
	// It is read-only to the aggregation code.
	Transaction struct {
		ID              string
		Amount          decimal.Decimal
		Type            TxType
		CategoryID      string // empty when the record has no category
		TransactionDate string // primary date, raw
		CreatedAt       string // creation timestamp, raw
	}
)

var (
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidYear  = errors.New("invalid year")
)

// dateLayouts lists accepted date formats. Zoned layouts come first so an
// explicit offset is never silently dropped.
var dateLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// IsIncome reports whether the record counts towards income.
func (t Transaction) IsIncome() bool { return t.Type == Income }

// IsExpense reports whether the record counts towards expenses.
func (t Transaction) IsExpense() bool { return t.Type == Expense }

// HasCategory reports whether a category id is present.
func (t Transaction) HasCategory() bool { return t.CategoryID != "" }

// EffectiveDate resolves the transaction date, falling back to the creation
// timestamp when the primary date is empty. The boolean is false when the
// chosen field cannot be parsed. A nil loc means UTC.
func (t Transaction) EffectiveDate(loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(t.TransactionDate)
	if raw == "" {
		raw = strings.TrimSpace(t.CreatedAt)
	}
	return ParseDate(raw, loc)
}

// ParseDate parses s using the accepted layouts. Zone-less values are read as
// wall time in loc; zoned values are converted into loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if l.zoned {
			if ts, err := time.Parse(l.layout, s); err == nil {
				return ts.In(loc), true
			}
			continue
		}
		if ts, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// wireTransaction mirrors the JSON shape of the transaction store.
type wireTransaction struct {
	ID              json.RawMessage `json:"id,omitempty"`
	Amount          json.RawMessage `json:"amount"`
	Type            json.RawMessage `json:"type"`
	CategoryID      json.RawMessage `json:"category_id"`
	TransactionDate json.RawMessage `json:"transaction_date"`
	CreatedAt       json.RawMessage `json:"created_at"`
}

// UnmarshalJSON decodes the store shape. Bad field values are coerced, never
// reported: a non-numeric amount becomes zero and an unknown date stays raw.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	amount, _ := ParseAmount(scalarText(w.Amount))
	*t = Transaction{
		ID:              scalarText(w.ID),
		Amount:          amount,
		Type:            TxType(scalarText(w.Type)),
		CategoryID:      categoryText(w.CategoryID),
		TransactionDate: scalarText(w.TransactionDate),
		CreatedAt:       scalarText(w.CreatedAt),
	}
	return nil
}

// MarshalJSON writes the store shape back out. Amounts are written as strings
// so decimals survive a round trip.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := struct {
		ID              string  `json:"id,omitempty"`
		Amount          string  `json:"amount"`
		Type            string  `json:"type"`
		CategoryID      *string `json:"category_id"`
		TransactionDate string  `json:"transaction_date,omitempty"`
		CreatedAt       string  `json:"created_at,omitempty"`
	}{
		ID:              t.ID,
		Amount:          t.Amount.String(),
		Type:            string(t.Type),
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
	if t.HasCategory() {
		id := t.CategoryID
		out.CategoryID = &id
	}
	return json.Marshal(out)
}

// scalarText returns the text of a JSON string or number. Anything else
// (null, bool, object, array) yields "".
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw)
	default:
		return ""
	}
}

// categoryText treats a numeric zero id like a missing one, matching the
// store's falsy-id convention. The string "0" is a real id. Other numeric ids
// are written in canonical form, so 1.0 and 1e0 both become "1".
func categoryText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	s := scalarText(raw)
	if s == "" || raw[0] == '"' {
		return s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	if d.IsZero() {
		return ""
	}
	return d.String()
}
