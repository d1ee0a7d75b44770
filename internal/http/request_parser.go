package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"statistik/internal/period"
)

// ValidationError is a bad query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseSelection builds a selection from year, month and nav. Missing year or
// month default to now; nav=previous steps one month back from the result.
func ParseSelection(query url.Values, now time.Time) (period.Selection, error) {
	sel := period.Initial(now)

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			return period.Selection{}, &ValidationError{Field: "year", Message: "must be a year between 1 and 9999"}
		}
		sel = sel.SelectYear(y)
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		m, err := period.ParseMonth(v)
		if err != nil {
			return period.Selection{}, &ValidationError{Field: "month", Message: "must be 1-12 or a month name"}
		}
		sel = sel.SelectMonth(m)
	}

	if nav := strings.TrimSpace(query.Get("nav")); nav != "" {
		if period.ParseMode(nav) != period.PreviousMonth {
			return period.Selection{}, &ValidationError{Field: "nav", Message: "only 'previous' is supported"}
		}
		sel = sel.PreviousMonth()
	}
	return sel, nil
}
