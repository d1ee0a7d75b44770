// Package period resolves the active reporting month and the navigation
// commands that move it.
//
// A Selection is a value: every command returns a new Selection and leaves
// the receiver untouched. Navigation is relative to the current selection,
// never to the wall clock.
package period

import (
	"strings"
	"time"

	"statistik/internal/core"
)

const (
	Custom        Mode = "custom"
	PreviousMonth Mode = "previous-month"
)

// DefaultYearOptions is how many years the year selector offers.
const DefaultYearOptions = 10

// Mode records how the current selection was reached.
type Mode string

// Selection is the active period plus the mode that produced it.
type Selection struct {
	Period core.Period
	Mode   Mode
}

// Initial returns the calendar month of now in custom mode.
func Initial(now time.Time) Selection {
	return Selection{Period: core.PeriodOf(now), Mode: Custom}
}

// New returns a custom selection for the given year and month.
func New(year int, month time.Month) Selection {
	return Selection{Period: core.NewPeriod(year, month), Mode: Custom}
}

// SelectMonth sets the month, keeps the year and forces custom mode.
func (s Selection) SelectMonth(month time.Month) Selection {
	return Selection{
		Period: core.NewPeriod(s.Period.Year, month),
		Mode:   Custom,
	}
}

// SelectYear sets the year and keeps both month and mode.
func (s Selection) SelectYear(year int) Selection {
	return Selection{
		Period: core.NewPeriod(year, s.Period.Month),
		Mode:   s.Mode,
	}
}

// PreviousMonth steps one month back from the selected period. January
// rolls over to December of the previous year. Repeated calls keep going
// back.
func (s Selection) PreviousMonth() Selection {
	return Selection{
		Period: s.Period.Previous(),
		Mode:   PreviousMonth,
	}
}

// YearOptions lists the n most recent years ending at now's year, newest
// first.
func YearOptions(now time.Time, n int) []int {
	if n <= 0 {
		return nil
	}
	years := make([]int, n)
	for i := range years {
		years[i] = now.Year() - i
	}
	return years
}

// ParseMode maps user input to a Mode. Unknown values fall back to Custom.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PreviousMonth), "previous", "prev":
		return PreviousMonth
	default:
		return Custom
	}
}
