package core

import (
	"fmt"
	"time"
)

// Period is a calendar month of a given year.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a Period from year and month.
func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// PeriodFromIndex builds a Period from a zero-based month index (0 = January).
func PeriodFromIndex(monthIndex, year int) Period {
	return Period{Year: year, Month: time.Month(monthIndex + 1)}
}

// PeriodOf returns the calendar month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// MonthIndex returns the zero-based month (0..11).
func (p Period) MonthIndex() int {
	return int(p.Month) - 1
}

// DaysIn returns the number of days in the month, leap years included.
func (p Period) DaysIn() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t falls in the same calendar month and year.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// Previous returns the month before p, rolling the year over in January.
func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Validate checks the ranges adapters accept from user input.
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return ErrInvalidMonth
	}
	if p.Year < 1 || p.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
