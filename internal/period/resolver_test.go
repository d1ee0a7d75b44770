package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"statistik/internal/core"
)

func TestInitial(t *testing.T) {
	sel := Initial(time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, core.NewPeriod(2026, time.October), sel.Period)
	assert.Equal(t, Custom, sel.Mode)
}

func TestSelectMonth(t *testing.T) {
	sel := New(2024, time.March).PreviousMonth()
	assert.Equal(t, PreviousMonth, sel.Mode)

	got := sel.SelectMonth(time.July)
	assert.Equal(t, core.NewPeriod(2024, time.July), got.Period)
	assert.Equal(t, Custom, got.Mode, "picking a month forces custom mode")
}

func TestSelectYear(t *testing.T) {
	prev := New(2024, time.March).PreviousMonth()
	got := prev.SelectYear(2020)
	assert.Equal(t, core.NewPeriod(2020, time.February), got.Period)
	assert.Equal(t, PreviousMonth, got.Mode, "picking a year keeps the mode")

	got = New(2024, time.March).SelectYear(2021)
	assert.Equal(t, Custom, got.Mode)
}

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name string
		from Selection
		want core.Period
	}{
		{"january rolls over", New(2024, time.January), core.NewPeriod(2023, time.December)},
		{"mid year", New(2024, time.June), core.NewPeriod(2024, time.May)},
		{"december", New(2024, time.December), core.NewPeriod(2024, time.November)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.PreviousMonth()
			assert.Equal(t, tt.want, got.Period)
			assert.Equal(t, PreviousMonth, got.Mode)
		})
	}
}

func TestPreviousMonth_StepsBackIndefinitely(t *testing.T) {
	sel := New(2024, time.February)
	for i := 0; i < 14; i++ {
		sel = sel.PreviousMonth()
	}
	assert.Equal(t, core.NewPeriod(2022, time.December), sel.Period)
}

func TestPreviousMonth_DoesNotMutateReceiver(t *testing.T) {
	sel := New(2024, time.January)
	_ = sel.PreviousMonth()
	assert.Equal(t, core.NewPeriod(2024, time.January), sel.Period)
	assert.Equal(t, Custom, sel.Mode)
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	years := YearOptions(now, DefaultYearOptions)
	assert.Len(t, years, 10)
	assert.Equal(t, 2026, years[0])
	assert.Equal(t, 2017, years[9])
	assert.Nil(t, YearOptions(now, 0))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, PreviousMonth, ParseMode("previous-month"))
	assert.Equal(t, PreviousMonth, ParseMode(" Previous "))
	assert.Equal(t, Custom, ParseMode("custom"))
	assert.Equal(t, Custom, ParseMode("whatever"))
}

func TestParseMonth(t *testing.T) {
	valid := map[string]time.Month{
		"1":        time.January,
		" 12 ":     time.December,
		"maret":    time.March,
		"March":    time.March,
		"DESEMBER": time.December,
		"agu":      time.August,
	}
	for in, want := range valid {
		got, err := ParseMonth(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"0", "13", "", "smarch", "-1"} {
		_, err := ParseMonth(in)
		assert.ErrorIs(t, err, core.ErrInvalidMonth, in)
	}
}
