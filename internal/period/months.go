package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"statistik/internal/core"
)

// monthNames maps the month names accepted by ParseMonth, Indonesian and
// English, full and abbreviated.
var monthNames = map[string]time.Month{
	"januari": time.January, "january": time.January, "jan": time.January,
	"februari": time.February, "february": time.February, "feb": time.February,
	"maret": time.March, "march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"mei": time.May, "may": time.May,
	"juni": time.June, "june": time.June, "jun": time.June,
	"juli": time.July, "july": time.July, "jul": time.July,
	"agustus": time.August, "august": time.August, "agu": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"oktober": time.October, "october": time.October, "okt": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"desember": time.December, "december": time.December, "des": time.December, "dec": time.December,
}

// ParseMonth reads a month as 1..12 or by name.
func ParseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: %d", core.ErrInvalidMonth, n)
		}
		return time.Month(n), nil
	}
	if m, ok := monthNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", core.ErrInvalidMonth, s)
}
