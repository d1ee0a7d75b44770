// Package stats turns a flat list of transactions into the monthly summary:
// totals, daily average, category breakdown and weekly profile.
//
// Everything here is a pure function of its inputs. Nothing logs, nothing
// returns an error and degenerate input resolves to zero values.
package stats

import (
	"time"

	"statistik/internal/core"
)

// Dated is a transaction paired with its resolved effective date.
type Dated struct {
	Tx   core.Transaction
	Date time.Time
}

// Filter keeps the transactions whose effective date falls in p, comparing
// calendar month and year in loc. Records with an unparsable date are
// dropped. Input order is preserved.
func Filter(txs []core.Transaction, p core.Period, loc *time.Location) []Dated {
	out := make([]Dated, 0, len(txs))
	for _, tx := range txs {
		d, ok := tx.EffectiveDate(loc)
		if !ok || !p.Contains(d) {
			continue
		}
		out = append(out, Dated{Tx: tx, Date: d})
	}
	return out
}
