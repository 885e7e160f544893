// Package interest implements the accrual engine: rate resolution,
// day-by-day monthly accrual on the avoided and spent balances, and
// regeneration of interest postings for closed months.
package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/model"
)

// EffectiveRate returns the annual percentage rate in force on date: the
// rate of the latest rate-change event dated on or before it, or defaultRate
// when no rate-change event applies.
func EffectiveRate(date time.Time, events []model.Event, defaultRate decimal.Decimal) decimal.Decimal {
	rate := defaultRate
	var latest model.Event
	found := false
	for _, e := range events {
		if e.Kind != model.KindRateChange || e.Date.After(date) {
			continue
		}
		if !found || latest.Less(e) {
			latest = e
			found = true
		}
	}
	if found {
		rate = latest.NewRate
	}
	return rate
}
