package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/model"
)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// Accrual is interest accrued over one period, rounded to cents.
type Accrual struct {
	OnAvoided decimal.Decimal
	OnSpent   decimal.Decimal
}

// IsZero reports whether no interest accrued on either balance.
func (a Accrual) IsZero() bool {
	return a.OnAvoided.IsZero() && a.OnSpent.IsZero()
}

// AccrueForMonth computes daily interest on the avoided and spent balances
// over a full calendar month. Balances open with every purchase, avoided
// purchase, and posted interest dated before the month (posted interest is
// what compounds), then the month is walked day by day: same-day deposits
// land first, then one day of interest accrues at that day's effective rate.
func AccrueForMonth(events []model.Event, month model.MonthKey, defaultRate decimal.Decimal) Accrual {
	return AccrueThrough(events, month, month.LastDay(), defaultRate)
}

// AccrueThrough is AccrueForMonth bounded at asOf instead of month-end,
// used mid-month for not-yet-posted interest. asOf is clamped to the month.
func AccrueThrough(events []model.Event, month model.MonthKey, asOf time.Time, defaultRate decimal.Decimal) Accrual {
	start, end := month.Bounds()
	asOf = model.DayOf(asOf)
	if asOf.Before(start) {
		return Accrual{}
	}
	if asOf.After(end) {
		asOf = end
	}

	sorted := append([]model.Event(nil), events...)
	model.SortEvents(sorted)

	var avoided, spent decimal.Decimal
	i := 0
	for ; i < len(sorted) && sorted[i].Date.Before(start); i++ {
		avoided, spent = deposit(sorted[i], avoided, spent)
	}

	// Accumulate at full precision; round once at the end.
	var onAvoided, onSpent decimal.Decimal
	for day := start; !day.After(asOf); day = day.AddDate(0, 0, 1) {
		for ; i < len(sorted) && sorted[i].Date.Equal(day); i++ {
			avoided, spent = deposit(sorted[i], avoided, spent)
		}
		daily := EffectiveRate(day, sorted, defaultRate).Div(hundred).Div(daysPerYear)
		onAvoided = onAvoided.Add(avoided.Mul(daily))
		onSpent = onSpent.Add(spent.Mul(daily))
	}

	return Accrual{
		OnAvoided: onAvoided.Round(2),
		OnSpent:   onSpent.Round(2),
	}
}

func deposit(e model.Event, avoided, spent decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	switch e.Kind {
	case model.KindAvoidedPurchase:
		avoided = avoided.Add(e.Amount)
	case model.KindPurchase:
		spent = spent.Add(e.Amount)
	case model.KindInterestApplication:
		avoided = avoided.Add(e.PendingOnAvoided)
		spent = spent.Add(e.PendingOnSpent)
	}
	return avoided, spent
}
