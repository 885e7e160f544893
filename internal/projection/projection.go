// Package projection folds the event log into the monthly and all-time
// figures the reporting surfaces consume.
package projection

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/interest"
	"github.com/kept-dev/kept/internal/model"
)

// MonthSummary aggregates one calendar month of the log.
type MonthSummary struct {
	Month               model.MonthKey
	PurchasesTotal      decimal.Decimal
	AvoidedTotal        decimal.Decimal
	PurchasesByCategory map[model.Category]decimal.Decimal
	AvoidedByCategory   map[model.Category]decimal.Decimal
	PurchaseCount       int
	AvoidedCount        int
	AppliedOnAvoided    decimal.Decimal
	AppliedOnSpent      decimal.Decimal
}

// AllTime aggregates the whole log.
type AllTime struct {
	// SavedTotal is avoided amounts plus all interest posted on them.
	SavedTotal decimal.Decimal
	// SpentTotal is raw purchase amounts only.
	SpentTotal decimal.Decimal
	// MissedInterest is the opportunity cost: interest posted on spending.
	MissedInterest decimal.Decimal
	PurchaseCount  int
	AvoidedCount   int
}

// RatePoint is one entry in the rate history.
type RatePoint struct {
	Date time.Time
	Rate decimal.Decimal
}

// Projection is the derived ledger state.
type Projection struct {
	CurrentMonth   MonthSummary
	AllTime        AllTime
	MonthlyHistory []MonthSummary // ascending by month

	// Interest accrued in the current month through today, not yet posted.
	PendingOnAvoided decimal.Decimal
	PendingOnSpent   decimal.Decimal

	CurrentRate decimal.Decimal
	RateHistory []RatePoint
}

// Project folds the log (postings included) into a Projection. today bounds
// the current month's pending-interest accrual and decides which month is
// "current".
func Project(events []model.Event, defaultRate decimal.Decimal, today time.Time) Projection {
	sorted := append([]model.Event(nil), events...)
	model.SortEvents(sorted)
	today = model.DayOf(today)

	months := make(map[model.MonthKey]*MonthSummary)
	var keys []model.MonthKey
	bucket := func(m model.MonthKey) *MonthSummary {
		if s, ok := months[m]; ok {
			return s
		}
		s := newMonthSummary(m)
		months[m] = s
		keys = append(keys, m)
		return s
	}

	var all AllTime
	var rates []RatePoint
	for _, e := range sorted {
		m := bucket(model.MonthOf(e.Date))
		switch e.Kind {
		case model.KindPurchase:
			m.PurchasesTotal = m.PurchasesTotal.Add(e.Amount)
			m.PurchasesByCategory[e.Category] = m.PurchasesByCategory[e.Category].Add(e.Amount)
			m.PurchaseCount++
			all.SpentTotal = all.SpentTotal.Add(e.Amount)
			all.PurchaseCount++
		case model.KindAvoidedPurchase:
			m.AvoidedTotal = m.AvoidedTotal.Add(e.Amount)
			m.AvoidedByCategory[e.Category] = m.AvoidedByCategory[e.Category].Add(e.Amount)
			m.AvoidedCount++
			all.SavedTotal = all.SavedTotal.Add(e.Amount)
			all.AvoidedCount++
		case model.KindInterestApplication:
			m.AppliedOnAvoided = m.AppliedOnAvoided.Add(e.PendingOnAvoided)
			m.AppliedOnSpent = m.AppliedOnSpent.Add(e.PendingOnSpent)
			all.SavedTotal = all.SavedTotal.Add(e.PendingOnAvoided)
			all.MissedInterest = all.MissedInterest.Add(e.PendingOnSpent)
		case model.KindRateChange:
			rates = append(rates, RatePoint{Date: e.Date, Rate: e.NewRate})
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	history := make([]MonthSummary, 0, len(keys))
	for _, k := range keys {
		history = append(history, *months[k])
	}

	currentKey := model.MonthOf(today)
	current := newMonthSummary(currentKey)
	if s, ok := months[currentKey]; ok {
		current = s
	}

	pending := interest.AccrueThrough(sorted, currentKey, today, defaultRate)

	return Projection{
		CurrentMonth:     *current,
		AllTime:          all,
		MonthlyHistory:   history,
		PendingOnAvoided: pending.OnAvoided,
		PendingOnSpent:   pending.OnSpent,
		CurrentRate:      interest.EffectiveRate(today, sorted, defaultRate),
		RateHistory:      rates,
	}
}

func newMonthSummary(m model.MonthKey) *MonthSummary {
	return &MonthSummary{
		Month:               m,
		PurchasesByCategory: make(map[model.Category]decimal.Decimal),
		AvoidedByCategory:   make(map[model.Category]decimal.Decimal),
	}
}
