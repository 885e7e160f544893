package interest

import (
	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/id"
	"github.com/kept-dev/kept/internal/model"
)

// RegeneratePostings synthesizes one interest posting per closed month,
// from the earliest month containing a purchase or avoided purchase up to
// (excluding) currentMonth, skipping months that already carry a posting.
// Postings synthesized earlier in the pass join the working log so later
// months compound on them. Pure: events is never mutated; callers strip
// stale postings beforehand and merge the returned ones afterward.
func RegeneratePostings(events []model.Event, currentMonth model.MonthKey, defaultRate decimal.Decimal) []model.Event {
	posted := make(map[model.MonthKey]bool)
	var earliest model.MonthKey
	for _, e := range events {
		switch e.Kind {
		case model.KindInterestApplication:
			posted[model.MonthOf(e.Date)] = true
		case model.KindPurchase, model.KindAvoidedPurchase:
			m := model.MonthOf(e.Date)
			if earliest == "" || m.Before(earliest) {
				earliest = m
			}
		}
	}
	if earliest == "" || !earliest.Before(currentMonth) {
		return nil
	}

	working := append([]model.Event(nil), events...)
	var out []model.Event
	for m := earliest; m.Before(currentMonth); m = m.Next() {
		if posted[m] {
			continue
		}
		acc := AccrueForMonth(working, m, defaultRate)
		if acc.IsZero() {
			continue
		}
		p := model.Event{
			ID:               id.ForPosting(string(m)),
			Date:             m.LastDay(),
			Kind:             model.KindInterestApplication,
			PendingOnAvoided: acc.OnAvoided,
			PendingOnSpent:   acc.OnSpent,
		}
		out = append(out, p)
		working = append(working, p)
	}
	return out
}
