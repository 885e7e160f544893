package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags an Event with its variant.
type Kind string

const (
	KindPurchase            Kind = "PURCHASE"
	KindAvoidedPurchase     Kind = "AVOIDED_PURCHASE"
	KindRateChange          Kind = "INTEREST_RATE_CHANGE"
	KindInterestApplication Kind = "INTEREST_APPLICATION"
)

// Event is one entry in the append-mostly log. Kind selects which payload
// fields are meaningful; the rest stay at their zero value.
type Event struct {
	ID   string
	Date time.Time // civil date, UTC midnight
	Kind Kind

	// Purchase / AvoidedPurchase.
	Amount      decimal.Decimal
	Category    Category
	Description string

	// RateChange: annual percentage rate effective from Date forward.
	NewRate decimal.Decimal

	// InterestApplication: interest posted for the month ending on Date.
	PendingOnAvoided decimal.Decimal
	PendingOnSpent   decimal.Decimal
}

// Day builds a civil date at UTC midnight.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates t to its civil date at UTC midnight.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Less reports whether e sorts before other under the (date, id) total order.
func (e Event) Less(other Event) bool {
	if !e.Date.Equal(other.Date) {
		return e.Date.Before(other.Date)
	}
	return e.ID < other.ID
}

// SortEvents sorts the log in place by (date ascending, id ascending).
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Less(events[j])
	})
}

// Validate checks the per-kind invariants of an event.
func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event has no id")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("event %s has no date", e.ID)
	}
	switch e.Kind {
	case KindPurchase, KindAvoidedPurchase:
		if !e.Amount.IsPositive() {
			return fmt.Errorf("event %s: amount must be positive, got %s", e.ID, e.Amount)
		}
		if !e.Category.Valid() {
			return fmt.Errorf("event %s: unknown category %q", e.ID, e.Category)
		}
		if e.Description == "" {
			return fmt.Errorf("event %s: description is required", e.ID)
		}
	case KindRateChange:
		if e.NewRate.IsNegative() {
			return fmt.Errorf("event %s: rate must not be negative, got %s", e.ID, e.NewRate)
		}
	case KindInterestApplication:
		if e.PendingOnAvoided.IsNegative() || e.PendingOnSpent.IsNegative() {
			return fmt.Errorf("event %s: posted interest must not be negative", e.ID)
		}
	default:
		return fmt.Errorf("event %s: unknown kind %q", e.ID, e.Kind)
	}
	return nil
}
