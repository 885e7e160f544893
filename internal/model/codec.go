package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormat is how event dates appear on the wire.
const dateFormat = "2006-01-02"

// eventJSON is the wire shape of an Event: the kind tag plus only the
// payload fields that kind carries.
type eventJSON struct {
	ID               string           `json:"id"`
	Date             string           `json:"date"`
	Kind             Kind             `json:"kind"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Category         *Category        `json:"category,omitempty"`
	Description      *string          `json:"description,omitempty"`
	NewRate          *decimal.Decimal `json:"newRate,omitempty"`
	PendingOnAvoided *decimal.Decimal `json:"pendingOnAvoided,omitempty"`
	PendingOnSpent   *decimal.Decimal `json:"pendingOnSpent,omitempty"`
}

// MarshalJSON encodes the event as its tag plus kind-specific fields.
func (e Event) MarshalJSON() ([]byte, error) {
	w := eventJSON{
		ID:   e.ID,
		Date: e.Date.Format(dateFormat),
		Kind: e.Kind,
	}
	switch e.Kind {
	case KindPurchase, KindAvoidedPurchase:
		amount, category, desc := e.Amount, e.Category, e.Description
		w.Amount = &amount
		w.Category = &category
		w.Description = &desc
	case KindRateChange:
		rate := e.NewRate
		w.NewRate = &rate
	case KindInterestApplication:
		onAvoided, onSpent := e.PendingOnAvoided, e.PendingOnSpent
		w.PendingOnAvoided = &onAvoided
		w.PendingOnSpent = &onSpent
	default:
		return nil, fmt.Errorf("event %s: unknown kind %q", e.ID, e.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes and validates a single event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	date, err := time.Parse(dateFormat, w.Date)
	if err != nil {
		return fmt.Errorf("event %s: invalid date %q: %w", w.ID, w.Date, err)
	}

	out := Event{
		ID:   w.ID,
		Date: DayOf(date),
		Kind: w.Kind,
	}
	if w.Amount != nil {
		out.Amount = *w.Amount
	}
	if w.Category != nil {
		out.Category = *w.Category
	}
	if w.Description != nil {
		out.Description = *w.Description
	}
	if w.NewRate != nil {
		out.NewRate = *w.NewRate
	}
	if w.PendingOnAvoided != nil {
		out.PendingOnAvoided = *w.PendingOnAvoided
	}
	if w.PendingOnSpent != nil {
		out.PendingOnSpent = *w.PendingOnSpent
	}

	if err := out.Validate(); err != nil {
		return err
	}
	*e = out
	return nil
}
