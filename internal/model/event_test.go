package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func purchase(id string, date time.Time, amount string) Event {
	return Event{
		ID:          id,
		Date:        date,
		Kind:        KindPurchase,
		Amount:      dec(amount),
		Category:    CategoryOther,
		Description: "test purchase",
	}
}

func TestSortEvents_DateThenID(t *testing.T) {
	events := []Event{
		purchase("b", Day(2025, time.March, 5), "1"),
		purchase("a", Day(2025, time.March, 5), "2"),
		purchase("z", Day(2025, time.January, 1), "3"),
		purchase("c", Day(2025, time.April, 30), "4"),
	}
	SortEvents(events)

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, ids)
}

func TestDayOf_TruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("plus2", 2*3600)
	in := time.Date(2025, time.June, 3, 23, 45, 0, 0, loc) // June 3 21:45 UTC
	assert.Equal(t, Day(2025, time.June, 3), DayOf(in))
}

func TestValidate(t *testing.T) {
	base := Day(2025, time.May, 1)

	tests := []struct {
		name    string
		event   Event
		wantErr string
	}{
		{
			name:  "valid purchase",
			event: purchase("p1", base, "10.50"),
		},
		{
			name: "valid rate change",
			event: Event{
				ID: "r1", Date: base, Kind: KindRateChange, NewRate: dec("4.25"),
			},
		},
		{
			name: "valid posting",
			event: Event{
				ID: "i1", Date: base, Kind: KindInterestApplication,
				PendingOnAvoided: dec("1.23"), PendingOnSpent: dec("0"),
			},
		},
		{
			name:    "missing id",
			event:   Event{Date: base, Kind: KindRateChange},
			wantErr: "no id",
		},
		{
			name:    "missing date",
			event:   Event{ID: "x", Kind: KindRateChange},
			wantErr: "no date",
		},
		{
			name:    "zero amount",
			event:   purchase("p2", base, "0"),
			wantErr: "must be positive",
		},
		{
			name:    "negative amount",
			event:   purchase("p3", base, "-5"),
			wantErr: "must be positive",
		},
		{
			name: "unknown category",
			event: Event{
				ID: "p4", Date: base, Kind: KindAvoidedPurchase,
				Amount: dec("5"), Category: "yachts", Description: "boat",
			},
			wantErr: "unknown category",
		},
		{
			name: "empty description",
			event: Event{
				ID: "p5", Date: base, Kind: KindPurchase,
				Amount: dec("5"), Category: CategoryOther,
			},
			wantErr: "description",
		},
		{
			name: "negative rate",
			event: Event{
				ID: "r2", Date: base, Kind: KindRateChange, NewRate: dec("-1"),
			},
			wantErr: "not be negative",
		},
		{
			name: "negative posted interest",
			event: Event{
				ID: "i2", Date: base, Kind: KindInterestApplication,
				PendingOnAvoided: dec("-0.01"),
			},
			wantErr: "not be negative",
		},
		{
			name:    "unknown kind",
			event:   Event{ID: "k1", Date: base, Kind: "REFUND"},
			wantErr: "unknown kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
