package ledger

import (
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kept-dev/kept/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return model.Day(y, m, d)
}

// fixedNov keeps "today" at 2025-11-15 so August through October are closed.
func fixedNov() time.Time {
	return day(2025, time.November, 15)
}

func newTestStore(events []model.Event) *Store {
	return New(events, dec("3.5"), WithClock(fixedNov))
}

func avoidParams(date time.Time, amount string) AddParams {
	return AddParams{
		Date: date, Kind: model.KindAvoidedPurchase,
		Amount: dec(amount), Category: model.CategoryOther, Description: "skipped it",
	}
}

func postings(events []model.Event) []model.Event {
	var out []model.Event
	for _, e := range events {
		if e.Kind == model.KindInterestApplication {
			out = append(out, e)
		}
	}
	return out
}

func TestNew_RegeneratesOnLoad(t *testing.T) {
	// A log saved before August closed: loading it must post Aug-Oct.
	events := []model.Event{{
		ID: "a1", Date: day(2025, time.August, 1), Kind: model.KindAvoidedPurchase,
		Amount: dec("10000"), Category: model.CategoryShopping, Description: "laptop",
	}}
	s := newTestStore(events)

	got := postings(s.Events())
	require.Len(t, got, 3)
	assert.True(t, day(2025, time.August, 31).Equal(got[0].Date))
	assert.True(t, day(2025, time.October, 31).Equal(got[2].Date))
}

func TestAddEvent_SortedLog(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.October, 5), "100"))
	require.NoError(t, err)
	_, _, err = s.AddEvent(avoidParams(day(2025, time.August, 1), "200"))
	require.NoError(t, err)
	_, _, err = s.AddEvent(avoidParams(day(2025, time.September, 20), "300"))
	require.NoError(t, err)

	events := s.Events()
	assert.True(t, sort.SliceIsSorted(events, func(i, j int) bool {
		return events[i].Less(events[j])
	}), "log must come back pre-sorted")
}

func TestAddEvent_RejectsPostingKind(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(AddParams{
		Date: day(2025, time.August, 31), Kind: model.KindInterestApplication,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "derived")
}

func TestAddEvent_RejectsInvalid(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(AddParams{
		Date: day(2025, time.August, 1), Kind: model.KindPurchase,
		Amount: dec("-5"), Category: model.CategoryOther, Description: "x",
	})
	require.Error(t, err)
	assert.Empty(t, s.Events())
}

func TestRetroactiveInsert_RaisesLaterPostings(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.September, 1), "10000"))
	require.NoError(t, err)

	before := postings(s.Events())
	require.Len(t, before, 2) // Sep, Oct

	// Insert into August, earlier than every existing posting.
	_, _, err = s.AddEvent(avoidParams(day(2025, time.August, 5), "5000"))
	require.NoError(t, err)

	after := postings(s.Events())
	require.Len(t, after, 3) // Aug, Sep, Oct
	assert.True(t, after[1].PendingOnAvoided.GreaterThan(before[0].PendingOnAvoided),
		"September posting must grow: its opening balance now includes August's 5000")
	assert.True(t, after[2].PendingOnAvoided.GreaterThan(before[1].PendingOnAvoided),
		"October posting must grow too")
}

func TestDeleteEvent_RemovesMonthPosting(t *testing.T) {
	s := newTestStore(nil)
	e, _, err := s.AddEvent(avoidParams(day(2025, time.August, 10), "1000"))
	require.NoError(t, err)
	require.NotEmpty(t, postings(s.Events()))

	s.DeleteEvent(e.ID)
	assert.Empty(t, s.Events(), "transaction and every derived posting are gone")
}

func TestDeleteEvent_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.October, 1), "100"))
	require.NoError(t, err)

	before := s.Events()
	proj := s.DeleteEvent("nope")
	assert.Equal(t, before, s.Events())
	assert.Equal(t, s.Projection(), proj)
}

func TestUpdateEvent_MoveAcrossMonths(t *testing.T) {
	s := newTestStore(nil)
	e, _, err := s.AddEvent(avoidParams(day(2025, time.October, 10), "1000"))
	require.NoError(t, err)
	require.Len(t, postings(s.Events()), 1)

	newDate := day(2025, time.August, 10)
	_, err = s.UpdateEvent(e.ID, Update{Date: &newDate})
	require.NoError(t, err)

	got := postings(s.Events())
	require.Len(t, got, 3, "August through October now accrue")

	moved, ok := s.EventByID(e.ID)
	require.True(t, ok)
	assert.True(t, newDate.Equal(moved.Date))
}

func TestUpdateEvent_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore(nil)
	amount := dec("5")
	_, err := s.UpdateEvent("nope", Update{Amount: &amount})
	assert.NoError(t, err)
}

func TestUpdateEvent_RejectsInvalid(t *testing.T) {
	s := newTestStore(nil)
	e, _, err := s.AddEvent(avoidParams(day(2025, time.October, 10), "1000"))
	require.NoError(t, err)

	bad := dec("-1")
	_, err = s.UpdateEvent(e.ID, Update{Amount: &bad})
	require.Error(t, err)

	kept, _ := s.EventByID(e.ID)
	assert.True(t, kept.Amount.Equal(dec("1000")), "failed update leaves the event alone")
}

func TestSetDefaultRate_RepricesUncoveredMonths(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.August, 1), "10000"))
	require.NoError(t, err)
	before := postings(s.Events())
	require.Len(t, before, 3)

	s.SetDefaultRate(dec("7.0"))
	after := postings(s.Events())
	require.Len(t, after, 3)
	for i := range after {
		assert.True(t, after[i].PendingOnAvoided.GreaterThan(before[i].PendingOnAvoided))
	}
}

func TestSetDefaultRate_ExplicitRatesAreImmutableIslands(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.August, 1), "10000"))
	require.NoError(t, err)
	// Explicit rate in force from before the first deposit onward.
	_, _, err = s.AddEvent(AddParams{
		Date: day(2025, time.July, 1), Kind: model.KindRateChange, NewRate: dec("4.0"),
	})
	require.NoError(t, err)
	before := postings(s.Events())
	require.Len(t, before, 3)

	s.SetDefaultRate(dec("9.0"))
	after := postings(s.Events())
	require.Len(t, after, 3)
	for i := range after {
		assert.True(t, after[i].PendingOnAvoided.Equal(before[i].PendingOnAvoided),
			"months governed by an explicit rate change must not move")
	}
}

func TestImportEvents_DedupesAndSkipsPostings(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.October, 1), "100"))
	require.NoError(t, err)
	existing := s.Events()[0]

	incoming := []model.Event{
		existing, // duplicate id
		{
			ID: "new-1", Date: day(2025, time.September, 3), Kind: model.KindPurchase,
			Amount: dec("40"), Category: model.CategoryDining, Description: "lunch",
		},
		{
			ID: "interest-2025-09", Date: day(2025, time.September, 30),
			Kind: model.KindInterestApplication, PendingOnAvoided: dec("999"),
		},
	}
	added, _ := s.ImportEvents(incoming)
	assert.Equal(t, 1, added)

	_, ok := s.EventByID("new-1")
	assert.True(t, ok)
	for _, p := range postings(s.Events()) {
		assert.False(t, p.PendingOnAvoided.Equal(dec("999")), "imported postings are discarded and regenerated")
	}
}

func TestEventsForMonth(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.August, 1), "100"))
	require.NoError(t, err)
	_, _, err = s.AddEvent(avoidParams(day(2025, time.September, 1), "200"))
	require.NoError(t, err)

	aug := s.EventsForMonth("2025-08")
	require.Len(t, aug, 2, "the deposit and its posting")
	assert.Equal(t, model.KindAvoidedPurchase, aug[0].Kind)
	assert.Equal(t, model.KindInterestApplication, aug[1].Kind)

	assert.Empty(t, s.EventsForMonth("2024-01"))
}

func TestProjectionReflectsPendingInterest(t *testing.T) {
	s := newTestStore(nil)
	_, _, err := s.AddEvent(avoidParams(day(2025, time.November, 1), "1000"))
	require.NoError(t, err)

	proj := s.Projection()
	// Nov 1 through Nov 15 at 3.5%.
	want := 1000 * 0.035 / 365 * 15
	assert.InDelta(t, want, proj.PendingOnAvoided.InexactFloat64(), 0.01)
	assert.Empty(t, postings(s.Events()), "current month never gets a posting")
}
