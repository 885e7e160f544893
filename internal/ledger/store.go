// Package ledger owns the canonical event log and its derived projection.
// Every mutation runs the same cycle: strip stale interest postings, apply
// the change, regenerate postings for all closed months, re-sort, project.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kept-dev/kept/internal/id"
	"github.com/kept-dev/kept/internal/interest"
	"github.com/kept-dev/kept/internal/model"
	"github.com/kept-dev/kept/internal/projection"
)

// Store holds the event log, the default rate, and the current projection.
type Store struct {
	mu          sync.Mutex
	events      []model.Event
	defaultRate decimal.Decimal
	proj        projection.Projection

	nowFn  func() time.Time
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the source of "today". Used in tests.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.nowFn = fn }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New builds a Store over an existing log and immediately runs a full
// regeneration pass: months that were open at last save may have closed
// since.
func New(events []model.Event, defaultRate decimal.Decimal, opts ...Option) *Store {
	s := &Store{
		events:      append([]model.Event(nil), events...),
		defaultRate: defaultRate,
		nowFn:       time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refresh()
	return s
}

// AddParams describes a user-entered event. Kind must be one of the three
// source kinds; interest postings are derived and never entered directly.
type AddParams struct {
	Date        time.Time
	Kind        model.Kind
	Amount      decimal.Decimal
	Category    model.Category
	Description string
	NewRate     decimal.Decimal
}

// AddEvent appends a new event and returns it with the updated projection.
func (s *Store) AddEvent(p AddParams) (model.Event, projection.Projection, error) {
	if p.Kind == model.KindInterestApplication {
		return model.Event{}, projection.Projection{}, fmt.Errorf("interest postings are derived and cannot be added")
	}
	e := model.Event{
		ID:          id.New(),
		Date:        model.DayOf(p.Date),
		Kind:        p.Kind,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		NewRate:     p.NewRate,
	}
	if err := e.Validate(); err != nil {
		return model.Event{}, projection.Projection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	s.refresh()
	return e, s.proj, nil
}

// Update carries the fields of an event to change; nil means keep.
type Update struct {
	Date        *time.Time
	Amount      *decimal.Decimal
	Category    *model.Category
	Description *string
	NewRate     *decimal.Decimal
}

// UpdateEvent applies an update to the event with the given id. An unknown
// id is a silent no-op.
func (s *Store) UpdateEvent(eventID string, u Update) (projection.Projection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID != eventID {
			continue
		}
		e := s.events[i]
		if u.Date != nil {
			e.Date = model.DayOf(*u.Date)
		}
		if u.Amount != nil {
			e.Amount = *u.Amount
		}
		if u.Category != nil {
			e.Category = *u.Category
		}
		if u.Description != nil {
			e.Description = *u.Description
		}
		if u.NewRate != nil {
			e.NewRate = *u.NewRate
		}
		if err := e.Validate(); err != nil {
			return s.proj, err
		}
		s.events[i] = e
		s.refresh()
		break
	}
	return s.proj, nil
}

// DeleteEvent removes the event with the given id. An unknown id is a
// silent no-op.
func (s *Store) DeleteEvent(eventID string) projection.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	removed := false
	for _, e := range s.events {
		if e.ID == eventID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	if removed {
		s.refresh()
	}
	return s.proj
}

// SetDefaultRate changes the fallback annual rate and reprices every closed
// month not covered by an explicit rate-change event.
func (s *Store) SetDefaultRate(rate decimal.Decimal) projection.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultRate = rate
	s.refresh()
	return s.proj
}

// ImportEvents merges events into the log, skipping ids already present and
// any interest postings (those are regenerated). Returns how many merged.
func (s *Store) ImportEvents(events []model.Event) (int, projection.Projection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.events))
	for _, e := range s.events {
		seen[e.ID] = true
	}
	added := 0
	for _, e := range events {
		if e.Kind == model.KindInterestApplication || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		s.events = append(s.events, e)
		added++
	}
	if added > 0 {
		s.refresh()
	}
	return added, s.proj
}

// Projection returns the current derived state.
func (s *Store) Projection() projection.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proj
}

// DefaultRate returns the configured fallback annual rate.
func (s *Store) DefaultRate() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultRate
}

// Events returns a copy of the full sorted log, postings included.
func (s *Store) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Event(nil), s.events...)
}

// EventsForMonth returns the log entries dated within a month.
func (s *Store) EventsForMonth(month model.MonthKey) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Event
	for _, e := range s.events {
		if model.MonthOf(e.Date) == month {
			out = append(out, e)
		}
	}
	return out
}

// EventByID looks up a single event.
func (s *Store) EventByID(eventID string) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.events {
		if e.ID == eventID {
			return e, true
		}
	}
	return model.Event{}, false
}

// refresh runs strip, regenerate, sort, project. Callers hold s.mu.
func (s *Store) refresh() {
	sources := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.Kind != model.KindInterestApplication {
			sources = append(sources, e)
		}
	}

	today := model.DayOf(s.nowFn())
	currentMonth := model.MonthOf(today)
	postings := interest.RegeneratePostings(sources, currentMonth, s.defaultRate)

	s.events = append(sources, postings...)
	model.SortEvents(s.events)
	s.proj = projection.Project(s.events, s.defaultRate, today)

	s.logger.Debug("regenerated ledger",
		zap.Int("events", len(s.events)),
		zap.Int("postings", len(postings)),
		zap.String("currentMonth", string(currentMonth)),
	)
}
