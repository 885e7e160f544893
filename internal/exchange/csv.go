package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/id"
	"github.com/kept-dev/kept/internal/model"
)

// Parser converts a CSV file into ledger events.
type Parser interface {
	Parse(r io.Reader) ([]model.Event, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TransactionsParser{})
	return r
}

// TransactionsParser parses the generic transactions CSV:
// date,type,amount,category,description with type spend|avoid.
type TransactionsParser struct{}

const (
	txnDateFormat = "2006-01-02"
	txnNumFields  = 5
	txnColDate    = 0
	txnColType    = 1
	txnColAmount  = 2
	txnColCat     = 3
	txnColDesc    = 4
)

// Format returns the parser name.
func (p *TransactionsParser) Format() string { return "transactions" }

// Parse reads the CSV and returns purchase / avoided-purchase events with
// fresh ids.
func (p *TransactionsParser) Parse(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txnNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var events []model.Event
	for i, rec := range records[1:] {
		e, err := parseTransactionRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseTransactionRow(rec []string) (model.Event, error) {
	date, err := time.Parse(txnDateFormat, rec[txnColDate])
	if err != nil {
		return model.Event{}, fmt.Errorf("parsing date %q: %w", rec[txnColDate], err)
	}

	var kind model.Kind
	switch strings.ToLower(strings.TrimSpace(rec[txnColType])) {
	case "spend":
		kind = model.KindPurchase
	case "avoid":
		kind = model.KindAvoidedPurchase
	default:
		return model.Event{}, fmt.Errorf("unknown type %q (want spend or avoid)", rec[txnColType])
	}

	amount, err := decimal.NewFromString(rec[txnColAmount])
	if err != nil {
		return model.Event{}, fmt.Errorf("parsing amount %q: %w", rec[txnColAmount], err)
	}

	category := model.Category(strings.ToLower(strings.TrimSpace(rec[txnColCat])))
	if category == "" {
		category = model.CategoryOther
	}

	e := model.Event{
		ID:          id.New(),
		Date:        model.DayOf(date),
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: rec[txnColDesc],
	}
	if err := e.Validate(); err != nil {
		return model.Event{}, err
	}
	return e, nil
}
