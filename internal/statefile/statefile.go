// Package statefile reads and writes the persisted ledger document:
// a single JSON object holding the event log, the default interest rate,
// and opaque presentation settings.
package statefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/model"
)

// State is the persisted document.
type State struct {
	Events              []model.Event   `json:"events"`
	DefaultInterestRate decimal.Decimal `json:"defaultInterestRate"`
	// Theme is a presentation setting; round-tripped, never interpreted.
	Theme string `json:"theme,omitempty"`
}

// Issue flags one malformed event entry in a document. Issues are
// recoverable: the caller chooses between resetting the store and loading
// the entries that did parse.
type Issue struct {
	Index int
	Err   error
}

func (i Issue) Error() string {
	return fmt.Sprintf("event %d: %v", i.Index, i.Err)
}

// rawState defers event decoding so one bad entry doesn't sink the document.
type rawState struct {
	Events              []json.RawMessage `json:"events"`
	DefaultInterestRate decimal.Decimal   `json:"defaultInterestRate"`
	Theme               string            `json:"theme,omitempty"`
}

// Decode parses a document. Malformed events are skipped and reported as
// Issues; a malformed document is an error.
func Decode(data []byte) (State, []Issue, error) {
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, nil, fmt.Errorf("parsing state document: %w", err)
	}

	st := State{
		DefaultInterestRate: raw.DefaultInterestRate,
		Theme:               raw.Theme,
	}
	var issues []Issue
	for i, msg := range raw.Events {
		var e model.Event
		if err := json.Unmarshal(msg, &e); err != nil {
			issues = append(issues, Issue{Index: i, Err: err})
			continue
		}
		st.Events = append(st.Events, e)
	}
	return st, issues, nil
}

// Load reads and decodes the document at path.
func Load(path string) (State, []Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, nil, fmt.Errorf("reading state file: %w", err)
	}
	return Decode(data)
}

// Save writes the document atomically (temp file, then rename).
func Save(path string, st State) error {
	if st.Events == nil {
		st.Events = []model.Event{}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".kept-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing state file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
