// Package exchange implements the export/import file format and the CSV
// transaction importers.
package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kept-dev/kept/internal/model"
)

// Version is the only supported exchange document version.
const Version = "1"

// Document is the versioned export/import envelope.
type Document struct {
	Version    string        `json:"version"`
	ExportDate time.Time     `json:"exportDate"`
	Events     []model.Event `json:"events"`
	Settings   Settings      `json:"settings"`
}

// Settings carries exported preferences.
type Settings struct {
	DefaultInterestRate decimal.Decimal `json:"defaultInterestRate"`
}

// Export builds a document from the full log.
func Export(events []model.Event, defaultRate decimal.Decimal, now time.Time) Document {
	if events == nil {
		events = []model.Event{}
	}
	return Document{
		Version:    Version,
		ExportDate: now.UTC(),
		Events:     events,
		Settings:   Settings{DefaultInterestRate: defaultRate},
	}
}

// Encode writes a document as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export document: %w", err)
	}
	return nil
}

// Decode parses and validates a document, rejecting unknown versions.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parsing export document: %w", err)
	}
	if doc.Version != Version {
		return Document{}, fmt.Errorf("unsupported export version %q", doc.Version)
	}
	return doc, nil
}
