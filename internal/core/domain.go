package core

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

const (
	// DefaultType is the sentinel category assigned when a transaction
	// carries no category label.
	DefaultType = "OTHER"

	// DefaultProject is the grouping bucket used when the caller supplies
	// none.
	DefaultProject = "Budget"

	// AllProjects is the project filter sentinel that disables project
	// filtering.
	AllProjects = "All"
)

type (
	// Transaction is one recorded expense entry. Date is kept in the
	// canonical DD.MM.YY display form; ParseDisplayDate recovers the
	// calendar date when ordering or range checks are needed.
	Transaction struct {
		ID      string  `json:"id"`
		Date    string  `json:"date"`
		Name    string  `json:"name"`
		Amount  float64 `json:"amount"`
		Type    string  `json:"type"`
		Project string  `json:"project"`
	}

	// Defect is a structured validation failure. A global defect (payload
	// not a collection) carries only Message; a per-item defect carries the
	// original index, the unmodified offending element and one message per
	// failed check.
	Defect struct {
		Index    int             `json:"index,omitempty"`
		Item     json.RawMessage `json:"item,omitempty"`
		Messages []string        `json:"messages,omitempty"`
		Message  string          `json:"message,omitempty"`
	}

	// Summary holds the headline aggregates for a transaction set.
	Summary struct {
		Total   float64 `json:"total"`
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// Validate checks a transaction built by direct user entry. Bulk import
// goes through the ingest package instead, which collects defects rather
// than failing on the first problem.
func (t Transaction) Validate() error {
	if _, ok := ParseDisplayDate(t.Date); !ok {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

// IsGlobal reports whether the defect applies to the whole payload rather
// than a single element.
func (d Defect) IsGlobal() bool {
	return d.Message != ""
}
