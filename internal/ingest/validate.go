// Package ingest turns untrusted external payloads (imported JSON,
// remote-fetched documents) into well-formed transaction sets.
//
// Validation collects defects instead of failing fast: a broken element
// never blocks its siblings, and every rejected element is surfaced with
// the original input and the full list of reasons.
package ingest

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"ledger/internal/core"
)

// MsgNotCollection is the single global defect message emitted when the
// payload is not an ordered collection.
const MsgNotCollection = "Retrieved data is not an array."

// Per-item defect messages. External tooling matches on these strings, so
// they are fixed.
const (
	MsgMissingDate   = "Missing date"
	MsgMissingName   = "Missing name"
	MsgMissingAmount = "Missing amount"
	MsgAmountNaN     = "Amount is not a number"
)

// Result is the outcome of validating one payload. Records and Defects
// both preserve the relative order of the input elements.
type Result struct {
	Records []core.Transaction
	Defects []core.Defect
}

// item mirrors the external element shape. Amount stays raw so that a
// number, a numeric string and garbage can be told apart.
type item struct {
	ID      string          `json:"id"`
	Date    string          `json:"date"`
	Name    string          `json:"name"`
	Amount  json.RawMessage `json:"amount"`
	Type    string          `json:"type"`
	Project string          `json:"project"`
}

// Validate inspects a raw JSON payload and produces the accepted
// transactions plus a defect per rejected element. defaultProject fills
// absent project labels; newID mints identifiers for elements that carry
// none (injected so tests can use a deterministic generator).
//
// A payload that is not a JSON array short-circuits to a single global
// defect. Category is deliberately not required: an absent type defaults
// to core.DefaultType without a defect, favoring maximal import success.
func Validate(raw []byte, defaultProject string, newID func() string) Result {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return Result{Defects: []core.Defect{{Message: MsgNotCollection}}}
	}

	res := Result{}
	for i, el := range elements {
		res.add(i, el, defaultProject, newID)
	}
	return res
}

func (r *Result) add(index int, raw json.RawMessage, defaultProject string, newID func() string) {
	var it item
	var messages []string

	if err := json.Unmarshal(raw, &it); err != nil {
		// A field-level type mismatch still populates the remaining
		// fields, so the per-field checks below stay meaningful. Only
		// an element that is not an object at all fails them all.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			messages = []string{MsgMissingDate, MsgMissingName, MsgMissingAmount}
			r.Defects = append(r.Defects, core.Defect{Index: index, Item: raw, Messages: messages})
			return
		}
	}

	if it.Date == "" {
		messages = append(messages, MsgMissingDate)
	}
	if it.Name == "" {
		messages = append(messages, MsgMissingName)
	}

	amount, amountState := parseAmount(it.Amount)
	switch amountState {
	case amountAbsent:
		messages = append(messages, MsgMissingAmount)
	case amountInvalid:
		messages = append(messages, MsgAmountNaN)
	}

	if len(messages) > 0 {
		r.Defects = append(r.Defects, core.Defect{Index: index, Item: raw, Messages: messages})
		return
	}

	tx := core.Transaction{
		ID:      it.ID,
		Date:    it.Date,
		Name:    it.Name,
		Amount:  amount,
		Type:    it.Type,
		Project: it.Project,
	}
	if tx.ID == "" {
		tx.ID = newID()
	}
	if tx.Type == "" {
		tx.Type = core.DefaultType
	}
	if tx.Project == "" {
		tx.Project = defaultProject
	}
	r.Records = append(r.Records, tx)
}

type amountState int

const (
	amountOK amountState = iota
	amountAbsent
	amountInvalid
)

// parseAmount coerces the raw amount field to a finite float64. Absent or
// JSON null counts as missing; anything present but unparseable is a
// distinct defect, never a silent zero.
func parseAmount(raw json.RawMessage) (float64, amountState) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, amountAbsent
	}

	// Numeric string form: "15" or "15.5".
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, amountInvalid
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, amountInvalid
		}
		return f, amountOK
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, amountInvalid
	}
	return f, amountOK
}
