// Package payload builds the outbound document exchanged with the remote
// store. Internal ids never leave the process and category labels are
// canonicalized before upload; local storage and display keep the labels
// exactly as entered.
package payload

import (
	"strings"
	"unicode"

	"ledger/internal/core"
)

// Row is one element of the outbound document. Same shape as
// core.Transaction minus the internal id.
type Row struct {
	Date    string  `json:"date"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Type    string  `json:"type"`
	Project string  `json:"project"`
}

// NormalizeType strips every rune that is not a Unicode letter or digit
// and uppercases the remainder. Category labels are frequently non-Latin,
// so this uses full Unicode classification rather than an ASCII word
// class. Returns "" when nothing survives; callers that need a non-empty
// label use CanonicalType instead.
func NormalizeType(label string) string {
	if label == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

// CanonicalType is NormalizeType with the upload fallback: a label that
// normalizes to nothing (all punctuation, symbols or whitespace) becomes
// core.DefaultType so the outbound document never carries an empty
// category.
func CanonicalType(label string) string {
	if n := NormalizeType(label); n != "" {
		return n
	}
	return core.DefaultType
}

// Build produces the outbound rows for a transaction set: ids stripped,
// types canonicalized, order preserved.
func Build(transactions []core.Transaction) []Row {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, Row{
			Date:    t.Date,
			Name:    t.Name,
			Amount:  t.Amount,
			Type:    CanonicalType(t.Type),
			Project: t.Project,
		})
	}
	return rows
}
