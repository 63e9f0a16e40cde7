// Package query filters and sorts transaction snapshots. Everything here
// is pure: inputs are never mutated and malformed data degrades to a
// sentinel (lowest date, zero amount) instead of an error.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ledger/internal/core"
)

// Filters describes the active dashboard controls. Zero values disable
// the corresponding filter; filters compose conjunctively.
type Filters struct {
	Search    string
	StartDate time.Time
	EndDate   time.Time
	Project   string
}

// Sort keys. Unknown keys are a programming error, not user input.
const (
	ByDate    = "date"
	ByAmount  = "amount"
	ByName    = "name"
	ByType    = "type"
	ByProject = "project"
)

const (
	Asc  = "asc"
	Desc = "desc"
)

// SortSpec selects the ordering of a transaction list.
type SortSpec struct {
	Key       string
	Direction string
}

// Filter returns the subset of transactions matching every active filter.
// The project filter is skipped for the core.AllProjects sentinel; the
// date filter is skipped when both bounds are zero; the text filter is a
// case-insensitive substring match over name, type and project.
func Filter(transactions []core.Transaction, f Filters) []core.Transaction {
	result := transactions

	if f.Project != "" && f.Project != core.AllProjects {
		result = keep(result, func(t core.Transaction) bool {
			return t.Project == f.Project
		})
	}

	if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
		result = keep(result, func(t core.Transaction) bool {
			return core.DateInRange(t.Date, f.StartDate, f.EndDate)
		})
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		result = keep(result, func(t core.Transaction) bool {
			return strings.Contains(strings.ToLower(t.Name), q) ||
				strings.Contains(strings.ToLower(t.Type), q) ||
				strings.Contains(strings.ToLower(t.Project), q)
		})
	}

	return result
}

// Sort returns an ordered copy of the input. Ties keep their original
// relative order. An unknown key or direction returns an error; callers
// treat that as a contract violation rather than a user-facing condition.
func Sort(transactions []core.Transaction, spec SortSpec) ([]core.Transaction, error) {
	less, err := comparator(spec.Key)
	if err != nil {
		return nil, err
	}
	switch spec.Direction {
	case Asc, "":
	case Desc:
		asc := less
		less = func(a, b core.Transaction) int { return -asc(a, b) }
	default:
		return nil, fmt.Errorf("unknown sort direction: %q", spec.Direction)
	}

	sorted := append([]core.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j]) < 0
	})
	return sorted, nil
}

func comparator(key string) (func(a, b core.Transaction) int, error) {
	switch key {
	case ByDate:
		return func(a, b core.Transaction) int {
			// Malformed dates map to 0 and sort lowest.
			return compareInt64(core.SortKey(a.Date), core.SortKey(b.Date))
		}, nil
	case ByAmount:
		return func(a, b core.Transaction) int {
			switch {
			case a.Amount < b.Amount:
				return -1
			case a.Amount > b.Amount:
				return 1
			}
			return 0
		}, nil
	case ByName:
		return stringComparator(func(t core.Transaction) string { return t.Name }), nil
	case ByType:
		return stringComparator(func(t core.Transaction) string { return t.Type }), nil
	case ByProject:
		return stringComparator(func(t core.Transaction) string { return t.Project }), nil
	}
	return nil, fmt.Errorf("unknown sort key: %q", key)
}

// DistinctValues returns the sorted distinct labels of a text field,
// feeding selection dropdowns. Only the type and project keys carry
// label-style values.
func DistinctValues(transactions []core.Transaction, key string) ([]string, error) {
	var field func(core.Transaction) string
	switch key {
	case ByType:
		field = func(t core.Transaction) string { return t.Type }
	case ByProject:
		field = func(t core.Transaction) string { return t.Project }
	default:
		return nil, fmt.Errorf("unknown distinct key: %q", key)
	}

	seen := make(map[string]struct{})
	values := []string{}
	for _, t := range transactions {
		v := field(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func stringComparator(field func(core.Transaction) string) func(a, b core.Transaction) int {
	return func(a, b core.Transaction) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func keep(in []core.Transaction, pred func(core.Transaction) bool) []core.Transaction {
	out := make([]core.Transaction, 0, len(in))
	for _, t := range in {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
