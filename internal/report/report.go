// Package report aggregates a filtered transaction set for the
// dashboard: grouped totals, daily totals, the cumulative growth series,
// ranked top spends and the headline summary. All functions are pure and
// never consult the wall clock.
package report

import (
	"sort"

	"ledger/internal/core"
)

// DefaultTopN is the ranking length used when the caller passes n <= 0.
const DefaultTopN = 15

type (
	// Group is one aggregation bucket (a category or a project).
	Group struct {
		Name  string             `json:"name"`
		Total float64            `json:"total"`
		Count int                `json:"count"`
		Items []core.Transaction `json:"items"`
	}

	// DayTotal is the sum of all transactions sharing a display date.
	DayTotal struct {
		Date  string             `json:"date"`
		Total float64            `json:"total"`
		Items []core.Transaction `json:"items"`
	}

	// CumulativePoint is one step of the running total, ordered by day.
	CumulativePoint struct {
		Date       string  `json:"date"`
		Cumulative float64 `json:"cumulative"`
	}
)

// ByCategory and ByProject are the grouping key functions the dashboard
// offers.
func ByCategory(t core.Transaction) string { return t.Type }
func ByProject(t core.Transaction) string  { return t.Project }

// GroupBy buckets transactions by keyFn and returns the buckets sorted by
// descending total. Equal totals keep first-encounter order.
func GroupBy(transactions []core.Transaction, keyFn func(core.Transaction) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, t := range transactions {
		key := keyFn(t)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Name: key})
		}
		groups[i].Total += t.Amount
		groups[i].Count++
		groups[i].Items = append(groups[i].Items, t)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	return groups
}

// DailyTotals sums transactions per display date and returns the days in
// chronological order. Days with malformed dates sort first.
func DailyTotals(transactions []core.Transaction) []DayTotal {
	index := make(map[string]int)
	days := make([]DayTotal, 0)
	for _, t := range transactions {
		i, ok := index[t.Date]
		if !ok {
			i = len(days)
			index[t.Date] = i
			days = append(days, DayTotal{Date: t.Date})
		}
		days[i].Total += t.Amount
		days[i].Items = append(days[i].Items, t)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return core.SortKey(days[i].Date) < core.SortKey(days[j].Date)
	})
	return days
}

// CumulativeSeries folds chronologically sorted daily totals into a
// running sum. The final point equals the sum of all daily totals.
func CumulativeSeries(days []DayTotal) []CumulativePoint {
	series := make([]CumulativePoint, 0, len(days))
	var running float64
	for _, d := range days {
		running += d.Total
		series = append(series, CumulativePoint{Date: d.Date, Cumulative: running})
	}
	return series
}

// TopN returns the n largest transactions by amount, descending, stable
// on ties, truncated to n (DefaultTopN when n <= 0).
func TopN(transactions []core.Transaction, n int) []core.Transaction {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := append([]core.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summarize computes the headline numbers. Average is 0 for an empty set.
func Summarize(transactions []core.Transaction) core.Summary {
	s := core.Summary{Count: len(transactions)}
	for _, t := range transactions {
		s.Total += t.Amount
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}
