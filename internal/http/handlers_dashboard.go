package http

import (
	"net/http"
	"strconv"
	"strings"

	"ledger/internal/chart"
	"ledger/internal/report"
)

// Dashboard endpoints work on the filtered view of the collection, so
// the same query parameters as the transaction list apply.

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.selectTransactions(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary":     report.Summarize(records),
		"by_category": report.GroupBy(records, report.ByCategory),
		"by_project":  report.GroupBy(records, report.ByProject),
	})
}

func (s *Server) handleDashboardPie(w http.ResponseWriter, r *http.Request) {
	records, err := s.selectTransactions(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	keyFn := report.ByCategory
	if strings.TrimSpace(r.URL.Query().Get("group")) == "project" {
		keyFn = report.ByProject
	}

	groups := report.GroupBy(records, keyFn)
	summary := report.Summarize(records)
	writeJSON(w, http.StatusOK, map[string]any{
		"size":   chart.PieSize,
		"total":  summary.Total,
		"slices": chart.PieSlices(groups, summary.Total),
	})
}

func (s *Server) handleDashboardCumulative(w http.ResponseWriter, r *http.Request) {
	records, err := s.selectTransactions(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	series := report.CumulativeSeries(report.DailyTotals(records))
	writeJSON(w, http.StatusOK, map[string]any{
		"width":  chart.LineWidth,
		"height": chart.LineHeight,
		"line":   chart.CumulativeLine(series),
	})
}

func (s *Server) handleDashboardTop(w http.ResponseWriter, r *http.Request) {
	records, err := s.selectTransactions(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	n := report.DefaultTopN
	if v := strings.TrimSpace(r.URL.Query().Get("n")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "n must be a positive integer", nil)
			return
		}
		n = parsed
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": report.TopN(records, n),
	})
}
