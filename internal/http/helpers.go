package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ledger/internal/core"
	applog "ledger/internal/log"
	"ledger/internal/query"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), msg,
			"error", err, "path", r.URL.Path)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// filtersFromQuery builds record filters from the request query string.
// Dates arrive as YYYY-MM-DD; malformed bounds are ignored.
func filtersFromQuery(r *http.Request) query.Filters {
	q := r.URL.Query()
	f := query.Filters{
		Search:  strings.TrimSpace(q.Get("search")),
		Project: strings.TrimSpace(q.Get("project")),
	}
	if v := strings.TrimSpace(q.Get("start")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.StartDate = t
		}
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.EndDate = t
		}
	}
	return f
}

// sortFromQuery builds the sort spec from the query string. Absent
// parameters default to newest-first.
func sortFromQuery(r *http.Request) query.SortSpec {
	q := r.URL.Query()
	spec := query.SortSpec{
		Key:       strings.TrimSpace(q.Get("sort")),
		Direction: strings.TrimSpace(q.Get("dir")),
	}
	if spec.Key == "" {
		spec.Key = query.ByDate
	}
	if spec.Direction == "" {
		spec.Direction = query.Desc
	}
	return spec
}

// selectTransactions applies the request's filters and sort to the
// current collection.
func (s *Server) selectTransactions(r *http.Request) ([]core.Transaction, error) {
	filtered := query.Filter(s.svc.Snapshot(), filtersFromQuery(r))
	return query.Sort(filtered, sortFromQuery(r))
}
