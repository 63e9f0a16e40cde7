package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"ledger/internal/core"
	"ledger/internal/ingest"
	"ledger/internal/payload"
	"ledger/internal/query"
)

const maxBodyBytes = 4 << 20

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unable to read request body", err)
		return nil, false
	}
	return body, true
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := s.selectTransactions(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": records,
		"count":        len(records),
	})
}

type upsertRequest struct {
	core.Transaction
	EditingID string `json:"editing_id,omitempty"`
}

func (s *Server) handleUpsertTransaction(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req upsertRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	stored, err := s.svc.Upsert(r.Context(), req.Transaction, req.EditingID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDate),
			errors.Is(err, core.ErrEmptyName),
			errors.Is(err, core.ErrInvalidAmount):
			writeError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
		default:
			writeError(w, r, http.StatusBadGateway, "failed to persist collection", err)
		}
		return
	}

	status := http.StatusCreated
	if req.EditingID != "" {
		status = http.StatusOK
	}
	writeJSON(w, status, stored)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "missing transaction id", nil)
		return
	}

	if err := s.svc.Remove(r.Context(), id); err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to persist collection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferRequest struct {
	IDs           []string `json:"ids"`
	TargetProject string   `json:"target_project"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req transferRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	count, err := s.svc.Transfer(r.Context(), req.IDs, req.TargetProject)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to persist collection", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"transferred": count})
}

func (s *Server) handleDistinct(w http.ResponseWriter, r *http.Request, key string) {
	values, err := query.DistinctValues(s.svc.Snapshot(), key)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to list values", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"values": values})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	s.handleDistinct(w, r, query.ByProject)
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	s.handleDistinct(w, r, query.ByType)
}

func importStatus(res ingest.Result) int {
	for _, d := range res.Defects {
		if d.IsGlobal() {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusOK
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	res, err := s.svc.ImportJSON(r.Context(), body, r.URL.Query().Get("project"))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to persist collection", err)
		return
	}

	writeJSON(w, importStatus(res), map[string]any{
		"imported": len(res.Records),
		"defects":  res.Defects,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rows := payload.Build(s.svc.Snapshot())
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SaveToCloud(r.Context()); err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to persist collection", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"records": len(s.svc.Snapshot())})
}

func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	res, found, err := s.svc.Load(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to load collection", err)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "no stored collection", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loaded":  len(res.Records),
		"defects": res.Defects,
	})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	if s.rates == nil {
		writeError(w, r, http.StatusNotImplemented, "rates client not configured", nil)
		return
	}

	base := strings.TrimSpace(r.URL.Query().Get("base"))
	if base == "" {
		base = s.baseCurrency
	}

	latest, err := s.rates.Latest(r.Context(), base)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to fetch rates", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"base":  strings.ToUpper(base),
		"rates": latest,
	})
}
