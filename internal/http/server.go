// Package http exposes the JSON API over the transaction pipeline.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	applog "ledger/internal/log"
	"ledger/internal/rates"
	"ledger/internal/services"
)

type Server struct {
	http.Server
	svc          *services.LedgerService
	rates        *rates.Client
	baseCurrency string
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, svc *services.LedgerService, ratesClient *rates.Client, baseCurrency string, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:          svc,
		rates:        ratesClient,
		baseCurrency: baseCurrency,
		rateLimiter:  newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleUpsertTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/transactions/transfer", s.handleTransfer)

	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/types", s.handleTypes)

	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/sync", s.handleSync)
	mux.HandleFunc("POST /api/pull", s.handlePull)

	mux.HandleFunc("GET /api/rates", s.handleRates)

	mux.HandleFunc("GET /api/dashboard/summary", s.handleDashboardSummary)
	mux.HandleFunc("GET /api/dashboard/pie", s.handleDashboardPie)
	mux.HandleFunc("GET /api/dashboard/cumulative", s.handleDashboardCumulative)
	mux.HandleFunc("GET /api/dashboard/top", s.handleDashboardTop)

	var handler http.Handler = mux
	handler = s.withSecurity(handler)
	handler = applog.RequestLogMiddleware()(handler)
	handler = applog.RequestIDMiddleware()(handler)
	if logger != nil {
		handler = applog.Middleware(logger)(handler)
	}
	s.Server.Handler = handler

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
