// Package httpapi wires the HTTP surface of the reporting service.
// It keeps handlers thin, delegating report computation to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/finbooks/reporting/internal/ledger"
	"github.com/finbooks/reporting/internal/service/cashflow"
	"github.com/finbooks/reporting/internal/service/reconciliation"
)

// Server wires handlers and middleware using Chi. Both report services read
// from the same repository; the bank-statement source is injected.
type Server struct {
	cashflowSvc cashflow.Service
	reconSvc    reconciliation.Service
	repo        Repository
	log         *slog.Logger
	rt          *chi.Mux
}

// New constructs the HTTP server with routes and middleware. scope selects
// the closing-balance policy for the cash-flow report.
func New(repo Repository, statement reconciliation.StatementSource, scope ledger.BalanceScope, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		cashflowSvc: cashflow.New(repo, scope),
		reconSvc:    reconciliation.New(repo, statement),
		repo:        repo,
		log:         logger,
		rt:          r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public endpoints and attaches per-route validation.
func (s *Server) routes() {
	// Reports
	s.rt.With(s.validateCashFlow()).Get("/api/cashflow", s.getCashFlow)
	s.rt.With(s.validateReconciliation()).Get("/api/reconciliation", s.getReconciliation)
	// Health (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	// Prometheus
	s.rt.Handle("/metrics", metricsHandler())
}
