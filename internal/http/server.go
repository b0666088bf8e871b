// Package http exposes the pool over a JSON API plus CSV and
// statement downloads. Handlers stay thin: parse, call a service,
// map errors to status codes.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chama/internal/export"
	"chama/internal/report"
	"chama/internal/services"
)

// WorkbookWriter pushes the tabular workbook into the hosted
// spreadsheet. Nil when no spreadsheet is configured.
type WorkbookWriter interface {
	WriteWorkbook(ctx context.Context, wb export.Workbook) error
}

type Server struct {
	contributions *services.ContributionService
	reports       *services.ReportService
	renderer      report.Renderer
	workbook      WorkbookWriter
}

// NewServer builds the HTTP server for the pool API. workbook may be
// nil; the workbook export endpoint then reports the feature as
// unavailable.
func NewServer(addr string, contributions *services.ContributionService, reports *services.ReportService, workbook WorkbookWriter) *http.Server {
	s := &Server{
		contributions: contributions,
		reports:       reports,
		renderer:      report.TextRenderer{},
		workbook:      workbook,
	}
	return &http.Server{
		Addr:    addr,
		Handler: accessLog(s.routes()),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /members", s.handleRegisterMember)
	mux.HandleFunc("GET /members", s.handleListMembers)
	mux.HandleFunc("POST /contributions", s.handleAddContribution)
	mux.HandleFunc("PUT /contributions/{id}", s.handleUpdateContribution)
	mux.HandleFunc("GET /contributions", s.handleListContributions)

	mux.HandleFunc("GET /members/{id}/ledger", s.handleMemberLedger)
	mux.HandleFunc("GET /portfolio", s.handlePortfolio)

	mux.HandleFunc("GET /export/members.csv", s.handleMembersCSV)
	mux.HandleFunc("GET /export/contributions.csv", s.handleContributionsCSV)
	mux.HandleFunc("POST /export/workbook", s.handleWorkbookExport)

	mux.HandleFunc("GET /members/{id}/statement", s.handleMemberStatement)
	mux.HandleFunc("GET /members/{id}/ledger/statement", s.handleLedgerStatement)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
