package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"chama/internal/core"
	"chama/internal/export"
	"chama/internal/store"
)

type (
	registerMemberRequest struct {
		MemberID string `json:"member_id"`
		Name     string `json:"name"`
	}

	contributionRequest struct {
		MemberID string      `json:"member_id"`
		Amount   json.Number `json:"amount"`
		Date     string      `json:"date"`
	}

	memberResponse struct {
		MemberID string `json:"member_id"`
		Name     string `json:"name"`
	}

	contributionResponse struct {
		ID       string  `json:"id"`
		MemberID string  `json:"member_id"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
	}

	ledgerRowResponse struct {
		ContributionID string  `json:"contribution_id"`
		Date           string  `json:"date"`
		Principal      float64 `json:"principal"`
		Interest       float64 `json:"interest"`
		Total          float64 `json:"total"`
		Balance        float64 `json:"balance"`
	}

	totalsResponse struct {
		Principal float64 `json:"principal"`
		Interest  float64 `json:"interest"`
		Total     float64 `json:"total"`
	}

	ledgerResponse struct {
		MemberID string              `json:"member_id"`
		Rows     []ledgerRowResponse `json:"rows"`
		Totals   totalsResponse      `json:"totals"`
	}

	portfolioEntryResponse struct {
		MemberID  string  `json:"member_id"`
		Name      string  `json:"name"`
		Principal float64 `json:"principal"`
		Interest  float64 `json:"interest"`
		Total     float64 `json:"total"`
		Ratio     float64 `json:"ratio"`
	}

	portfolioResponse struct {
		Members    []portfolioEntryResponse `json:"members"`
		GrandTotal float64                  `json:"grand_total"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

func (s *Server) handleRegisterMember(w http.ResponseWriter, r *http.Request) {
	var req registerMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}

	member := core.Member{ID: req.MemberID, Name: req.Name}
	if err := member.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	if err := s.contributions.RegisterMember(r.Context(), member.ID, member.Name); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, memberResponse{MemberID: member.ID, Name: member.Name})
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.reports.Members(r.Context())
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{MemberID: m.ID, Name: m.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	req, amount, date, ok := decodeContribution(w, r, true)
	if !ok {
		return
	}

	id, err := s.contributions.AddContribution(r.Context(), req.MemberID, amount, date)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, contributionResponse{
		ID:       id,
		MemberID: req.MemberID,
		Amount:   amount,
		Date:     date.ISO(),
	})
}

func (s *Server) handleUpdateContribution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, amount, date, ok := decodeContribution(w, r, false)
	if !ok {
		return
	}

	if err := s.contributions.UpdateContribution(r.Context(), id, amount, date); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListContributions(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member")
	contributions, err := s.reports.Contributions(r.Context(), memberID)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	out := make([]contributionResponse, 0, len(contributions))
	for _, c := range contributions {
		out = append(out, contributionResponse{
			ID:       c.ID,
			MemberID: c.MemberID,
			Amount:   c.Amount,
			Date:     c.Date.ISO(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMemberLedger(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	rows, totals, err := s.reports.MemberLedger(r.Context(), memberID)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	out := ledgerResponse{
		MemberID: memberID,
		Rows:     make([]ledgerRowResponse, 0, len(rows)),
		Totals:   totalsResponse(totals),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, ledgerRowResponse{
			ContributionID: row.Contribution.ID,
			Date:           row.Contribution.Date.ISO(),
			Principal:      row.Contribution.Amount,
			Interest:       row.Interest,
			Total:          row.Total,
			Balance:        row.Balance,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.reports.Portfolio(r.Context())
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	out := portfolioResponse{
		Members:    make([]portfolioEntryResponse, 0, len(portfolio.Entries())),
		GrandTotal: portfolio.GrandTotal(),
	}
	for _, entry := range portfolio.Entries() {
		out.Members = append(out.Members, portfolioEntryResponse{
			MemberID:  entry.Member.ID,
			Name:      entry.Member.Name,
			Principal: entry.Totals.Principal,
			Interest:  entry.Totals.Interest,
			Total:     entry.Totals.Total,
			Ratio:     portfolio.Ratio(entry.Member.ID),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMembersCSV(w http.ResponseWriter, r *http.Request) {
	members, err := s.reports.Members(r.Context())
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="members.csv"`)
	if err := export.MembersCSV(w, members); err != nil {
		slog.ErrorContext(r.Context(), "Failed to stream members CSV", "error", err)
	}
}

func (s *Server) handleContributionsCSV(w http.ResponseWriter, r *http.Request) {
	contributions, err := s.reports.Contributions(r.Context(), r.URL.Query().Get("member"))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contributions.csv"`)
	if err := export.ContributionsCSV(w, contributions); err != nil {
		slog.ErrorContext(r.Context(), "Failed to stream contributions CSV", "error", err)
	}
}

func (s *Server) handleWorkbookExport(w http.ResponseWriter, r *http.Request) {
	if s.workbook == nil {
		writeError(w, r, http.StatusServiceUnavailable, errors.New("no spreadsheet configured for workbook export"))
		return
	}

	wb, err := s.reports.Workbook(r.Context())
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	if err := s.workbook.WriteWorkbook(r.Context(), wb); err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"sheets": len(wb.Sheets)})
}

func (s *Server) handleMemberStatement(w http.ResponseWriter, r *http.Request) {
	statement, err := s.reports.MemberStatement(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.renderer.RenderStatement(w, statement); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render statement", "error", err)
	}
}

func (s *Server) handleLedgerStatement(w http.ResponseWriter, r *http.Request) {
	statement, err := s.reports.MemberLedgerStatement(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.renderer.RenderLedger(w, statement); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render ledger statement", "error", err)
	}
}

// decodeContribution parses and validates a contribution payload.
// Amounts pass through decimal so malformed numbers are rejected
// before they reach the store.
func decodeContribution(w http.ResponseWriter, r *http.Request, needMember bool) (contributionRequest, float64, core.Date, bool) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("malformed request body"))
		return req, 0, core.Date{}, false
	}

	d, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidAmount)
		return req, 0, core.Date{}, false
	}
	amount := d.InexactFloat64()

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return req, 0, core.Date{}, false
	}

	if amount <= 0 {
		writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidAmount)
		return req, 0, core.Date{}, false
	}
	if needMember && strings.TrimSpace(req.MemberID) == "" {
		writeError(w, r, http.StatusUnprocessableEntity, core.ErrEmptyMemberID)
		return req, 0, core.Date{}, false
	}

	return req, amount, date, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrDuplicateMember):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUnknownMember),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyMemberID),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
