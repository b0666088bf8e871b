package services

import (
	"context"
	"fmt"

	"chama/internal/core"
	"chama/internal/export"
	"chama/internal/report"
	"chama/internal/store"
)

// SnapshotReader is the read-only slice of the store the reporting
// side needs.
type SnapshotReader interface {
	store.MemberRegistry
	store.ContributionLister
}

// ReportService recomputes every aggregate fresh from a snapshot read
// of the store. Nothing is cached between calls; staleness is bounded
// by the time since the read.
type ReportService struct {
	reader SnapshotReader
	calc   core.Calculator
}

func NewReportService(reader SnapshotReader, calc core.Calculator) *ReportService {
	return &ReportService{reader: reader, calc: calc}
}

func (s *ReportService) Members(ctx context.Context) ([]core.Member, error) {
	return s.reader.ListMembers(ctx)
}

func (s *ReportService) Contributions(ctx context.Context, memberID string) ([]core.Contribution, error) {
	return s.reader.ListContributions(ctx, memberID)
}

// MemberLedger builds the ordered running-balance ledger for one
// member plus its summary totals.
func (s *ReportService) MemberLedger(ctx context.Context, memberID string) ([]core.LedgerRow, core.Totals, error) {
	if _, err := s.member(ctx, memberID); err != nil {
		return nil, core.Totals{}, err
	}

	contributions, err := s.reader.ListContributions(ctx, memberID)
	if err != nil {
		return nil, core.Totals{}, fmt.Errorf("list contributions: %w", err)
	}

	rows := core.BuildLedger(memberID, contributions, s.calc)
	return rows, core.SummarizeLedger(rows), nil
}

// Portfolio summarizes every member's principal, interest and total
// value plus their share of the pool.
func (s *ReportService) Portfolio(ctx context.Context) (*core.Portfolio, error) {
	members, contributions, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.Summarize(members, contributions, s.calc), nil
}

// MemberStatement assembles the summary statement document for one
// member, ratio included.
func (s *ReportService) MemberStatement(ctx context.Context, memberID string) (report.Statement, error) {
	member, err := s.member(ctx, memberID)
	if err != nil {
		return report.Statement{}, err
	}

	portfolio, err := s.Portfolio(ctx)
	if err != nil {
		return report.Statement{}, err
	}

	totals, _ := portfolio.MemberTotals(memberID)
	return report.Statement{
		Member:      member,
		Totals:      totals,
		Ratio:       portfolio.Ratio(memberID),
		GeneratedOn: s.calc.Today(),
	}, nil
}

// MemberLedgerStatement assembles the ledger document for one member.
func (s *ReportService) MemberLedgerStatement(ctx context.Context, memberID string) (report.LedgerStatement, error) {
	member, err := s.member(ctx, memberID)
	if err != nil {
		return report.LedgerStatement{}, err
	}

	rows, totals, err := s.MemberLedger(ctx, memberID)
	if err != nil {
		return report.LedgerStatement{}, err
	}

	return report.LedgerStatement{
		Member:      member,
		Rows:        rows,
		Totals:      totals,
		GeneratedOn: s.calc.Today(),
	}, nil
}

// Workbook builds the one-sheet-per-entity tabular view of the store.
func (s *ReportService) Workbook(ctx context.Context) (export.Workbook, error) {
	members, contributions, err := s.snapshot(ctx)
	if err != nil {
		return export.Workbook{}, err
	}
	return export.BuildWorkbook(members, contributions), nil
}

func (s *ReportService) snapshot(ctx context.Context) ([]core.Member, []core.Contribution, error) {
	members, err := s.reader.ListMembers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}
	contributions, err := s.reader.ListContributions(ctx, "")
	if err != nil {
		return nil, nil, fmt.Errorf("list contributions: %w", err)
	}
	return members, contributions, nil
}

func (s *ReportService) member(ctx context.Context, memberID string) (core.Member, error) {
	members, err := s.reader.ListMembers(ctx)
	if err != nil {
		return core.Member{}, fmt.Errorf("list members: %w", err)
	}
	for _, m := range members {
		if m.ID == memberID {
			return m, nil
		}
	}
	return core.Member{}, fmt.Errorf("member %s: %w", memberID, store.ErrUnknownMember)
}
