// Package storage is the embedded SQLite backend. It fulfils the
// store ports against two tables, members and contributions, and keeps
// a synced flag per contribution for the sheets mirroring worker.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chama/internal/core"
	"chama/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) RegisterMember(ctx context.Context, id, name string) error {
	m := core.Member{ID: id, Name: name}
	if err := m.Validate(); err != nil {
		return err
	}

	if err := r.queries.CreateMember(ctx, id, name); err != nil {
		// The primary key constraint is the store-level uniqueness
		// guarantee under concurrent registration.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("register member %s: %w", id, store.ErrDuplicateMember)
		}
		return fmt.Errorf("create member: %w", err)
	}

	slog.InfoContext(ctx, "Member registered", "member_id", id, "name", name)
	return nil
}

func (r *SQLiteRepository) ListMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := r.queries.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]core.Member, len(rows))
	for i, m := range rows {
		members[i] = core.Member{ID: m.MemberID, Name: m.Name}
	}
	return members, nil
}

func (r *SQLiteRepository) AddContribution(ctx context.Context, memberID string, amount float64, date core.Date) (string, error) {
	c := core.Contribution{MemberID: memberID, Amount: amount, Date: date}
	if err := c.Validate(); err != nil {
		return "", err
	}

	exists, err := r.queries.MemberExists(ctx, memberID)
	if err != nil {
		return "", fmt.Errorf("check member: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("add contribution for %s: %w", memberID, store.ErrUnknownMember)
	}

	id, err := r.queries.CreateContribution(ctx, CreateContributionParams{
		MemberID: memberID,
		Amount:   amount,
		Date:     date.ISO(),
	})
	if err != nil {
		return "", fmt.Errorf("create contribution: %w", err)
	}

	slog.InfoContext(ctx, "Contribution saved",
		"id", id,
		"member_id", memberID,
		"amount", amount,
		"date", date.ISO())

	return strconv.FormatInt(id, 10), nil
}

func (r *SQLiteRepository) UpdateContribution(ctx context.Context, id string, amount float64, date core.Date) error {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("contribution id %q: %w", id, store.ErrNotFound)
	}
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	if err := date.Validate(); err != nil {
		return err
	}

	affected, err := r.queries.UpdateContribution(ctx, UpdateContributionParams{
		ID:     rowID,
		Amount: amount,
		Date:   date.ISO(),
	})
	if err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update contribution %s: %w", id, store.ErrNotFound)
	}

	slog.InfoContext(ctx, "Contribution updated", "id", id, "amount", amount, "date", date.ISO())
	return nil
}

func (r *SQLiteRepository) ListContributions(ctx context.Context, memberID string) ([]core.Contribution, error) {
	rows, err := r.queries.ListContributions(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return contributionsFromRows(rows)
}

// GetContribution loads a single contribution by its numeric row ID.
// Used by the sync worker when handling queue messages.
func (r *SQLiteRepository) GetContribution(ctx context.Context, id int64) (core.Contribution, error) {
	row, err := r.queries.GetContribution(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contribution{}, fmt.Errorf("contribution %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return core.Contribution{}, fmt.Errorf("get contribution: %w", err)
	}
	return contributionFromRow(row)
}

// ListUnsynced returns contributions not yet mirrored to the sheets
// backend, oldest first.
func (r *SQLiteRepository) ListUnsynced(ctx context.Context, limit int) ([]core.Contribution, error) {
	rows, err := r.queries.ListUnsynced(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list unsynced contributions: %w", err)
	}
	return contributionsFromRows(rows)
}

// MarkSynced flags a contribution as mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.queries.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark contribution synced: %w", err)
	}
	slog.InfoContext(ctx, "Contribution marked as synced", "id", id)
	return nil
}

func contributionFromRow(row ContributionRow) (core.Contribution, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("contribution %d has malformed date %q: %w", row.ID, row.Date, err)
	}
	return core.Contribution{
		ID:       strconv.FormatInt(row.ID, 10),
		MemberID: row.MemberID,
		Amount:   row.Amount,
		Date:     date,
	}, nil
}

func contributionsFromRows(rows []ContributionRow) ([]core.Contribution, error) {
	out := make([]core.Contribution, 0, len(rows))
	for _, row := range rows {
		c, err := contributionFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
