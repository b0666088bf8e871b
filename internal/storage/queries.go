package storage

import (
	"context"
	"database/sql"
)

// Queries bundles the raw SQL operations against the chama schema.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type (
	MemberRow struct {
		MemberID string
		Name     string
	}

	ContributionRow struct {
		ID       int64
		MemberID string
		Amount   float64
		Date     string
		Synced   bool
	}

	CreateContributionParams struct {
		MemberID string
		Amount   float64
		Date     string
	}

	UpdateContributionParams struct {
		ID     int64
		Amount float64
		Date   string
	}
)

const createMember = `INSERT INTO members (member_id, name) VALUES (?, ?)`

func (q *Queries) CreateMember(ctx context.Context, memberID, name string) error {
	_, err := q.db.ExecContext(ctx, createMember, memberID, name)
	return err
}

const listMembers = `SELECT member_id, name FROM members ORDER BY rowid`

func (q *Queries) ListMembers(ctx context.Context) ([]MemberRow, error) {
	rows, err := q.db.QueryContext(ctx, listMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MemberRow
	for rows.Next() {
		var m MemberRow
		if err := rows.Scan(&m.MemberID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const memberExists = `SELECT EXISTS(SELECT 1 FROM members WHERE member_id = ?)`

func (q *Queries) MemberExists(ctx context.Context, memberID string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, memberExists, memberID).Scan(&exists)
	return exists, err
}

const createContribution = `INSERT INTO contributions (member_id, amount, date) VALUES (?, ?, ?)`

func (q *Queries) CreateContribution(ctx context.Context, arg CreateContributionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createContribution, arg.MemberID, arg.Amount, arg.Date)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateContribution = `UPDATE contributions SET amount = ?, date = ?, synced = 0 WHERE id = ?`

func (q *Queries) UpdateContribution(ctx context.Context, arg UpdateContributionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateContribution, arg.Amount, arg.Date, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listContributions = `SELECT id, member_id, amount, date, synced FROM contributions ORDER BY id`

const listContributionsByMember = `SELECT id, member_id, amount, date, synced FROM contributions WHERE member_id = ? ORDER BY id`

func (q *Queries) ListContributions(ctx context.Context, memberID string) ([]ContributionRow, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if memberID == "" {
		rows, err = q.db.QueryContext(ctx, listContributions)
	} else {
		rows, err = q.db.QueryContext(ctx, listContributionsByMember, memberID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContributionRow
	for rows.Next() {
		var c ContributionRow
		if err := rows.Scan(&c.ID, &c.MemberID, &c.Amount, &c.Date, &c.Synced); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const getContribution = `SELECT id, member_id, amount, date, synced FROM contributions WHERE id = ?`

func (q *Queries) GetContribution(ctx context.Context, id int64) (ContributionRow, error) {
	var c ContributionRow
	err := q.db.QueryRowContext(ctx, getContribution, id).Scan(&c.ID, &c.MemberID, &c.Amount, &c.Date, &c.Synced)
	return c, err
}

const listUnsynced = `SELECT id, member_id, amount, date, synced FROM contributions WHERE synced = 0 ORDER BY id LIMIT ?`

func (q *Queries) ListUnsynced(ctx context.Context, limit int64) ([]ContributionRow, error) {
	rows, err := q.db.QueryContext(ctx, listUnsynced, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContributionRow
	for rows.Next() {
		var c ContributionRow
		if err := rows.Scan(&c.ID, &c.MemberID, &c.Amount, &c.Date, &c.Synced); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const markSynced = `UPDATE contributions SET synced = 1 WHERE id = ?`

func (q *Queries) MarkSynced(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markSynced, id)
	return err
}
