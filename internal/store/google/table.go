package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	gsheet "google.golang.org/api/sheets/v4"

	"chama/internal/core"
	"chama/internal/store"
)

// Sheet layout. Row 1 is the header, data starts at row 2. Column
// order matches the SQLite schema so exports line up across backends.
//   Members:       A member_id | B name
//   Contributions: A id | B member_id | C amount | D date (ISO-8601)

func (c *Client) RegisterMember(ctx context.Context, id, name string) error {
	m := core.Member{ID: id, Name: name}
	if err := m.Validate(); err != nil {
		return err
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readColumn(ctx, c.membersSheet, "A2:A")
	if err != nil {
		return fmt.Errorf("read member ids: %w", err)
	}
	for _, existing := range ids {
		if existing == id {
			return fmt.Errorf("register member %s: %w", id, store.ErrDuplicateMember)
		}
	}

	if err := c.appendRow(ctx, c.membersSheet, []any{id, name}); err != nil {
		return fmt.Errorf("append member row: %w", err)
	}
	return nil
}

func (c *Client) ListMembers(ctx context.Context) ([]core.Member, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	values, err := c.readRange(ctx, c.membersSheet, "A2:B")
	if err != nil {
		return nil, fmt.Errorf("read members: %w", err)
	}
	return parseMembers(values)
}

func (c *Client) AddContribution(ctx context.Context, memberID string, amount float64, date core.Date) (string, error) {
	contribution := core.Contribution{MemberID: memberID, Amount: amount, Date: date}
	if err := contribution.Validate(); err != nil {
		return "", err
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	ids, err := c.readColumn(ctx, c.membersSheet, "A2:A")
	if err != nil {
		return "", fmt.Errorf("read member ids: %w", err)
	}
	known := false
	for _, existing := range ids {
		if existing == memberID {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("add contribution for %s: %w", memberID, store.ErrUnknownMember)
	}

	id := uuid.NewString()
	row := []any{id, memberID, amount, date.ISO()}
	if err := c.appendRow(ctx, c.contributionsSheet, row); err != nil {
		return "", fmt.Errorf("append contribution row: %w", err)
	}
	return id, nil
}

func (c *Client) UpdateContribution(ctx context.Context, id string, amount float64, date core.Date) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	if err := date.Validate(); err != nil {
		return err
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readColumn(ctx, c.contributionsSheet, "A2:A")
	if err != nil {
		return fmt.Errorf("read contribution ids: %w", err)
	}
	rowNum := 0
	for i, existing := range ids {
		if existing == id {
			rowNum = i + 2 // data starts at row 2
			break
		}
	}
	if rowNum == 0 {
		return fmt.Errorf("update contribution %s: %w", id, store.ErrNotFound)
	}

	rng := fmt.Sprintf("%s!C%d:D%d", c.contributionsSheet, rowNum, rowNum)
	vr := &gsheet.ValueRange{Values: [][]any{{amount, date.ISO()}}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) ListContributions(ctx context.Context, memberID string) ([]core.Contribution, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	values, err := c.readRange(ctx, c.contributionsSheet, "A2:D")
	if err != nil {
		return nil, fmt.Errorf("read contributions: %w", err)
	}

	all, err := parseContributions(values)
	if err != nil {
		return nil, err
	}
	if memberID == "" {
		return all, nil
	}
	var out []core.Contribution
	for _, contribution := range all {
		if contribution.MemberID == memberID {
			out = append(out, contribution)
		}
	}
	return out, nil
}

func (c *Client) readRange(ctx context.Context, sheetName, cells string) ([][]any, error) {
	rng := fmt.Sprintf("%s!%s", sheetName, cells)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *Client) readColumn(ctx context.Context, sheetName, cells string) ([]string, error) {
	values, err := c.readRange(ctx, sheetName, cells)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, row := range values {
		out = append(out, safeGet(row, 0))
	}
	return out, nil
}

func (c *Client) appendRow(ctx context.Context, sheetName string, row []any) error {
	rng := fmt.Sprintf("%s!A:A", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheetName, err)
	}
	return nil
}
