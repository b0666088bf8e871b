package google

import (
	"context"
	"errors"
	"fmt"

	gsheet "google.golang.org/api/sheets/v4"

	"chama/internal/core"
)

// UpsertContributionRow writes a contribution into the sheet keeping
// the caller's row ID, updating in place when the ID already exists.
// The sync worker uses this to mirror SQLite rows, so replayed queue
// deliveries and amount/date updates stay idempotent.
func (c *Client) UpsertContributionRow(ctx context.Context, contribution core.Contribution) error {
	if err := contribution.Validate(); err != nil {
		return err
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readColumn(ctx, c.contributionsSheet, "A2:A")
	if err != nil {
		return fmt.Errorf("read contribution ids: %w", err)
	}
	for i, existing := range ids {
		if existing != contribution.ID {
			continue
		}
		rowNum := i + 2
		rng := fmt.Sprintf("%s!B%d:D%d", c.contributionsSheet, rowNum, rowNum)
		vr := &gsheet.ValueRange{Values: [][]any{{contribution.MemberID, contribution.Amount, contribution.Date.ISO()}}}
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update %s: %w", rng, err)
		}
		return nil
	}

	row := []any{contribution.ID, contribution.MemberID, contribution.Amount, contribution.Date.ISO()}
	if err := c.appendRow(ctx, c.contributionsSheet, row); err != nil {
		return fmt.Errorf("append mirrored contribution: %w", err)
	}
	return nil
}
