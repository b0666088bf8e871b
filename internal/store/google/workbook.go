package google

import (
	"context"
	"errors"
	"fmt"

	gsheet "google.golang.org/api/sheets/v4"

	"chama/internal/export"
)

// WriteWorkbook writes a tabular workbook into the spreadsheet, one
// sheet per entity. Existing sheets with the same titles are cleared
// and rewritten; missing ones are created.
func (c *Client) WriteWorkbook(ctx context.Context, wb export.Workbook) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	existing := make(map[string]bool, len(meta.Sheets))
	for _, s := range meta.Sheets {
		existing[s.Properties.Title] = true
	}

	var requests []*gsheet.Request
	for _, sheet := range wb.Sheets {
		if existing[sheet.Title] {
			continue
		}
		requests = append(requests, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: sheet.Title},
			},
		})
	}
	if len(requests) > 0 {
		_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("add workbook sheets: %w", err)
		}
	}

	for _, sheet := range wb.Sheets {
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheet.Title, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear sheet %s: %w", sheet.Title, err)
		}

		values := make([][]any, 0, len(sheet.Rows)+1)
		header := make([]any, len(sheet.Header))
		for i, h := range sheet.Header {
			header[i] = h
		}
		values = append(values, header)
		for _, row := range sheet.Rows {
			cells := make([]any, len(row))
			for i, cell := range row {
				cells[i] = cell
			}
			values = append(values, cells)
		}

		rng := fmt.Sprintf("%s!A1", sheet.Title)
		vr := &gsheet.ValueRange{Values: values}
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet.Title, err)
		}
	}

	return nil
}
