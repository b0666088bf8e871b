package google

import (
	"fmt"
	"strconv"
	"strings"

	"chama/internal/core"
)

// parseMembers converts a values matrix (as returned by the Sheets
// API) into members, skipping blank rows.
func parseMembers(values [][]any) ([]core.Member, error) {
	var out []core.Member
	for _, row := range values {
		id := strings.TrimSpace(safeGet(row, 0))
		if id == "" {
			continue
		}
		out = append(out, core.Member{ID: id, Name: strings.TrimSpace(safeGet(row, 1))})
	}
	return out, nil
}

// parseContributions converts a values matrix into contributions.
// Rows without an ID are skipped; malformed amounts or dates are an
// error because the sheet is the system of record for this backend.
func parseContributions(values [][]any) ([]core.Contribution, error) {
	var out []core.Contribution
	for i, row := range values {
		id := strings.TrimSpace(safeGet(row, 0))
		if id == "" {
			continue
		}

		amount, err := parseAmount(safeGet(row, 2))
		if err != nil {
			return nil, fmt.Errorf("contribution row %d: %w", i+2, err)
		}
		date, err := core.ParseDate(safeGet(row, 3))
		if err != nil {
			return nil, fmt.Errorf("contribution row %d: %w", i+2, err)
		}

		out = append(out, core.Contribution{
			ID:       id,
			MemberID: strings.TrimSpace(safeGet(row, 1)),
			Amount:   amount,
			Date:     date,
		})
	}
	return out, nil
}

// parseAmount reads a cell value as a positive amount. Sheets may hand
// back numbers as strings with thousand separators.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	return v, nil
}

func safeGet(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
