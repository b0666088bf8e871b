// Package export produces flat tabular views of the store for CSV
// download and for the spreadsheet workbook. Column order follows the
// store schema: members(member_id, name) and
// contributions(id, member_id, amount, date).
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"chama/internal/core"
)

type (
	// Sheet is one tabular entity view, header plus data rows.
	Sheet struct {
		Title  string
		Header []string
		Rows   [][]string
	}

	// Workbook groups one sheet per entity.
	Workbook struct {
		Sheets []Sheet
	}
)

var (
	memberHeader       = []string{"member_id", "name"}
	contributionHeader = []string{"id", "member_id", "amount", "date"}
)

// MembersCSV writes all members as CSV.
func MembersCSV(w io.Writer, members []core.Member) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(memberHeader); err != nil {
		return fmt.Errorf("write members header: %w", err)
	}
	for _, m := range members {
		if err := cw.Write([]string{m.ID, m.Name}); err != nil {
			return fmt.Errorf("write member %s: %w", m.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ContributionsCSV writes all contributions as CSV. Amounts are
// rendered with two decimal places.
func ContributionsCSV(w io.Writer, contributions []core.Contribution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(contributionHeader); err != nil {
		return fmt.Errorf("write contributions header: %w", err)
	}
	for _, c := range contributions {
		row := []string{c.ID, c.MemberID, FormatAmount(c.Amount), c.Date.ISO()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write contribution %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildWorkbook assembles the multi-sheet view with one sheet per
// entity, mirroring the CSV column order.
func BuildWorkbook(members []core.Member, contributions []core.Contribution) Workbook {
	memberRows := make([][]string, 0, len(members))
	for _, m := range members {
		memberRows = append(memberRows, []string{m.ID, m.Name})
	}

	contributionRows := make([][]string, 0, len(contributions))
	for _, c := range contributions {
		contributionRows = append(contributionRows, []string{c.ID, c.MemberID, FormatAmount(c.Amount), c.Date.ISO()})
	}

	return Workbook{Sheets: []Sheet{
		{Title: "Members", Header: memberHeader, Rows: memberRows},
		{Title: "Contributions", Header: contributionHeader, Rows: contributionRows},
	}}
}

// FormatAmount renders a monetary value with a fixed two decimal
// places, half-up rounded.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
