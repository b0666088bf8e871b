package core

import "sort"

type (
	// LedgerRow is one contribution with its computed interest, total
	// value and the running balance at that point of the ledger.
	// Rows are derived on every read and never persisted.
	LedgerRow struct {
		Contribution Contribution
		Interest     float64
		Total        float64
		Balance      float64
	}

	// Totals are the principal/interest/total sums over a set of
	// contributions.
	Totals struct {
		Principal float64
		Interest  float64
		Total     float64
	}
)

// BuildLedger filters contributions to the given member, orders them by
// contribution date ascending (store insertion order on date ties) and
// computes per-row interest, total value and running balance.
// A member with no contributions yields an empty ledger.
func BuildLedger(memberID string, contributions []Contribution, calc Calculator) []LedgerRow {
	var own []Contribution
	for _, c := range contributions {
		if c.MemberID == memberID {
			own = append(own, c)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Date.Time.Before(own[j].Date.Time)
	})

	rows := make([]LedgerRow, 0, len(own))
	var balance float64
	for _, c := range own {
		interest := calc.Accrued(c.Amount, c.Date)
		total := c.Amount + interest
		balance += total
		rows = append(rows, LedgerRow{
			Contribution: c,
			Interest:     interest,
			Total:        total,
			Balance:      balance,
		})
	}
	return rows
}

// SummarizeLedger sums principal, interest and total value over a ledger.
func SummarizeLedger(rows []LedgerRow) Totals {
	var t Totals
	for _, r := range rows {
		t.Principal += r.Contribution.Amount
		t.Interest += r.Interest
		t.Total += r.Total
	}
	return t
}
