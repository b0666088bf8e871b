package core

type (
	// PortfolioEntry is one member's share of the pool.
	PortfolioEntry struct {
		Member Member
		Totals Totals
	}

	// Portfolio is the pool-wide summary across all members, ordered
	// by member registration order. Recomputed on demand from a
	// snapshot read; it carries no independent lifecycle.
	Portfolio struct {
		entries []PortfolioEntry
		index   map[string]int
		grand   float64
	}
)

// Summarize computes per-member principal, interest and total value
// across all members. Members with no contributions get zero totals.
func Summarize(members []Member, contributions []Contribution, calc Calculator) *Portfolio {
	p := &Portfolio{index: make(map[string]int, len(members))}
	for _, m := range members {
		var t Totals
		for _, c := range contributions {
			if c.MemberID != m.ID {
				continue
			}
			interest := calc.Accrued(c.Amount, c.Date)
			t.Principal += c.Amount
			t.Interest += interest
			t.Total += c.Amount + interest
		}
		p.index[m.ID] = len(p.entries)
		p.entries = append(p.entries, PortfolioEntry{Member: m, Totals: t})
		p.grand += t.Total
	}
	return p
}

// Entries returns the per-member summaries in registration order.
func (p *Portfolio) Entries() []PortfolioEntry {
	return p.entries
}

// MemberTotals returns the totals for one member.
func (p *Portfolio) MemberTotals(memberID string) (Totals, bool) {
	i, ok := p.index[memberID]
	if !ok {
		return Totals{}, false
	}
	return p.entries[i].Totals, true
}

// GrandTotal is the sum of all members' total values.
func (p *Portfolio) GrandTotal() float64 {
	return p.grand
}

// Ratio is the member's share of the grand total. When the grand total
// is zero every ratio is zero; division by zero never propagates.
func (p *Portfolio) Ratio(memberID string) float64 {
	if p.grand == 0 {
		return 0
	}
	t, ok := p.MemberTotals(memberID)
	if !ok {
		return 0
	}
	return t.Total / p.grand
}
