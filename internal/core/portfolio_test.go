package core

import (
	"math"
	"testing"
)

func TestSummarizeRatiosSumToOne(t *testing.T) {
	members := []Member{
		{ID: "M1", Name: "Wanjiku"},
		{ID: "M2", Name: "Otieno"},
		{ID: "M3", Name: "Achieng"},
	}
	contributions := []Contribution{
		{ID: "1", MemberID: "M1", Amount: 1000, Date: NewDate(2024, 6, 15)},
		{ID: "2", MemberID: "M2", Amount: 300, Date: NewDate(2025, 1, 1)},
		{ID: "3", MemberID: "M2", Amount: 50, Date: NewDate(2025, 5, 1)},
	}

	p := Summarize(members, contributions, testCalc())
	if p.GrandTotal() <= 0 {
		t.Fatalf("grand total = %v, want > 0", p.GrandTotal())
	}

	var sum float64
	for _, m := range members {
		sum += p.Ratio(m.ID)
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("ratios sum to %v, want 1.0", sum)
	}
	if r := p.Ratio("M3"); r != 0 {
		t.Fatalf("ratio of member without contributions = %v, want 0", r)
	}
}

func TestSummarizeZeroGrandTotal(t *testing.T) {
	members := []Member{{ID: "M1", Name: "Wanjiku"}, {ID: "M2", Name: "Otieno"}}

	p := Summarize(members, nil, testCalc())
	if p.GrandTotal() != 0 {
		t.Fatalf("grand total = %v, want 0", p.GrandTotal())
	}
	for _, m := range members {
		if r := p.Ratio(m.ID); r != 0 {
			t.Fatalf("ratio(%s) = %v, want 0 when grand total is 0", m.ID, r)
		}
	}
}

func TestSummarizeRegistrationOrder(t *testing.T) {
	members := []Member{
		{ID: "M2", Name: "Otieno"},
		{ID: "M1", Name: "Wanjiku"},
	}

	p := Summarize(members, nil, testCalc())
	entries := p.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Member.ID != "M2" || entries[1].Member.ID != "M1" {
		t.Fatalf("entries not in registration order: %v, %v", entries[0].Member.ID, entries[1].Member.ID)
	}
}

func TestSummarizeTwoMemberExample(t *testing.T) {
	// M1 holds ~1127.47 after interest (1000 one year back at 12% daily),
	// M2 contributes the remainder dated today so the pool totals 1500.
	now := fixedClock(2025, 6, 15)
	calc := Calculator{Rate: 0.12, Policy: PolicyDaily, Now: now}

	m1Total := 1000 * math.Pow(1+0.12/365, 365)
	members := []Member{{ID: "M1", Name: "Wanjiku"}, {ID: "M2", Name: "Otieno"}}
	contributions := []Contribution{
		{ID: "1", MemberID: "M1", Amount: 1000, Date: DateOf(now().AddDate(0, 0, -365))},
		{ID: "2", MemberID: "M2", Amount: 1500 - m1Total, Date: DateOf(now())},
	}

	p := Summarize(members, contributions, calc)
	if math.Abs(p.GrandTotal()-1500) > 1e-6 {
		t.Fatalf("grand total = %v, want 1500", p.GrandTotal())
	}
	if r := p.Ratio("M1"); math.Abs(r-0.7516) > 0.0001 {
		t.Fatalf("ratio(M1) = %v, want ~0.7516", r)
	}
	if r := p.Ratio("M2"); math.Abs(r-0.2484) > 0.0001 {
		t.Fatalf("ratio(M2) = %v, want ~0.2484", r)
	}
}

func TestMemberTotals(t *testing.T) {
	members := []Member{{ID: "M1", Name: "Wanjiku"}}
	contributions := []Contribution{
		{ID: "1", MemberID: "M1", Amount: 100, Date: NewDate(2025, 6, 15)},
		{ID: "2", MemberID: "M1", Amount: 200, Date: NewDate(2025, 6, 15)},
	}

	p := Summarize(members, contributions, testCalc())
	totals, ok := p.MemberTotals("M1")
	if !ok {
		t.Fatal("expected totals for M1")
	}
	if totals.Principal != 300 {
		t.Fatalf("principal = %v, want 300", totals.Principal)
	}
	if _, ok := p.MemberTotals("ghost"); ok {
		t.Fatal("expected no totals for unknown member")
	}
}
