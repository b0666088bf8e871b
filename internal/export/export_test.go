package export

import (
	"strings"
	"testing"

	"chama/internal/core"
)

func TestMembersCSV(t *testing.T) {
	members := []core.Member{
		{ID: "M1", Name: "Wanjiku"},
		{ID: "M2", Name: "Otieno, Jr."},
	}

	var sb strings.Builder
	if err := MembersCSV(&sb, members); err != nil {
		t.Fatalf("MembersCSV: %v", err)
	}

	want := "member_id,name\nM1,Wanjiku\nM2,\"Otieno, Jr.\"\n"
	if sb.String() != want {
		t.Fatalf("csv = %q, want %q", sb.String(), want)
	}
}

func TestContributionsCSV(t *testing.T) {
	contributions := []core.Contribution{
		{ID: "1", MemberID: "M1", Amount: 1000.5, Date: core.NewDate(2025, 6, 1)},
		{ID: "2", MemberID: "M2", Amount: 250, Date: core.NewDate(2025, 1, 15)},
	}

	var sb strings.Builder
	if err := ContributionsCSV(&sb, contributions); err != nil {
		t.Fatalf("ContributionsCSV: %v", err)
	}

	want := "id,member_id,amount,date\n1,M1,1000.50,2025-06-01\n2,M2,250.00,2025-01-15\n"
	if sb.String() != want {
		t.Fatalf("csv = %q, want %q", sb.String(), want)
	}
}

func TestBuildWorkbook(t *testing.T) {
	members := []core.Member{{ID: "M1", Name: "Wanjiku"}}
	contributions := []core.Contribution{
		{ID: "1", MemberID: "M1", Amount: 99.999, Date: core.NewDate(2025, 6, 1)},
	}

	wb := BuildWorkbook(members, contributions)
	if len(wb.Sheets) != 2 {
		t.Fatalf("expected one sheet per entity, got %d", len(wb.Sheets))
	}
	if wb.Sheets[0].Title != "Members" || wb.Sheets[1].Title != "Contributions" {
		t.Fatalf("unexpected sheet titles: %s, %s", wb.Sheets[0].Title, wb.Sheets[1].Title)
	}
	if got := wb.Sheets[1].Rows[0][2]; got != "100.00" {
		t.Fatalf("amount cell = %q, want half-up rounded 100.00", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1000.5, "1000.50"},
		{12.345, "12.35"},
		{12.344, "12.34"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
