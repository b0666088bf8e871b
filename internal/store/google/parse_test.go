package google

import (
	"testing"
)

func TestParseMembers(t *testing.T) {
	values := [][]any{
		{"M1", "Wanjiku"},
		{"", ""},
		{"M2", "Otieno"},
		{"M3"}, // name cell missing entirely
	}

	members, err := parseMembers(values)
	if err != nil {
		t.Fatalf("parseMembers: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	if members[0].ID != "M1" || members[0].Name != "Wanjiku" {
		t.Fatalf("unexpected first member: %+v", members[0])
	}
	if members[2].ID != "M3" || members[2].Name != "" {
		t.Fatalf("unexpected third member: %+v", members[2])
	}
}

func TestParseContributions(t *testing.T) {
	values := [][]any{
		{"c1", "M1", "1000.50", "2025-06-01"},
		{"c2", "M2", float64(250), "2025-01-15"},
		{""},
		{"c3", "M1", "1,250.00", "2024-12-31"},
	}

	contributions, err := parseContributions(values)
	if err != nil {
		t.Fatalf("parseContributions: %v", err)
	}
	if len(contributions) != 3 {
		t.Fatalf("expected 3 contributions, got %d", len(contributions))
	}
	if contributions[0].Amount != 1000.50 || contributions[0].Date.ISO() != "2025-06-01" {
		t.Fatalf("unexpected first contribution: %+v", contributions[0])
	}
	if contributions[1].Amount != 250 {
		t.Fatalf("numeric cell not handled: %+v", contributions[1])
	}
	if contributions[2].Amount != 1250 {
		t.Fatalf("thousand separator not handled: %+v", contributions[2])
	}
}

func TestParseContributionsMalformed(t *testing.T) {
	cases := []struct {
		name string
		row  []any
	}{
		{"bad amount", []any{"c1", "M1", "lots", "2025-06-01"}},
		{"bad date", []any{"c1", "M1", "100", "June 1st"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseContributions([][]any{tc.row}); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}
