package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		wantISO string
		wantErr bool
	}{
		{"2025-06-15", "2025-06-15", false},
		{" 2025-01-01 ", "2025-01-01", false},
		{"15/06/2025", "", true},
		{"2025-13-40", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("ParseDate(%q) err = %v, want ErrInvalidDate", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if d.ISO() != tc.wantISO {
			t.Fatalf("ParseDate(%q) = %s, want %s", tc.in, d.ISO(), tc.wantISO)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2025, 6, 15)
	cases := []struct {
		other Date
		want  int
	}{
		{NewDate(2025, 6, 15), 0},
		{NewDate(2025, 6, 16), 1},
		{NewDate(2025, 6, 14), -1},
		{NewDate(2026, 6, 15), 365},
	}
	for _, tc := range cases {
		if got := a.DaysUntil(tc.other); got != tc.want {
			t.Fatalf("DaysUntil(%s) = %d, want %d", tc.other.ISO(), got, tc.want)
		}
	}
}

func TestMemberValidate(t *testing.T) {
	cases := []struct {
		name    string
		member  Member
		wantErr error
	}{
		{"valid", Member{ID: "M1", Name: "Wanjiku"}, nil},
		{"missing id", Member{Name: "Wanjiku"}, ErrEmptyMemberID},
		{"blank name", Member{ID: "M1", Name: "   "}, ErrEmptyName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.member.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestContributionValidate(t *testing.T) {
	valid := Contribution{MemberID: "M1", Amount: 100, Date: NewDate(2025, 6, 15)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid contribution: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(Contribution) Contribution
		wantErr error
	}{
		{"zero amount", func(c Contribution) Contribution { c.Amount = 0; return c }, ErrInvalidAmount},
		{"negative amount", func(c Contribution) Contribution { c.Amount = -5; return c }, ErrInvalidAmount},
		{"no member", func(c Contribution) Contribution { c.MemberID = ""; return c }, ErrEmptyMemberID},
		{"zero date", func(c Contribution) Contribution { c.Date = Date{}; return c }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mutate(valid).Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
