package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chama/internal/core"
	"chama/internal/store"
)

func TestRegisterMember(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.RegisterMember(ctx, "M1", "Wanjiku"); err != nil {
		t.Fatalf("RegisterMember: %v", err)
	}
	if err := s.RegisterMember(ctx, "M1", "Someone Else"); !errors.Is(err, store.ErrDuplicateMember) {
		t.Fatalf("duplicate register err = %v, want ErrDuplicateMember", err)
	}
	if err := s.RegisterMember(ctx, "", "Nameless"); !errors.Is(err, core.ErrEmptyMemberID) {
		t.Fatalf("empty id err = %v, want ErrEmptyMemberID", err)
	}

	members, err := s.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Wanjiku" {
		t.Fatalf("unexpected members: %+v", members)
	}
}

func TestListMembersRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"M3", "M1", "M2"} {
		if err := s.RegisterMember(ctx, id, "Member "+id); err != nil {
			t.Fatalf("RegisterMember(%s): %v", id, err)
		}
	}

	members, _ := s.ListMembers(ctx)
	for i, want := range []string{"M3", "M1", "M2"} {
		if members[i].ID != want {
			t.Fatalf("member %d = %s, want %s", i, members[i].ID, want)
		}
	}
}

func TestAddContribution(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.RegisterMember(ctx, "M1", "Wanjiku"); err != nil {
		t.Fatalf("RegisterMember: %v", err)
	}

	id, err := s.AddContribution(ctx, "M1", 1000, core.NewDate(2025, 6, 1))
	if err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
	if id == "" {
		t.Fatal("expected a store-assigned contribution id")
	}

	if _, err := s.AddContribution(ctx, "ghost", 100, core.NewDate(2025, 6, 1)); !errors.Is(err, store.ErrUnknownMember) {
		t.Fatalf("unknown member err = %v, want ErrUnknownMember", err)
	}
	if _, err := s.AddContribution(ctx, "M1", -5, core.NewDate(2025, 6, 1)); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("negative amount err = %v, want ErrInvalidAmount", err)
	}
}

func TestUpdateContribution(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.RegisterMember(ctx, "M1", "Wanjiku")
	id, _ := s.AddContribution(ctx, "M1", 1000, core.NewDate(2025, 6, 1))

	if err := s.UpdateContribution(ctx, id, 1250, core.NewDate(2025, 5, 1)); err != nil {
		t.Fatalf("UpdateContribution: %v", err)
	}

	list, _ := s.ListContributions(ctx, "M1")
	if len(list) != 1 || list[0].Amount != 1250 || list[0].Date.ISO() != "2025-05-01" {
		t.Fatalf("update not applied: %+v", list)
	}
	// Owner stays untouched; only amount and date are mutable.
	if list[0].MemberID != "M1" {
		t.Fatalf("member id changed to %s", list[0].MemberID)
	}

	if err := s.UpdateContribution(ctx, "missing", 1, core.NewDate(2025, 1, 1)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing id err = %v, want ErrNotFound", err)
	}
	if err := s.UpdateContribution(ctx, id, 0, core.NewDate(2025, 1, 1)); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("zero amount err = %v, want ErrInvalidAmount", err)
	}
}

func TestListContributionsFilter(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.RegisterMember(ctx, "M1", "Wanjiku")
	_ = s.RegisterMember(ctx, "M2", "Otieno")
	_, _ = s.AddContribution(ctx, "M1", 100, core.NewDate(2025, 1, 1))
	_, _ = s.AddContribution(ctx, "M2", 200, core.NewDate(2025, 2, 1))
	_, _ = s.AddContribution(ctx, "M1", 300, core.NewDate(2025, 3, 1))

	all, err := s.ListContributions(ctx, "")
	if err != nil {
		t.Fatalf("ListContributions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 contributions, got %d", len(all))
	}

	m1, _ := s.ListContributions(ctx, "M1")
	if len(m1) != 2 || m1[0].Amount != 100 || m1[1].Amount != 300 {
		t.Fatalf("unexpected M1 contributions: %+v", m1)
	}
}

func TestConcurrentMutation(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.RegisterMember(ctx, "M1", "Wanjiku")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddContribution(ctx, "M1", 10, core.NewDate(2025, 6, 1))
		}()
	}
	wg.Wait()

	list, _ := s.ListContributions(ctx, "M1")
	if len(list) != 20 {
		t.Fatalf("expected 20 contributions after concurrent adds, got %d", len(list))
	}
}
