// Package memory is an in-process store used as the default backend
// and as the test double for the aggregation services.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"chama/internal/core"
	"chama/internal/store"
)

// Store keeps members and contributions in insertion-ordered slices.
// Safe for concurrent use; every mutation runs under the mutex.
type Store struct {
	mu            sync.Mutex
	members       []core.Member
	memberIDs     map[string]struct{}
	contributions []core.Contribution
	byID          map[string]int
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		memberIDs: make(map[string]struct{}),
		byID:      make(map[string]int),
	}
}

// Seed preloads members and contributions, mostly for tests and local
// development. Existing IDs are kept.
func (s *Store) Seed(members []core.Member, contributions []core.Contribution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range members {
		if _, ok := s.memberIDs[m.ID]; ok {
			continue
		}
		s.memberIDs[m.ID] = struct{}{}
		s.members = append(s.members, m)
	}
	for _, c := range contributions {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		s.byID[c.ID] = len(s.contributions)
		s.contributions = append(s.contributions, c)
	}
}

func (s *Store) RegisterMember(_ context.Context, id, name string) error {
	m := core.Member{ID: id, Name: name}
	if err := m.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memberIDs[id]; ok {
		return store.ErrDuplicateMember
	}
	s.memberIDs[id] = struct{}{}
	s.members = append(s.members, m)
	return nil
}

func (s *Store) ListMembers(_ context.Context) ([]core.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Member(nil), s.members...), nil
}

func (s *Store) AddContribution(_ context.Context, memberID string, amount float64, date core.Date) (string, error) {
	c := core.Contribution{ID: uuid.NewString(), MemberID: memberID, Amount: amount, Date: date}
	if err := c.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memberIDs[memberID]; !ok {
		return "", store.ErrUnknownMember
	}
	s.byID[c.ID] = len(s.contributions)
	s.contributions = append(s.contributions, c)
	return c.ID, nil
}

func (s *Store) UpdateContribution(_ context.Context, id string, amount float64, date core.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}

	updated := s.contributions[i]
	updated.Amount = amount
	updated.Date = date
	if err := updated.Validate(); err != nil {
		return err
	}
	s.contributions[i] = updated
	return nil
}

func (s *Store) ListContributions(_ context.Context, memberID string) ([]core.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if memberID == "" {
		return append([]core.Contribution(nil), s.contributions...), nil
	}
	var out []core.Contribution
	for _, c := range s.contributions {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}
