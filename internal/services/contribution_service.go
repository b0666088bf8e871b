// Package services wires the store ports to the aggregation core:
// contribution writes (with queue mirroring) on one side and
// recompute-on-read reporting on the other.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"chama/internal/core"
	"chama/internal/store"
)

// SyncPublisher announces stored contributions to the mirroring queue.
type SyncPublisher interface {
	PublishContributionSync(ctx context.Context, id int64) error
}

// ContributionService validates and persists pool mutations. When a
// publisher is configured (SQLite backend with AMQP), every write is
// announced for mirroring; a failed announcement never fails the
// caller's write.
type ContributionService struct {
	store     store.Store
	publisher SyncPublisher
}

func NewContributionService(st store.Store, publisher SyncPublisher) *ContributionService {
	return &ContributionService{store: st, publisher: publisher}
}

func (s *ContributionService) RegisterMember(ctx context.Context, id, name string) error {
	if err := s.store.RegisterMember(ctx, id, name); err != nil {
		return fmt.Errorf("register member: %w", err)
	}
	return nil
}

func (s *ContributionService) AddContribution(ctx context.Context, memberID string, amount float64, date core.Date) (string, error) {
	id, err := s.store.AddContribution(ctx, memberID, amount, date)
	if err != nil {
		return "", fmt.Errorf("add contribution: %w", err)
	}

	s.announce(ctx, id)
	return id, nil
}

func (s *ContributionService) UpdateContribution(ctx context.Context, id string, amount float64, date core.Date) error {
	if err := s.store.UpdateContribution(ctx, id, amount, date); err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}

	s.announce(ctx, id)
	return nil
}

// announce publishes a mirror request for a stored row. Only the
// SQLite backend issues numeric row IDs; other backends have nothing
// to mirror.
func (s *ContributionService) announce(ctx context.Context, id string) {
	if s.publisher == nil {
		return
	}
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.DebugContext(ctx, "Skipping sync for non-numeric contribution id", "id", id)
		return
	}
	if err := s.publisher.PublishContributionSync(ctx, rowID); err != nil {
		// The write already succeeded locally; the worker's catch-up
		// pass will pick the row up later.
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", rowID, "error", err)
	}
}
