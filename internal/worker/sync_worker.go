// Package worker mirrors contributions from the embedded SQLite store
// to the hosted spreadsheet, driven by queue messages with a startup
// catch-up pass for rows missed while the worker was down.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"chama/internal/amqp"
	"chama/internal/core"
	"chama/internal/storage"
	"chama/internal/store"
)

// Mirror is the spreadsheet-side write surface.
type Mirror interface {
	UpsertContributionRow(ctx context.Context, c core.Contribution) error
}

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	mirror    Mirror
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, mirror Mirror, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleSyncMessage mirrors one contribution row named by a queue
// message. A row deleted out-of-band maps to an ack (nothing left to
// mirror); mirror failures propagate so the delivery is requeued.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ContributionSyncMessage) error {
	contribution, err := w.storage.GetContribution(ctx, msg.ID)
	if errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "Contribution vanished before mirroring", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get contribution from storage: %w", err)
	}

	if err := w.mirror.UpsertContributionRow(ctx, contribution); err != nil {
		return fmt.Errorf("mirror contribution %d: %w", msg.ID, err)
	}

	if err := w.storage.MarkSynced(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark contribution synced: %w", err)
	}

	slog.InfoContext(ctx, "Contribution mirrored to spreadsheet", "id", msg.ID)
	return nil
}

// StartupSyncCheck mirrors any rows still flagged unsynced. Run once
// at worker startup to cover rows written while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	return w.ProcessPending(ctx)
}

// ProcessPending mirrors rows still flagged unsynced, in batches,
// until none remain. Also runs periodically to cover lost deliveries.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	for {
		pending, err := w.storage.ListUnsynced(ctx, w.batchSize)
		if err != nil {
			return fmt.Errorf("list unsynced contributions: %w", err)
		}
		if len(pending) == 0 {
			return nil
		}

		slog.InfoContext(ctx, "Catching up unsynced contributions", "count", len(pending))
		for _, contribution := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			rowID, err := strconv.ParseInt(contribution.ID, 10, 64)
			if err != nil {
				return fmt.Errorf("unexpected contribution id %q: %w", contribution.ID, err)
			}
			if err := w.mirror.UpsertContributionRow(ctx, contribution); err != nil {
				return fmt.Errorf("mirror contribution %s: %w", contribution.ID, err)
			}
			if err := w.storage.MarkSynced(ctx, rowID); err != nil {
				return fmt.Errorf("mark contribution synced: %w", err)
			}
		}
	}
}
