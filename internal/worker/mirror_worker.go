// Package worker mirrors user collections from the primary backend into
// the Google Sheets mirror. It reacts to sync notifications and also runs
// a periodic full pass as a backstop against lost messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledger/internal/amqp"
	"ledger/internal/remote"
)

// MirrorWorker copies collections from the primary store to the mirror.
type MirrorWorker struct {
	primary remote.Reader
	mirror  remote.Writer
	userKey string
}

func NewMirrorWorker(primary remote.Reader, mirror remote.Writer, userKey string) *MirrorWorker {
	return &MirrorWorker{
		primary: primary,
		mirror:  mirror,
		userKey: userKey,
	}
}

// HandleSyncMessage mirrors the collection named by a sync notification.
// The notification is a trigger only; the collection is always re-read
// from the primary store.
func (w *MirrorWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncedMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"user_key", msg.UserKey,
		"record_count", msg.RecordCount)

	return w.mirrorUser(ctx, msg.UserKey)
}

// MirrorOnce runs one full mirror pass for the configured user key. Used
// at startup and on the periodic backstop tick.
func (w *MirrorWorker) MirrorOnce(ctx context.Context) error {
	return w.mirrorUser(ctx, w.userKey)
}

// RunPeriodic mirrors on every tick until the context is cancelled. Tick
// failures are logged and do not stop the loop.
func (w *MirrorWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic mirror", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.MirrorOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic mirror failed", "error", err)
			}
		}
	}
}

func (w *MirrorWorker) mirrorUser(ctx context.Context, userKey string) error {
	rows, found, err := w.primary.Read(ctx, userKey)
	if err != nil {
		return fmt.Errorf("read primary collection: %w", err)
	}
	if !found {
		slog.InfoContext(ctx, "No collection to mirror", "user_key", userKey)
		return nil
	}

	if err := w.mirror.Write(ctx, userKey, rows); err != nil {
		return fmt.Errorf("write mirror collection: %w", err)
	}

	slog.InfoContext(ctx, "Collection mirrored",
		"user_key", userKey,
		"records", len(rows))
	return nil
}
