package auctionqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/riverqueue/river"
)

// CloseWorker deactivates items whose end time has passed. A job left over from an
// end time that was later extended finds the item still open and does nothing.
type CloseWorker struct {
	river.WorkerDefaults[AuctionCloseJob]

	repo   auctiondb.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewCloseWorker creates a CloseWorker. repo must be bound to a database.
func NewCloseWorker(repo auctiondb.Repository, logger *slog.Logger) *CloseWorker {
	return &CloseWorker{repo: repo, logger: logger, now: time.Now}
}

func (w *CloseWorker) Work(ctx context.Context, job *river.Job[AuctionCloseJob]) error {
	logger := w.logger.With(
		attr.Int64("item_id", job.Args.ItemID),
		attr.Time("ends_at", job.Args.EndsAt),
	)

	closed, err := w.repo.CloseIfEnded(ctx, nil, job.Args.ItemID, w.now())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to close auction item", attr.Error(err))
		return fmt.Errorf("failed to close auction item %d: %w", job.Args.ItemID, err)
	}
	if !closed {
		logger.InfoContext(ctx, "Auction item not due for closing, skipping")
		return nil
	}

	item, err := w.repo.GetItem(ctx, nil, job.Args.ItemID)
	if err != nil {
		// the close itself succeeded
		logger.WarnContext(ctx, "Closed auction item could not be reloaded", attr.Error(err))
		return nil
	}

	winner := "no bids"
	if item.CurrentBidder != nil {
		winner = *item.CurrentBidder
	}
	logger.InfoContext(ctx, "Auction item closed",
		attr.String("title", item.Title),
		attr.String("winner", winner),
		attr.Float64("winning_bid", item.CurrentBid),
	)
	return nil
}
