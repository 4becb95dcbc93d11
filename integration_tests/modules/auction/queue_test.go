package auction_test

import (
	"context"
	"testing"
	"time"

	auctionqueue "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/queue"
	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuctionQueue_ClosesItemAtEndTime(t *testing.T) {
	env.Reset(t)
	repo := auctiondb.NewRepository(env.DB)

	endsAt := time.Now().UTC().Add(time.Second)
	item := &auctiondb.AuctionItem{Title: "Wine crate", StartingBid: 20, CurrentBid: 20, EndTime: &endsAt, IsActive: true}
	require.NoError(t, repo.CreateItem(env.Ctx, nil, item))

	queue, err := auctionqueue.NewService(env.Ctx, env.DSN, repo, env.Obs.Logger, env.Obs.Metrics)
	require.NoError(t, err)
	require.NoError(t, queue.Start(env.Ctx))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.Stop(ctx)
	})

	require.NoError(t, queue.ScheduleClose(env.Ctx, item.ID, endsAt))
	// a second schedule for the same end time is deduplicated
	require.NoError(t, queue.ScheduleClose(env.Ctx, item.ID, endsAt))

	assert.Eventually(t, func() bool {
		got, err := repo.GetItem(env.Ctx, nil, item.ID)
		return err == nil && !got.IsActive
	}, 15*time.Second, 200*time.Millisecond)
}

func TestAuctionQueue_ExtendedItemStaysOpen(t *testing.T) {
	env.Reset(t)
	repo := auctiondb.NewRepository(env.DB)

	endsAt := time.Now().UTC().Add(time.Hour)
	item := &auctiondb.AuctionItem{Title: "Spa day", StartingBid: 40, CurrentBid: 40, EndTime: &endsAt, IsActive: true}
	require.NoError(t, repo.CreateItem(env.Ctx, nil, item))

	queue, err := auctionqueue.NewService(env.Ctx, env.DSN, repo, env.Obs.Logger, env.Obs.Metrics)
	require.NoError(t, err)
	require.NoError(t, queue.Start(env.Ctx))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.Stop(ctx)
	})

	// a stale job from an earlier end time runs now but finds the item still open
	require.NoError(t, queue.ScheduleClose(env.Ctx, item.ID, time.Now().UTC()))

	require.Eventually(t, func() bool {
		count, err := env.DB.NewSelect().Table("river_job").
			Where("kind = ?", "auction_close").
			Where("state = ?", "completed").
			Count(env.Ctx)
		return err == nil && count == 1
	}, 15*time.Second, 200*time.Millisecond)

	got, err := repo.GetItem(env.Ctx, nil, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}
